package engine

import "errors"

// Sentinel errors of the engine package: concrete, inspectable error
// values rather than opaque strings. The port graph operations (directly
// or through GraphManager) and Engine.Stop return them; the driver
// parameter writers return no error, and ErrUnknownSlot,
// ErrWriteEndWithoutBegin and ErrEngineAlreadyRunning are returned by no
// function in this package.
var (
	ErrUnknownSlot          = errors.New("engine: unknown pending slot")
	ErrWriteEndWithoutBegin = errors.New("engine: WriteEnd called without a matching WriteBegin")
	ErrPortNotFound         = errors.New("engine: port not found")
	ErrPortNameTaken        = errors.New("engine: port name already in use")
	ErrGraphFull            = errors.New("engine: port graph at capacity")
	ErrAlreadyConnected     = errors.New("engine: ports already connected")
	ErrNotConnected         = errors.New("engine: ports not connected")
	ErrSelfConnection       = errors.New("engine: a port cannot connect to itself")
	ErrDirectionMismatch    = errors.New("engine: connections must go from an output port to an input port")
	ErrEngineAlreadyRunning = errors.New("engine: already running")
	ErrEngineNotRunning     = errors.New("engine: not running")
)
