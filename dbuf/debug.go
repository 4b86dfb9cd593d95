package dbuf

// debug gates boundary-condition assertions that are too expensive, or
// too surprising, to run unconditionally in the hot write path. It is a
// variable, not a build tag, so tests can flip it without a separate
// build; production wiring leaves it false.
var debug = false

func assertWriteBeginCalled(ok bool) {
	if debug && !ok {
		panic("dbuf: WriteEnd called without a matching WriteBegin")
	}
}
