package engine

// DriverParams is the engine-control parameter block: mutable state a
// real-time reader must observe consistently alongside the port graph
// and client connections. It is a plain value type, held in a
// dbuf.State so the graph manager can update it with the same
// nested-write discipline as any other double-buffered state.
type DriverParams struct {
	SampleRate     int
	FramesPerCycle int
	HighLatency    bool
}

// DefaultDriverParams returns common real-time audio defaults (44.1kHz,
// 512-frame buffer, low latency).
func DefaultDriverParams() DriverParams {
	return DriverParams{
		SampleRate:     44100,
		FramesPerCycle: 512,
		HighLatency:    false,
	}
}
