package engine

import (
	"github.com/smallnest/ringbuffer"

	"github.com/drgolem/rtstate/seqread"
)

// Inspector is the cold introspection client: it never writes, and
// reads the port graph through the seqread snapshot protocol so it
// never observes a torn composite value, even though it runs on an
// ordinary goroutine racing the graph manager and process cycle.
//
// Each confirmed tear-free snapshot is pushed into a ring buffer of
// marshaled Graph bytes, decoupling the (potentially slow) consumer of
// the history — a metrics exporter, a debugger UI — from the snapshot
// loop itself.
type Inspector struct {
	manager *GraphManager
	history *ringbuffer.RingBuffer
}

// NewInspector returns an Inspector keeping up to capacity historical
// snapshots.
func NewInspector(manager *GraphManager, capacity int) *Inspector {
	return &Inspector{
		manager: manager,
		history: ringbuffer.New(capacity * GraphLayoutSize),
	}
}

// Snapshot takes one tear-free copy of the current port graph using the
// reader snapshot protocol, and records it into the history ring
// buffer. It is safe to call concurrently with writers and with the
// process cycle's TrySwitch calls.
func (ins *Inspector) Snapshot() Graph {
	g := seqread.Read(ins.manager.graph.CurrentSwitchCount, func() Graph {
		return *ins.manager.graph.ReadCurrent()
	})

	if encoded, err := g.MarshalBinary(); err == nil {
		if ins.history.Free() < len(encoded) {
			drain := make([]byte, len(encoded))
			_, _ = ins.history.TryRead(drain)
		}
		_, _ = ins.history.Write(encoded)
	}
	return g
}

// History drains up to n recorded snapshots, oldest first.
func (ins *Inspector) History(n int) []Graph {
	out := make([]Graph, 0, n)
	buf := make([]byte, GraphLayoutSize)
	for i := 0; i < n; i++ {
		read, err := ins.history.TryRead(buf)
		if err != nil || read != GraphLayoutSize {
			break
		}
		var g Graph
		if err := g.UnmarshalBinary(buf); err != nil {
			break
		}
		out = append(out, g)
	}
	return out
}
