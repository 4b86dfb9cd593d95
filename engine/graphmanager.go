package engine

import (
	"sync"

	"github.com/drgolem/rtstate/arraystate"
	"github.com/drgolem/rtstate/dbuf"
)

// Pending-slot identifiers for the port graph's array-state. Two
// categories, matching spec.md §9's design note that N=3 is sufficient
// because the real consumers only ever need "current plus two
// independent pending change categories."
const (
	SlotGraphEdit = 1 // port creation / removal
	SlotPortEdit  = 2 // connection changes between existing ports
)

// GraphManager is the non-real-time writer side of the port graph and
// driver parameters: the "engine control / graph manager" collaborator
// of spec.md §6 item 1. It serializes writers per slot with a mutex —
// spec.md leaves concurrent writers on the *same* slot as undefined
// behavior at the primitive level ("higher layers prevent this by
// convention"); GraphManager is that higher layer.
type GraphManager struct {
	graph  *arraystate.State[Graph]
	params *dbuf.State[DriverParams]

	graphEditMu sync.Mutex
	portEditMu  sync.Mutex
	paramsMu    sync.Mutex
}

// NewGraphManager returns a manager over freshly initialized graph and
// driver-parameter state.
func NewGraphManager() *GraphManager {
	return &GraphManager{
		graph:  arraystate.New(NewGraph()),
		params: dbuf.New(DefaultDriverParams()),
	}
}

// Graph returns the underlying array-state primitive, for the process
// cycle and cold clients.
func (m *GraphManager) Graph() *arraystate.State[Graph] { return m.graph }

// Params returns the underlying double-buffer primitive, for the
// process cycle and cold clients.
func (m *GraphManager) Params() *dbuf.State[DriverParams] { return m.params }

// AddPort arms a topology change on SlotGraphEdit.
func (m *GraphManager) AddPort(name string, dir Direction) (int, error) {
	m.graphEditMu.Lock()
	defer m.graphEditMu.Unlock()

	g := m.graph.WriteBegin(SlotGraphEdit)
	idx, err := g.AddPort(name, dir)
	m.graph.WriteEnd(SlotGraphEdit)
	return idx, err
}

// RemovePort arms a topology change on SlotGraphEdit.
func (m *GraphManager) RemovePort(idx int) error {
	m.graphEditMu.Lock()
	defer m.graphEditMu.Unlock()

	g := m.graph.WriteBegin(SlotGraphEdit)
	err := g.RemovePort(idx)
	m.graph.WriteEnd(SlotGraphEdit)
	return err
}

// Connect arms a connection change on SlotPortEdit.
func (m *GraphManager) Connect(from, to int) error {
	m.portEditMu.Lock()
	defer m.portEditMu.Unlock()

	g := m.graph.WriteBegin(SlotPortEdit)
	err := g.Connect(from, to)
	m.graph.WriteEnd(SlotPortEdit)
	return err
}

// Disconnect arms a connection change on SlotPortEdit.
func (m *GraphManager) Disconnect(from, to int) error {
	m.portEditMu.Lock()
	defer m.portEditMu.Unlock()

	g := m.graph.WriteBegin(SlotPortEdit)
	err := g.Disconnect(from, to)
	m.graph.WriteEnd(SlotPortEdit)
	return err
}

// SetSampleRate updates the driver parameter block. The double-buffer
// primitive supports nested writers from a single thread; GraphManager
// additionally serializes distinct goroutines with paramsMu since
// spec.md's nesting counter is explicitly documented as non-atomic and
// single-writer-thread-only (see DESIGN.md Open Questions).
func (m *GraphManager) SetSampleRate(hz int) {
	m.paramsMu.Lock()
	defer m.paramsMu.Unlock()

	p := m.params.WriteBegin()
	p.SampleRate = hz
	m.params.WriteEnd()
}

// SetFramesPerCycle updates the driver parameter block.
func (m *GraphManager) SetFramesPerCycle(frames int) {
	m.paramsMu.Lock()
	defer m.paramsMu.Unlock()

	p := m.params.WriteBegin()
	p.FramesPerCycle = frames
	m.params.WriteEnd()
}

// UpdateParams applies fn inside one WriteBegin/WriteEnd pair, publishing
// exactly one generation regardless of how many fields fn touches. The
// write is not nested: fn receives the write target directly.
func (m *GraphManager) UpdateParams(fn func(*DriverParams)) {
	m.paramsMu.Lock()
	defer m.paramsMu.Unlock()

	p := m.params.WriteBegin()
	fn(p)
	m.params.WriteEnd()
}
