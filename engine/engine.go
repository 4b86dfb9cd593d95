package engine

import "sync"

// Engine ties a GraphManager, a Cycle, and an Inspector together behind
// a start/stop lifecycle. Start/Stop is reference-counted: multiple
// Start calls are safe, and the underlying primitives are only
// considered "live" while the count is above zero.
type Engine struct {
	mu      sync.Mutex
	running int

	Manager   *GraphManager
	Cycle     *Cycle
	Inspector *Inspector
}

// New constructs an Engine with fresh primitives and a diagnostics
// history of the given snapshot capacity.
func New(historyCapacity int) *Engine {
	manager := NewGraphManager()
	return &Engine{
		Manager:   manager,
		Cycle:     NewCycle(manager),
		Inspector: NewInspector(manager, historyCapacity),
	}
}

// Start increments the running reference count. Safe to call multiple
// times; the caller owning the real-time thread should call Start once
// before driving Cycle.Tick.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.running++
}

// Stop decrements the running reference count. Returns
// ErrEngineNotRunning if called without a matching Start.
func (e *Engine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running == 0 {
		return ErrEngineNotRunning
	}
	e.running--
	return nil
}

// Running reports whether the engine has at least one outstanding
// Start not yet matched by Stop.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running > 0
}
