package engine

// Cycle is the real-time audio cycle collaborator of spec.md §6 item 2:
// at the start of each cycle it calls TrySwitch once on the driver
// parameters and once per pending slot (SlotGraphEdit, SlotPortEdit) on
// the port graph to pick up any pending change, then reads freely for the
// remainder of the cycle. Cycle never writes to either primitive.
//
// Cycle.Tick must never allocate, log, or block — it is the simulated
// real-time path; see SPEC_FULL.md §7.1.
type Cycle struct {
	manager *GraphManager

	graphPromotions  uint64
	portPromotions   uint64
	paramsPromotions uint64
}

// NewCycle returns a Cycle driven by manager's primitives.
func NewCycle(manager *GraphManager) *Cycle {
	return &Cycle{manager: manager}
}

// Tick performs exactly one promotion attempt each for the driver
// params, the graph-edit slot and the port-edit slot, and returns the now-current
// graph and params for the caller to use for the rest of the cycle.
// Safe to call from a dedicated real-time thread: no allocation, no
// syscall, bounded CAS retries only.
func (c *Cycle) Tick() (graph *Graph, params *DriverParams) {
	if _, changed := c.manager.params.TrySwitch(); changed {
		c.paramsPromotions++
	}
	if _, changed := c.manager.graph.TrySwitch(SlotGraphEdit); changed {
		c.graphPromotions++
	}
	if _, changed := c.manager.graph.TrySwitch(SlotPortEdit); changed {
		c.portPromotions++
	}

	return c.manager.graph.ReadCurrent(), c.manager.params.ReadCurrent()
}

// Promotions returns the number of successful promotions observed by
// this cycle driver, split by primitive. Intended for
// cmd/rtstate-bench's end-of-run report, not for use inside the
// real-time path itself.
func (c *Cycle) Promotions() (graphEdits, portEdits, params uint64) {
	return c.graphPromotions, c.portPromotions, c.paramsPromotions
}
