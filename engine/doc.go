// Package engine wires the rtstate primitives (dbuf, arraystate, seqread)
// into a small but complete model of the external collaborators
// spec.md treats as out of scope: a port graph, an engine driver
// parameter block, a simulated real-time process cycle, and a cold
// introspection client.
//
// Engine control parameters live in a dbuf.State (one writer thread,
// nestable writes). The port graph lives in an arraystate.State with
// two independently-armable pending categories: slot SlotGraphEdit for
// topology changes (port creation/removal) and slot SlotPortEdit for
// connection changes — the two pending-change categories spec.md's
// design notes name as the reason three cells are sufficient.
package engine
