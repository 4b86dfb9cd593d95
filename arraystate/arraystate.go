// Package arraystate implements the triple-buffered atomic state
// primitive: one current cell plus two independent pending slots, each
// writable and armable concurrently by a distinct writer, promoted to
// current on demand by a single reader/promoter.
//
// Slot identifiers are 1 and 2 ("graph edits" and "port edits" in the
// rtstate engine's terms); slot 0 is reserved and never addressable by
// callers. Writers for distinct slots never contend for the same cell —
// see the slot-swap rule documented on writeBeginCell.
package arraystate

import (
	"golang.org/x/sys/cpu"

	"github.com/drgolem/rtstate/rtcounter"
)

// State is a three-celled value of type T with two independently
// armable pending slots.
type State[T any] struct {
	word rtcounter.Word

	cells [3]T
	_     cpu.CacheLinePad
}

// New returns a State with all three cells initialized to init.
func New[T any](init T) *State[T] {
	return &State[T]{cells: [3]T{init, init, init}}
}

func validSlot(s int) bool { return s == 1 || s == 2 }

// writeBeginCell computes the cell slot s should write into, given the
// current layout's B0. This is the slot-swap rule: the write target is
// always the cell index equal to s, unless s already is the current
// cell, in which case the write target falls back to 0. Because the
// current cell can equal at most one of {1, 2} at a time, slots 1 and 2
// never compute the same write target.
func writeBeginCell(b0 uint8, s int) uint8 {
	if int(b0) != s {
		return uint8(s)
	}
	return 0
}

// WriteBegin returns a pointer to the cell now bound to slot s. s must
// be 1 or 2; an invalid slot is a no-op that returns the current cell
// (see spec.md §7: "rejected at compile time where possible; otherwise
// no-op").
func (a *State[T]) WriteBegin(s int) *T {
	if !validSlot(s) {
		return &a.cells[rtcounter.B0(a.word.Load())]
	}

	var target uint8
	for {
		word := a.word.Load()
		b0 := rtcounter.B0(word)
		target = writeBeginCell(b0, s)
		needRefresh := rtcounter.WrittenFlag(word, s) == 0

		newWord := rtcounter.WithWrittenFlag(word, s, 0)
		if a.word.CompareAndSwap(word, newWord) {
			if needRefresh {
				a.cells[target] = a.cells[b0]
			}
			break
		}
	}
	return &a.cells[target]
}

// WriteEnd arms slot s, making its cell eligible for promotion by a
// subsequent TrySwitch(s). s must be 1 or 2; otherwise this is a no-op.
func (a *State[T]) WriteEnd(s int) {
	if !validSlot(s) {
		return
	}
	for {
		word := a.word.Load()
		newWord := rtcounter.WithWrittenFlag(word, s, 1)
		if a.word.CompareAndSwap(word, newWord) {
			return
		}
	}
}

// TrySwitch promotes slot s's cell to current if armed, clearing the
// flag and incrementing the switch counter, and returns a pointer to
// the (possibly newly) current cell plus whether a promotion occurred.
// If s is unarmed or invalid, state is left unchanged and the existing
// current cell is returned.
func (a *State[T]) TrySwitch(s int) (cell *T, changed bool) {
	if !validSlot(s) {
		word := a.word.Load()
		return &a.cells[rtcounter.B0(word)], false
	}

	for {
		word := a.word.Load()
		if rtcounter.WrittenFlag(word, s) == 0 {
			return &a.cells[rtcounter.B0(word)], false
		}
		b0 := rtcounter.B0(word)
		promoted := writeBeginCell(b0, s) // the armed cell bound to slot s
		newWord := rtcounter.WithCurrent(word, promoted)
		newWord = rtcounter.WithWrittenFlag(newWord, s, 0)
		newWord = rtcounter.WithSwitchCount(newWord, rtcounter.B3(newWord)+1)
		if a.word.CompareAndSwap(word, newWord) {
			return &a.cells[promoted], true
		}
	}
}

// ReadCurrent returns a pointer to the cell at the counter's current
// index. Wait-free, safe to call from a real-time reader at any time.
func (a *State[T]) ReadCurrent() *T {
	return &a.cells[rtcounter.B0(a.word.Load())]
}

// CurrentSwitchCount returns the monotonic (mod 256) promotion counter,
// used by cold readers implementing the snapshot protocol in package
// seqread.
func (a *State[T]) CurrentSwitchCount() uint8 {
	return rtcounter.B3(a.word.Load())
}
