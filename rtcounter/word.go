// Package rtcounter implements the single machine-word counter that backs
// both the double-buffer and array-state primitives in package dbuf and
// arraystate.
//
// A Word is updated only via compare-and-swap; no partial write is ever
// visible to a concurrent reader. Two independent bit-field layouts are
// interpreted over the same 32-bit word depending on which primitive owns
// it: a pair layout (two 16-bit indices, for dbuf.State) and an array
// layout (four 8-bit sub-fields, for arraystate.State). Field accessors
// below operate on a local copy of the word; callers re-publish the full
// word with CompareAndSwap.
package rtcounter

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Word is a value-type wrapper over an atomically updated 32-bit counter.
// It is deliberately small enough to be natively lock-free on every
// platform Go supports.
//
// Word is padded to a full cache line so that a primitive's hot counter
// never shares a cache line with its (far less frequently touched) data
// cells, or with a neighboring primitive's counter.
type Word struct {
	v   atomic.Uint32
	_   cpu.CacheLinePad
}

// Load reads the full word with sequentially consistent ordering.
func (w *Word) Load() uint32 {
	return w.v.Load()
}

// Store unconditionally replaces the word. Only used at construction
// time; all steady-state transitions go through CompareAndSwap.
func (w *Word) Store(val uint32) {
	w.v.Store(val)
}

// CompareAndSwap atomically replaces the word with new if it still
// equals old, returning whether the swap happened. Spurious failure is
// permitted by callers always wrapping this in a retry loop.
func (w *Word) CompareAndSwap(old, new uint32) bool {
	return w.v.CompareAndSwap(old, new)
}

// --- Pair layout (double-buffer): two 16-bit sub-fields ---
//
// cur_index occupies bits [0:16), next_index occupies bits [16:32).
// cur_index mod 2 identifies the cell a reader currently observes;
// next_index advances monotonically as writers complete publish cycles.

// CurIndex returns the pair-layout current index.
func CurIndex(word uint32) uint16 {
	return uint16(word)
}

// NextIndex returns the pair-layout next index.
func NextIndex(word uint32) uint16 {
	return uint16(word >> 16)
}

// PackPair builds a pair-layout word from its two sub-fields.
func PackPair(cur, next uint16) uint32 {
	return uint32(cur) | uint32(next)<<16
}

// --- Array layout (N-pending): four 8-bit sub-fields ---
//
// B0 = current cell index (0..2), B1/B2 = written flags for pending
// slots 1 and 2, B3 = monotonic switch counter (wraps modulo 256).

// B0 returns the array-layout current cell index.
func B0(word uint32) uint8 { return uint8(word) }

// B1 returns the array-layout written flag for slot 1.
func B1(word uint32) uint8 { return uint8(word >> 8) }

// B2 returns the array-layout written flag for slot 2.
func B2(word uint32) uint8 { return uint8(word >> 16) }

// B3 returns the array-layout monotonic switch counter.
func B3(word uint32) uint8 { return uint8(word >> 24) }

// PackArray builds an array-layout word from its four sub-fields.
func PackArray(b0, b1, b2, b3 uint8) uint32 {
	return uint32(b0) | uint32(b1)<<8 | uint32(b2)<<16 | uint32(b3)<<24
}

// WrittenFlag returns the written-flag byte for pending slot s (1 or 2)
// out of word. Callers must validate s before calling; see
// arraystate.validSlot.
func WrittenFlag(word uint32, s int) uint8 {
	switch s {
	case 1:
		return B1(word)
	case 2:
		return B2(word)
	default:
		return 0
	}
}

// WithWrittenFlag returns word with pending slot s's written flag set to
// v (0 or 1).
func WithWrittenFlag(word uint32, s int, v uint8) uint32 {
	switch s {
	case 1:
		return PackArray(B0(word), v, B2(word), B3(word))
	case 2:
		return PackArray(B0(word), B1(word), v, B3(word))
	default:
		return word
	}
}

// WithCurrent returns word with B0 replaced by idx.
func WithCurrent(word uint32, idx uint8) uint32 {
	return PackArray(idx, B1(word), B2(word), B3(word))
}

// WithSwitchCount returns word with B3 replaced by c.
func WithSwitchCount(word uint32, c uint8) uint32 {
	return PackArray(B0(word), B1(word), B2(word), c)
}
