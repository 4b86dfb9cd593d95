// Package dbuf implements the double-buffered atomic state primitive: a
// current/next cell pair supporting a single nested writer thread and
// atomic commit-by-switch, read wait-free by a real-time reader.
//
// A State is safe for one writer goroutine (which may call WriteBegin
// recursively) and any number of concurrent readers calling ReadCurrent
// or TrySwitch. Concurrent writers on the same State are not supported;
// see the package doc of rtstate's engine package for the single-writer
// discipline this implies at the call-site level.
package dbuf

import (
	"golang.org/x/sys/cpu"

	"github.com/drgolem/rtstate/rtcounter"
)

// State is a double-buffered value of type T. The zero value has both
// cells zero-initialized, current index 0, no pending change.
type State[T any] struct {
	word rtcounter.Word

	cells   [2]T
	_       cpu.CacheLinePad
	nesting int // non-atomic; single writer thread only, see Open Questions in DESIGN.md
}

// New returns a State with both cells initialized to init.
func New[T any](init T) *State[T] {
	s := &State[T]{cells: [2]T{init, init}}
	return s
}

// WriteBegin returns a pointer to the cell the caller must populate.
// Recursive calls from the same (single) writer thread return the same
// cell without repeating the commit-preparation copy; nesting depth is
// tracked on s.nesting. WriteBegin never allocates and never blocks
// except to retry a failed compare-and-swap.
func (s *State[T]) WriteBegin() *T {
	if s.nesting > 0 {
		s.nesting++
		// The outermost call already set next_index == cur_index (see
		// below), so this recomputes the same target cell.
		cur := rtcounter.CurIndex(s.word.Load())
		return &s.cells[(cur+1)%2]
	}

	var target uint16
	for {
		word := s.word.Load()
		cur := rtcounter.CurIndex(word)
		next := rtcounter.NextIndex(word)
		target = (cur + 1) % 2

		needCopy := cur == next
		newWord := rtcounter.PackPair(cur, cur) // invalidate any stale pending change
		if s.word.CompareAndSwap(word, newWord) {
			if needCopy {
				s.cells[target] = s.cells[cur%2]
			}
			break
		}
	}
	s.nesting = 1
	return &s.cells[target]
}

// WriteEnd declares the currently-written cell ready. If this call
// balances the outermost WriteBegin (nesting returns to zero), the
// counter's next index is advanced so a subsequent TrySwitch publishes
// the new cell; otherwise WriteEnd is a no-op.
//
// Calling WriteEnd without a prior WriteBegin underflows s.nesting; when
// the package-level debug variable is true this panics (see debug.go).
func (s *State[T]) WriteEnd() {
	assertWriteBeginCalled(s.nesting > 0)
	s.nesting--
	if s.nesting > 0 {
		return
	}
	for {
		word := s.word.Load()
		cur := rtcounter.CurIndex(word)
		next := rtcounter.NextIndex(word)
		newWord := rtcounter.PackPair(cur, next+1)
		if s.word.CompareAndSwap(word, newWord) {
			return
		}
	}
}

// TrySwitch atomically publishes any pending write by setting cur_index
// to next_index, and returns a pointer to the now-current cell. It is
// idempotent when no pending change exists: a no-op at the visible-state
// level. changed reports whether an actual switch occurred.
func (s *State[T]) TrySwitch() (cell *T, changed bool) {
	for {
		word := s.word.Load()
		cur := rtcounter.CurIndex(word)
		next := rtcounter.NextIndex(word)
		if cur == next {
			return &s.cells[cur%2], false
		}
		newWord := rtcounter.PackPair(next, next)
		if s.word.CompareAndSwap(word, newWord) {
			return &s.cells[next%2], true
		}
	}
}

// ReadCurrent returns a pointer to the currently-published cell.
// Wait-free: a single atomic load plus pointer arithmetic, safe to call
// from the real-time reader thread at any time.
func (s *State[T]) ReadCurrent() *T {
	word := s.word.Load()
	return &s.cells[rtcounter.CurIndex(word)%2]
}

// PendingChange reports whether a writer has armed a cell not yet
// promoted by TrySwitch.
func (s *State[T]) PendingChange() bool {
	word := s.word.Load()
	return rtcounter.CurIndex(word) != rtcounter.NextIndex(word)
}

// CurrentIndex returns the raw current-cell index, used by cold readers
// implementing the snapshot protocol in package seqread.
func (s *State[T]) CurrentIndex() uint16 {
	return rtcounter.CurIndex(s.word.Load())
}
