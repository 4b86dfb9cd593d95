// Package seqread implements the reader snapshot protocol used by
// cold-path (non-real-time) readers to observe a tear-free copy of
// primitive-owned state, bracketing the read with a monotonically
// increasing switch/generation count.
//
// Real-time readers never use this package: they call ReadCurrent on
// dbuf.State or arraystate.State directly, wait-free, with no
// validation. seqread.Read is for introspection and tooling code that
// must not observe a torn composite value.
package seqread

// Counter constrains the generation value a snapshotCount function
// returns to an unsigned integer type. Both arraystate.State's
// CurrentSwitchCount (uint8) and dbuf.State's CurrentIndex (uint16)
// qualify; for the double-buffer primitive "switch count" and "current
// index" coincide as the tear-detection signal.
type Counter interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Read brackets a read of a primitive-owned value with two counter
// observations and retries until they agree, guaranteeing the returned
// value was not torn by a concurrent promotion.
//
// snapshotCount must be cheap (a single atomic load) and current must
// return a value copy, not a pointer into primitive-owned memory —
// callers typically pass state.ReadCurrent paired with a dereference,
// e.g.:
//
//	v := seqread.Read(state.CurrentSwitchCount, func() T { return *state.ReadCurrent() })
//
// Termination is guaranteed in practice because promotions are rare
// relative to one loop iteration's cost; this is the single-promoter,
// rare-write regime spec.md documents as livelock-free. Per spec.md
// §4.4, implementers sizing a switch counter narrower than 64 bits must
// ensure a wrap during one Read call is benign — B[3] in the array
// layout wraps every 256 promotions, far more than any plausible read
// latency in the intended audio use.
func Read[C Counter, T any](snapshotCount func() C, current func() T) T {
	for {
		start := snapshotCount()
		snapshot := current()
		end := snapshotCount()
		if start == end {
			return snapshot
		}
	}
}

// ReadN is Read with an explicit bound on retry attempts, for callers
// (tests, diagnostics) that want to detect a protocol violation instead
// of spinning forever should the generation counter never settle. It
// returns the last snapshot taken and whether it was confirmed
// tear-free within maxAttempts.
func ReadN[C Counter, T any](snapshotCount func() C, current func() T, maxAttempts int) (value T, ok bool) {
	for i := 0; i < maxAttempts; i++ {
		start := snapshotCount()
		snapshot := current()
		end := snapshotCount()
		if start == end {
			return snapshot, true
		}
		value = snapshot
	}
	return value, false
}
