package seqread

import (
	"sync"
	"testing"

	"github.com/drgolem/rtstate/arraystate"
)

func TestReadStableValue(t *testing.T) {
	a := arraystate.New(7)
	got := Read(a.CurrentSwitchCount, func() int { return *a.ReadCurrent() })
	if got != 7 {
		t.Errorf("Read = %d, want 7", got)
	}
}

// TestReadAgainstConcurrentPromotions exercises scenario 6 of spec.md
// §8: a cold reader racing 1,000 publishes must only ever observe a
// self-consistent payload.
func TestReadAgainstConcurrentPromotions(t *testing.T) {
	const publishes = 1000
	a := arraystate.New(0)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= publishes; i++ {
			cell := a.WriteBegin(1)
			*cell = i
			a.WriteEnd(1)
			a.TrySwitch(1)
		}
	}()

	seen := make(map[int]bool)
	for i := 0; i < publishes*4; i++ {
		v := Read(a.CurrentSwitchCount, func() int { return *a.ReadCurrent() })
		if v < 0 || v > publishes {
			t.Fatalf("observed torn/out-of-range value %d", v)
		}
		seen[v] = true
	}
	wg.Wait()
}

func TestReadNReturnsFalseWhenExhausted(t *testing.T) {
	calls := 0
	// snapshotCount never agrees across the two calls inside ReadN,
	// simulating a writer that never settles within the bound.
	snapshotCount := func() uint8 {
		calls++
		return uint8(calls)
	}
	_, ok := ReadN(snapshotCount, func() int { return 0 }, 5)
	if ok {
		t.Fatalf("ReadN reported success against an ever-incrementing counter")
	}
}
