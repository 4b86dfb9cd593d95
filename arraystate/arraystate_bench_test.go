package arraystate

import "testing"

func BenchmarkWriteBeginWriteEnd(b *testing.B) {
	a := New(0)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		slot := 1 + i%2
		cell := a.WriteBegin(slot)
		*cell = i
		a.WriteEnd(slot)
	}
}

func BenchmarkTrySwitch(b *testing.B) {
	a := New(0)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		slot := 1 + i%2
		cell := a.WriteBegin(slot)
		*cell = i
		a.WriteEnd(slot)
		a.TrySwitch(slot)
	}
}

func BenchmarkReadCurrent(b *testing.B) {
	a := New(0)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = a.ReadCurrent()
	}
}

func BenchmarkAllocsDisjointSlotCycle(b *testing.B) {
	a := New(0)
	allocs := testing.AllocsPerRun(100, func() {
		c1 := a.WriteBegin(1)
		*c1++
		a.WriteEnd(1)
		a.TrySwitch(1)

		c2 := a.WriteBegin(2)
		*c2--
		a.WriteEnd(2)
		a.TrySwitch(2)
	})
	if allocs > 0 {
		b.Fatalf("disjoint-slot cycle allocated %v times per run, want 0", allocs)
	}
}
