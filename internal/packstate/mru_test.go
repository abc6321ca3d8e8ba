package packstate

import (
	"testing"

	"pgregory.net/rapid"
)

func TestMRU4_PushDropsTail(t *testing.T) {
	var m MRU4
	m.Push(10)
	m.Push(20)
	m.Push(30)
	m.Push(40)
	m.Push(50) // drops the original 10

	want := [4]uint32{50, 40, 30, 20}
	if m.vals != want {
		t.Errorf("got %v, want %v", m.vals, want)
	}
}

func TestMRU4_Promote(t *testing.T) {
	var m MRU4
	m.Push(4)
	m.Push(3)
	m.Push(2)
	m.Push(1) // vals = [1,2,3,4]

	got := m.Promote(2) // brings value 3 to front
	if got != 3 {
		t.Fatalf("Promote(2) returned %d, want 3", got)
	}
	want := [4]uint32{3, 1, 2, 4}
	if m.vals != want {
		t.Errorf("got %v, want %v", m.vals, want)
	}
}

func TestMRU4_PromoteZeroIsNoop(t *testing.T) {
	var m MRU4
	m.Push(4)
	m.Push(3)
	m.Push(2)
	m.Push(1)
	before := m.vals
	m.Promote(0)
	if m.vals != before {
		t.Errorf("Promote(0) changed state: got %v, want %v", m.vals, before)
	}
}

// TestMRU4_PromotePreservesMultiset checks the invariant from spec §8:
// reordering via Promote never discards or duplicates an entry, only Push
// does (by dropping the tail).
func TestMRU4_PromotePreservesMultiset(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		var m MRU4
		for i := 0; i < 4; i++ {
			m.Push(rapid.Uint32().Draw(rt, "seed"))
		}
		before := m.vals

		k := rapid.IntRange(0, 3).Draw(rt, "k")
		m.Promote(k)

		beforeSet := map[uint32]int{}
		afterSet := map[uint32]int{}
		for _, v := range before {
			beforeSet[v]++
		}
		for _, v := range m.vals {
			afterSet[v]++
		}
		if len(beforeSet) != len(afterSet) {
			rt.Fatalf("multiset size changed: %v -> %v", before, m.vals)
		}
		for v, n := range beforeSet {
			if afterSet[v] != n {
				rt.Fatalf("multiset contents changed: %v -> %v", before, m.vals)
			}
		}
		if m.Head() != before[k] {
			rt.Fatalf("Head() = %d, want promoted value %d", m.Head(), before[k])
		}
	})
}
