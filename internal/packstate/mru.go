// Package packstate implements the MRU distance cache and the 12-node
// control state machine that selects which coding sub-model the main
// decode loop consults at each step.
package packstate

// MRU4 is a size-4 cache of recently used copy distances.
type MRU4 struct {
	vals [4]uint32
}

// Head returns the most recently used distance.
func (m *MRU4) Head() uint32 {
	return m.vals[0]
}

// Push adds a new distance to the front, dropping the tail entry.
func (m *MRU4) Push(v uint32) {
	m.vals[3] = m.vals[2]
	m.vals[2] = m.vals[1]
	m.vals[1] = m.vals[0]
	m.vals[0] = v
}

// Promote moves the entry at index k to the head, shifting entries 0..k-1
// down by one; entries beyond k are untouched. It returns the new head
// (the value formerly at index k).
func (m *MRU4) Promote(k int) uint32 {
	v := m.vals[k]
	for i := k; i > 0; i-- {
		m.vals[i] = m.vals[i-1]
	}
	m.vals[0] = v
	return v
}
