package cp

import "github.com/pkg/errors"

// sparseSet is an integer set over a contiguous universe [offset, offset+n-1]
// supporting O(1) membership, min/max, and removal. It is the low-level data
// structure behind Domain; Domain is responsible for translating its
// mutations into the five propagation events of spec §4.2. sparseSet itself
// knows nothing about events.
//
// Invariants (spec §3 "SPARSE SET"):
//  1. values[0:size] is exactly the live set.
//  2. remove swaps the removed element to position size-1 and decrements
//     size — it never shifts the array.
//  3. indices answers membership in O(1): v is live iff
//     indices[v-offset] < size.
//  4. min/max are lazily recomputed by linear scan of neighboring internal
//     indices after a removal that touches the boundary.
//
// Only size, minOff, and maxOff are reversible (backed by
// *StateInt): the values/indices arrays are mutated in place but never need
// to be trailed. Every removal only ever swaps within the current live
// window, so positions that fall outside a shrunk window are never touched
// again until the window is restored to cover them — restoring size, min,
// and max is therefore sufficient to fully restore the set (see the worked
// example in sparseset_test.go).
type sparseSet struct {
	offset  int
	values  []int
	indices []int
	size    *StateInt
	minOff  *StateInt
	maxOff  *StateInt
}

// newSparseSet builds the full universe [min(vals), max(vals)] and removes
// every universe member not present in vals, per spec §4.2 "Initialization".
// vals must be non-empty: constructing a domain from an empty iterable is a
// programming error (spec §7) and returns ErrEmptyDomainInit.
func newSparseSet(sm *StateManager, vals []int) (*sparseSet, error) {
	if len(vals) == 0 {
		return nil, errors.WithStack(ErrEmptyDomainInit)
	}
	a, b := vals[0], vals[0]
	present := make(map[int]bool, len(vals))
	for _, v := range vals {
		if v < a {
			a = v
		}
		if v > b {
			b = v
		}
		present[v] = true
	}
	n := b - a + 1
	values := make([]int, n)
	indices := make([]int, n)
	for i := 0; i < n; i++ {
		values[i] = i
		indices[i] = i
	}
	ss := &sparseSet{
		offset:  a,
		values:  values,
		indices: indices,
		size:    sm.MakeStateInt(n),
		minOff:  sm.MakeStateInt(0),
		maxOff:  sm.MakeStateInt(n - 1),
	}
	for v := a; v <= b; v++ {
		if !present[v] {
			ss.remove(v)
		}
	}
	return ss, nil
}

func (s *sparseSet) isEmpty() bool { return s.size.Value() == 0 }

func (s *sparseSet) len() int { return s.size.Value() }

// rawContains reports whether the internal index iv is currently live.
func (s *sparseSet) rawContains(iv int) bool {
	if iv < s.minOff.Value() || iv > s.maxOff.Value() {
		return false
	}
	return s.indices[iv] < s.size.Value()
}

func (s *sparseSet) contains(v int) bool {
	return s.rawContains(v - s.offset)
}

// min and max are meaningless on an empty set; callers always check isEmpty
// (or size) first, the same discipline the IntVar layer observes.
func (s *sparseSet) min() int { return s.minOff.Value() + s.offset }
func (s *sparseSet) max() int { return s.maxOff.Value() + s.offset }

func (s *sparseSet) swapPositions(v1, v2 int) {
	i1, i2 := s.indices[v1], s.indices[v2]
	s.values[i1] = v2
	s.values[i2] = v1
	s.indices[v1] = i2
	s.indices[v2] = i1
}

// remove removes v if present and returns whether anything changed.
func (s *sparseSet) remove(v int) bool {
	iv := v - s.offset
	if !s.rawContains(iv) {
		return false
	}
	sz := s.size.Value()
	s.swapPositions(iv, s.values[sz-1])
	s.size.SetValue(sz - 1)
	s.updateMin(iv)
	s.updateMax(iv)
	return true
}

func (s *sparseSet) updateMin(iv int) {
	if s.isEmpty() {
		return
	}
	if iv == s.minOff.Value() {
		val := s.minOff.Value() + 1
		for !s.rawContains(val) {
			val++
		}
		s.minOff.SetValue(val)
	}
}

func (s *sparseSet) updateMax(iv int) {
	if s.isEmpty() {
		return
	}
	if iv == s.maxOff.Value() {
		val := s.maxOff.Value() - 1
		for !s.rawContains(val) {
			val--
		}
		s.maxOff.SetValue(val)
	}
}

// removeAllBut empties the set down to the singleton {v}. v must already be
// a member; callers check membership before calling (Domain.RemoveAllBut
// handles the non-member case itself, by clearing the set instead).
func (s *sparseSet) removeAllBut(v int) {
	iv := v - s.offset
	index := s.indices[iv]
	other := s.values[0]
	s.indices[iv] = 0
	s.indices[other] = index
	s.values[index], s.values[0] = s.values[0], s.values[index]
	s.size.SetValue(1)
	s.minOff.SetValue(iv)
	s.maxOff.SetValue(iv)
}

// removeAll empties the set without touching values/indices: every member
// simply falls outside the now-zero live window.
func (s *sparseSet) removeAll() {
	s.size.SetValue(0)
}

// removeBelow repeatedly removes elements until min() >= v, per spec §4.2.
// Callers (Domain) only invoke this once the "bound already satisfies the
// request" no-op check has failed. If v is beyond the current max, every
// element is below it and the set empties entirely.
func (s *sparseSet) removeBelow(v int) {
	if v > s.max() {
		s.removeAll()
		return
	}
	val := s.min()
	for val < v {
		s.remove(val)
		if s.isEmpty() {
			return
		}
		val = s.min()
	}
}

// removeAbove repeatedly removes elements until max() <= v.
func (s *sparseSet) removeAbove(v int) {
	if v < s.min() {
		s.removeAll()
		return
	}
	val := s.max()
	for val > v {
		s.remove(val)
		if s.isEmpty() {
			return
		}
		val = s.max()
	}
}

func (s *sparseSet) toSlice() []int {
	out := make([]int, s.size.Value())
	for i := range out {
		out[i] = s.values[i] + s.offset
	}
	return out
}
