package cp

// reversibleStack is an append-only stack whose length is a *StateInt, so it
// restores in O(1) on StateManager.RestoreState: popping the backup simply
// rewinds the length cell, and slots beyond the restored length are
// overwritten (not read) by the next Push. This is the Go equivalent of
// turingcp's StateStack, used for IntVar's three constraint-subscription
// stacks and Solver's variable list (spec §3 "Ownership").
type reversibleStack[T any] struct {
	items []T
	size  *StateInt
}

func newReversibleStack[T any](sm *StateManager) *reversibleStack[T] {
	return &reversibleStack[T]{size: sm.MakeStateInt(0)}
}

func (s *reversibleStack[T]) Push(item T) {
	n := s.size.Value()
	if n < len(s.items) {
		s.items[n] = item
	} else {
		s.items = append(s.items, item)
	}
	s.size.SetValue(n + 1)
}

func (s *reversibleStack[T]) Len() int { return s.size.Value() }

// Each calls fn for every live item, in push order.
func (s *reversibleStack[T]) Each(fn func(T)) {
	for i := 0; i < s.size.Value(); i++ {
		fn(s.items[i])
	}
}

func (s *reversibleStack[T]) At(i int) T { return s.items[i] }
