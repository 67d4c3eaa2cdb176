package cp

// IntVar is a finite-domain integer variable: a Domain plus the three
// reversible constraint-subscription lists that turn domain events into
// scheduling decisions (spec §4.3 "INT VAR"). Constraints never call into a
// Domain directly — they go through the owning IntVar, which is what wires
// the DomainListener.
type IntVar struct {
	solver   *Solver
	domain   *Domain
	onDomain *reversibleStack[Constraint]
	onBound  *reversibleStack[Constraint]
	onFix    *reversibleStack[Constraint]
	listener DomainListener
}

// NewIntVar creates a variable over the given domain values and registers it
// with the solver (spec §4.3, §4.5 "Solver owns ... the list of variables").
func NewIntVar(solver *Solver, vals []int) (*IntVar, error) {
	dom, err := newDomain(solver.sm, vals)
	if err != nil {
		return nil, err
	}
	v := &IntVar{
		solver:   solver,
		domain:   dom,
		onDomain: newReversibleStack[Constraint](solver.sm),
		onBound:  newReversibleStack[Constraint](solver.sm),
		onFix:    newReversibleStack[Constraint](solver.sm),
	}
	v.listener = DomainListener{
		Change:    func() { v.scheduleAll(v.onDomain) },
		ChangeMin: func() { v.scheduleAll(v.onBound) },
		ChangeMax: func() { v.scheduleAll(v.onBound) },
		Fix:       func() { v.scheduleAll(v.onFix) },
		Empty:     func() { v.solver.fail = ErrInconsistency },
	}
	solver.addVariable(v)
	return v, nil
}

// NewIntVarRange is a convenience constructor for the contiguous domain
// [min, max].
func NewIntVarRange(solver *Solver, min, max int) (*IntVar, error) {
	vals := make([]int, max-min+1)
	for i := range vals {
		vals[i] = min + i
	}
	return NewIntVar(solver, vals)
}

func (v *IntVar) scheduleAll(stack *reversibleStack[Constraint]) {
	stack.Each(func(c Constraint) { v.solver.schedule(c) })
}

func (v *IntVar) Min() int            { return v.domain.Min() }
func (v *IntVar) Max() int            { return v.domain.Max() }
func (v *IntVar) Size() int           { return v.domain.Size() }
func (v *IntVar) Contains(x int) bool { return v.domain.Contains(x) }
func (v *IntVar) IsFixed() bool       { return v.domain.IsFixed() }
func (v *IntVar) Values() []int       { return v.domain.Values() }

// FillValues writes the variable's current values into dst (which must be at
// least Size() long) and returns the count written. Constraints that prune
// repeatedly (e.g. Equal) use this to avoid reallocating a slice per call.
func (v *IntVar) FillValues(dst []int) int {
	vals := v.domain.Values()
	n := copy(dst, vals)
	return n
}

// Remove deletes x from the domain. Every mutator on IntVar funnels through
// the domain's listener: emptiness is detected by the listener's Empty
// handler, and the mutator returns ErrInconsistency to its caller as soon as
// the domain call that emptied it returns.
func (v *IntVar) Remove(x int) error {
	v.domain.Remove(x, v.listener)
	return v.checkFail()
}

// Fix restricts the domain to the singleton {x}.
func (v *IntVar) Fix(x int) error {
	v.domain.RemoveAllBut(x, v.listener)
	return v.checkFail()
}

func (v *IntVar) RemoveBelow(x int) error {
	v.domain.RemoveBelow(x, v.listener)
	return v.checkFail()
}

func (v *IntVar) RemoveAbove(x int) error {
	v.domain.RemoveAbove(x, v.listener)
	return v.checkFail()
}

// checkFail surfaces an ErrInconsistency raised by the Empty handler during
// the mutator call just performed, then clears it: the error is reported
// exactly once, to the caller of the mutator that caused it.
func (v *IntVar) checkFail() error {
	if v.solver.fail != nil {
		err := v.solver.fail
		v.solver.fail = nil
		return err
	}
	return nil
}

// PropagateOnDomainChange subscribes c to the "change" event (any value
// removed): the broadest and most expensive subscription.
func (v *IntVar) PropagateOnDomainChange(c Constraint) {
	v.onDomain.Push(c)
}

// PropagateOnBoundChange subscribes c to change_min/change_max.
func (v *IntVar) PropagateOnBoundChange(c Constraint) {
	v.onBound.Push(c)
}

// PropagateOnFix subscribes c to the "fix" event (domain reduced to one
// value).
func (v *IntVar) PropagateOnFix(c Constraint) {
	v.onFix.Push(c)
}

// WhenDomainChange posts a FuncConstraint running fn whenever this variable's
// domain changes. Per spec's resolved Open Question (SPEC_FULL.md §6), the
// callback constraint is posted without forcing an immediate fix-point.
// Posting does not put it on the queue: it is scheduled only when this
// variable's domain changes, and runs on the fix-point that follows.
func (v *IntVar) WhenDomainChange(fn func() error) {
	c := NewFuncConstraint(v.solver, fn)
	v.solver.Post(c, false)
	v.PropagateOnDomainChange(c)
}

// WhenFixed posts a FuncConstraint running fn once this variable is fixed.
func (v *IntVar) WhenFixed(fn func() error) {
	c := NewFuncConstraint(v.solver, fn)
	v.solver.Post(c, false)
	v.PropagateOnFix(c)
}

// WhenBoundChange posts a FuncConstraint running fn whenever this variable's
// min or max moves.
func (v *IntVar) WhenBoundChange(fn func() error) {
	c := NewFuncConstraint(v.solver, fn)
	v.solver.Post(c, false)
	v.PropagateOnBoundChange(c)
}

// BoolVar is an IntVar restricted to {0, 1} (SPEC_FULL.md §5, supplemented
// from original_source/turingcp/turingcp/variable.py's BoolVar). It adds no
// propagation behavior of its own: SetTrue()/SetFalse()/IsTrue()/IsFalse() are
// thin, readable wrappers over the same {0,1} IntVar.
type BoolVar struct {
	*IntVar
}

// NewBoolVar creates a {0, 1} variable.
func NewBoolVar(solver *Solver) (*BoolVar, error) {
	v, err := NewIntVar(solver, []int{0, 1})
	if err != nil {
		return nil, err
	}
	return &BoolVar{IntVar: v}, nil
}

func (b *BoolVar) IsTrue() bool  { return b.IsFixed() && b.Min() == 1 }
func (b *BoolVar) IsFalse() bool { return b.IsFixed() && b.Min() == 0 }

// SetTrue restricts the variable to true (1).
func (b *BoolVar) SetTrue() error { return b.Fix(1) }

// SetFalse restricts the variable to false (0).
func (b *BoolVar) SetFalse() error { return b.Fix(0) }
