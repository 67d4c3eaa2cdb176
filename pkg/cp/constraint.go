package cp

// Constraint is the closed abstraction every propagator implements (spec
// §4.4, §9 "Dynamic dispatch on the constraint abstract type" — modeled here
// as a plain Go interface rather than a class hierarchy, since new
// constraint types only ever need to supply these six operations):
//
//	Post()      is called exactly once when the constraint is first posted.
//	Propagate() is called whenever the constraint is dequeued while active.
//	SetScheduled/IsScheduled track queue membership (not reversible).
//	SetActive/IsActive       are reversible: entailed constraints
//	                         deactivate themselves for the rest of a subtree.
type Constraint interface {
	Post() error
	Propagate() error
	SetScheduled(bool)
	IsScheduled() bool
	SetActive(bool)
	IsActive() bool
}

// baseConstraint implements the bookkeeping every concrete Constraint needs
// (scheduled flag, reversible active flag) so NotEqual/Equal/FuncConstraint
// only have to implement Post/Propagate, mirroring turingcp's
// AbstractConstraint.
type baseConstraint struct {
	solver    *Solver
	scheduled bool
	active    *StateObj
}

func newBaseConstraint(solver *Solver) baseConstraint {
	return baseConstraint{
		solver: solver,
		active: solver.sm.MakeStateObj(true),
	}
}

func (c *baseConstraint) SetScheduled(scheduled bool) { c.scheduled = scheduled }
func (c *baseConstraint) IsScheduled() bool           { return c.scheduled }
func (c *baseConstraint) SetActive(active bool)       { c.active.SetValue(active) }
func (c *baseConstraint) IsActive() bool              { return c.active.Value().(bool) }

// FuncConstraint wraps a user callback as a Constraint whose Propagate body
// is the callback; Post is a no-op. IntVar's When* methods use this to let
// model code subscribe a plain closure instead of writing a full Constraint.
type FuncConstraint struct {
	baseConstraint
	filtering func() error
}

// NewFuncConstraint creates (but does not post) a constraint that calls fn
// whenever it propagates.
func NewFuncConstraint(solver *Solver, fn func() error) *FuncConstraint {
	return &FuncConstraint{baseConstraint: newBaseConstraint(solver), filtering: fn}
}

func (c *FuncConstraint) Post() error      { return nil }
func (c *FuncConstraint) Propagate() error { return c.filtering() }

// NotEqual enforces x != y + offset (spec §4.4).
type NotEqual struct {
	baseConstraint
	x, y   *IntVar
	offset int
}

// NewNotEqual creates (but does not post) the constraint x != y + offset.
func NewNotEqual(x, y *IntVar, offset int) *NotEqual {
	return &NotEqual{baseConstraint: newBaseConstraint(x.solver), x: x, y: y, offset: offset}
}

func (c *NotEqual) Post() error {
	x, y := c.x, c.y
	switch {
	case y.IsFixed():
		c.SetActive(false)
		return x.Remove(y.Min() + c.offset)
	case x.IsFixed():
		c.SetActive(false)
		return y.Remove(x.Min() - c.offset)
	default:
		x.PropagateOnFix(c)
		y.PropagateOnFix(c)
		return nil
	}
}

// Propagate assumes one of x, y is fixed — the only event NotEqual
// subscribes to is "fix" — removes the forbidden value from the other, and
// deactivates: the constraint is now entailed for the rest of this subtree
// (spec §4.4).
func (c *NotEqual) Propagate() error {
	x, y := c.x, c.y
	var err error
	if y.IsFixed() {
		err = x.Remove(y.Min() + c.offset)
	} else {
		err = y.Remove(x.Min() - c.offset)
	}
	c.SetActive(false)
	return err
}

// Equal enforces x == y (spec §4.4). A faithful implementation reuses a
// scratch buffer across prune calls instead of allocating one per call.
type Equal struct {
	baseConstraint
	x, y    *IntVar
	scratch []int
}

// NewEqual creates (but does not post) the constraint x == y.
func NewEqual(x, y *IntVar) *Equal {
	return &Equal{baseConstraint: newBaseConstraint(x.solver), x: x, y: y}
}

func (c *Equal) Post() error {
	x, y := c.x, c.y
	switch {
	case y.IsFixed():
		c.SetActive(false)
		return x.Fix(y.Min())
	case x.IsFixed():
		c.SetActive(false)
		return y.Fix(x.Min())
	default:
		if err := c.boundsIntersect(); err != nil {
			return err
		}
		n := x.Size()
		if y.Size() > n {
			n = y.Size()
		}
		c.scratch = make([]int, n)
		if err := c.pruneEquals(y, x); err != nil {
			return err
		}
		if err := c.pruneEquals(x, y); err != nil {
			return err
		}
		x.WhenDomainChange(func() error { return c.handleDomainChange(x, y) })
		y.WhenDomainChange(func() error { return c.handleDomainChange(y, x) })
		return nil
	}
}

// Propagate is unreachable: Equal only ever subscribes through
// WhenDomainChange, whose FuncConstraint propagates independently (spec §4.4
// notes Equal "subscribe both via when_domain_change", not
// propagate_on_domain_change on itself).
func (c *Equal) Propagate() error { return nil }

func (c *Equal) handleDomainChange(from, to *IntVar) error {
	if err := c.boundsIntersect(); err != nil {
		return err
	}
	return c.pruneEquals(from, to)
}

func (c *Equal) boundsIntersect() error {
	x, y := c.x, c.y
	newMin := max(x.Min(), y.Min())
	newMax := min(x.Max(), y.Max())
	if err := x.RemoveBelow(newMin); err != nil {
		return err
	}
	if err := x.RemoveAbove(newMax); err != nil {
		return err
	}
	if err := y.RemoveBelow(newMin); err != nil {
		return err
	}
	return y.RemoveAbove(newMax)
}

// pruneEquals removes every value of toVar absent from fromVar's domain,
// listing fromVar's current values into the shared scratch buffer first.
func (c *Equal) pruneEquals(fromVar, toVar *IntVar) error {
	n := fromVar.FillValues(c.scratch)
	present := make(map[int]bool, n)
	for i := 0; i < n; i++ {
		present[c.scratch[i]] = true
	}
	m := toVar.FillValues(c.scratch)
	for i := 0; i < m; i++ {
		v := c.scratch[i]
		if !present[v] {
			if err := toVar.Remove(v); err != nil {
				return err
			}
		}
	}
	return nil
}
