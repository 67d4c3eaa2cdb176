package cp

import "github.com/sirupsen/logrus"

// Solver owns the reversible state manager, the propagation queue, the
// registered fix-point listeners, and the list of variables created against
// it (spec §4.5 "SOLVER"). Two Solver instances never share state: every
// StateInt/StateObj/IntVar/Constraint is created through one specific
// solver's methods.
type Solver struct {
	sm         *StateManager
	queue      []Constraint
	onFixPoint []func()
	variables  *reversibleStack[*IntVar]
	fail       error
}

// NewSolver creates a solver with a fresh state manager.
func NewSolver() *Solver {
	s := &Solver{sm: NewStateManager()}
	s.variables = newReversibleStack[*IntVar](s.sm)
	return s
}

// GetStateManager exposes the solver's state manager, e.g. for a model that
// wants to open its own WithNewState scope outside of search.
func (s *Solver) GetStateManager() *StateManager { return s.sm }

func (s *Solver) addVariable(v *IntVar) {
	s.variables.Push(v)
}

// Variables returns every IntVar created against this solver, in creation
// order. Useful for a default BranchingStrategy over "every variable the
// model created" rather than a hand-picked subset.
func (s *Solver) Variables() []*IntVar {
	out := make([]*IntVar, 0, s.variables.Len())
	s.variables.Each(func(v *IntVar) { out = append(out, v) })
	return out
}

// schedule enqueues c for propagation unless it is inactive or already
// queued (spec §4.5 "the queue is membership-deduped via the scheduled
// flag").
func (s *Solver) schedule(c Constraint) {
	if !c.IsActive() || c.IsScheduled() {
		return
	}
	c.SetScheduled(true)
	s.queue = append(s.queue, c)
}

// OnFixPoint registers a listener invoked at the start of every FixPoint
// call, before the queue is drained (spec §4.5: "notify fix-point listeners;
// then repeatedly dequeue and propagate until empty" — matching
// original_source/turingcp/turingcp/solver.py's fix_point, which calls
// _notify_fix_point() before entering its drain loop). Listeners run in
// registration order.
func (s *Solver) OnFixPoint(listener func()) {
	s.onFixPoint = append(s.onFixPoint, listener)
}

// Post registers c with the solver: calls c.Post() once — which performs
// its own immediate filtering and subscribes to whatever events it cares
// about, per spec §4.4 — then, unless enforceFixPoint is explicitly false,
// drains the fix-point (spec §4.5 "post(c, enforce_fix_point=true): c.post();
// if enforce_fix_point, fix_point()"). Post never schedules c itself: c only
// re-enters the queue once one of its subscriptions fires, exactly like
// original_source/turingcp/turingcp/solver.py's post, which likewise calls
// only c.post() and fix_point(). SPEC_FULL.md §6 resolves the default to
// true for ordinary constraints and false only for the FuncConstraint wiring
// IntVar's When* helpers use, which is passed explicitly.
func (s *Solver) Post(c Constraint, enforceFixPoint ...bool) error {
	enforce := true
	if len(enforceFixPoint) > 0 {
		enforce = enforceFixPoint[0]
	}
	if err := c.Post(); err != nil {
		return err
	}
	if enforce {
		return s.FixPoint()
	}
	return nil
}

// FixPoint notifies the fix-point listeners, then drains the propagation
// queue, calling Propagate() on each dequeued constraint (spec §4.5). A
// constraint is marked unscheduled before Propagate runs, so it may
// re-schedule itself. If any propagation raises ErrInconsistency, every
// constraint still in the queue has its scheduled flag cleared before the
// queue itself is discarded (spec §3 "on inconsistency, the queue is
// drained and each member cleared") — otherwise a constraint caught
// mid-queue would stay permanently unschedulable.
func (s *Solver) FixPoint() error {
	trace(logrus.Fields{"queued": len(s.queue)}, "fix_point: enter")
	for _, listener := range s.onFixPoint {
		listener()
	}
	for len(s.queue) > 0 {
		c := s.queue[0]
		s.queue = s.queue[1:]
		c.SetScheduled(false)
		if !c.IsActive() {
			continue
		}
		if err := c.Propagate(); err != nil {
			s.drainQueue()
			return err
		}
	}
	trace(nil, "fix_point: exit")
	return nil
}

func (s *Solver) drainQueue() {
	for _, c := range s.queue {
		c.SetScheduled(false)
	}
	s.queue = nil
}
