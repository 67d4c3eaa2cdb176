package cp

import "github.com/sirupsen/logrus"

// Branch is one alternative of a branching decision: applying it (typically
// by posting a constraint) commits the search to one way of splitting the
// current state. A BranchingStrategy returns the ordered list of Branches to
// try at the current node; an empty list means every variable is fixed —
// the current state is a solution (spec §4.6 "SEARCH").
type Branch func() error

// BranchingStrategy inspects the solver's live variables and returns the
// branches to explore at the current node, in the order they should be
// tried.
type BranchingStrategy func() []Branch

// SearchStatistics accumulates counters over one Solve call.
type SearchStatistics struct {
	Nodes     int
	Failures  int
	Solutions int
	// Completed is true iff the search exhausted the tree rather than being
	// cut short by a SearchLimit.
	Completed bool
}

// DFSSearch runs a depth-first search with binary branching over a solver's
// variables, opening a fresh reversible state scope per branch (spec §4.6).
// Event handlers are multiplexed: On may be called more than once per event
// name, and handlers run in registration order.
type DFSSearch struct {
	solver     *Solver
	branching  BranchingStrategy
	limit      SearchLimit
	onSolution []func()
	onFailure  []func()
	onBranch   []func()
	stats      SearchStatistics
}

// NewDFSSearch creates a search using opts (DefaultSolverOptions() if nil).
// A nil Branching falls back to firstUnfixedBinary over vars; a nil or empty
// vars falls back to every variable the solver has created.
func NewDFSSearch(solver *Solver, vars []*IntVar, opts *SolverOptions) *DFSSearch {
	if opts == nil {
		opts = DefaultSolverOptions()
	}
	if len(vars) == 0 {
		vars = solver.Variables()
	}
	branching := opts.Branching
	if branching == nil {
		branching = firstUnfixedBinary(vars)
	}
	return &DFSSearch{solver: solver, branching: branching, limit: opts.Limit}
}

// OnSolution registers a handler invoked every time dfs reaches a leaf node
// (the branching strategy returns no further branches).
func (s *DFSSearch) OnSolution(handler func()) { s.onSolution = append(s.onSolution, handler) }

// OnFailure registers a handler invoked every time a branch raises
// ErrInconsistency.
func (s *DFSSearch) OnFailure(handler func()) { s.onFailure = append(s.onFailure, handler) }

// OnBranch registers a handler invoked every time dfs opens an internal node
// (one with at least one branch to try), before any of its branches run.
func (s *DFSSearch) OnBranch(handler func()) { s.onBranch = append(s.onBranch, handler) }

// Solve runs the search to exhaustion or until the configured SearchLimit
// fires, and returns the accumulated statistics. STOP-SEARCH is caught
// exactly once here (spec §7): each enclosing dfs level restores its branch's
// state and returns it unchanged, without counting a failure. The whole call
// runs inside its own
// top-level state scope (spec §4.6: "open a state scope at current level
// L0"), matching original_source/turingcp/search.py's
// `with NewState(self.sm):` — belt-and-braces on top of the per-branch
// scopes dfs already opens, so the level is restored to L0 even if dfs
// returns early in a way that skipped one of its own restores.
func (s *DFSSearch) Solve() SearchStatistics {
	s.stats = SearchStatistics{}
	err := s.solver.GetStateManager().WithNewState(func() error {
		return s.dfs()
	})
	s.stats.Completed = err != errStopSearch
	return s.stats
}

// dfs explores the current node: if the limit predicate trips, it raises
// errStopSearch, which unwinds directly to Solve without further recursion.
// Otherwise it consults the branching strategy; an empty branch list is a
// solution. Per spec §4.6's pseudocode (mirrored from
// original_source/turingcp/search.py's DFSearch.dfs), stats.Nodes is
// incremented once per branch ATTEMPTED, not once per dfs call, and the
// "branch" event fires only for internal nodes (never for a leaf/solution
// node). Each branch is tried inside its own save/restore scope: failure
// counting and the "failure" event fire on the failed branch's own state,
// before that state is restored — matching the pseudocode's try/catch/finally
// shape, where the catch body (failure handling) runs strictly before the
// finally body (restore). An ErrInconsistency from a branch ends that branch
// only — its siblings still run.
func (s *DFSSearch) dfs() error {
	if s.limit != nil && s.limit(&s.stats) {
		return errStopSearch
	}
	branches := s.branching()
	if len(branches) == 0 {
		s.stats.Solutions++
		trace(logrus.Fields{"solutions": s.stats.Solutions}, "dfs: solution")
		for _, h := range s.onSolution {
			h()
		}
		return nil
	}
	for _, h := range s.onBranch {
		h()
	}
	for _, branch := range branches {
		sm := s.solver.GetStateManager()
		level := sm.GetLevel()
		sm.SaveState()
		s.stats.Nodes++
		err := branch()
		if err == nil {
			err = s.dfs()
		}
		if err != nil && err != errStopSearch {
			s.stats.Failures++
			trace(logrus.Fields{"failures": s.stats.Failures}, "dfs: failure")
			for _, h := range s.onFailure {
				h()
			}
		}
		if restoreErr := sm.RestoreStateUntil(level); err == nil {
			err = restoreErr
		}
		if err == errStopSearch {
			return err
		}
	}
	return nil
}

// firstUnfixedBinary is the default BranchingStrategy (spec §4.6): pick the
// first variable in vars that is not yet fixed, and split its domain into
// {v == min} (left branch) and {v != min} (right branch), running the
// solver's fix-point after each so later branches in the tree see pruned
// domains.
func firstUnfixedBinary(vars []*IntVar) BranchingStrategy {
	return func() []Branch {
		for _, v := range vars {
			if v.IsFixed() {
				continue
			}
			v := v
			value := v.Min()
			return []Branch{
				func() error {
					if err := v.Fix(value); err != nil {
						return err
					}
					return v.solver.FixPoint()
				},
				func() error {
					if err := v.Remove(value); err != nil {
						return err
					}
					return v.solver.FixPoint()
				},
			}
		}
		return nil
	}
}
