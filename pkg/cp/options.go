package cp

// SearchLimit bounds a DFSSearch run: Solve stops (raising errStopSearch
// internally, surfaced to the caller only via SearchStatistics.Completed) as
// soon as the predicate returns true, given the statistics gathered so far.
type SearchLimit func(stats *SearchStatistics) bool

// SolverOptions configures a DFSSearch. Mirrors the teacher's
// SolverConfig/DefaultSolverConfig pattern (fd.go): a plain struct built by a
// Default constructor and overridden field by field, rather than functional
// options, since every field here is a simple value the caller either wants
// or doesn't.
type SolverOptions struct {
	// Branching selects the next variable/value to split on. Defaults to
	// first-unfixed-variable, split-on-min.
	Branching BranchingStrategy
	// Limit, if non-nil, stops the search early once it returns true.
	Limit SearchLimit
}

// DefaultSolverOptions returns first-fail-free binary branching with no
// search limit.
func DefaultSolverOptions() *SolverOptions {
	return &SolverOptions{
		Branching: nil, // DFSSearch substitutes firstUnfixedBinary when nil
		Limit:     nil,
	}
}

// WithBranching returns a copy of opts with Branching set.
func (o *SolverOptions) WithBranching(b BranchingStrategy) *SolverOptions {
	out := *o
	out.Branching = b
	return &out
}

// WithLimit returns a copy of opts with Limit set.
func (o *SolverOptions) WithLimit(l SearchLimit) *SolverOptions {
	out := *o
	out.Limit = l
	return &out
}

// WithSolutionLimit is a convenience Limit stopping after n solutions.
func WithSolutionLimit(n int) SearchLimit {
	return func(stats *SearchStatistics) bool { return stats.Solutions >= n }
}

// WithNodeLimit is a convenience Limit stopping after n search nodes.
func WithNodeLimit(n int) SearchLimit {
	return func(stats *SearchStatistics) bool { return stats.Nodes >= n }
}
