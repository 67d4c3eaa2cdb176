package cp

import "errors"

// ErrInconsistency is the INCONSISTENCY signal of spec §7: raised whenever a
// domain becomes empty or a constraint determines infeasibility. It is the
// only signal that crosses component boundaries during normal solving — it
// unwinds through propagate(), fix_point(), and dfs() to the nearest branch
// scope, or to the caller when raised outside search. It is deliberately a
// plain sentinel (mirrors the teacher's ErrDomainEmpty/ErrInconsistent in
// fd.go): cheap to allocate and compare, since propagation may raise it on
// every failed node of a search tree.
var ErrInconsistency = errors.New("cp: inconsistency")

// errStopSearch is the STOP-SEARCH signal of spec §7: raised when a search
// limit predicate fires. It is caught exactly once, at DFSSearch.Solve, and is
// not treated as an error by callers of Solve — never exported.
var errStopSearch = errors.New("cp: stop search")

// ErrStateUnderflow, ErrRestoreBeyondBottom, and ErrEmptyDomainInit are
// programming errors per spec §7: "Misuse ... are surfaced as distinct
// failures and are not recoverable." Unlike ErrInconsistency, callers are not
// expected to handle these at a branch boundary — they indicate a bug in the
// caller, so constructors and StateManager wrap them with errors.WithStack
// (github.com/pkg/errors) to capture where the misuse happened.
var (
	ErrStateUnderflow      = errors.New("cp: restore_state called with no saved state")
	ErrRestoreBeyondBottom = errors.New("cp: restore_state_until target level below -1")
	ErrEmptyDomainInit     = errors.New("cp: cannot create a domain from an empty iterable")
)
