// Package cp provides a finite-domain constraint programming solver built
// around reversible state: a trail-indexed state manager, sparse-set domains,
// a fix-point propagation core, and a depth-first search over reversible
// choice points.
//
// The solver is a library. It owns no global state: every solve starts from
// an explicit *Solver handle, and two solvers never interact.
package cp

import "github.com/pkg/errors"

// Trailable is anything that can save its current value and later restore it.
// StateManager drives Save/Restore across every live trailable in insertion
// order; trailables never call these themselves.
type Trailable interface {
	save() trailEntry
}

// trailEntry restores exactly one trailable to the value it held when it was
// saved. Backups are popped in the reverse order they were saved; within one
// backup, entries are restored in the order they were recorded.
type trailEntry interface {
	restore()
}

// StateInt is a reversible integer cell. SetValue writes through immediately;
// the write is only undone if a StateManager.RestoreState pops past the
// SaveState that preceded it.
type StateInt struct {
	v int
}

func (s *StateInt) Value() int { return s.v }

func (s *StateInt) SetValue(v int) int {
	s.v = v
	return v
}

func (s *StateInt) Increment() int { return s.SetValue(s.v + 1) }
func (s *StateInt) Decrement() int { return s.SetValue(s.v - 1) }

func (s *StateInt) save() trailEntry {
	return &stateIntEntry{cell: s, v: s.v}
}

type stateIntEntry struct {
	cell *StateInt
	v    int
}

func (e *stateIntEntry) restore() { e.cell.v = e.v }

// StateObj is a reversible cell holding an arbitrary value, for trailables
// that are not plain integers (e.g. a constraint's active flag).
type StateObj struct {
	v any
}

func (s *StateObj) Value() any { return s.v }

func (s *StateObj) SetValue(v any) any {
	s.v = v
	return v
}

func (s *StateObj) save() trailEntry {
	return &stateObjEntry{cell: s, v: s.v}
}

type stateObjEntry struct {
	cell *StateObj
	v    any
}

func (e *stateObjEntry) restore() { e.cell.v = e.v }

// backup is the ordered set of trail entries captured by one SaveState call:
// exactly one entry per trailable that existed in the store at that time.
type backup struct {
	entries []trailEntry
}

func newBackup(store []Trailable) backup {
	entries := make([]trailEntry, len(store))
	for i, t := range store {
		entries[i] = t.save()
	}
	return backup{entries: entries}
}

func (b backup) restore() {
	for _, e := range b.entries {
		e.restore()
	}
}

// StateManager owns the stack of reversible cells ("store") and the stack of
// backups taken of that store ("prior"). Level is len(prior)-1, so a fresh
// manager starts at level -1.
//
// StateManager captures a plain copy of every cell on each SaveState; this is
// the "COPY STRATEGY" design choice of spec §4.1. A trail-based alternative
// that records only changed cells is an equally valid strategy, since no
// externally observable behavior in this package depends on which one is
// used.
type StateManager struct {
	store             []Trailable
	prior             []backup
	onRestoreHandlers []func()
}

// NewStateManager creates a manager at level -1 with an empty store.
func NewStateManager() *StateManager {
	return &StateManager{}
}

// GetLevel returns the current level: -1 before any SaveState.
func (sm *StateManager) GetLevel() int {
	return len(sm.prior) - 1
}

// MakeStateInt creates and registers a new reversible integer.
func (sm *StateManager) MakeStateInt(initValue int) *StateInt {
	s := &StateInt{v: initValue}
	sm.store = append(sm.store, s)
	return s
}

// MakeStateObj creates and registers a new reversible generic cell.
func (sm *StateManager) MakeStateObj(initValue any) *StateObj {
	s := &StateObj{v: initValue}
	sm.store = append(sm.store, s)
	return s
}

// OnRestore registers a callback invoked after every completed RestoreState.
func (sm *StateManager) OnRestore(listener func()) {
	sm.onRestoreHandlers = append(sm.onRestoreHandlers, listener)
}

func (sm *StateManager) notifyRestore() {
	for _, listener := range sm.onRestoreHandlers {
		listener()
	}
}

// SaveState pushes a new backup of every trailable currently in the store,
// and increments the level by one.
func (sm *StateManager) SaveState() {
	sm.prior = append(sm.prior, newBackup(sm.store))
}

// RestoreState pops the top backup and restores every entry it holds,
// decrementing the level by one. Trailables created after the matching
// SaveState are left untouched: they are simply not covered by any backup.
//
// Calling RestoreState with no backup on the stack is a programming error:
// it is reported via a wrapped, stack-carrying error rather than the plain
// sentinel errors used for recoverable solver failures (spec §7).
func (sm *StateManager) RestoreState() error {
	if len(sm.prior) == 0 {
		return errors.WithStack(ErrStateUnderflow)
	}
	top := sm.prior[len(sm.prior)-1]
	sm.prior = sm.prior[:len(sm.prior)-1]
	top.restore()
	sm.notifyRestore()
	return nil
}

// RestoreStateUntil repeatedly calls RestoreState while GetLevel() > level.
// A target level below -1 is a programming error and is reported as a
// stack-carrying ErrRestoreBeyondBottom without restoring anything.
func (sm *StateManager) RestoreStateUntil(level int) error {
	if level < -1 {
		return errors.WithStack(ErrRestoreBeyondBottom)
	}
	for sm.GetLevel() > level {
		if err := sm.RestoreState(); err != nil {
			return err
		}
	}
	return nil
}

// WithNewState opens a fresh state scope, runs fn, and restores back to the
// level observed on entry regardless of how fn returns — mirroring the
// original turingcp `NewState` context manager. Callers that need to
// distinguish an INCONSISTENCY raised by fn from a clean return should check
// the returned error, not fn's own side effects.
func (sm *StateManager) WithNewState(fn func() error) error {
	level := sm.GetLevel()
	sm.SaveState()
	err := fn()
	if restoreErr := sm.RestoreStateUntil(level); restoreErr != nil {
		if err == nil {
			return restoreErr
		}
	}
	return err
}
