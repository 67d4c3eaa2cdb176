package cp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolverFixPointDrainsQueue(t *testing.T) {
	s := NewSolver()
	x, err := NewIntVarRange(s, 0, 9)
	require.NoError(t, err)
	y, err := NewIntVarRange(s, 0, 9)
	require.NoError(t, err)

	require.NoError(t, s.Post(NewNotEqual(x, y, 0)))
	require.NoError(t, x.Fix(3))
	require.NoError(t, s.FixPoint())
	assert.False(t, y.Contains(3))
}

func TestSolverOnFixPointListenersRunInOrder(t *testing.T) {
	s := NewSolver()
	var order []int
	s.OnFixPoint(func() { order = append(order, 1) })
	s.OnFixPoint(func() { order = append(order, 2) })
	require.NoError(t, s.FixPoint())
	assert.Equal(t, []int{1, 2}, order)
}

func TestSolverFixPointIsIdempotentOnQuiescentState(t *testing.T) {
	s := NewSolver()
	x, err := NewIntVarRange(s, 0, 9)
	require.NoError(t, err)
	require.NoError(t, s.FixPoint())
	sizeBefore := x.Size()
	require.NoError(t, s.FixPoint())
	assert.Equal(t, sizeBefore, x.Size())
}

func TestSolverScheduleDeduped(t *testing.T) {
	s := NewSolver()
	v, err := NewIntVarRange(s, 0, 3)
	require.NoError(t, err)
	calls := 0
	fc := NewFuncConstraint(s, func() error { calls++; return nil })
	require.NoError(t, s.Post(fc, false))
	v.PropagateOnDomainChange(fc)

	// Two removals before a fix-point schedule the same constraint twice in
	// the naive sense, but the scheduled flag dedupes queue membership.
	require.NoError(t, v.Remove(0))
	require.NoError(t, v.Remove(1))
	require.NoError(t, s.FixPoint())
	assert.Equal(t, 1, calls)
}

func TestSolverFixToAbsentValueReturnsInconsistency(t *testing.T) {
	s := NewSolver()
	x, err := NewIntVar(s, []int{5})
	require.NoError(t, err)
	y, err := NewIntVarRange(s, 0, 9)
	require.NoError(t, err)

	calls := 0
	fc := NewFuncConstraint(s, func() error { calls++; return nil })
	require.NoError(t, s.Post(fc, false))
	y.PropagateOnFix(fc)

	require.NoError(t, s.Post(NewEqual(x, y)))
	err = y.Fix(7)
	if err == nil {
		err = s.FixPoint()
	}
	assert.ErrorIs(t, err, ErrInconsistency)
}
