package cp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario from the specification: x in {0..7}, y in {2..5}; post
// NotEqual(x, y); fix y to 3; after fix-point, x no longer contains 3.
func TestNotEqualFiresOnFix(t *testing.T) {
	s := NewSolver()
	x, err := NewIntVarRange(s, 0, 7)
	require.NoError(t, err)
	y, err := NewIntVarRange(s, 2, 5)
	require.NoError(t, err)

	require.NoError(t, s.Post(NewNotEqual(x, y, 0)))
	require.NoError(t, y.Fix(3))
	require.NoError(t, s.FixPoint())

	assert.False(t, x.Contains(3))
	assert.Equal(t, 7, x.Size())
}

func TestNotEqualPostWithAlreadyFixedYPrunesImmediately(t *testing.T) {
	s := NewSolver()
	x, err := NewIntVarRange(s, 0, 7)
	require.NoError(t, err)
	y, err := NewIntVar(s, []int{3})
	require.NoError(t, err)

	require.NoError(t, s.Post(NewNotEqual(x, y, 0)))
	assert.False(t, x.Contains(3))
}

func TestNotEqualWithOffset(t *testing.T) {
	s := NewSolver()
	x, err := NewIntVarRange(s, 0, 9)
	require.NoError(t, err)
	y, err := NewIntVar(s, []int{4})
	require.NoError(t, err)

	require.NoError(t, s.Post(NewNotEqual(x, y, 2))) // x != y + 2 = 6
	assert.False(t, x.Contains(6))
	assert.True(t, x.Contains(4))
}

func TestNotEqualDeactivatesAfterFiring(t *testing.T) {
	s := NewSolver()
	x, err := NewIntVarRange(s, 0, 7)
	require.NoError(t, err)
	y, err := NewIntVarRange(s, 2, 5)
	require.NoError(t, err)

	c := NewNotEqual(x, y, 0)
	require.NoError(t, s.Post(c))
	require.NoError(t, y.Fix(3))
	require.NoError(t, s.FixPoint())
	assert.False(t, c.IsActive())
}

func TestEqualPostSynchronizesDomains(t *testing.T) {
	s := NewSolver()
	x, err := NewIntVarRange(s, 0, 9)
	require.NoError(t, err)
	y, err := NewIntVarRange(s, 5, 15)
	require.NoError(t, err)

	require.NoError(t, s.Post(NewEqual(x, y)))
	assert.Equal(t, 5, x.Min())
	assert.Equal(t, 9, x.Max())
	assert.Equal(t, x.Min(), y.Min())
	assert.Equal(t, x.Max(), y.Max())
}

func TestEqualPropagatesFurtherRemovals(t *testing.T) {
	s := NewSolver()
	x, err := NewIntVar(s, []int{1, 2, 3, 4})
	require.NoError(t, err)
	y, err := NewIntVar(s, []int{2, 3, 4, 5})
	require.NoError(t, err)

	require.NoError(t, s.Post(NewEqual(x, y)))
	require.NoError(t, x.Remove(2))
	require.NoError(t, s.FixPoint())
	assert.False(t, y.Contains(2))
}

func TestEqualWithFixedYFixesXAtPost(t *testing.T) {
	s := NewSolver()
	x, err := NewIntVarRange(s, 0, 9)
	require.NoError(t, err)
	y, err := NewIntVar(s, []int{4})
	require.NoError(t, err)

	require.NoError(t, s.Post(NewEqual(x, y)))
	assert.True(t, x.IsFixed())
	assert.Equal(t, 4, x.Min())
}

func TestFuncConstraintRunsOnSchedule(t *testing.T) {
	s := NewSolver()
	v, err := NewIntVarRange(s, 0, 3)
	require.NoError(t, err)
	ran := 0
	fc := NewFuncConstraint(s, func() error { ran++; return nil })
	require.NoError(t, s.Post(fc, false))
	v.PropagateOnFix(fc)
	require.NoError(t, v.Fix(1))
	require.NoError(t, s.FixPoint())
	assert.Equal(t, 1, ran)
}
