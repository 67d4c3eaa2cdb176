package cp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type eventLog struct {
	events []string
}

func (l *eventLog) listener() DomainListener {
	return DomainListener{
		Change:    func() { l.events = append(l.events, "change") },
		ChangeMin: func() { l.events = append(l.events, "change_min") },
		ChangeMax: func() { l.events = append(l.events, "change_max") },
		Fix:       func() { l.events = append(l.events, "fix") },
		Empty:     func() { l.events = append(l.events, "empty") },
	}
}

func TestDomainRemoveMiddleFiresOnlyChange(t *testing.T) {
	sm := NewStateManager()
	d, err := newDomain(sm, rangeVals(0, 9))
	require.NoError(t, err)
	log := &eventLog{}
	d.Remove(5, log.listener())
	assert.Equal(t, []string{"change"}, log.events)
}

func TestDomainRemoveMinFiresChangeMin(t *testing.T) {
	sm := NewStateManager()
	d, err := newDomain(sm, rangeVals(0, 9))
	require.NoError(t, err)
	log := &eventLog{}
	d.Remove(0, log.listener())
	assert.Equal(t, []string{"change", "change_min"}, log.events)
}

func TestDomainRemoveMaxFiresChangeMax(t *testing.T) {
	sm := NewStateManager()
	d, err := newDomain(sm, rangeVals(0, 9))
	require.NoError(t, err)
	log := &eventLog{}
	d.Remove(9, log.listener())
	assert.Equal(t, []string{"change", "change_max"}, log.events)
}

func TestDomainRemoveDownToSingletonFiresFix(t *testing.T) {
	sm := NewStateManager()
	d, err := newDomain(sm, []int{4, 5})
	require.NoError(t, err)
	log := &eventLog{}
	d.Remove(4, log.listener())
	assert.Equal(t, []string{"change", "change_min", "fix"}, log.events)
}

func TestDomainRemoveLastFiresEmptyThenChange(t *testing.T) {
	sm := NewStateManager()
	d, err := newDomain(sm, []int{7})
	require.NoError(t, err)
	log := &eventLog{}
	d.Remove(7, log.listener())
	assert.Equal(t, []string{"empty", "change", "change_min", "change_max"}, log.events)
}

func TestDomainRemoveNonMemberNoEvents(t *testing.T) {
	sm := NewStateManager()
	d, err := newDomain(sm, rangeVals(0, 9))
	require.NoError(t, err)
	log := &eventLog{}
	d.Remove(20, log.listener())
	assert.Empty(t, log.events)
}

func TestDomainRemoveAllButFixesOnceNotTwice(t *testing.T) {
	sm := NewStateManager()
	d, err := newDomain(sm, rangeVals(0, 9))
	require.NoError(t, err)
	log := &eventLog{}
	d.RemoveAllBut(4, log.listener())
	fixCount := 0
	for _, e := range log.events {
		if e == "fix" {
			fixCount++
		}
	}
	assert.Equal(t, 1, fixCount)
	assert.True(t, d.IsFixed())
	assert.Equal(t, 4, d.Min())
}

func TestDomainRemoveAllButNonMemberEmpties(t *testing.T) {
	sm := NewStateManager()
	d, err := newDomain(sm, rangeVals(0, 9))
	require.NoError(t, err)
	log := &eventLog{}
	d.RemoveAllBut(20, log.listener())
	assert.Equal(t, []string{"empty"}, log.events)
	assert.Equal(t, 0, d.Size())
}

func TestDomainRemoveBelowFiresChangeMinNotChangeMax(t *testing.T) {
	sm := NewStateManager()
	d, err := newDomain(sm, rangeVals(0, 9))
	require.NoError(t, err)
	log := &eventLog{}
	d.RemoveBelow(5, log.listener())
	assert.Equal(t, []string{"change_min", "change"}, log.events)
}

func TestDomainRemoveAboveFiresChangeMaxNotChangeMin(t *testing.T) {
	sm := NewStateManager()
	d, err := newDomain(sm, rangeVals(0, 9))
	require.NoError(t, err)
	log := &eventLog{}
	d.RemoveAbove(5, log.listener())
	assert.Equal(t, []string{"change_max", "change"}, log.events)
}

func TestDomainRemoveBelowNoOpWhenAlreadySatisfied(t *testing.T) {
	sm := NewStateManager()
	d, err := newDomain(sm, rangeVals(5, 9))
	require.NoError(t, err)
	log := &eventLog{}
	d.RemoveBelow(2, log.listener())
	assert.Empty(t, log.events)
}
