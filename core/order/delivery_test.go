package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeliverySeedsHistory(t *testing.T) {
	now := time.Now().UTC()
	d := NewDelivery(now)

	assert.Equal(t, DeliveryPending, d.Status)
	require.Len(t, d.History, 1)
	assert.Equal(t, DeliveryPending, d.History[0].Status)
	assert.Equal(t, stageDescriptions[DeliveryPending], d.History[0].Description)
	assert.Equal(t, now, d.History[0].Timestamp)
	assert.Nil(t, d.EstimatedDelivery)
}

func TestTransitionAppendsOneEntry(t *testing.T) {
	now := time.Now().UTC()
	d := NewDelivery(now)

	next, err := d.Transition(DeliveryProcessing, now.Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, DeliveryProcessing, next.Status)
	require.Len(t, next.History, 2)
	last := next.History[1]
	assert.Equal(t, DeliveryProcessing, last.Status)
	assert.Equal(t, stageDescriptions[DeliveryProcessing], last.Description)
	assert.False(t, last.Timestamp.Before(next.History[0].Timestamp))
}

func TestTransitionFullLifecycle(t *testing.T) {
	now := time.Now().UTC()
	d := NewDelivery(now)

	for i, stage := range []DeliveryStage{DeliveryProcessing, DeliveryDelivering, DeliveryCompleted} {
		var err error
		d, err = d.Transition(stage, now.Add(time.Duration(i+1)*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, stage, d.Status)
	}

	require.Len(t, d.History, 4)
	for i := 1; i < len(d.History); i++ {
		assert.False(t, d.History[i].Timestamp.Before(d.History[i-1].Timestamp),
			"history timestamps must be non-decreasing")
	}
}

func TestTransitionBackwardFromDeliveringRejected(t *testing.T) {
	now := time.Now().UTC()
	d := NewDelivery(now)

	d, err := d.Transition(DeliveryProcessing, now)
	require.NoError(t, err)
	d, err = d.Transition(DeliveryDelivering, now)
	require.NoError(t, err)

	for _, target := range []DeliveryStage{DeliveryPending, DeliveryProcessing} {
		got, err := d.Transition(target, now.Add(time.Hour))

		var terr *TransitionError
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, DeliveryDelivering, terr.From)
		assert.Equal(t, target, terr.To)

		// Rejected transitions must leave the delivery untouched.
		assert.Equal(t, d.Status, got.Status)
		assert.Equal(t, d.History, got.History)
	}
}

func TestTransitionCompletedIsTerminal(t *testing.T) {
	now := time.Now().UTC()
	d := NewDelivery(now)

	var err error
	for _, stage := range []DeliveryStage{DeliveryProcessing, DeliveryDelivering, DeliveryCompleted} {
		d, err = d.Transition(stage, now)
		require.NoError(t, err)
	}

	for _, target := range []DeliveryStage{DeliveryPending, DeliveryProcessing, DeliveryDelivering, DeliveryCompleted} {
		got, err := d.Transition(target, now.Add(time.Hour))
		var terr *TransitionError
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, d.History, got.History)
	}
}

func TestTransitionUnknownStage(t *testing.T) {
	d := NewDelivery(time.Now().UTC())

	got, err := d.Transition("returned", time.Now().UTC())
	require.Error(t, err)
	assert.Equal(t, d.History, got.History)
}

func TestTransitionClampsClockRollback(t *testing.T) {
	now := time.Now().UTC()
	d := NewDelivery(now)

	// A wall clock that jumped backwards must not produce a history
	// entry older than its predecessor.
	next, err := d.Transition(DeliveryProcessing, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, now, next.History[1].Timestamp)
}

func TestTransitionSetsEstimatedDelivery(t *testing.T) {
	now := time.Now().UTC()
	d := NewDelivery(now)

	d, err := d.Transition(DeliveryProcessing, now)
	require.NoError(t, err)
	assert.Nil(t, d.EstimatedDelivery)

	d, err = d.Transition(DeliveryDelivering, now)
	require.NoError(t, err)
	require.NotNil(t, d.EstimatedDelivery)
	assert.Equal(t, now.Add(deliveringWindow), *d.EstimatedDelivery)
}
