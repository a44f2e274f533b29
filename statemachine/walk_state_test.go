package statemachine_test

import (
	"testing"

	"dog-walk-service/errs"
	"dog-walk-service/models"
	"dog-walk-service/statemachine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowedTransitions(t *testing.T) {
	cases := []struct {
		from, to models.WalkRequestStatus
		actor    string
	}{
		{models.RequestOpen, models.RequestAccepted, "owner"},
		{models.RequestOpen, models.RequestCancelled, "owner"},
		{models.RequestAccepted, models.RequestCompleted, "owner"},
		{models.RequestAccepted, models.RequestCompleted, "system"},
		{models.RequestAccepted, models.RequestCancelled, "owner"},
	}
	for _, tc := range cases {
		assert.NoError(t, statemachine.CanTransition(tc.from, tc.to, tc.actor),
			"%s -> %s by %s should be allowed", tc.from, tc.to, tc.actor)
	}
}

func TestRejectedTransitions(t *testing.T) {
	cases := []struct {
		from, to models.WalkRequestStatus
		actor    string
	}{
		{models.RequestOpen, models.RequestCompleted, "owner"},
		{models.RequestOpen, models.RequestAccepted, "walker"},
		{models.RequestAccepted, models.RequestOpen, "owner"},
		{models.RequestCompleted, models.RequestCancelled, "owner"},
		{models.RequestCancelled, models.RequestOpen, "owner"},
		{models.RequestCancelled, models.RequestAccepted, "owner"},
		{models.RequestCompleted, models.RequestAccepted, "system"},
	}
	for _, tc := range cases {
		err := statemachine.CanTransition(tc.from, tc.to, tc.actor)
		require.Error(t, err, "%s -> %s by %s should be rejected", tc.from, tc.to, tc.actor)
		assert.Equal(t, errs.InvalidStateTransition, errs.KindOf(err))
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	assert.Empty(t, statemachine.ValidTransitionsFrom(models.RequestCompleted))
	assert.Empty(t, statemachine.ValidTransitionsFrom(models.RequestCancelled))
}

func TestApplicationTransitions(t *testing.T) {
	assert.NoError(t, statemachine.CanTransitionApplication(models.ApplicationApplied, models.ApplicationAccepted))
	assert.NoError(t, statemachine.CanTransitionApplication(models.ApplicationApplied, models.ApplicationRejected))

	for _, tc := range [][2]models.ApplicationStatus{
		{models.ApplicationAccepted, models.ApplicationRejected},
		{models.ApplicationRejected, models.ApplicationAccepted},
		{models.ApplicationAccepted, models.ApplicationApplied},
	} {
		err := statemachine.CanTransitionApplication(tc[0], tc[1])
		require.Error(t, err)
		assert.Equal(t, errs.InvalidStateTransition, errs.KindOf(err))
	}
}
