package delivery_test

import (
	"testing"

	"dispatch/internal/core/domain/model/delivery"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allowed mirrors the documented lifecycle. Everything not listed here must
// be rejected.
var allowed = map[delivery.Status][]delivery.Status{
	delivery.StatusPending:   {delivery.StatusAccepted, delivery.StatusCancelled},
	delivery.StatusAccepted:  {delivery.StatusAssigned, delivery.StatusCancelled},
	delivery.StatusAssigned:  {delivery.StatusPickingUp, delivery.StatusCancelled},
	delivery.StatusPickingUp: {delivery.StatusPickedUp, delivery.StatusCancelled},
	delivery.StatusPickedUp:  {delivery.StatusOnTheWay, delivery.StatusCancelled},
	delivery.StatusOnTheWay:  {delivery.StatusNearby, delivery.StatusDelivered, delivery.StatusFailed},
	delivery.StatusNearby:    {delivery.StatusDelivered, delivery.StatusFailed},
}

func isAllowed(from, to delivery.Status) bool {
	for _, t := range allowed[from] {
		if t == to {
			return true
		}
	}
	return false
}

func TestStatus_TransitionTo(t *testing.T) {
	t.Run("permits exactly the documented transitions", func(t *testing.T) {
		for _, from := range delivery.AllStatuses() {
			for _, to := range delivery.AllStatuses() {
				next, err := from.TransitionTo(to)

				if isAllowed(from, to) {
					require.NoError(t, err, "%s -> %s should be allowed", from, to)
					assert.Equal(t, to, next)
				} else {
					require.Error(t, err, "%s -> %s should be rejected", from, to)
					require.ErrorIs(t, err, delivery.ErrInvalidTransition)

					var tErr *delivery.InvalidTransitionError
					require.ErrorAs(t, err, &tErr)
					assert.Equal(t, from, tErr.From)
					assert.Equal(t, to, tErr.To)
				}
			}
		}
	})

	t.Run("self transitions are rejected", func(t *testing.T) {
		for _, s := range delivery.AllStatuses() {
			_, err := s.TransitionTo(s)
			require.ErrorIs(t, err, delivery.ErrInvalidTransition, "%s -> %s", s, s)
		}
	})

	t.Run("terminal statuses have no outgoing transitions", func(t *testing.T) {
		terminals := []delivery.Status{
			delivery.StatusDelivered, delivery.StatusCancelled, delivery.StatusFailed,
		}
		for _, from := range terminals {
			assert.True(t, from.IsTerminal())
			for _, to := range delivery.AllStatuses() {
				_, err := from.TransitionTo(to)
				require.Error(t, err, "%s -> %s", from, to)
			}
		}
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	terminal := map[delivery.Status]bool{
		delivery.StatusDelivered: true,
		delivery.StatusCancelled: true,
		delivery.StatusFailed:    true,
	}
	for _, s := range delivery.AllStatuses() {
		assert.Equal(t, terminal[s], s.IsTerminal(), "status %s", s)
	}
}

func TestStatusFromString(t *testing.T) {
	t.Run("parses known statuses", func(t *testing.T) {
		for _, s := range delivery.AllStatuses() {
			parsed, err := delivery.StatusFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		_, err := delivery.StatusFromString("teleported")
		require.Error(t, err)

		_, err = delivery.StatusFromString("")
		require.Error(t, err)
	})
}

func TestInvalidTransitionError_Message(t *testing.T) {
	err := &delivery.InvalidTransitionError{
		From: delivery.StatusPending,
		To:   delivery.StatusDelivered,
	}

	assert.Equal(t, "invalid status transition: pending -> delivered", err.Error())
}
