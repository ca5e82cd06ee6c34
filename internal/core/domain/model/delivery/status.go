package delivery

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery.
//
// The lifecycle forms a validated state machine:
//
//	pending ──> accepted ──> assigned ──> picking_up ──> picked_up ──> on_the_way ──┬──> nearby ──┐
//	   │            │            │             │              │            │        │             │
//	   │            │            │             │              │            ├────────┼──> delivered│
//	   │            │            │             │              │            │        │             │
//	   └────────────┴────────────┴─────────────┴──> cancelled │            └──> failed <──────────┘
//
// delivered, cancelled, and failed are terminal: no outgoing transitions.
// Every transition, whether operator-, courier-, or tracker-initiated, is
// validated against the same table.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusAssigned  Status = "assigned"
	StatusPickingUp Status = "picking_up"
	StatusPickedUp  Status = "picked_up"
	StatusOnTheWay  Status = "on_the_way"
	StatusNearby    Status = "nearby"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
	StatusFailed    Status = "failed"
)

// ErrInvalidTransition is the sentinel wrapped by every InvalidTransitionError.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports a transition the table does not allow,
// identifying both the current status and the requested target.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// transitions is the single allowed-transition table. Statuses absent from
// the map are terminal.
var transitions = map[Status][]Status{
	StatusPending:   {StatusAccepted, StatusCancelled},
	StatusAccepted:  {StatusAssigned, StatusCancelled},
	StatusAssigned:  {StatusPickingUp, StatusCancelled},
	StatusPickingUp: {StatusPickedUp, StatusCancelled},
	StatusPickedUp:  {StatusOnTheWay, StatusCancelled},
	StatusOnTheWay:  {StatusNearby, StatusDelivered, StatusFailed},
	StatusNearby:    {StatusDelivered, StatusFailed},
}

// AllStatuses lists every defined status, in lifecycle order.
func AllStatuses() []Status {
	return []Status{
		StatusPending, StatusAccepted, StatusAssigned, StatusPickingUp,
		StatusPickedUp, StatusOnTheWay, StatusNearby,
		StatusDelivered, StatusCancelled, StatusFailed,
	}
}

// StatusFromString parses a status received from an external surface.
func StatusFromString(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate checks that the status is one of the known values.
func (s Status) Validate() error {
	for _, known := range AllStatuses() {
		if s == known {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("delivery status",
		fmt.Errorf("%q is not a valid delivery status", string(s)))
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled || s == StatusFailed
}

// CanTransitionTo reports whether the table allows moving to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo returns the target status if the table allows the move, or an
// InvalidTransitionError identifying source and target otherwise.
func (s Status) TransitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return "", &InvalidTransitionError{From: s, To: target}
	}
	return target, nil
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}
