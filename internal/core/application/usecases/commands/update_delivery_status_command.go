package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
	"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
)

// UpdateDeliveryStatusCommand represents a courier- or operator-initiated
// status change: picking_up, picked_up, on_the_way, nearby, cancelled, or
// failed. Delivered goes through CompleteDeliveryCommand, which carries the
// proof reference; assignment goes through the assign commands.
type UpdateDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	businessID kernel.UUID
	deliveryID kernel.UUID
	target     delivery.Status
	reason     string

	guard kernel.ConstructorGuard
}

// NewUpdateDeliveryStatusCommand creates a status-change command. Reason is
// required for cancelled and failed, ignored otherwise.
func NewUpdateDeliveryStatusCommand(businessID, deliveryID kernel.UUID, target delivery.Status, reason string) (UpdateDeliveryStatusCommand, error) {
	command := UpdateDeliveryStatusCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setBusinessID(businessID),
		command.setDeliveryID(deliveryID),
		command.setTarget(target, reason),
	); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryStatusCommandIsNotConstructed)
}

// BusinessID returns the owning business scope.
func (c UpdateDeliveryStatusCommand) BusinessID() kernel.UUID {
	return c.businessID
}

// DeliveryID returns the delivery to transition.
func (c UpdateDeliveryStatusCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Target returns the requested status.
func (c UpdateDeliveryStatusCommand) Target() delivery.Status {
	return c.target
}

// Reason returns the abort reason for cancelled/failed targets.
func (c UpdateDeliveryStatusCommand) Reason() string {
	return c.reason
}

func (c *UpdateDeliveryStatusCommand) setBusinessID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("businessID", err)
	}

	c.businessID = id
	return nil
}

func (c *UpdateDeliveryStatusCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("deliveryID", err)
	}

	c.deliveryID = id
	return nil
}

func (c *UpdateDeliveryStatusCommand) setTarget(target delivery.Status, reason string) error {
	if err := target.Validate(); err != nil {
		return err
	}

	switch target {
	case delivery.StatusPickingUp, delivery.StatusPickedUp, delivery.StatusOnTheWay, delivery.StatusNearby:
	case delivery.StatusCancelled, delivery.StatusFailed:
		if reason == "" {
			return errs.NewValueIsRequiredError("reason")
		}
		c.reason = reason
	default:
		return errs.NewValueIsInvalidErrorWithCause("target",
			fmt.Errorf("%s is not reachable through a status update", target))
	}

	c.target = target
	return nil
}
