package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var ErrAssignCourierCommandIsNotConstructed = errors.New(
	"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
)

// AssignCourierCommand represents an operator manually assigning a specific
// courier to a specific delivery.
type AssignCourierCommand struct { //nolint:recvcheck //using for validation
	businessID kernel.UUID
	deliveryID kernel.UUID
	courierID  kernel.UUID

	guard kernel.ConstructorGuard
}

// NewAssignCourierCommand creates a manual assignment command.
func NewAssignCourierCommand(businessID, deliveryID, courierID kernel.UUID) (AssignCourierCommand, error) {
	command := AssignCourierCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setBusinessID(businessID),
		command.setDeliveryID(deliveryID),
		command.setCourierID(courierID),
	); err != nil {
		return AssignCourierCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierCommandIsNotConstructed)
}

// BusinessID returns the owning business scope.
func (c AssignCourierCommand) BusinessID() kernel.UUID {
	return c.businessID
}

// DeliveryID returns the delivery to assign.
func (c AssignCourierCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// CourierID returns the courier to assign.
func (c AssignCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c *AssignCourierCommand) setBusinessID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("businessID", err)
	}

	c.businessID = id
	return nil
}

func (c *AssignCourierCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("deliveryID", err)
	}

	c.deliveryID = id
	return nil
}

func (c *AssignCourierCommand) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("courierID", err)
	}

	c.courierID = id
	return nil
}
