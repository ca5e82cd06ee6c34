package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var ErrAutoAssignCommandIsNotConstructed = errors.New(
	"AutoAssignCommand must be created via NewAutoAssignCommand constructor",
)

// AutoAssignCommand represents a request to automatically pick and assign the
// best available courier for a delivery.
type AutoAssignCommand struct { //nolint:recvcheck //using for validation
	businessID kernel.UUID
	deliveryID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewAutoAssignCommand creates an auto-assignment command.
func NewAutoAssignCommand(businessID, deliveryID kernel.UUID) (AutoAssignCommand, error) {
	command := AutoAssignCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setBusinessID(businessID),
		command.setDeliveryID(deliveryID),
	); err != nil {
		return AutoAssignCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AutoAssignCommand) Validate() error {
	return c.guard.Validate(ErrAutoAssignCommandIsNotConstructed)
}

// BusinessID returns the owning business scope.
func (c AutoAssignCommand) BusinessID() kernel.UUID {
	return c.businessID
}

// DeliveryID returns the delivery to assign.
func (c AutoAssignCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

func (c *AutoAssignCommand) setBusinessID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("businessID", err)
	}

	c.businessID = id
	return nil
}

func (c *AutoAssignCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("deliveryID", err)
	}

	c.deliveryID = id
	return nil
}
