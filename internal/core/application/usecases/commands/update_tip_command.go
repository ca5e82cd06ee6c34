package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var ErrUpdateTipCommandIsNotConstructed = errors.New(
	"UpdateTipCommand must be created via NewUpdateTipCommand constructor",
)

// UpdateTipCommand represents a customer setting or adjusting the tip.
type UpdateTipCommand struct { //nolint:recvcheck //using for validation
	businessID kernel.UUID
	deliveryID kernel.UUID
	amount     float64

	guard kernel.ConstructorGuard
}

// NewUpdateTipCommand creates a tip-update command.
func NewUpdateTipCommand(businessID, deliveryID kernel.UUID, amount float64) (UpdateTipCommand, error) {
	command := UpdateTipCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setBusinessID(businessID),
		command.setDeliveryID(deliveryID),
		command.setAmount(amount),
	); err != nil {
		return UpdateTipCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateTipCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTipCommandIsNotConstructed)
}

// BusinessID returns the owning business scope.
func (c UpdateTipCommand) BusinessID() kernel.UUID {
	return c.businessID
}

// DeliveryID returns the delivery being tipped.
func (c UpdateTipCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Amount returns the tip amount.
func (c UpdateTipCommand) Amount() float64 {
	return c.amount
}

func (c *UpdateTipCommand) setBusinessID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("businessID", err)
	}

	c.businessID = id
	return nil
}

func (c *UpdateTipCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("deliveryID", err)
	}

	c.deliveryID = id
	return nil
}

func (c *UpdateTipCommand) setAmount(amount float64) error {
	if amount < 0 {
		return delivery.ErrNegativeAmount
	}

	c.amount = amount
	return nil
}
