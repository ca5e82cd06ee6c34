package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
	"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
)

// CompleteDeliveryCommand represents a courier completing a delivery, with an
// optional proof-of-delivery reference (a photo or signature handle).
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	businessID kernel.UUID
	deliveryID kernel.UUID
	proofRef   *string

	guard kernel.ConstructorGuard
}

// NewCompleteDeliveryCommand creates a completion command.
func NewCompleteDeliveryCommand(businessID, deliveryID kernel.UUID, proofRef *string) (CompleteDeliveryCommand, error) {
	command := CompleteDeliveryCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setBusinessID(businessID),
		command.setDeliveryID(deliveryID),
	); err != nil {
		return CompleteDeliveryCommand{}, err
	}

	if proofRef != nil {
		ref := *proofRef
		command.proofRef = &ref
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

// BusinessID returns the owning business scope.
func (c CompleteDeliveryCommand) BusinessID() kernel.UUID {
	return c.businessID
}

// DeliveryID returns the delivery to complete.
func (c CompleteDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// ProofRef returns the proof-of-delivery reference, or nil.
func (c CompleteDeliveryCommand) ProofRef() *string {
	if c.proofRef == nil {
		return nil
	}
	ref := *c.proofRef
	return &ref
}

func (c *CompleteDeliveryCommand) setBusinessID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("businessID", err)
	}

	c.businessID = id
	return nil
}

func (c *CompleteDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("deliveryID", err)
	}

	c.deliveryID = id
	return nil
}
