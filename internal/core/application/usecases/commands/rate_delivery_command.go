package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var ErrRateDeliveryCommandIsNotConstructed = errors.New(
	"RateDeliveryCommand must be created via NewRateDeliveryCommand constructor",
)

// RateDeliveryCommand represents a customer rating a completed delivery.
type RateDeliveryCommand struct { //nolint:recvcheck //using for validation
	businessID kernel.UUID
	deliveryID kernel.UUID
	rating     int
	feedback   *string

	guard kernel.ConstructorGuard
}

// NewRateDeliveryCommand creates a rating command. Ratings outside 1..5 are
// rejected up front.
func NewRateDeliveryCommand(businessID, deliveryID kernel.UUID, rating int, feedback *string) (RateDeliveryCommand, error) {
	command := RateDeliveryCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setBusinessID(businessID),
		command.setDeliveryID(deliveryID),
		command.setRating(rating),
	); err != nil {
		return RateDeliveryCommand{}, err
	}

	if feedback != nil {
		text := *feedback
		command.feedback = &text
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRateDeliveryCommandIsNotConstructed)
}

// BusinessID returns the owning business scope.
func (c RateDeliveryCommand) BusinessID() kernel.UUID {
	return c.businessID
}

// DeliveryID returns the delivery being rated.
func (c RateDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Rating returns the 1..5 score.
func (c RateDeliveryCommand) Rating() int {
	return c.rating
}

// Feedback returns the optional feedback text, or nil.
func (c RateDeliveryCommand) Feedback() *string {
	if c.feedback == nil {
		return nil
	}
	text := *c.feedback
	return &text
}

func (c *RateDeliveryCommand) setBusinessID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("businessID", err)
	}

	c.businessID = id
	return nil
}

func (c *RateDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("deliveryID", err)
	}

	c.deliveryID = id
	return nil
}

func (c *RateDeliveryCommand) setRating(rating int) error {
	if rating < delivery.RatingMin || rating > delivery.RatingMax {
		return errs.NewValueIsOutOfRangeError("rating", rating, delivery.RatingMin, delivery.RatingMax)
	}

	c.rating = rating
	return nil
}
