package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var ErrReportLocationCommandIsNotConstructed = errors.New(
	"ReportLocationCommand must be created via NewReportLocationCommand constructor",
)

// ReportLocationCommand represents one position report from a courier device
// for an active delivery. Heading, speed, and accuracy are optional device
// extras; only accuracy is kept in the history.
type ReportLocationCommand struct { //nolint:recvcheck //using for validation
	businessID kernel.UUID
	deliveryID kernel.UUID
	position   kernel.GeoPoint
	heading    *float64
	speed      *float64
	accuracy   *float64

	guard kernel.ConstructorGuard
}

// NewReportLocationCommandParams carries the input for NewReportLocationCommand.
type NewReportLocationCommandParams struct {
	BusinessID kernel.UUID
	DeliveryID kernel.UUID
	Position   kernel.GeoPoint
	Heading    *float64
	Speed      *float64
	Accuracy   *float64
}

// NewReportLocationCommand creates a position-report command.
func NewReportLocationCommand(p NewReportLocationCommandParams) (ReportLocationCommand, error) {
	command := ReportLocationCommand{
		heading:  copyFloat(p.Heading),
		speed:    copyFloat(p.Speed),
		accuracy: copyFloat(p.Accuracy),
		guard:    kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setBusinessID(p.BusinessID),
		command.setDeliveryID(p.DeliveryID),
		command.setPosition(p.Position),
	); err != nil {
		return ReportLocationCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportLocationCommand) Validate() error {
	return c.guard.Validate(ErrReportLocationCommandIsNotConstructed)
}

// BusinessID returns the owning business scope.
func (c ReportLocationCommand) BusinessID() kernel.UUID {
	return c.businessID
}

// DeliveryID returns the delivery the report belongs to.
func (c ReportLocationCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Position returns the reported coordinates.
func (c ReportLocationCommand) Position() kernel.GeoPoint {
	return c.position
}

// Heading returns the reported heading in degrees, or nil.
func (c ReportLocationCommand) Heading() *float64 {
	return copyFloat(c.heading)
}

// Speed returns the reported speed in meters per second, or nil.
func (c ReportLocationCommand) Speed() *float64 {
	return copyFloat(c.speed)
}

// Accuracy returns the reported GPS accuracy in meters, or nil.
func (c ReportLocationCommand) Accuracy() *float64 {
	return copyFloat(c.accuracy)
}

func (c *ReportLocationCommand) setBusinessID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("businessID", err)
	}

	c.businessID = id
	return nil
}

func (c *ReportLocationCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("deliveryID", err)
	}

	c.deliveryID = id
	return nil
}

func (c *ReportLocationCommand) setPosition(position kernel.GeoPoint) error {
	if err := position.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("position", err)
	}

	c.position = position
	return nil
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
