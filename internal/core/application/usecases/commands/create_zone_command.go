package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/zone"
	"dispatch/internal/pkg/errs"
)

var ErrCreateZoneCommandIsNotConstructed = errors.New(
	"CreateZoneCommand must be created via NewCreateZoneCommand constructor",
)

// CreateZoneCommand represents a request to define a service zone for a
// business. Geometry is carried as-is; the zone constructors validate it when
// the handler builds the aggregate, so degenerate shapes fail there rather
// than at lookup time.
type CreateZoneCommand struct { //nolint:recvcheck //using for validation
	zoneID     kernel.UUID
	businessID kernel.UUID
	name       string

	shape        zone.Shape
	center       *kernel.GeoPoint
	radiusMeters float64
	ring         []kernel.GeoPoint

	pricing  zone.Pricing
	priority int

	minDeliveryMinutes int
	maxDeliveryMinutes int

	guard kernel.ConstructorGuard
}

// NewCreateZoneCommandParams carries the input for NewCreateZoneCommand.
type NewCreateZoneCommandParams struct {
	BusinessID kernel.UUID
	Name       string

	Shape        zone.Shape
	Center       *kernel.GeoPoint
	RadiusMeters float64
	Ring         []kernel.GeoPoint

	Pricing  zone.Pricing
	Priority int

	MinDeliveryMinutes int
	MaxDeliveryMinutes int
}

// NewCreateZoneCommand creates a zone-creation command.
// Automatically generates a unique ID for the zone.
func NewCreateZoneCommand(p NewCreateZoneCommandParams) (CreateZoneCommand, error) {
	command := CreateZoneCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setZoneID(kernel.NewUUID()),
		command.setBusinessID(p.BusinessID),
		command.setName(p.Name),
		command.setShape(p.Shape),
	); err != nil {
		return CreateZoneCommand{}, err
	}

	if p.Center != nil {
		center := *p.Center
		command.center = &center
	}
	command.radiusMeters = p.RadiusMeters
	if p.Ring != nil {
		command.ring = make([]kernel.GeoPoint, len(p.Ring))
		copy(command.ring, p.Ring)
	}
	command.pricing = p.Pricing
	command.priority = p.Priority
	command.minDeliveryMinutes = p.MinDeliveryMinutes
	command.maxDeliveryMinutes = p.MaxDeliveryMinutes

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateZoneCommand) Validate() error {
	return c.guard.Validate(ErrCreateZoneCommandIsNotConstructed)
}

// ZoneID returns the generated zone ID.
func (c CreateZoneCommand) ZoneID() kernel.UUID {
	return c.zoneID
}

// BusinessID returns the owning business scope.
func (c CreateZoneCommand) BusinessID() kernel.UUID {
	return c.businessID
}

// Name returns the zone's display name.
func (c CreateZoneCommand) Name() string {
	return c.name
}

// Shape returns the geometry discriminator.
func (c CreateZoneCommand) Shape() zone.Shape {
	return c.shape
}

// Center returns the radius-shape center, or nil.
func (c CreateZoneCommand) Center() *kernel.GeoPoint {
	if c.center == nil {
		return nil
	}
	center := *c.center
	return &center
}

// RadiusMeters returns the radius for radius shapes.
func (c CreateZoneCommand) RadiusMeters() float64 {
	return c.radiusMeters
}

// Ring returns a copy of the polygon ring, or nil.
func (c CreateZoneCommand) Ring() []kernel.GeoPoint {
	if c.ring == nil {
		return nil
	}
	ring := make([]kernel.GeoPoint, len(c.ring))
	copy(ring, c.ring)
	return ring
}

// Pricing returns the requested fee parameters.
func (c CreateZoneCommand) Pricing() zone.Pricing {
	return c.pricing
}

// Priority returns the overlap priority.
func (c CreateZoneCommand) Priority() int {
	return c.priority
}

// MinDeliveryMinutes returns the lower bound of the advertised window.
func (c CreateZoneCommand) MinDeliveryMinutes() int {
	return c.minDeliveryMinutes
}

// MaxDeliveryMinutes returns the upper bound of the advertised window.
func (c CreateZoneCommand) MaxDeliveryMinutes() int {
	return c.maxDeliveryMinutes
}

func (c *CreateZoneCommand) setZoneID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.zoneID = id
	return nil
}

func (c *CreateZoneCommand) setBusinessID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("businessID", err)
	}

	c.businessID = id
	return nil
}

func (c *CreateZoneCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}

func (c *CreateZoneCommand) setShape(shape zone.Shape) error {
	if shape != zone.ShapeRadius && shape != zone.ShapePolygon {
		return errs.NewValueIsInvalidErrorWithCause("shape",
			fmt.Errorf("%q is not a valid zone shape", string(shape)))
	}

	c.shape = shape
	return nil
}
