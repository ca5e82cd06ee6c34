package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var ErrCreateDeliveryCommandIsNotConstructed = errors.New(
	"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
)

// CreateDeliveryCommand represents a request to open a delivery for an order.
// Pickup coordinates are required; drop-off coordinates may still be
// unresolved at creation time. The order amount is carried for fee pricing
// against the zone's free-delivery threshold.
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID     kernel.UUID
	businessID     kernel.UUID
	orderID        kernel.UUID
	pickupAddress  string
	pickupPoint    kernel.GeoPoint
	dropoffAddress string
	dropoffPoint   *kernel.GeoPoint
	customerName   string
	customerPhone  string
	orderAmount    float64

	guard kernel.ConstructorGuard
}

// NewCreateDeliveryCommandParams carries the input for NewCreateDeliveryCommand.
type NewCreateDeliveryCommandParams struct {
	BusinessID     kernel.UUID
	OrderID        kernel.UUID
	PickupAddress  string
	PickupPoint    kernel.GeoPoint
	DropoffAddress string
	DropoffPoint   *kernel.GeoPoint
	CustomerName   string
	CustomerPhone  string
	OrderAmount    float64
}

// NewCreateDeliveryCommand creates a delivery-creation command.
// Automatically generates a unique ID for the delivery.
func NewCreateDeliveryCommand(p NewCreateDeliveryCommandParams) (CreateDeliveryCommand, error) {
	command := CreateDeliveryCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDeliveryID(kernel.NewUUID()),
		command.setBusinessID(p.BusinessID),
		command.setOrderID(p.OrderID),
		command.setPickup(p.PickupAddress, p.PickupPoint),
		command.setDropoff(p.DropoffAddress, p.DropoffPoint),
		command.setCustomer(p.CustomerName, p.CustomerPhone),
		command.setOrderAmount(p.OrderAmount),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the generated delivery ID.
func (c CreateDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// BusinessID returns the owning business scope.
func (c CreateDeliveryCommand) BusinessID() kernel.UUID {
	return c.businessID
}

// OrderID returns the originating order.
func (c CreateDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PickupAddress returns the pickup address.
func (c CreateDeliveryCommand) PickupAddress() string {
	return c.pickupAddress
}

// PickupPoint returns the pickup coordinates.
func (c CreateDeliveryCommand) PickupPoint() kernel.GeoPoint {
	return c.pickupPoint
}

// DropoffAddress returns the drop-off address.
func (c CreateDeliveryCommand) DropoffAddress() string {
	return c.dropoffAddress
}

// DropoffPoint returns the drop-off coordinates, or nil while unresolved.
func (c CreateDeliveryCommand) DropoffPoint() *kernel.GeoPoint {
	if c.dropoffPoint == nil {
		return nil
	}
	p := *c.dropoffPoint
	return &p
}

// CustomerName returns the customer's name.
func (c CreateDeliveryCommand) CustomerName() string {
	return c.customerName
}

// CustomerPhone returns the customer's phone number.
func (c CreateDeliveryCommand) CustomerPhone() string {
	return c.customerPhone
}

// OrderAmount returns the order total used for fee pricing.
func (c CreateDeliveryCommand) OrderAmount() float64 {
	return c.orderAmount
}

func (c *CreateDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.deliveryID = id
	return nil
}

func (c *CreateDeliveryCommand) setBusinessID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("businessID", err)
	}

	c.businessID = id
	return nil
}

func (c *CreateDeliveryCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}

	c.orderID = id
	return nil
}

func (c *CreateDeliveryCommand) setPickup(address string, point kernel.GeoPoint) error {
	if address == "" {
		return errs.NewValueIsRequiredError("pickupAddress")
	}
	if err := point.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("pickupPoint", err)
	}

	c.pickupAddress = address
	c.pickupPoint = point
	return nil
}

func (c *CreateDeliveryCommand) setDropoff(address string, point *kernel.GeoPoint) error {
	if address == "" {
		return errs.NewValueIsRequiredError("dropoffAddress")
	}
	if point != nil {
		if err := point.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("dropoffPoint", err)
		}
		p := *point
		c.dropoffPoint = &p
	}

	c.dropoffAddress = address
	return nil
}

func (c *CreateDeliveryCommand) setCustomer(name, phone string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("customerName")
	}

	c.customerName = name
	c.customerPhone = phone
	return nil
}

func (c *CreateDeliveryCommand) setOrderAmount(amount float64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderAmount",
			errors.New("order amount cannot be negative"))
	}

	c.orderAmount = amount
	return nil
}
