package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/zone"
	"dispatch/internal/core/ports"
)

const metersPerKilometer = 1000.0

// ErrOrderBelowMinimum is returned when the order total is below the zone's
// minimum order amount.
var ErrOrderBelowMinimum = errors.New("order amount is below the zone minimum")

// CreateDeliveryResult reports the outcome of delivery creation: the new
// delivery ID, the public tracking token, the priced fee, and the zone that
// priced it.
type CreateDeliveryResult struct {
	DeliveryID    kernel.UUID
	TrackingToken string
	Fee           float64
	ZoneID        kernel.UUID
}

// CreateDeliveryCommandHandler opens deliveries: resolves the service zone,
// prices the fee, creates the aggregate in pending status, and immediately
// accepts it. The zone is resolved against the drop-off point when known,
// otherwise against the pickup point.
type CreateDeliveryCommandHandler struct {
	uowFactory  CreateDeliveryUoWFactory
	broadcaster ports.Broadcaster
}

// NewCreateDeliveryCommandHandler creates a handler for delivery creation.
func NewCreateDeliveryCommandHandler(uowFactory CreateDeliveryUoWFactory, broadcaster ports.Broadcaster) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory:  uowFactory,
		broadcaster: broadcaster,
	}
}

// Handle processes the delivery creation command.
func (h CreateDeliveryCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryCommand) (CreateDeliveryResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateDeliveryResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateDeliveryResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	zones, err := uow.ZoneRepository().GetAllEnabled(ctx, cmd.BusinessID())
	if err != nil {
		return CreateDeliveryResult{}, err
	}

	pricingPoint := cmd.PickupPoint()
	if dropoff := cmd.DropoffPoint(); dropoff != nil {
		pricingPoint = *dropoff
	}

	servingZone, err := zone.FirstContaining(zones, pricingPoint)
	if err != nil {
		return CreateDeliveryResult{}, err
	}
	if !servingZone.AcceptsOrderAmount(cmd.OrderAmount()) {
		return CreateDeliveryResult{}, ErrOrderBelowMinimum
	}

	tripKm, err := tripDistanceKm(cmd.PickupPoint(), cmd.DropoffPoint())
	if err != nil {
		return CreateDeliveryResult{}, err
	}
	fee := servingZone.DeliveryFee(tripKm, cmd.OrderAmount())

	deliveryEntity, err := delivery.NewDelivery(delivery.NewDeliveryParams{
		ID:             cmd.DeliveryID(),
		BusinessID:     cmd.BusinessID(),
		OrderID:        cmd.OrderID(),
		PickupAddress:  cmd.PickupAddress(),
		PickupPoint:    cmd.PickupPoint(),
		DropoffAddress: cmd.DropoffAddress(),
		DropoffPoint:   cmd.DropoffPoint(),
		CustomerName:   cmd.CustomerName(),
		CustomerPhone:  cmd.CustomerPhone(),
		Fee:            fee,
	})
	if err != nil {
		return CreateDeliveryResult{}, err
	}

	if err = deliveryEntity.Accept(); err != nil {
		return CreateDeliveryResult{}, err
	}

	if err = uow.DeliveryRepository().Add(ctx, deliveryEntity); err != nil {
		return CreateDeliveryResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateDeliveryResult{}, err
	}

	h.broadcaster.Publish(cmd.BusinessID(), ports.EventDeliveryCreated, map[string]any{
		"delivery_id": deliveryEntity.ID().String(),
		"order_id":    deliveryEntity.OrderID().String(),
		"status":      deliveryEntity.Status().String(),
		"fee":         fee,
	})

	return CreateDeliveryResult{
		DeliveryID:    deliveryEntity.ID(),
		TrackingToken: deliveryEntity.TrackingToken(),
		Fee:           fee,
		ZoneID:        servingZone.ID(),
	}, nil
}

func tripDistanceKm(pickup kernel.GeoPoint, dropoff *kernel.GeoPoint) (float64, error) {
	if dropoff == nil {
		return 0, nil
	}
	meters, err := pickup.DistanceTo(*dropoff)
	if err != nil {
		return 0, err
	}
	return meters / metersPerKilometer, nil
}
