package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// CompleteDeliveryCommandHandler marks a delivery as delivered and credits
// the courier: active-delivery reference cleared, status back to available,
// both completion counters incremented.
type CompleteDeliveryCommandHandler struct {
	uowFactory  UoWFactory
	broadcaster ports.Broadcaster
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery completion.
func NewCompleteDeliveryCommandHandler(uowFactory UoWFactory, broadcaster ports.Broadcaster) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory:  uowFactory,
		broadcaster: broadcaster,
	}
}

// Handle processes the completion command within a transaction.
func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, command CompleteDeliveryCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()
	deliveryEntity, err := deliveryRepo.Get(ctx, command.BusinessID(), command.DeliveryID())
	if err != nil {
		return err
	}

	courierID := deliveryEntity.CourierID()

	if err = deliveryEntity.MarkDelivered(command.ProofRef()); err != nil {
		return err
	}

	if courierID != nil {
		courierRepo := uow.CourierRepository()
		courierEntity, err := courierRepo.Get(ctx, command.BusinessID(), *courierID)
		if err != nil {
			return err
		}
		if err = courierEntity.CompleteDelivery(deliveryEntity.ID()); err != nil {
			return err
		}
		if err = courierRepo.Update(ctx, courierEntity); err != nil {
			return err
		}
	}

	if err = deliveryRepo.Update(ctx, deliveryEntity); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.broadcaster.Publish(command.BusinessID(), ports.EventDeliveryStatus, map[string]any{
		"delivery_id": deliveryEntity.ID().String(),
		"status":      deliveryEntity.Status().String(),
	})

	return nil
}
