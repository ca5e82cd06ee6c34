package commands

import (
	"context"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/ports"
)

// UpdateDeliveryStatusCommandHandler applies validated status transitions.
// The state machine rejects anything the transition table does not allow; on
// cancellation or failure an attached courier is released without touching
// its completion counters.
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory  UoWFactory
	broadcaster ports.Broadcaster
}

// NewUpdateDeliveryStatusCommandHandler creates a handler for status updates.
func NewUpdateDeliveryStatusCommandHandler(uowFactory UoWFactory, broadcaster ports.Broadcaster) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{
		uowFactory:  uowFactory,
		broadcaster: broadcaster,
	}
}

// Handle processes the status-change command within a transaction.
func (h UpdateDeliveryStatusCommandHandler) Handle(ctx context.Context, command UpdateDeliveryStatusCommand) error {
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

	if err = applyTransition(deliveryEntity, command.Target(), command.Reason()); err != nil {
		return err
	}

	// Aborting a delivery with a courier attached frees the courier without
	// crediting a completion.
	if command.Target().IsTerminal() && deliveryEntity.CourierID() != nil {
		courierRepo := uow.CourierRepository()
		courierEntity, err := courierRepo.Get(ctx, command.BusinessID(), *deliveryEntity.CourierID())
		if err != nil {
			return err
		}
		if err = courierEntity.ReleaseDelivery(deliveryEntity.ID()); err != nil {
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

func applyTransition(d *delivery.Delivery, target delivery.Status, reason string) error {
	switch target {
	case delivery.StatusPickingUp:
		return d.MarkPickingUp()
	case delivery.StatusPickedUp:
		return d.MarkPickedUp()
	case delivery.StatusOnTheWay:
		return d.MarkOnTheWay()
	case delivery.StatusNearby:
		return d.MarkNearby()
	case delivery.StatusCancelled:
		return d.Cancel(reason)
	case delivery.StatusFailed:
		return d.Fail(reason)
	default:
		return &delivery.InvalidTransitionError{From: d.Status(), To: target}
	}
}
