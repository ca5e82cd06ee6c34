package commands

import (
	"context"
)

// RateDeliveryCommandHandler records the customer rating on the delivery,
// exactly once and only after completion, and folds the score into the
// courier's running average.
type RateDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

// NewRateDeliveryCommandHandler creates a handler for delivery ratings.
func NewRateDeliveryCommandHandler(uowFactory UoWFactory) RateDeliveryCommandHandler {
	return RateDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the rating command within a transaction.
func (h RateDeliveryCommandHandler) Handle(ctx context.Context, command RateDeliveryCommand) error {
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

	if err = deliveryEntity.SetRating(command.Rating(), command.Feedback()); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, deliveryEntity); err != nil {
		return err
	}

	if courierID := deliveryEntity.CourierID(); courierID != nil {
		courierRepo := uow.CourierRepository()
		courierEntity, err := courierRepo.Get(ctx, command.BusinessID(), *courierID)
		if err != nil {
			return err
		}
		if err = courierEntity.ApplyRating(command.Rating()); err != nil {
			return err
		}
		if err = courierRepo.Update(ctx, courierEntity); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
