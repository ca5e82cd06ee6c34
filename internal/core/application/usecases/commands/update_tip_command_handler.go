package commands

import (
	"context"
)

// UpdateTipCommandHandler sets the tip on a delivery. Tips stay editable
// after completion, unlike the rating.
type UpdateTipCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewUpdateTipCommandHandler creates a handler for tip updates.
func NewUpdateTipCommandHandler(uowFactory DeliveryUoWFactory) UpdateTipCommandHandler {
	return UpdateTipCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the tip-update command within a transaction.
func (h UpdateTipCommandHandler) Handle(ctx context.Context, command UpdateTipCommand) error {
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

	if err = deliveryEntity.SetTip(command.Amount()); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, deliveryEntity); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
