package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// AssignCourierCommandHandler performs manual courier assignment. The write
// is serialized through conditional updates: the delivery row commits only if
// it is still in its pre-assignment status, the courier row only if the
// courier is still available. A lost race surfaces as ErrAlreadyAssigned or
// ErrCourierUnavailable instead of silently overwriting the winner.
//
// Example:
//
//	handler := NewAssignCourierCommandHandler(uowFactory, broadcaster)
//	cmd, _ := NewAssignCourierCommand(businessID, deliveryID, courierID)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, delivery.ErrAlreadyAssigned):
//	    log.Println("Another operator got there first")
//	case errors.Is(err, courier.ErrCourierUnavailable):
//	    log.Println("Courier is no longer available")
//	case err != nil:
//	    log.Printf("Assignment failed: %v", err)
//	}
type AssignCourierCommandHandler struct {
	uowFactory  UoWFactory
	broadcaster ports.Broadcaster
}

// NewAssignCourierCommandHandler creates a handler for manual assignment operations.
func NewAssignCourierCommandHandler(uowFactory UoWFactory, broadcaster ports.Broadcaster) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory:  uowFactory,
		broadcaster: broadcaster,
	}
}

// Handle processes the manual assignment command.
func (h AssignCourierCommandHandler) Handle(ctx context.Context, command AssignCourierCommand) error {
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
	courierRepo := uow.CourierRepository()

	deliveryEntity, err := deliveryRepo.Get(ctx, command.BusinessID(), command.DeliveryID())
	if err != nil {
		return err
	}

	courierEntity, err := courierRepo.Get(ctx, command.BusinessID(), command.CourierID())
	if err != nil {
		return err
	}

	if err = applyAssignment(ctx, uow, deliveryEntity, courierEntity); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.broadcaster.Publish(command.BusinessID(), ports.EventDeliveryAssigned, map[string]any{
		"delivery_id": deliveryEntity.ID().String(),
		"courier_id":  courierEntity.ID().String(),
	})

	return nil
}

// applyAssignment runs the assignment transition on both aggregates and
// persists them conditionally on the statuses the aggregates were loaded
// with. Shared by manual and automatic assignment so both paths funnel
// through the same preconditions.
func applyAssignment(ctx context.Context, uow UoW, deliveryEntity *delivery.Delivery, courierEntity *courier.Courier) error {
	expectedDeliveryStatus := deliveryEntity.Status()
	expectedCourierStatus := courierEntity.Status()

	if err := deliveryEntity.Assign(courierEntity.ID()); err != nil {
		return err
	}
	if err := courierEntity.AssignDelivery(deliveryEntity.ID()); err != nil {
		return err
	}

	err := uow.DeliveryRepository().UpdateIfStatus(ctx, deliveryEntity, expectedDeliveryStatus)
	if errors.Is(err, errs.ErrPreconditionFailed) {
		return delivery.ErrAlreadyAssigned
	}
	if err != nil {
		return err
	}

	err = uow.CourierRepository().UpdateIfStatus(ctx, courierEntity, expectedCourierStatus)
	if errors.Is(err, errs.ErrPreconditionFailed) {
		return courier.ErrCourierUnavailable
	}
	return err
}
