package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// ReportCourierStatusCommandHandler applies courier shift changes. The
// aggregate enforces the rules: busy cannot be reported, a courier holding a
// delivery cannot leave, and a disabled courier cannot go on shift. The new
// status is broadcast to the business's realtime subscribers.
type ReportCourierStatusCommandHandler struct {
	uowFactory  CourierUoWFactory
	broadcaster ports.Broadcaster
}

// NewReportCourierStatusCommandHandler creates a handler for courier status reports.
func NewReportCourierStatusCommandHandler(uowFactory CourierUoWFactory, broadcaster ports.Broadcaster) ReportCourierStatusCommandHandler {
	return ReportCourierStatusCommandHandler{
		uowFactory:  uowFactory,
		broadcaster: broadcaster,
	}
}

// Handle processes the status report within a transaction.
func (h ReportCourierStatusCommandHandler) Handle(ctx context.Context, cmd ReportCourierStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	courierEntity, err := courierRepo.Get(ctx, cmd.BusinessID(), cmd.CourierID())
	if err != nil {
		return err
	}

	if err = courierEntity.ChangeStatus(cmd.Status()); err != nil {
		return err
	}

	if err = courierRepo.Update(ctx, courierEntity); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.broadcaster.Publish(cmd.BusinessID(), ports.EventCourierStatus, map[string]any{
		"courier_id": cmd.CourierID().String(),
		"status":     cmd.Status().String(),
	})

	return nil
}
