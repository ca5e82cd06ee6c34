package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/delivery"

	"github.com/robfig/cron/v3"
)

// AwaitingAssignmentSource lists accepted, unassigned deliveries across all
// businesses.
type AwaitingAssignmentSource interface {
	GetAllAwaitingAssignment(ctx context.Context) ([]*delivery.Delivery, error)
}

// DeliveryAssignmentJob periodically sweeps deliveries still waiting for a
// courier and runs auto-assignment on each. A sweep is best-effort: one
// delivery failing to assign does not stop the rest, and a skipped
// assignment (no couriers, lost race) is an outcome rather than an error.
type DeliveryAssignmentJob struct {
	source  AwaitingAssignmentSource
	handler commands.AutoAssignCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDeliveryAssignmentJob creates the assignment sweep job.
func NewDeliveryAssignmentJob(
	source AwaitingAssignmentSource,
	handler commands.AutoAssignCommandHandler,
	logger *slog.Logger,
) *DeliveryAssignmentJob {
	return &DeliveryAssignmentJob{
		source:  source,
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "delivery_assignment_job"),
	}
}

// Start schedules the sweep at the given interval.
func (j *DeliveryAssignmentJob) Start(interval time.Duration) error {
	_, err := j.cron.AddFunc(fmt.Sprintf("@every %s", interval), j.sweep)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Delivery assignment job started", "interval", interval.String())
	return nil
}

// Stop stops the assignment sweep.
func (j *DeliveryAssignmentJob) Stop() {
	j.cron.Stop()
	j.logger.Info("Delivery assignment job stopped")
}

func (j *DeliveryAssignmentJob) sweep() {
	ctx := context.Background()

	waiting, err := j.source.GetAllAwaitingAssignment(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Assignment sweep failed to list deliveries", "error", err)
		return
	}

	for _, d := range waiting {
		cmd, cmdErr := commands.NewAutoAssignCommand(d.BusinessID(), d.ID())
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Assignment sweep built invalid command",
				"delivery_id", d.ID().String(), "error", cmdErr)
			continue
		}

		result, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Auto-assignment failed",
				"delivery_id", d.ID().String(), "error", handleErr)
			continue
		}

		if result.Assigned {
			j.logger.InfoContext(ctx, "Delivery auto-assigned",
				"delivery_id", d.ID().String(), "courier_id", result.CourierID.String())
		}
	}
}
