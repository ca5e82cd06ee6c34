package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// StaleCourierSource lists couriers whose last position report is older than
// the cutoff. Busy couriers are excluded: they cannot be forced offline
// while holding a delivery.
type StaleCourierSource interface {
	GetAllStale(ctx context.Context, cutoff time.Time) ([]*courier.Courier, error)
}

// StaleCourierJob periodically forces couriers offline when their position
// reports have gone silent, so stale candidates stop appearing in
// assignment scoring.
type StaleCourierJob struct {
	source   StaleCourierSource
	handler  commands.ReportCourierStatusCommandHandler
	cron     *cron.Cron
	logger   *slog.Logger
	staleAge time.Duration
}

// NewStaleCourierJob creates the stale-courier job. staleAge is how long a
// courier may go without a position report before being taken offline.
func NewStaleCourierJob(
	source StaleCourierSource,
	handler commands.ReportCourierStatusCommandHandler,
	staleAge time.Duration,
	logger *slog.Logger,
) *StaleCourierJob {
	return &StaleCourierJob{
		source:   source,
		handler:  handler,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "stale_courier_job"),
		staleAge: staleAge,
	}
}

// Start schedules the job at the given interval.
func (j *StaleCourierJob) Start(interval time.Duration) error {
	_, err := j.cron.AddFunc(fmt.Sprintf("@every %s", interval), j.sweep)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Stale courier job started",
		"interval", interval.String(), "stale_age", j.staleAge.String())
	return nil
}

// Stop stops the job.
func (j *StaleCourierJob) Stop() {
	j.cron.Stop()
	j.logger.Info("Stale courier job stopped")
}

func (j *StaleCourierJob) sweep() {
	ctx := context.Background()
	cutoff := time.Now().UTC().Add(-j.staleAge)

	stale, err := j.source.GetAllStale(ctx, cutoff)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale courier sweep failed to list couriers", "error", err)
		return
	}

	for _, c := range stale {
		cmd, cmdErr := commands.NewReportCourierStatusCommand(c.BusinessID(), c.ID(), courier.StatusOffline)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Stale courier sweep built invalid command",
				"courier_id", c.ID().String(), "error", cmdErr)
			continue
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			// A courier that picked up work between the listing and the
			// update keeps its status.
			if errors.Is(handleErr, courier.ErrCourierHasActiveDelivery) ||
				errors.Is(handleErr, errs.ErrPreconditionFailed) {
				continue
			}
			j.logger.ErrorContext(ctx, "Failed to take stale courier offline",
				"courier_id", c.ID().String(), "error", handleErr)
			continue
		}

		j.logger.InfoContext(ctx, "Stale courier taken offline", "courier_id", c.ID().String())
	}
}
