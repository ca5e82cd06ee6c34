package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	assignmentJob   *DeliveryAssignmentJob
	staleCourierJob *StaleCourierJob

	assignmentInterval time.Duration
	staleSweepInterval time.Duration
}

// JobManagerParams bundles the sources, handlers, and intervals of the jobs.
type JobManagerParams struct {
	AssignmentSource   AwaitingAssignmentSource
	AutoAssignHandler  commands.AutoAssignCommandHandler
	AssignmentInterval time.Duration

	StaleSource         StaleCourierSource
	ReportStatusHandler commands.ReportCourierStatusCommandHandler
	StaleAge            time.Duration
	StaleSweepInterval  time.Duration
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(p JobManagerParams, logger *slog.Logger) *JobManager {
	return &JobManager{
		assignmentJob:      NewDeliveryAssignmentJob(p.AssignmentSource, p.AutoAssignHandler, logger),
		staleCourierJob:    NewStaleCourierJob(p.StaleSource, p.ReportStatusHandler, p.StaleAge, logger),
		assignmentInterval: p.AssignmentInterval,
		staleSweepInterval: p.StaleSweepInterval,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.assignmentJob.Start(jm.assignmentInterval); err != nil {
		return fmt.Errorf("failed to start delivery assignment job: %w", err)
	}

	if err := jm.staleCourierJob.Start(jm.staleSweepInterval); err != nil {
		// Stop already started jobs if this one fails
		jm.assignmentJob.Stop()
		return fmt.Errorf("failed to start stale courier job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.staleCourierJob.Stop()
	jm.assignmentJob.Stop()
}
