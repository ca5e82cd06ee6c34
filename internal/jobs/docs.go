// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the delivery engine.
//
// # Available Jobs
//
// 1. DeliveryAssignmentJob - Sweeps accepted deliveries still waiting for a
// courier and runs auto-assignment on each.
// 2. StaleCourierJob - Forces couriers offline when their position reports
// have gone silent, keeping stale candidates out of assignment scoring.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(params, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Both jobs are best-effort sweeps: a failure on one item is logged and the
// sweep continues. Skipped assignments (no couriers, lost races) are
// outcomes, not errors, and are not logged as failures.
package jobs
