// Package jobs provides scheduled background tasks for the marketplace bot.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. SessionCleanupJob - Runs hourly to delete buyer sessions idle past the TTL
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(sessionRepository, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Cleanup failures are logged and retried on the next tick; they never stop
// the scheduler.
package jobs
