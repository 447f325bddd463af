// Package jobs provides scheduled background tasks for the ordering assistant.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. CartEvictionJob - drops in-memory carts that have not been touched for the
// configured idle period
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	evictionJob := jobs.NewCartEvictionJob(evictHandler, 30*time.Minute, "", logger)
//	jobManager := jobs.NewJobManager(evictionJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are six-field cron expressions with a leading seconds field. The
// eviction job defaults to "0 * * * * *" (once a minute).
//
// # Error Handling
//
// - A failing eviction is logged and retried on the next tick
// - Failed job starts will stop any already running jobs
package jobs
