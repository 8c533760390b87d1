// Package jobs provides scheduled background tasks for the delivery path
// service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// RegionRefreshJob reloads the central area, the no-fly zones and the
// restaurants from the data provider and replaces the in-memory snapshot.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(refreshHandler, cfg.RegionRefreshCron, logger)
//
//	// Load region data before serving; on failure requests load it lazily
//	if err := jobManager.Warmup(ctx); err != nil {
//		logger.Warn("initial region load failed", "error", err)
//	}
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use six fields, seconds first. The default "0 */5 * * * *" runs
// every five minutes; descriptors such as "@every 1m" are accepted too.
//
// # Error Handling
//
// A failed refresh is logged and the previous snapshot stays in use.
package jobs
