// Package jobs provides scheduled background tasks for the transport order
// service.
//
// Jobs are cron-based and use github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// 1. DispatchJob - delivers queued documents to the exchange (default every 30 seconds)
// 2. RuleReloadJob - clears the parsed rule data so an on-disk rule directory is re-read
//
// # Usage
//
//	jobManager := jobs.NewJobManager().
//		Add("dispatch", jobs.NewDispatchJob(dispatchHandler, schedule, 100, m, logger))
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Dispatch failures are logged and counted; the next tick tries again
// - Overlapping dispatch runs are skipped
// - Failed job starts stop any already running jobs
package jobs
