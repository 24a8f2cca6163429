// Package jobs provides scheduled background tasks for the kiosk.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. NotificationRetryJob - retries ready notifications that failed, every NOTIFY_RETRY_INTERVAL
// 2. QueueMetricsJob - publishes order counts per status, every QUEUE_METRICS_INTERVAL
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewNotificationRetryJob(retryingGateway, collector, 30*time.Second, logger),
//		jobs.NewQueueMetricsJob(boardHandler, collector, 15*time.Second, logger),
//	)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - The retry job logs passes with failures; abandoned notifications are logged by the gateway
// - The metrics job logs storage failures and keeps the previous gauge values
// - Failed job starts stop any already running jobs
package jobs
