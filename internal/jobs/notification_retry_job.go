package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"kiosk/internal/adapters/out/notify"

	"github.com/robfig/cron/v3"
)

// NotificationRetrier is implemented by notify.RetryingGateway.
type NotificationRetrier interface {
	RetryPending(ctx context.Context) notify.RetryReport
	Pending() int
}

// PendingGauge receives the number of notifications still waiting.
type PendingGauge interface {
	SetPendingNotifications(n int)
}

// NotificationRetryJob retries ready notifications that failed when the order
// was marked ready.
type NotificationRetryJob struct {
	retrier  NotificationRetrier
	gauge    PendingGauge
	interval time.Duration
	cron     *cron.Cron
	logger   *slog.Logger

	// ctx is cancelled by Stop so a pass stuck on the broker ends.
	ctx    context.Context
	cancel context.CancelFunc
}

// NewNotificationRetryJob creates the job. gauge may be nil.
func NewNotificationRetryJob(
	retrier NotificationRetrier,
	gauge PendingGauge,
	interval time.Duration,
	logger *slog.Logger,
) *NotificationRetryJob {
	ctx, cancel := context.WithCancel(context.Background())
	return &NotificationRetryJob{
		retrier:  retrier,
		gauge:    gauge,
		interval: interval,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "notification_retry_job"),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start schedules the retry pass every interval.
func (j *NotificationRetryJob) Start() error {
	if _, err := j.cron.AddFunc(everySpec(j.interval), func() { j.run(j.ctx) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification retry job started", "interval", j.interval.String())
	return nil
}

// Stop cancels a running pass and waits for it to finish.
func (j *NotificationRetryJob) Stop() {
	j.cancel()
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Notification retry job stopped")
}

func (j *NotificationRetryJob) run(ctx context.Context) {
	if j.retrier.Pending() > 0 {
		report := j.retrier.RetryPending(ctx)
		if report.Failed > 0 || report.Abandoned > 0 {
			j.logger.WarnContext(ctx, "Notification retry pass finished with failures",
				"delivered", report.Delivered,
				"failed", report.Failed,
				"abandoned", report.Abandoned,
			)
		}
	}
	if j.gauge != nil {
		j.gauge.SetPendingNotifications(j.retrier.Pending())
	}
}

// everySpec turns an interval into a cron descriptor, at least one second.
func everySpec(interval time.Duration) string {
	if interval < time.Second {
		interval = time.Second
	}
	return fmt.Sprintf("@every %s", interval)
}
