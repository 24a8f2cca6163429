package jobs

import (
	"context"
	"log/slog"
	"time"

	"kiosk/internal/core/application/usecases/queries"
	"kiosk/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

// QueueGauge receives order counts per status.
type QueueGauge interface {
	SetQueueLengths(counts map[order.Status]int)
}

// QueueMetricsJob samples the board and publishes its sizes.
type QueueMetricsJob struct {
	handler  queries.GetQueueBoardQueryHandler
	gauge    QueueGauge
	interval time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewQueueMetricsJob(
	handler queries.GetQueueBoardQueryHandler,
	gauge QueueGauge,
	interval time.Duration,
	logger *slog.Logger,
) *QueueMetricsJob {
	return &QueueMetricsJob{
		handler:  handler,
		gauge:    gauge,
		interval: interval,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "queue_metrics_job"),
	}
}

// Start schedules sampling every interval.
func (j *QueueMetricsJob) Start() error {
	if _, err := j.cron.AddFunc(everySpec(j.interval), func() { j.run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Queue metrics job started", "interval", j.interval.String())
	return nil
}

// Stop stops the job and waits for a running sample to finish.
func (j *QueueMetricsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Queue metrics job stopped")
}

func (j *QueueMetricsJob) run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, max(j.interval, time.Second))
	defer cancel()

	board, err := j.handler.Handle(ctx, queries.NewGetQueueBoardQuery())
	if err != nil {
		// Keep the last published values; a gap is better than a false zero.
		j.logger.ErrorContext(ctx, "Queue metrics job failed", "error", err)
		return
	}

	j.gauge.SetQueueLengths(map[order.Status]int{
		order.Queued:        len(board.Queued),
		order.InPreparation: len(board.InPreparation),
		order.Ready:         len(board.Ready),
	})
}
