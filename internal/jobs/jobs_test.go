package jobs

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"kiosk/internal/adapters/out/notify"
	"kiosk/internal/core/application/usecases/queries"
	"kiosk/internal/core/domain/model/kernel"
	"kiosk/internal/core/domain/model/order"
	"kiosk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRetrier struct{ mock.Mock }

func (m *MockRetrier) RetryPending(ctx context.Context) notify.RetryReport {
	return m.Called(ctx).Get(0).(notify.RetryReport)
}

func (m *MockRetrier) Pending() int {
	return m.Called().Int(0)
}

type gaugeRecorder struct {
	pending []int
	counts  []map[order.Status]int
}

func (g *gaugeRecorder) SetPendingNotifications(n int) { g.pending = append(g.pending, n) }

func (g *gaugeRecorder) SetQueueLengths(counts map[order.Status]int) {
	g.counts = append(g.counts, counts)
}

type readerFunc func(ctx context.Context) ([]*order.Order, error)

func (f readerFunc) GetAll(ctx context.Context) ([]*order.Order, error) { return f(ctx) }

func restoredOrder(t *testing.T, status order.Status, seq int64) *order.Order {
	t.Helper()
	at := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	id := kernel.NewUUID()
	item, err := order.RestoreLineItem(kernel.NewUUID(), id, "tea", "Tea", kernel.MustMoney("2"), 1)
	require.NoError(t, err)
	o, err := order.RestoreOrder(id, order.NewToken(at), order.Standard, status, kernel.MustMoney("2"), at, at, seq,
		[]*order.LineItem{item})
	require.NoError(t, err)
	return o
}

func TestNotificationRetryJob_Run(t *testing.T) {
	t.Run("retries pending notifications and reports what is left", func(t *testing.T) {
		retrier := new(MockRetrier)
		retrier.On("Pending").Return(2).Once()
		retrier.On("RetryPending", mock.Anything).Return(notify.RetryReport{Delivered: 1, Failed: 1}).Once()
		retrier.On("Pending").Return(1).Once()
		gauge := &gaugeRecorder{}
		job := NewNotificationRetryJob(retrier, gauge, time.Second, slog.Default())

		job.run(t.Context())

		retrier.AssertExpectations(t)
		assert.Equal(t, []int{1}, gauge.pending)
	})

	t.Run("skips the pass when nothing is pending", func(t *testing.T) {
		retrier := new(MockRetrier)
		retrier.On("Pending").Return(0)
		job := NewNotificationRetryJob(retrier, nil, time.Second, slog.Default())

		job.run(t.Context())

		retrier.AssertNotCalled(t, "RetryPending", mock.Anything)
	})
}

func TestNotificationRetryJob_StopCancelsRunningPass(t *testing.T) {
	started := make(chan struct{})
	retrier := new(MockRetrier)
	retrier.On("Pending").Return(1)
	retrier.On("RetryPending", mock.Anything).
		Run(func(args mock.Arguments) {
			close(started)
			<-args.Get(0).(context.Context).Done()
		}).
		Return(notify.RetryReport{}).Once()
	job := NewNotificationRetryJob(retrier, nil, time.Second, slog.Default())

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		job.run(job.ctx)
	}()
	<-started
	job.Stop()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("retry pass kept running after Stop")
	}
}

func TestQueueMetricsJob_Run(t *testing.T) {
	t.Run("publishes counts per status", func(t *testing.T) {
		snapshot := []*order.Order{
			restoredOrder(t, order.Queued, 1),
			restoredOrder(t, order.Queued, 2),
			restoredOrder(t, order.InPreparation, 3),
			restoredOrder(t, order.Ready, 4),
		}
		handler := queries.NewGetQueueBoardQueryHandler(readerFunc(func(context.Context) ([]*order.Order, error) {
			return snapshot, nil
		}))
		gauge := &gaugeRecorder{}

		NewQueueMetricsJob(handler, gauge, time.Second, slog.Default()).run(t.Context())

		require.Len(t, gauge.counts, 1)
		assert.Equal(t, map[order.Status]int{order.Queued: 2, order.InPreparation: 1, order.Ready: 1}, gauge.counts[0])
	})

	t.Run("storage failure keeps previous values", func(t *testing.T) {
		handler := queries.NewGetQueueBoardQueryHandler(readerFunc(func(context.Context) ([]*order.Order, error) {
			return nil, errs.NewStorageUnavailableError("get all orders", errors.New("down"))
		}))
		gauge := &gaugeRecorder{}

		NewQueueMetricsJob(handler, gauge, 0, slog.Default()).run(t.Context())

		assert.Empty(t, gauge.counts)
	})
}

type fakeJob struct {
	name     string
	startErr error
	log      *[]string
}

func (j fakeJob) Start() error {
	*j.log = append(*j.log, "start "+j.name)
	return j.startErr
}

func (j fakeJob) Stop() { *j.log = append(*j.log, "stop "+j.name) }

func TestJobManager(t *testing.T) {
	t.Run("starts in order and stops in reverse", func(t *testing.T) {
		var log []string
		jm := NewJobManager(fakeJob{name: "a", log: &log}, fakeJob{name: "b", log: &log})

		require.NoError(t, jm.StartAll())
		jm.StopAll()

		assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, log)
	})

	t.Run("failed start stops the started jobs", func(t *testing.T) {
		var log []string
		jm := NewJobManager(
			fakeJob{name: "a", log: &log},
			fakeJob{name: "b", log: &log, startErr: errors.New("bad schedule")},
			fakeJob{name: "c", log: &log},
		)

		require.Error(t, jm.StartAll())

		assert.Equal(t, []string{"start a", "start b", "stop a"}, log)
	})
}

func TestJobs_StartAndStop(t *testing.T) {
	retrier := new(MockRetrier)
	retrier.On("Pending").Return(0).Maybe()
	job := NewNotificationRetryJob(retrier, nil, time.Second, slog.Default())

	require.NoError(t, job.Start())
	job.Stop()
}

func TestEverySpec(t *testing.T) {
	assert.Equal(t, "@every 30s", everySpec(30*time.Second))
	assert.Equal(t, "@every 1s", everySpec(0))
}
