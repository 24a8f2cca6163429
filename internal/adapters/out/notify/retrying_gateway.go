package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"kiosk/internal/core/ports"
)

const (
	// DefaultMaxAttempts bounds delivery attempts per token, the first call included.
	DefaultMaxAttempts = 5

	// DefaultAttemptTimeout bounds one retried delivery.
	DefaultAttemptTimeout = 5 * time.Second
)

type pendingNotification struct {
	token    string
	attempts int
	lastErr  error
}

// RetryingGateway forwards to the wrapped gateway. Failures are returned
// unchanged and remembered so RetryPending can try again later.
type RetryingGateway struct {
	next           ports.NotificationGateway
	maxAttempts    int
	attemptTimeout time.Duration
	logger         *slog.Logger

	mu      sync.Mutex
	pending []*pendingNotification
}

func NewRetryingGateway(next ports.NotificationGateway, maxAttempts int, logger *slog.Logger) *RetryingGateway {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RetryingGateway{
		next:           next,
		maxAttempts:    maxAttempts,
		attemptTimeout: DefaultAttemptTimeout,
		logger:         logger.With("component", "retrying_notifier"),
	}
}

// WithAttemptTimeout sets the deadline of each retried delivery. Non-positive
// values keep the current one. Call it before the gateway is shared.
func (g *RetryingGateway) WithAttemptTimeout(timeout time.Duration) *RetryingGateway {
	if timeout > 0 {
		g.attemptTimeout = timeout
	}
	return g
}

func (g *RetryingGateway) NotifyReady(ctx context.Context, token string) error {
	err := g.next.NotifyReady(ctx, token)
	if err == nil {
		return nil
	}
	if g.maxAttempts > 1 {
		g.mu.Lock()
		g.pending = append(g.pending, &pendingNotification{token: token, attempts: 1, lastErr: err})
		g.mu.Unlock()
	}
	return err
}

// RetryReport summarizes one RetryPending pass.
type RetryReport struct {
	Delivered int
	Failed    int
	Abandoned int
}

// RetryPending retries every remembered notification once. Tokens that reach
// the attempt limit are logged and dropped.
func (g *RetryingGateway) RetryPending(ctx context.Context) RetryReport {
	g.mu.Lock()
	batch := g.pending
	g.pending = nil
	g.mu.Unlock()

	var report RetryReport
	var keep []*pendingNotification
	for _, p := range batch {
		if ctx.Err() != nil {
			keep = append(keep, p)
			continue
		}

		attemptCtx, cancel := context.WithTimeout(ctx, g.attemptTimeout)
		err := g.next.NotifyReady(attemptCtx, p.token)
		cancel()
		if err == nil {
			report.Delivered++
			g.logger.InfoContext(ctx, "ready notification delivered on retry",
				"token", p.token, "attempts", p.attempts+1)
			continue
		}

		p.attempts++
		p.lastErr = err
		if p.attempts >= g.maxAttempts {
			report.Abandoned++
			g.logger.ErrorContext(ctx, "giving up on ready notification",
				"token", p.token, "attempts", p.attempts, "error", err)
			continue
		}
		report.Failed++
		keep = append(keep, p)
	}

	g.mu.Lock()
	g.pending = append(keep, g.pending...)
	g.mu.Unlock()

	return report
}

// Pending returns the number of notifications waiting for a retry.
func (g *RetryingGateway) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.pending)
}
