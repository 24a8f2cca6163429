package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"
)

const (
	minReconnectInterval = 1 * time.Second
	maxReconnectInterval = 30 * time.Second
)

// ReadyListener relays pg_notify messages sent by PostgresGateway.
type ReadyListener struct {
	listener *pq.Listener
	channel  string
	logger   *slog.Logger
}

// NewReadyListener opens a dedicated connection for LISTEN. dsn must be a
// lib/pq connection string; the gorm pool cannot be used for LISTEN.
func NewReadyListener(dsn, channel string, logger *slog.Logger) (*ReadyListener, error) {
	if channel == "" {
		channel = DefaultChannel
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "ready_listener", "channel", channel)

	l := pq.NewListener(dsn, minReconnectInterval, maxReconnectInterval, func(event pq.ListenerEventType, err error) {
		switch event {
		case pq.ListenerEventDisconnected, pq.ListenerEventConnectionAttemptFailed:
			logger.Warn("listener connection problem", "error", err)
		case pq.ListenerEventReconnected:
			logger.Info("listener reconnected")
		}
	})
	if err := l.Listen(channel); err != nil {
		_ = l.Close()
		return nil, fmt.Errorf("listen %s: %w", channel, err)
	}

	return &ReadyListener{listener: l, channel: channel, logger: logger}, nil
}

// Run calls onReady with every token until ctx is done. It pings the server
// when idle so dropped connections are noticed.
func (r *ReadyListener) Run(ctx context.Context, onReady func(ctx context.Context, token string)) {
	idle := time.NewTicker(90 * time.Second)
	defer idle.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-r.listener.Notify:
			if !ok {
				return
			}
			// nil after a reconnect; notifications sent meanwhile are lost.
			if n == nil {
				continue
			}
			onReady(ctx, n.Extra)
		case <-idle.C:
			if err := r.listener.Ping(); err != nil {
				r.logger.WarnContext(ctx, "listener ping failed", "error", err)
			}
		}
	}
}

func (r *ReadyListener) Close() error {
	return r.listener.Close()
}
