package notify

import (
	"context"
	"log/slog"
)

// LogGateway only records the notification. It is the default for a counter
// where staff call the token out loud.
type LogGateway struct {
	logger *slog.Logger
}

func NewLogGateway(logger *slog.Logger) *LogGateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogGateway{logger: logger.With("component", "log_notifier")}
}

func (g *LogGateway) NotifyReady(ctx context.Context, token string) error {
	g.logger.InfoContext(ctx, "order ready for pickup", "token", token)
	return nil
}
