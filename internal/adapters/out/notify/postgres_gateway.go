package notify

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// DefaultChannel is the LISTEN/NOTIFY channel used when none is configured.
const DefaultChannel = "order_ready"

// PostgresGateway announces ready orders with pg_notify. The notification is
// delivered to every ReadyListener on the same channel, including ones in
// other processes.
type PostgresGateway struct {
	db      *gorm.DB
	channel string
}

func NewPostgresGateway(db *gorm.DB, channel string) *PostgresGateway {
	if channel == "" {
		channel = DefaultChannel
	}
	return &PostgresGateway{db: db, channel: channel}
}

func (g *PostgresGateway) NotifyReady(ctx context.Context, token string) error {
	if err := g.db.WithContext(ctx).Exec("SELECT pg_notify(?, ?)", g.channel, token).Error; err != nil {
		return fmt.Errorf("pg_notify %s: %w", g.channel, err)
	}
	return nil
}
