package ports

import (
	"context"

	"kiosk/internal/core/domain/model/order"
)

// EventPublisher delivers committed domain events to in-process subscribers
// such as the live board and metrics.
type EventPublisher interface {
	Publish(ctx context.Context, events ...order.Event)
}
