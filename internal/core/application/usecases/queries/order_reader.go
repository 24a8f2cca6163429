// Package queries contains the read side: queue views, positions and order status.
// Every query loads a fresh snapshot and orders it through services.QueueEngine;
// nothing is cached between calls.
package queries

import (
	"context"

	"kiosk/internal/core/domain/model/order"
)

// OrderReader is the read subset of ports.OrderRepository that queries need.
type OrderReader interface {
	GetAll(ctx context.Context) ([]*order.Order, error)
}
