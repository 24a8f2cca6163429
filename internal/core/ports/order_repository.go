// Package ports defines the contracts between the order core and its adapters:
// persistence, notification delivery, the read-only menu and event callbacks.
package ports

import (
	"context"

	"kiosk/internal/core/domain/model/kernel"
	"kiosk/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Implementations return errs.ObjectNotFoundError for unknown keys and wrap driver
// failures in errs.StorageUnavailableError.
type OrderRepository interface {
	// Add persists a new order together with its line items and assigns its sequence.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status and updatedAt of an existing order.
	// Line items, tier, total and createdAt are immutable and never rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its internal storage key.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByToken retrieves an order by the token handed to the customer.
	GetByToken(ctx context.Context, token string) (*order.Order, error)

	// GetByTokenForUpdate is GetByToken that also locks the order until the
	// surrounding unit of work ends. Transitions use it for read-modify-write.
	GetByTokenForUpdate(ctx context.Context, token string) (*order.Order, error)

	// GetAll returns every order with its line items as one consistent snapshot.
	// The result carries no meaningful order; callers sort through services.QueueEngine.
	GetAll(ctx context.Context) ([]*order.Order, error)
}
