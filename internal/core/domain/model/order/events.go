package order

import (
	"time"

	"kiosk/internal/core/domain/model/kernel"
)

// EventKind names a domain event raised by the Order aggregate.
type EventKind string

const (
	EventPlaced       EventKind = "order.placed"
	EventTransitioned EventKind = "order.transitioned"
)

// Event is raised by the aggregate and dispatched after the unit of work commits,
// so subscribers never observe a change that was rolled back.
type Event struct {
	Kind       EventKind
	OrderID    kernel.UUID
	Token      string
	Tier       Tier
	From       Status
	To         Status
	OccurredAt time.Time
}
