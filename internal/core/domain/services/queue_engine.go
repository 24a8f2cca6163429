package services

import (
	"cmp"
	"slices"

	"kiosk/internal/core/domain/model/order"
)

// NotQueued is the position reported for an order that is not waiting in the queue.
const NotQueued = 0

// QueueEngine is a domain service that computes the serving order of the kiosk queue.
//
// Orders are ranked by tier (Accessibility first, Standard last), then by creation
// time, then by the repository insertion sequence so that equal timestamps never make
// the result depend on input order. Every view is recomputed from the snapshot it is
// given; the engine keeps no state between calls.
//
// Example usage:
//
//	engine := services.NewQueueEngine()
//	next := engine.QueuedOrders(snapshot)
//	if len(next) > 0 {
//	    // next[0] is the order staff should start
//	}
//	position := engine.PositionOf(snapshot, "ORD-20250314093015-4F1A9C2E")
type QueueEngine struct{}

func NewQueueEngine() QueueEngine {
	return QueueEngine{}
}

// CompareServingOrder orders a before b when a should be served first.
// It returns a negative number, zero or a positive number like cmp.Compare.
func CompareServingOrder(a, b *order.Order) int {
	return cmp.Or(
		cmp.Compare(a.Tier().Rank(), b.Tier().Rank()),
		a.CreatedAt().Compare(b.CreatedAt()),
		cmp.Compare(a.Sequence(), b.Sequence()),
	)
}

// SortedQueue returns every order, whatever its status, in serving order.
// Used for audits and inspection, not for deciding what to start next.
func (QueueEngine) SortedQueue(snapshot []*order.Order) []*order.Order {
	sorted := slices.Clone(snapshot)
	slices.SortStableFunc(sorted, CompareServingOrder)
	return sorted
}

// QueuedOrders returns the Queued orders in serving order. The head is the next
// order to start.
func (e QueueEngine) QueuedOrders(snapshot []*order.Order) []*order.Order {
	return e.SortedQueue(filterByStatus(snapshot, order.Queued))
}

// InPreparationOrders returns the orders being prepared, in serving order.
func (e QueueEngine) InPreparationOrders(snapshot []*order.Order) []*order.Order {
	return e.SortedQueue(filterByStatus(snapshot, order.InPreparation))
}

// ReadyOrders returns the Ready orders in snapshot order; priority has no meaning
// once an order is ready.
func (QueueEngine) ReadyOrders(snapshot []*order.Order) []*order.Order {
	return filterByStatus(snapshot, order.Ready)
}

// PositionOf returns the 1-based rank of token within QueuedOrders, or NotQueued
// when no Queued order carries that token.
func (e QueueEngine) PositionOf(snapshot []*order.Order, token string) int {
	idx := slices.IndexFunc(e.QueuedOrders(snapshot), func(o *order.Order) bool {
		return o.Token().String() == token
	})
	if idx < 0 {
		return NotQueued
	}
	return idx + 1
}

func filterByStatus(snapshot []*order.Order, status order.Status) []*order.Order {
	filtered := make([]*order.Order, 0, len(snapshot))
	for _, o := range snapshot {
		if o.Status() == status {
			filtered = append(filtered, o)
		}
	}
	return filtered
}
