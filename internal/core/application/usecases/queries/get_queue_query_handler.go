package queries

import (
	"context"

	"kiosk/internal/core/domain/model/order"
	"kiosk/internal/core/domain/services"
)

// GetQueueQueryHandler reads one snapshot and returns the requested view.
// A storage failure is returned as is: callers never get an empty list in its place.
//
// Example:
//
//	query, _ := NewGetQueueQuery(ViewQueued)
//	views, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	next := views[0] // Position == 1
type GetQueueQueryHandler struct {
	reader OrderReader
	engine services.QueueEngine
}

func NewGetQueueQueryHandler(reader OrderReader) GetQueueQueryHandler {
	return GetQueueQueryHandler{reader: reader, engine: services.NewQueueEngine()}
}

func (h GetQueueQueryHandler) Handle(ctx context.Context, query GetQueueQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	snapshot, err := h.reader.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	positions := queuePositions(h.engine.QueuedOrders(snapshot))

	var selected []*order.Order
	switch query.View() {
	case ViewQueued:
		selected = h.engine.QueuedOrders(snapshot)
	case ViewInPreparation:
		selected = h.engine.InPreparationOrders(snapshot)
	case ViewReady:
		selected = h.engine.ReadyOrders(snapshot)
	default:
		selected = h.engine.SortedQueue(snapshot)
	}

	return newOrderViews(selected, positions), nil
}
