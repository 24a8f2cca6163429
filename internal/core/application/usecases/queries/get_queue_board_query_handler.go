package queries

import (
	"context"

	"kiosk/internal/core/domain/services"
)

// QueueBoard groups orders by status. An order appears on exactly one board.
type QueueBoard struct {
	Queued        []OrderView
	InPreparation []OrderView
	Ready         []OrderView
}

type GetQueueBoardQueryHandler struct {
	reader OrderReader
	engine services.QueueEngine
}

func NewGetQueueBoardQueryHandler(reader OrderReader) GetQueueBoardQueryHandler {
	return GetQueueBoardQueryHandler{reader: reader, engine: services.NewQueueEngine()}
}

func (h GetQueueBoardQueryHandler) Handle(ctx context.Context, query GetQueueBoardQuery) (QueueBoard, error) {
	if err := query.Validate(); err != nil {
		return QueueBoard{}, err
	}

	snapshot, err := h.reader.GetAll(ctx)
	if err != nil {
		return QueueBoard{}, err
	}

	queued := h.engine.QueuedOrders(snapshot)
	positions := queuePositions(queued)

	return QueueBoard{
		Queued:        newOrderViews(queued, positions),
		InPreparation: newOrderViews(h.engine.InPreparationOrders(snapshot), positions),
		Ready:         newOrderViews(h.engine.ReadyOrders(snapshot), positions),
	}, nil
}
