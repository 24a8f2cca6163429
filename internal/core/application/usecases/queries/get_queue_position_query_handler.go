package queries

import (
	"context"

	"kiosk/internal/core/domain/services"
)

// GetQueuePositionQueryHandler returns services.NotQueued (0) for orders that are
// not Queued and for unknown tokens alike.
type GetQueuePositionQueryHandler struct {
	reader OrderReader
	engine services.QueueEngine
}

func NewGetQueuePositionQueryHandler(reader OrderReader) GetQueuePositionQueryHandler {
	return GetQueuePositionQueryHandler{reader: reader, engine: services.NewQueueEngine()}
}

func (h GetQueuePositionQueryHandler) Handle(ctx context.Context, query GetQueuePositionQuery) (int, error) {
	if err := query.Validate(); err != nil {
		return services.NotQueued, err
	}

	snapshot, err := h.reader.GetAll(ctx)
	if err != nil {
		return services.NotQueued, err
	}

	return h.engine.PositionOf(snapshot, query.Token()), nil
}
