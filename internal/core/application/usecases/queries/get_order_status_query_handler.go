package queries

import (
	"context"
	"slices"

	"kiosk/internal/core/domain/model/order"
	"kiosk/internal/core/domain/services"
	"kiosk/internal/pkg/errs"
)

// qrTimestampLayout is the local-time layout printed in the receipt QR code.
const qrTimestampLayout = "2006-01-02T15:04:05"

// QRPayload is the content encoded in the receipt QR code. Rendering the image is
// left to the client.
type QRPayload struct {
	OrderID   string `json:"orderId"`
	Total     string `json:"total"`
	Timestamp string `json:"timestamp"`
	Items     int    `json:"items"`
}

func NewQRPayload(o *order.Order) QRPayload {
	return QRPayload{
		OrderID:   o.Token().String(),
		Total:     o.Total().String(),
		Timestamp: o.CreatedAt().Format(qrTimestampLayout),
		Items:     len(o.Items()),
	}
}

type OrderStatusView struct {
	Order OrderView
	QR    QRPayload
}

// GetOrderStatusQueryHandler returns errs.ObjectNotFoundError for unknown tokens.
type GetOrderStatusQueryHandler struct {
	reader OrderReader
	engine services.QueueEngine
}

func NewGetOrderStatusQueryHandler(reader OrderReader) GetOrderStatusQueryHandler {
	return GetOrderStatusQueryHandler{reader: reader, engine: services.NewQueueEngine()}
}

// Handle reads one snapshot so status and position always agree.
func (h GetOrderStatusQueryHandler) Handle(ctx context.Context, query GetOrderStatusQuery) (OrderStatusView, error) {
	if err := query.Validate(); err != nil {
		return OrderStatusView{}, err
	}

	snapshot, err := h.reader.GetAll(ctx)
	if err != nil {
		return OrderStatusView{}, err
	}

	idx := slices.IndexFunc(snapshot, func(o *order.Order) bool {
		return o.Token().String() == query.Token()
	})
	if idx < 0 {
		return OrderStatusView{}, errs.NewObjectNotFoundError("order", query.Token())
	}
	o := snapshot[idx]

	return OrderStatusView{
		Order: newOrderView(o, h.engine.PositionOf(snapshot, query.Token())),
		QR:    NewQRPayload(o),
	}, nil
}
