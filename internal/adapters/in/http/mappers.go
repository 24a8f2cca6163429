package http

import (
	"kiosk/internal/core/application/usecases/commands"
	"kiosk/internal/core/application/usecases/queries"
	"kiosk/internal/core/domain/model/menu"
	"kiosk/internal/generated/servers"
)

func toProduct(p menu.Product) servers.Product {
	return servers.Product{
		Id:       p.ID(),
		Category: p.Category(),
		Name:     p.Name(),
		Price:    p.Price().String(),
	}
}

func toOrder(v queries.OrderView) servers.Order {
	items := make([]servers.LineItem, len(v.Items))
	for i, item := range v.Items {
		items[i] = servers.LineItem{
			ProductId: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice.String(),
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal.String(),
		}
	}

	return servers.Order{
		Token:     v.Token,
		Tier:      v.Tier.String(),
		Status:    v.Status.String(),
		Total:     v.Total.String(),
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
		Position:  v.Position,
		Items:     items,
	}
}

func toOrders(views []queries.OrderView) []servers.Order {
	out := make([]servers.Order, len(views))
	for i, v := range views {
		out[i] = toOrder(v)
	}
	return out
}

func toBoard(b queries.QueueBoard) servers.Board {
	return servers.Board{
		Queued:        toOrders(b.Queued),
		InPreparation: toOrders(b.InPreparation),
		Ready:         toOrders(b.Ready),
	}
}

func toOrderStatus(v queries.OrderStatusView) servers.OrderStatus {
	return servers.OrderStatus{
		Order: toOrder(v.Order),
		Qr: servers.QRPayload{
			OrderId:   v.QR.OrderID,
			Total:     v.QR.Total,
			Timestamp: v.QR.Timestamp,
			Items:     v.QR.Items,
		},
	}
}

func toTransition(r commands.TransitionResult) servers.Transition {
	return servers.Transition{
		Token:              r.Token,
		From:               r.From.String(),
		To:                 r.To.String(),
		UpdatedAt:          r.UpdatedAt,
		NotificationFailed: r.NotificationFailed(),
	}
}
