package queries

import (
	"time"

	"kiosk/internal/core/domain/model/kernel"
	"kiosk/internal/core/domain/model/order"
)

// OrderView is a read model of one order.
// Position is the 1-based place in the serving order, 0 unless the order is Queued.
type OrderView struct {
	Token     string
	Tier      order.Tier
	Status    order.Status
	Total     kernel.Money
	CreatedAt time.Time
	UpdatedAt time.Time
	Position  int
	Items     []LineItemView
}

type LineItemView struct {
	ProductID string
	Name      string
	UnitPrice kernel.Money
	Quantity  int
	Subtotal  kernel.Money
}

func newOrderView(o *order.Order, position int) OrderView {
	items := o.Items()
	views := make([]LineItemView, 0, len(items))
	for _, item := range items {
		views = append(views, LineItemView{
			ProductID: item.ProductID(),
			Name:      item.Name(),
			UnitPrice: item.UnitPrice(),
			Quantity:  item.Quantity(),
			Subtotal:  item.Subtotal(),
		})
	}

	return OrderView{
		Token:     o.Token().String(),
		Tier:      o.Tier(),
		Status:    o.Status(),
		Total:     o.Total(),
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
		Position:  position,
		Items:     views,
	}
}

// newOrderViews keeps the order of orders. Queued entries get their position from
// positions, which maps tokens to their place in the serving order.
func newOrderViews(orders []*order.Order, positions map[string]int) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, newOrderView(o, positions[o.Token().String()]))
	}
	return views
}

func queuePositions(queued []*order.Order) map[string]int {
	positions := make(map[string]int, len(queued))
	for i, o := range queued {
		positions[o.Token().String()] = i + 1
	}
	return positions
}
