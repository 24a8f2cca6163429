// Package servers holds the HTTP contract of the kiosk API: request and
// response bodies, the ServerInterface the echo adapter implements and the
// parameter binding wrapper.
package servers

import "time"

// Defines values for GetQueueParamsView.
const (
	All           GetQueueParamsView = "all"
	InPreparation GetQueueParamsView = "in_preparation"
	Queued        GetQueueParamsView = "queued"
	Ready         GetQueueParamsView = "ready"
)

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Product defines model for Product.
type Product struct {
	Category string `json:"category"`
	Id       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
}

// NewOrderItem defines model for NewOrderItem.
type NewOrderItem struct {
	ProductId string `json:"product_id" validate:"required,max=64"`
	Quantity  int    `json:"quantity" validate:"required,min=1,max=99"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	Items []NewOrderItem `json:"items" validate:"required,min=1,max=50,dive"`
	Tier  *string        `json:"tier,omitempty" validate:"omitempty,max=32"`
}

// OrderCreated defines model for OrderCreated.
type OrderCreated struct {
	CreatedAt time.Time `json:"created_at"`
	OrderId   string    `json:"order_id"`
	Total     string    `json:"total"`
}

// LineItem defines model for LineItem.
type LineItem struct {
	Name      string `json:"name"`
	ProductId string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal"`
	UnitPrice string `json:"unit_price"`
}

// Order defines model for Order.
type Order struct {
	CreatedAt time.Time  `json:"created_at"`
	Items     []LineItem `json:"items"`
	Position  int        `json:"position"`
	Status    string     `json:"status"`
	Tier      string     `json:"tier"`
	Token     string     `json:"token"`
	Total     string     `json:"total"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// QRPayload defines model for QRPayload.
type QRPayload struct {
	Items     int    `json:"items"`
	OrderId   string `json:"orderId"`
	Timestamp string `json:"timestamp"`
	Total     string `json:"total"`
}

// OrderStatus defines model for OrderStatus.
type OrderStatus struct {
	Order Order     `json:"order"`
	Qr    QRPayload `json:"qr"`
}

// Position defines model for Position.
type Position struct {
	Position int `json:"position"`
}

// Board defines model for Board.
type Board struct {
	InPreparation []Order `json:"in_preparation"`
	Queued        []Order `json:"queued"`
	Ready         []Order `json:"ready"`
}

// Transition defines model for Transition.
type Transition struct {
	From               string    `json:"from"`
	NotificationFailed bool      `json:"notification_failed"`
	To                 string    `json:"to"`
	Token              string    `json:"token"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Token defines model for Token.
type Token = string

// GetQueueParams defines parameters for GetQueue.
type GetQueueParams struct {
	View *GetQueueParamsView `form:"view,omitempty" json:"view,omitempty"`
}

// GetQueueParamsView defines parameters for GetQueue.
type GetQueueParamsView string

// PlaceOrderJSONRequestBody defines body for PlaceOrder for application/json ContentType.
type PlaceOrderJSONRequestBody = NewOrder
