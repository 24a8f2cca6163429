// Package orderrepo persists order aggregates and their line items with GORM.
// It handles the conversion between domain entities and database rows.
package orderrepo

import (
	"time"

	"kiosk/internal/core/domain/model/kernel"
	"kiosk/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders table. Sequence is filled by Postgres (bigserial) and
// returned on insert; gorm's automatic timestamps are disabled because the
// aggregate owns createdAt and updatedAt.
type OrderDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Token     string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	Tier      int             `gorm:"type:smallint;not null"`
	Status    int             `gorm:"type:smallint;not null;index"`
	Total     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time       `gorm:"not null;autoUpdateTime:false"`
	Sequence  int64           `gorm:"autoIncrement;uniqueIndex"`
	Items     []LineItemDTO   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default "order_dtos".
func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO is the order_items table. LineNo keeps the order in which the
// customer listed the items.
type LineItemDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	LineNo    int             `gorm:"type:int;not null"`
	ProductID string          `gorm:"type:varchar(64);not null"`
	Name      string          `gorm:"type:varchar(255);not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity  int             `gorm:"type:int;not null"`
}

func (LineItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()
	items := make([]LineItemDTO, 0, len(aggregate.Items()))
	for i, item := range aggregate.Items() {
		items = append(items, LineItemDTO{
			ID:        item.ID().Bytes(),
			OrderID:   orderID,
			LineNo:    i + 1,
			ProductID: item.ProductID(),
			Name:      item.Name(),
			UnitPrice: item.UnitPrice().Decimal(),
			Quantity:  item.Quantity(),
		})
	}

	return OrderDTO{
		ID:        orderID,
		Token:     aggregate.Token().String(),
		Tier:      int(aggregate.Tier()),
		Status:    int(aggregate.Status()),
		Total:     aggregate.Total().Decimal(),
		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
		Sequence:  aggregate.Sequence(),
		Items:     items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	token, err := order.TokenFromString(dto.Token)
	if err != nil {
		return nil, err
	}

	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}

	items := make([]*order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := lineItemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		token,
		order.Tier(dto.Tier),
		order.Status(dto.Status),
		total,
		dto.CreatedAt.UTC(),
		dto.UpdatedAt.UTC(),
		dto.Sequence,
		items,
	)
}

func lineItemToDomain(dto LineItemDTO) (*order.LineItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return nil, err
	}

	return order.RestoreLineItem(id, orderID, dto.ProductID, dto.Name, price, dto.Quantity)
}
