package order

import (
	"errors"
	"strings"

	"kiosk/internal/core/domain/model/kernel"
	"kiosk/internal/pkg/errs"
	"kiosk/internal/pkg/guard"
)

// MaxQuantity caps a single line; larger orders are split at the counter.
const MaxQuantity = 99

var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem or RestoreLineItem")

// LineItem is one product line of an order. Name and unit price are copied from
// the menu when the order is placed so later menu changes never alter history.
type LineItem struct {
	id        kernel.UUID
	orderID   kernel.UUID
	productID string
	name      string
	unitPrice kernel.Money
	quantity  int

	guard guard.ConstructorGuard
}

// LineSpec describes a line to be created together with its order.
type LineSpec struct {
	ProductID string
	Name      string
	UnitPrice kernel.Money
	Quantity  int
}

// NewLineItem creates a line item belonging to orderID.
func NewLineItem(
	id, orderID kernel.UUID,
	productID, name string,
	unitPrice kernel.Money,
	quantity int,
) (*LineItem, error) {
	item := &LineItem{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		item.setIDs(id, orderID),
		item.setProduct(productID, name),
		item.setUnitPrice(unitPrice),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}
	return item, nil
}

// RestoreLineItem rebuilds a persisted line item. It applies the same validation as NewLineItem.
func RestoreLineItem(
	id, orderID kernel.UUID,
	productID, name string,
	unitPrice kernel.Money,
	quantity int,
) (*LineItem, error) {
	return NewLineItem(id, orderID, productID, name, unitPrice, quantity)
}

func (li *LineItem) Validate() error {
	if li == nil {
		return ErrLineItemIsNotConstructed
	}
	return li.guard.Validate(ErrLineItemIsNotConstructed)
}

func (li *LineItem) ID() kernel.UUID { return li.id }
func (li *LineItem) OrderID() kernel.UUID { return li.orderID }
func (li *LineItem) ProductID() string { return li.productID }
func (li *LineItem) Name() string { return li.name }
func (li *LineItem) UnitPrice() kernel.Money { return li.unitPrice }
func (li *LineItem) Quantity() int { return li.quantity }

// Subtotal is unit price times quantity. It is always derived, never stored.
func (li *LineItem) Subtotal() kernel.Money {
	// quantity is validated positive, Times cannot fail here
	subtotal, _ := li.unitPrice.Times(li.quantity)
	return subtotal
}

func (li *LineItem) setIDs(id, orderID kernel.UUID) error {
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return err
	}
	li.id = id
	li.orderID = orderID
	return nil
}

func (li *LineItem) setProduct(productID, name string) error {
	productID = strings.TrimSpace(productID)
	name = strings.TrimSpace(name)
	if productID == "" {
		return errs.NewValueIsRequiredError("product id")
	}
	if name == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	li.productID = productID
	li.name = name
	return nil
}

func (li *LineItem) setUnitPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	li.unitPrice = price
	return nil
}

func (li *LineItem) setQuantity(quantity int) error {
	if quantity < 1 || quantity > MaxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxQuantity)
	}
	li.quantity = quantity
	return nil
}
