package commands

import (
	"errors"
	"fmt"
	"strings"

	"kiosk/internal/core/domain/model/order"
	"kiosk/internal/pkg/errs"
	"kiosk/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// OrderLine is one requested product and how many of it.
type OrderLine struct {
	ProductID string
	Quantity  int
}

// PlaceOrderCommand represents a customer submitting an order at the kiosk.
// Names and prices are not part of the command: they are read from the menu when
// the command is handled.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(order.Expecting, []OrderLine{
//	    {ProductID: "latte", Quantity: 2},
//	    {ProductID: "medialuna", Quantity: 1},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	tier  order.Tier
	lines []OrderLine

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand validates the tier and lines. Every line needs a product id
// and a quantity between 1 and order.MaxQuantity; at least one line is required.
func NewPlaceOrderCommand(tier order.Tier, lines []OrderLine) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTier(tier),
		cmd.setLines(lines),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) Tier() order.Tier {
	return c.tier
}

// Lines returns a copy of the requested lines.
func (c PlaceOrderCommand) Lines() []OrderLine {
	lines := make([]OrderLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

func (c *PlaceOrderCommand) setTier(tier order.Tier) error {
	if err := tier.Validate(); err != nil {
		return err
	}
	c.tier = tier
	return nil
}

func (c *PlaceOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	var lineErrs []error
	for i, line := range lines {
		if strings.TrimSpace(line.ProductID) == "" {
			lineErrs = append(lineErrs, fmt.Errorf("line %d: %w", i+1, errs.NewValueIsRequiredError("product id")))
		}
		if line.Quantity < 1 || line.Quantity > order.MaxQuantity {
			lineErrs = append(lineErrs, fmt.Errorf("line %d: %w", i+1,
				errs.NewValueIsOutOfRangeError("quantity", line.Quantity, 1, order.MaxQuantity)))
		}
	}
	if err := errors.Join(lineErrs...); err != nil {
		return err
	}

	c.lines = make([]OrderLine, len(lines))
	copy(c.lines, lines)
	return nil
}
