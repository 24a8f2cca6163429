package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kiosk/internal/core/domain/model/kernel"
	"kiosk/internal/core/domain/model/order"
	"kiosk/internal/core/ports"
	"kiosk/internal/pkg/errs"
)

// PlaceOrderResult is what the kiosk shows the customer after a successful order.
type PlaceOrderResult struct {
	Token     string
	Total     kernel.Money
	CreatedAt time.Time
}

// PlaceOrderCommandHandler turns a PlaceOrderCommand into a persisted Queued order.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(uowFactory, menu)
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrValueIsInvalid) {
//	    // unknown or unavailable product
//	}
//	fmt.Println(result.Token) // ORD-20250314093000-4F1A9C2E
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	menu       ports.Menu
}

func NewPlaceOrderCommandHandler(uowFactory OrderUoWFactory, menu ports.Menu) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		menu:       menu,
	}
}

// Handle snapshots product names and prices from the menu, builds the order and
// stores it with its line items in one transaction.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (PlaceOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return PlaceOrderResult{}, err
	}

	specs, err := h.resolveLines(cmd.Lines())
	if err != nil {
		return PlaceOrderResult{}, err
	}

	// Postgres keeps microseconds; truncating keeps tie-breaks identical across storages.
	now := time.Now().UTC().Truncate(time.Microsecond)
	aggregate, err := order.NewOrder(kernel.NewUUID(), order.NewToken(now), cmd.Tier(), specs, now)
	if err != nil {
		return PlaceOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return PlaceOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return PlaceOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return PlaceOrderResult{}, err
	}

	return PlaceOrderResult{
		Token:     aggregate.Token().String(),
		Total:     aggregate.Total(),
		CreatedAt: aggregate.CreatedAt(),
	}, nil
}

func (h PlaceOrderCommandHandler) resolveLines(lines []OrderLine) ([]order.LineSpec, error) {
	specs := make([]order.LineSpec, 0, len(lines))
	var lineErrs []error
	for _, line := range lines {
		product, err := h.menu.Product(line.ProductID)
		if err != nil {
			lineErrs = append(lineErrs, errs.NewValueIsInvalidErrorWithCause("product "+line.ProductID, err))
			continue
		}
		if !product.Available() {
			lineErrs = append(lineErrs, errs.NewValueIsInvalidErrorWithCause(
				"product "+line.ProductID,
				fmt.Errorf("%s is not available", product.Name()),
			))
			continue
		}
		specs = append(specs, order.LineSpec{
			ProductID: product.ID(),
			Name:      product.Name(),
			UnitPrice: product.Price(),
			Quantity:  line.Quantity,
		})
	}
	if err := errors.Join(lineErrs...); err != nil {
		return nil, err
	}
	return specs, nil
}
