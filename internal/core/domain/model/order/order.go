package order

import (
	"errors"
	"fmt"
	"time"

	"kiosk/internal/core/domain/model/kernel"
	"kiosk/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrSequenceAlreadyAssigned is returned when the repository tries to number an order twice.
	ErrSequenceAlreadyAssigned = errors.New("order sequence is already assigned")
)

// Order is the aggregate root for one customer order and its line items.
//
// Invariants:
//   - id, token, tier and createdAt never change after creation
//   - status is always one of Queued, InPreparation, Ready
//   - total is the sum of the line subtotals at creation time and is never recomputed
//   - sequence is assigned once by the repository and breaks createdAt ties
//   - status only changes through BeginPreparation and MarkReady
type Order struct {
	id        kernel.UUID
	token     Token
	tier      Tier
	status    Status
	total     kernel.Money
	createdAt time.Time
	updatedAt time.Time
	sequence  int64
	items     []*LineItem

	events []Event

	isConstructed bool
}

// NewOrder creates a Queued order with one line item per LineSpec and snapshots the total.
//
// Example:
//
//	now := time.Now()
//	o, err := order.NewOrder(kernel.NewUUID(), order.NewToken(now), order.Accessibility, []order.LineSpec{
//	    {ProductID: "espresso", Name: "Espresso", UnitPrice: kernel.MustMoney("5"), Quantity: 2},
//	    {ProductID: "croissant", Name: "Croissant", UnitPrice: kernel.MustMoney("3"), Quantity: 1},
//	}, now)
//	// o.Total().String() == "13.00"
func NewOrder(id kernel.UUID, token Token, tier Tier, lines []LineSpec, createdAt time.Time) (*Order, error) {
	o := &Order{
		status:        Queued,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setToken(token),
		o.setTier(tier),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	if len(lines) == 0 {
		return nil, errs.NewValueIsRequiredError("line items")
	}

	total := kernel.ZeroMoney()
	items := make([]*LineItem, 0, len(lines))
	var lineErrs []error
	for i, line := range lines {
		item, err := NewLineItem(kernel.NewUUID(), id, line.ProductID, line.Name, line.UnitPrice, line.Quantity)
		if err != nil {
			lineErrs = append(lineErrs, fmt.Errorf("line %d: %w", i+1, err))
			continue
		}
		items = append(items, item)
		total = total.Add(item.Subtotal())
	}
	if err := errors.Join(lineErrs...); err != nil {
		return nil, err
	}

	o.items = items
	o.total = total
	o.updatedAt = o.createdAt
	o.raise(Event{Kind: EventPlaced, To: Queued, OccurredAt: o.createdAt})

	return o, nil
}

// RestoreOrder rebuilds a persisted order. The stored total is kept as is: it is a
// snapshot and must not be recomputed from the items.
func RestoreOrder(
	id kernel.UUID,
	token Token,
	tier Tier,
	status Status,
	total kernel.Money,
	createdAt, updatedAt time.Time,
	sequence int64,
	items []*LineItem,
) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setID(id),
		o.setToken(token),
		o.setTier(tier),
		o.setStatus(status),
		o.setTotal(total),
		o.setCreatedAt(createdAt),
		o.setItems(id, items),
	); err != nil {
		return nil, err
	}
	if sequence < 0 {
		return nil, errs.NewValueIsOutOfRangeError("sequence", sequence, 0, "max int64")
	}

	o.updatedAt = updatedAt
	o.sequence = sequence
	return o, nil
}

// Validate ensures the Order was built through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Token() Token {
	return o.token
}

func (o *Order) Tier() Tier {
	return o.tier
}

func (o *Order) Status() Status {
	return o.status
}

// Total returns the snapshot taken when the order was placed.
func (o *Order) Total() kernel.Money {
	return o.total
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Sequence is the insertion number assigned by the repository; 0 until persisted.
func (o *Order) Sequence() int64 {
	return o.sequence
}

// Items returns a copy of the line item slice.
func (o *Order) Items() []*LineItem {
	items := make([]*LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// AssignSequence records the insertion number. Only repositories call it, once, on insert.
func (o *Order) AssignSequence(sequence int64) error {
	if o.sequence != 0 {
		return ErrSequenceAlreadyAssigned
	}
	if sequence <= 0 {
		return errs.NewValueIsOutOfRangeError("sequence", sequence, 1, "max int64")
	}
	o.sequence = sequence
	return nil
}

// BeginPreparation moves a Queued order to InPreparation.
// It returns an errs.InvalidTransitionError from any other status.
func (o *Order) BeginPreparation(at time.Time) error {
	next, err := o.status.BeginPreparation()
	if err != nil {
		return err
	}
	o.transition(next, at)
	return nil
}

// MarkReady moves a Queued or InPreparation order to Ready.
// It returns an errs.InvalidTransitionError when the order is already Ready.
func (o *Order) MarkReady(at time.Time) error {
	next, err := o.status.MarkReady()
	if err != nil {
		return err
	}
	o.transition(next, at)
	return nil
}

// Events returns the domain events raised since the order was loaded or created.
func (o *Order) Events() []Event {
	events := make([]Event, len(o.events))
	copy(events, o.events)
	return events
}

// ClearEvents drops dispatched events.
func (o *Order) ClearEvents() {
	o.events = nil
}

func (o *Order) transition(next Status, at time.Time) {
	from := o.status
	o.status = next
	o.updatedAt = at
	o.raise(Event{Kind: EventTransitioned, From: from, To: next, OccurredAt: at})
}

func (o *Order) raise(e Event) {
	e.OrderID = o.id
	e.Token = o.token.String()
	e.Tier = o.tier
	o.events = append(o.events, e)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setToken(token Token) error {
	if err := token.Validate(); err != nil {
		return err
	}
	o.token = token
	return nil
}

func (o *Order) setTier(tier Tier) error {
	if err := tier.Validate(); err != nil {
		return err
	}
	o.tier = tier
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setTotal(total kernel.Money) error {
	if err := total.Validate(); err != nil {
		return err
	}
	o.total = total
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	o.createdAt = createdAt
	return nil
}

func (o *Order) setItems(id kernel.UUID, items []*LineItem) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if !item.OrderID().IsEqual(id) {
			return errs.NewValueIsInvalidErrorWithCause(
				"line item",
				fmt.Errorf("item %s belongs to order %s", item.ID(), item.OrderID()),
			)
		}
	}
	o.items = items
	return nil
}
