package order_test

import (
	"testing"
	"time"

	"kiosk/internal/core/domain/model/kernel"
	"kiosk/internal/core/domain/model/order"
	"kiosk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var placedAt = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func coffeeLines() []order.LineSpec {
	return []order.LineSpec{
		{ProductID: "latte", Name: "Latte", UnitPrice: kernel.MustMoney("5"), Quantity: 2},
		{ProductID: "medialuna", Name: "Medialuna", UnitPrice: kernel.MustMoney("3"), Quantity: 1},
	}
}

func newTestOrder(t *testing.T, tier order.Tier) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), order.NewToken(placedAt), tier, coffeeLines(), placedAt)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("computes total from line subtotals", func(t *testing.T) {
		o := newTestOrder(t, order.Accessibility)

		assert.Equal(t, "13.00", o.Total().String())
		assert.Equal(t, order.Queued, o.Status())
		assert.Equal(t, order.Accessibility, o.Tier())
		assert.Equal(t, placedAt, o.CreatedAt())
		assert.Equal(t, placedAt, o.UpdatedAt())
		assert.Zero(t, o.Sequence())
		require.NoError(t, o.Validate())
	})

	t.Run("line items reference the order and snapshot the price", func(t *testing.T) {
		o := newTestOrder(t, order.Standard)

		items := o.Items()
		require.Len(t, items, 2)
		for _, item := range items {
			assert.True(t, item.OrderID().IsEqual(o.ID()))
		}
		assert.Equal(t, "Latte", items[0].Name())
		assert.Equal(t, "10.00", items[0].Subtotal().String())
		assert.Equal(t, "3.00", items[1].Subtotal().String())
	})

	t.Run("raises a placed event", func(t *testing.T) {
		o := newTestOrder(t, order.Staff)

		events := o.Events()
		require.Len(t, events, 1)
		assert.Equal(t, order.EventPlaced, events[0].Kind)
		assert.Equal(t, o.Token().String(), events[0].Token)
		assert.Equal(t, order.Staff, events[0].Tier)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		tests := []struct {
			name   string
			tier   order.Tier
			lines  []order.LineSpec
			target error
		}{
			{"no lines", order.Standard, nil, errs.ErrValueIsRequired},
			{"unknown tier", order.TierUnknown, coffeeLines(), errs.ErrValueIsInvalid},
			{
				"zero quantity",
				order.Standard,
				[]order.LineSpec{{ProductID: "latte", Name: "Latte", UnitPrice: kernel.MustMoney("5"), Quantity: 0}},
				errs.ErrValueIsOutOfRange,
			},
			{
				"missing name",
				order.Standard,
				[]order.LineSpec{{ProductID: "latte", UnitPrice: kernel.MustMoney("5"), Quantity: 1}},
				errs.ErrValueIsRequired,
			},
			{
				"unconstructed price",
				order.Standard,
				[]order.LineSpec{{ProductID: "latte", Name: "Latte", Quantity: 1}},
				errs.ErrValueIsRequired,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				o, err := order.NewOrder(kernel.NewUUID(), order.NewToken(placedAt), tt.tier, tt.lines, placedAt)

				require.ErrorIs(t, err, tt.target)
				assert.Nil(t, o)
			})
		}
	})

	t.Run("rejects zero creation time", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), order.NewToken(placedAt), order.Standard, coffeeLines(), time.Time{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestOrder_BeginPreparation(t *testing.T) {
	o := newTestOrder(t, order.Standard)
	o.ClearEvents()
	later := placedAt.Add(2 * time.Minute)

	require.NoError(t, o.BeginPreparation(later))

	assert.Equal(t, order.InPreparation, o.Status())
	assert.Equal(t, later, o.UpdatedAt())
	assert.Equal(t, placedAt, o.CreatedAt())
	events := o.Events()
	require.Len(t, events, 1)
	assert.Equal(t, order.EventTransitioned, events[0].Kind)
	assert.Equal(t, order.Queued, events[0].From)
	assert.Equal(t, order.InPreparation, events[0].To)

	t.Run("second call is rejected and changes nothing", func(t *testing.T) {
		err := o.BeginPreparation(later.Add(time.Minute))

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.InPreparation, o.Status())
		assert.Equal(t, later, o.UpdatedAt())
		assert.Len(t, o.Events(), 1)
	})
}

func TestOrder_MarkReady(t *testing.T) {
	t.Run("from queued", func(t *testing.T) {
		o := newTestOrder(t, order.Accessibility)

		require.NoError(t, o.MarkReady(placedAt.Add(time.Minute)))

		assert.Equal(t, order.Ready, o.Status())
	})

	t.Run("from in preparation", func(t *testing.T) {
		o := newTestOrder(t, order.Accessibility)
		require.NoError(t, o.BeginPreparation(placedAt.Add(time.Minute)))

		require.NoError(t, o.MarkReady(placedAt.Add(2*time.Minute)))

		assert.Equal(t, order.Ready, o.Status())
	})

	t.Run("ready is terminal", func(t *testing.T) {
		o := newTestOrder(t, order.Accessibility)
		require.NoError(t, o.MarkReady(placedAt.Add(time.Minute)))

		require.ErrorIs(t, o.MarkReady(placedAt.Add(2*time.Minute)), errs.ErrInvalidTransition)
		require.ErrorIs(t, o.BeginPreparation(placedAt.Add(2*time.Minute)), errs.ErrInvalidTransition)
		assert.Equal(t, order.Ready, o.Status())
	})

	t.Run("tier and total survive transitions", func(t *testing.T) {
		o := newTestOrder(t, order.Expecting)
		require.NoError(t, o.MarkReady(placedAt.Add(time.Minute)))

		assert.Equal(t, order.Expecting, o.Tier())
		assert.Equal(t, "13.00", o.Total().String())
	})
}

func TestOrder_AssignSequence(t *testing.T) {
	o := newTestOrder(t, order.Standard)

	require.ErrorIs(t, o.AssignSequence(0), errs.ErrValueIsOutOfRange)
	require.NoError(t, o.AssignSequence(7))
	assert.Equal(t, int64(7), o.Sequence())
	require.ErrorIs(t, o.AssignSequence(8), order.ErrSequenceAlreadyAssigned)
}

func TestRestoreOrder(t *testing.T) {
	id := kernel.NewUUID()
	tok, err := order.TokenFromString("ORD-20250314093000-4F1A9C2E")
	require.NoError(t, err)
	item, err := order.RestoreLineItem(kernel.NewUUID(), id, "latte", "Latte", kernel.MustMoney("6"), 2)
	require.NoError(t, err)

	t.Run("keeps the stored total even if prices differ", func(t *testing.T) {
		o, err := order.RestoreOrder(id, tok, order.Staff, order.InPreparation, kernel.MustMoney("10"),
			placedAt, placedAt.Add(time.Minute), 3, []*order.LineItem{item})

		require.NoError(t, err)
		assert.Equal(t, "10.00", o.Total().String())
		assert.Equal(t, "12.00", o.Items()[0].Subtotal().String())
		assert.Equal(t, int64(3), o.Sequence())
		assert.Empty(t, o.Events())
	})

	t.Run("rejects items of another order", func(t *testing.T) {
		foreign, err := order.RestoreLineItem(kernel.NewUUID(), kernel.NewUUID(), "latte", "Latte", kernel.MustMoney("6"), 1)
		require.NoError(t, err)

		_, err = order.RestoreOrder(id, tok, order.Staff, order.Queued, kernel.MustMoney("6"),
			placedAt, placedAt, 1, []*order.LineItem{foreign})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := order.RestoreOrder(id, tok, order.Staff, order.Unknown, kernel.MustMoney("6"),
			placedAt, placedAt, 1, nil)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Validate(t *testing.T) {
	var o *order.Order
	require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	require.ErrorIs(t, (&order.Order{}).Validate(), order.ErrOrderIsNotConstructed)
}
