package commands_test

import (
	"testing"

	"kiosk/internal/core/application/usecases/commands"
	"kiosk/internal/core/domain/model/order"
	"kiosk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlaceOrderCommand_ValidInput(t *testing.T) {
	lines := []commands.OrderLine{{ProductID: "latte", Quantity: 2}}

	cmd, err := commands.NewPlaceOrderCommand(order.Staff, lines)

	require.NoError(t, err)
	assert.Equal(t, order.Staff, cmd.Tier())
	assert.Equal(t, lines, cmd.Lines())
	require.NoError(t, cmd.Validate())
}

func TestNewPlaceOrderCommand_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		tier   order.Tier
		lines  []commands.OrderLine
		target error
	}{
		{"no lines", order.Standard, nil, errs.ErrValueIsRequired},
		{"unknown tier", order.TierUnknown, []commands.OrderLine{{ProductID: "latte", Quantity: 1}}, errs.ErrValueIsInvalid},
		{"zero quantity", order.Standard, []commands.OrderLine{{ProductID: "latte", Quantity: 0}}, errs.ErrValueIsOutOfRange},
		{"negative quantity", order.Standard, []commands.OrderLine{{ProductID: "latte", Quantity: -3}}, errs.ErrValueIsOutOfRange},
		{"too many", order.Standard, []commands.OrderLine{{ProductID: "latte", Quantity: order.MaxQuantity + 1}}, errs.ErrValueIsOutOfRange},
		{"blank product", order.Standard, []commands.OrderLine{{ProductID: "  ", Quantity: 1}}, errs.ErrValueIsRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := commands.NewPlaceOrderCommand(tt.tier, tt.lines)

			require.ErrorIs(t, err, tt.target)
		})
	}
}

func TestPlaceOrderCommand_LinesAreCopied(t *testing.T) {
	lines := []commands.OrderLine{{ProductID: "latte", Quantity: 2}}
	cmd, err := commands.NewPlaceOrderCommand(order.Standard, lines)
	require.NoError(t, err)

	lines[0].Quantity = 50
	cmd.Lines()[0].Quantity = 60

	assert.Equal(t, 2, cmd.Lines()[0].Quantity)
}
