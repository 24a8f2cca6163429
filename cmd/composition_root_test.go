package cmd

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kiosk/internal/adapters/out/menufile"
	"kiosk/internal/core/application/usecases/commands"
	"kiosk/internal/core/application/usecases/queries"
	"kiosk/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMenu = `
products:
  - id: latte
    name: Latte
    price: "5.00"
  - id: medialuna
    name: Medialuna
    price: "3"
`

func newMemoryRoot(t *testing.T) *CompositionRoot {
	t.Helper()
	cfg, err := LoadConfig(envOf(map[string]string{"STORAGE": "memory"}))
	require.NoError(t, err)
	menu, err := menufile.Parse(strings.NewReader(testMenu))
	require.NoError(t, err)

	root, err := NewCompositionRoot(cfg, nil, menu, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = root.Close() })
	return root
}

func TestCompositionRoot_MemoryLifecycle(t *testing.T) {
	root := newMemoryRoot(t)
	ctx := context.Background()

	place, err := commands.NewPlaceOrderCommand(order.Accessibility, []commands.OrderLine{
		{ProductID: "latte", Quantity: 2},
		{ProductID: "medialuna", Quantity: 1},
	})
	require.NoError(t, err)
	placed, err := root.CreatePlaceOrderCommandHandler().Handle(ctx, place)
	require.NoError(t, err)
	assert.Equal(t, "13.00", placed.Total.String())

	ready, err := commands.NewMarkReadyCommand(placed.Token)
	require.NoError(t, err)
	result, err := root.CreateMarkReadyCommandHandler().Handle(ctx, ready)
	require.NoError(t, err)
	assert.Equal(t, order.Ready, result.To)
	assert.False(t, result.NotificationFailed())

	board, err := root.CreateGetQueueBoardQueryHandler().Handle(ctx, queries.NewGetQueueBoardQuery())
	require.NoError(t, err)
	assert.Empty(t, board.Queued)
	require.Len(t, board.Ready, 1)
	assert.Equal(t, placed.Token, board.Ready[0].Token)

	rec := httptest.NewRecorder()
	root.Metrics().Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "kiosk_orders_placed_total")
	assert.Contains(t, rec.Body.String(), "kiosk_order_transitions_total")
}

func TestCompositionRoot_BoardSnapshot(t *testing.T) {
	root := newMemoryRoot(t)

	board, err := root.Server().Board(context.Background())

	require.NoError(t, err)
	assert.Empty(t, board.Queued)
	assert.Zero(t, root.BoardHub().Clients())
}

func TestCompositionRoot_PostgresRequiresDatabase(t *testing.T) {
	cfg, err := LoadConfig(envOf(nil))
	require.NoError(t, err)
	menu, err := menufile.Parse(strings.NewReader(testMenu))
	require.NoError(t, err)

	_, err = NewCompositionRoot(cfg, nil, menu, slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.Error(t, err)
}
