package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"kiosk/internal/adapters/out/metrics"
	"kiosk/internal/core/domain/model/order"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_HandleEvent(t *testing.T) {
	c := metrics.NewCollector()

	c.HandleEvent(t.Context(), order.Event{Kind: order.EventPlaced, Tier: order.Staff, To: order.Queued})
	c.HandleEvent(t.Context(), order.Event{Kind: order.EventPlaced, Tier: order.Staff, To: order.Queued})
	c.HandleEvent(t.Context(), order.Event{Kind: order.EventTransitioned, From: order.Queued, To: order.Ready})

	body := scrape(t, c)
	assert.Contains(t, body, `kiosk_orders_placed_total{tier="Staff"} 2`)
	assert.Contains(t, body, `kiosk_order_transitions_total{from="Queued",to="Ready"} 1`)
}

func TestCollector_ObserveCommand(t *testing.T) {
	c := metrics.NewCollector()

	c.ObserveCommand("mark_ready", "success", true)
	c.ObserveCommand("mark_ready", "invalid_transition", false)

	body := scrape(t, c)
	assert.Contains(t, body, `kiosk_lifecycle_commands_total{command="mark_ready",outcome="success"} 1`)
	assert.Contains(t, body, `kiosk_lifecycle_commands_total{command="mark_ready",outcome="invalid_transition"} 1`)
	assert.Contains(t, body, "kiosk_ready_notifications_failed_total 1")
}

func TestCollector_Gauges(t *testing.T) {
	c := metrics.NewCollector()

	c.SetQueueLengths(map[order.Status]int{order.Queued: 3, order.Ready: 1})
	c.SetPendingNotifications(2)

	body := scrape(t, c)
	assert.Contains(t, body, `kiosk_orders{status="Queued"} 3`)
	assert.Contains(t, body, `kiosk_orders{status="InPreparation"} 0`)
	assert.Contains(t, body, `kiosk_orders{status="Ready"} 1`)
	assert.Contains(t, body, "kiosk_ready_notifications_pending 2")
}

func TestCollector_Lint(t *testing.T) {
	c := metrics.NewCollector()
	c.ObserveCommand("prepare", "success", false)

	problems, err := testutil.GatherAndLint(c.Registry(),
		"kiosk_orders_placed_total",
		"kiosk_order_transitions_total",
		"kiosk_lifecycle_commands_total",
		"kiosk_ready_notifications_failed_total",
		"kiosk_orders",
		"kiosk_ready_notifications_pending",
	)
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func scrape(t *testing.T, c *metrics.Collector) string {
	t.Helper()
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}
