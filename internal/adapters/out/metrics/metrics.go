// Package metrics exposes Prometheus counters and gauges for the order queue.
package metrics

import (
	"context"
	"net/http"

	"kiosk/internal/core/domain/model/order"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "kiosk"

// Collector owns a private registry so tests and multiple instances do not
// collide on the global one.
type Collector struct {
	registry *prometheus.Registry

	ordersPlaced        *prometheus.CounterVec
	transitions         *prometheus.CounterVec
	commandOutcomes     *prometheus.CounterVec
	notificationsFailed prometheus.Counter
	queueLength         *prometheus.GaugeVec
	pendingRetries      prometheus.Gauge
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		ordersPlaced: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "orders_placed_total",
				Help:      "Orders accepted at intake",
			},
			[]string{"tier"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "order_transitions_total",
				Help:      "Committed status changes",
			},
			[]string{"from", "to"},
		),
		commandOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lifecycle_commands_total",
				Help:      "Lifecycle commands by outcome",
			},
			[]string{"command", "outcome"},
		),
		notificationsFailed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ready_notifications_failed_total",
				Help:      "Ready notifications the gateway could not deliver",
			},
		),
		queueLength: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "orders",
				Help:      "Orders by current status",
			},
			[]string{"status"},
		),
		pendingRetries: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "ready_notifications_pending",
				Help:      "Ready notifications waiting for a retry",
			},
		),
	}

	c.registry.MustRegister(
		c.ordersPlaced,
		c.transitions,
		c.commandOutcomes,
		c.notificationsFailed,
		c.queueLength,
		c.pendingRetries,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// HandleEvent counts committed domain events. Subscribe it to the event bus.
func (c *Collector) HandleEvent(_ context.Context, event order.Event) {
	switch event.Kind {
	case order.EventPlaced:
		c.ordersPlaced.WithLabelValues(event.Tier.String()).Inc()
	case order.EventTransitioned:
		c.transitions.WithLabelValues(event.From.String(), event.To.String()).Inc()
	}
}

// ObserveCommand records the outcome of BeginPreparation or MarkReady.
func (c *Collector) ObserveCommand(command, outcome string, notificationFailed bool) {
	c.commandOutcomes.WithLabelValues(command, outcome).Inc()
	if notificationFailed {
		c.notificationsFailed.Inc()
	}
}

// SetQueueLengths publishes a snapshot of order counts per status.
func (c *Collector) SetQueueLengths(counts map[order.Status]int) {
	for _, status := range []order.Status{order.Queued, order.InPreparation, order.Ready} {
		c.queueLength.WithLabelValues(status.String()).Set(float64(counts[status]))
	}
}

func (c *Collector) SetPendingNotifications(n int) {
	c.pendingRetries.Set(float64(n))
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Registry exposes the underlying registry for tests and custom exporters.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
