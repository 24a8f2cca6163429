// Package notify implements ports.NotificationGateway.
//
// Three transports are available and picked by configuration:
//
//   - LogGateway writes a structured log line per ready order.
//   - AMQPGateway publishes a ReadyMessage to a RabbitMQ fanout exchange and
//     waits for the broker confirm.
//   - PostgresGateway sends pg_notify on a channel; ReadyListener receives them
//     in any process connected to the same database.
//
// RetryingGateway wraps any of them. A failed call is still reported to the
// caller and is also kept for RetryPending, which a scheduled job drives.
package notify
