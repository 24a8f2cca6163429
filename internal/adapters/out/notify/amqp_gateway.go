package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

var (
	ErrPublishNacked  = errors.New("publish NACK from broker")
	ErrConfirmsClosed = errors.New("publisher confirms channel closed")
)

// publisher is the part of *amqp.Channel the gateway needs.
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

const (
	// DefaultConfirmTimeout bounds the wait for a broker confirm when ctx has no deadline.
	DefaultConfirmTimeout = 5 * time.Second

	// confirmBuffer keeps late confirms of timed-out publishes from stalling the
	// connection's dispatch loop until the next publish drains them.
	confirmBuffer = 64
)

// AMQPGateway publishes ready notifications to a fanout exchange with publisher
// confirms. Publishes are serialized; confirms are matched by delivery tag so a
// confirm that arrives after its publish timed out is discarded.
type AMQPGateway struct {
	exchange       string
	ch             publisher
	acks           <-chan amqp.Confirmation
	confirmTimeout time.Duration
	closers        []func() error
	now            func() time.Time

	mu        sync.Mutex
	published uint64
}

// DialAMQP connects to url, declares a durable fanout exchange and enables
// publisher confirms on a dedicated channel.
func DialAMQP(url, exchange string) (*AMQPGateway, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("enable publisher confirms: %w", err)
	}
	acks := ch.NotifyPublish(make(chan amqp.Confirmation, confirmBuffer))

	g := newAMQPGateway(ch, acks, exchange)
	g.closers = []func() error{ch.Close, conn.Close}
	return g, nil
}

func newAMQPGateway(ch publisher, acks <-chan amqp.Confirmation, exchange string) *AMQPGateway {
	return &AMQPGateway{
		exchange:       exchange,
		ch:             ch,
		acks:           acks,
		confirmTimeout: DefaultConfirmTimeout,
		now:            time.Now,
	}
}

// NotifyReady publishes a persistent ReadyMessage and waits for the broker's ack.
// Without a ctx deadline the wait is bounded by DefaultConfirmTimeout.
func (g *AMQPGateway) NotifyReady(ctx context.Context, token string) error {
	body, err := encodeReady(token, g.now())
	if err != nil {
		return err
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.confirmTimeout)
		defer cancel()
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.ch.PublishWithContext(ctx, g.exchange, "", false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Timestamp:    g.now().UTC(),
		MessageId:    token,
		Body:         body,
	}); err != nil {
		return fmt.Errorf("publish ready %s: %w", token, err)
	}
	// The channel numbers confirmed publishes from 1 and only counts successful sends.
	g.published++
	tag := g.published

	for {
		select {
		case conf, ok := <-g.acks:
			if !ok {
				return ErrConfirmsClosed
			}
			if conf.DeliveryTag < tag {
				continue
			}
			if !conf.Ack {
				return ErrPublishNacked
			}
			return nil
		case <-ctx.Done():
			return fmt.Errorf("confirm ready %s: %w", token, ctx.Err())
		}
	}
}

// Close releases the channel and the connection.
func (g *AMQPGateway) Close() error {
	var closeErrs []error
	for _, c := range g.closers {
		closeErrs = append(closeErrs, c())
	}
	return errors.Join(closeErrs...)
}
