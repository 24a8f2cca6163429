package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishWithContext(
	ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing,
) error {
	args := m.Called(ctx, exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

var readyAt = time.Date(2025, 3, 14, 9, 45, 0, 0, time.UTC)

func newTestAMQPGateway(ch publisher, acks chan amqp.Confirmation) *AMQPGateway {
	g := newAMQPGateway(ch, acks, "kiosk.ready")
	g.now = func() time.Time { return readyAt }
	return g
}

func TestAMQPGateway_NotifyReady(t *testing.T) {
	const token = "ORD-20250314093000-4F1A9C2E"

	t.Run("publishes message and waits for ack", func(t *testing.T) {
		ch := new(MockPublisher)
		acks := make(chan amqp.Confirmation, 1)
		var published amqp.Publishing
		ch.On("PublishWithContext", mock.Anything, "kiosk.ready", "", false, false, mock.Anything).
			Run(func(args mock.Arguments) {
				published = args.Get(5).(amqp.Publishing)
				acks <- amqp.Confirmation{DeliveryTag: 1, Ack: true}
			}).
			Return(nil).Once()

		require.NoError(t, newTestAMQPGateway(ch, acks).NotifyReady(t.Context(), token))

		ch.AssertExpectations(t)
		assert.Equal(t, amqp.Persistent, published.DeliveryMode)
		assert.Equal(t, "application/json", published.ContentType)
		var msg ReadyMessage
		require.NoError(t, json.Unmarshal(published.Body, &msg))
		assert.Equal(t, token, msg.OrderToken)
		assert.True(t, readyAt.Equal(msg.ReadyAt))
	})

	t.Run("nack is an error", func(t *testing.T) {
		ch := new(MockPublisher)
		acks := make(chan amqp.Confirmation, 1)
		ch.On("PublishWithContext", mock.Anything, "kiosk.ready", "", false, false, mock.Anything).
			Run(func(mock.Arguments) { acks <- amqp.Confirmation{DeliveryTag: 1, Ack: false} }).
			Return(nil).Once()

		err := newTestAMQPGateway(ch, acks).NotifyReady(t.Context(), token)

		require.ErrorIs(t, err, ErrPublishNacked)
	})

	t.Run("publish failure", func(t *testing.T) {
		ch := new(MockPublisher)
		brokerErr := errors.New("channel closed")
		ch.On("PublishWithContext", mock.Anything, "kiosk.ready", "", false, false, mock.Anything).
			Return(brokerErr).Once()

		err := newTestAMQPGateway(ch, make(chan amqp.Confirmation, 1)).NotifyReady(t.Context(), token)

		require.ErrorIs(t, err, brokerErr)
	})

	t.Run("gives up waiting when the context ends", func(t *testing.T) {
		ch := new(MockPublisher)
		ch.On("PublishWithContext", mock.Anything, "kiosk.ready", "", false, false, mock.Anything).
			Return(nil).Once()
		ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
		defer cancel()

		err := newTestAMQPGateway(ch, make(chan amqp.Confirmation)).NotifyReady(ctx, token)

		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("silent broker is bounded without a caller deadline", func(t *testing.T) {
		ch := new(MockPublisher)
		ch.On("PublishWithContext", mock.Anything, "kiosk.ready", "", false, false, mock.Anything).
			Return(nil).Once()
		g := newTestAMQPGateway(ch, make(chan amqp.Confirmation))
		g.confirmTimeout = 30 * time.Millisecond
		reqCtx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
		defer cancel()

		errCh := make(chan error, 1)
		go func() { errCh <- g.NotifyReady(context.WithoutCancel(reqCtx), token) }()

		select {
		case err := <-errCh:
			require.ErrorIs(t, err, context.DeadlineExceeded)
		case <-time.After(2 * time.Second):
			t.Fatal("NotifyReady kept waiting for a confirm that never came")
		}
	})

	t.Run("late confirm is not credited to the next publish", func(t *testing.T) {
		ch := new(MockPublisher)
		acks := make(chan amqp.Confirmation, 4)
		ch.On("PublishWithContext", mock.Anything, "kiosk.ready", "", false, false, mock.Anything).
			Return(nil).Once()
		ch.On("PublishWithContext", mock.Anything, "kiosk.ready", "", false, false, mock.Anything).
			Run(func(mock.Arguments) {
				acks <- amqp.Confirmation{DeliveryTag: 1, Ack: false}
				acks <- amqp.Confirmation{DeliveryTag: 2, Ack: true}
			}).
			Return(nil).Once()
		g := newTestAMQPGateway(ch, acks)

		ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
		defer cancel()
		require.ErrorIs(t, g.NotifyReady(ctx, token), context.DeadlineExceeded)

		require.NoError(t, g.NotifyReady(t.Context(), "ORD-20250314093100-0000BEEF"))
		ch.AssertExpectations(t)
	})

	t.Run("failed publish does not consume a delivery tag", func(t *testing.T) {
		ch := new(MockPublisher)
		acks := make(chan amqp.Confirmation, 1)
		ch.On("PublishWithContext", mock.Anything, "kiosk.ready", "", false, false, mock.Anything).
			Return(errors.New("flow control")).Once()
		ch.On("PublishWithContext", mock.Anything, "kiosk.ready", "", false, false, mock.Anything).
			Run(func(mock.Arguments) { acks <- amqp.Confirmation{DeliveryTag: 1, Ack: true} }).
			Return(nil).Once()
		g := newTestAMQPGateway(ch, acks)

		require.Error(t, g.NotifyReady(t.Context(), token))
		require.NoError(t, g.NotifyReady(t.Context(), token))
	})

	t.Run("closed confirms channel", func(t *testing.T) {
		ch := new(MockPublisher)
		ch.On("PublishWithContext", mock.Anything, "kiosk.ready", "", false, false, mock.Anything).
			Return(nil).Once()
		acks := make(chan amqp.Confirmation)
		close(acks)

		err := newTestAMQPGateway(ch, acks).NotifyReady(t.Context(), token)

		require.ErrorIs(t, err, ErrConfirmsClosed)
	})
}
