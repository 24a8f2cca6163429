package commands

import (
	"context"
	"log/slog"
	"time"

	"kiosk/internal/core/domain/model/order"
	"kiosk/internal/core/ports"
	"kiosk/internal/pkg/errs"
	"kiosk/internal/pkg/keylock"
)

// MarkReadyCommandHandler moves a Queued or InPreparation order to Ready and
// notifies the customer once the change is committed.
//
// Example:
//
//	handler := NewMarkReadyCommandHandler(uowFactory, locks, gateway, logger)
//	cmd, _ := NewMarkReadyCommand(token)
//	result, err := handler.Handle(ctx, cmd)
//	if err == nil && result.NotificationFailed() {
//	    // order is Ready, tell staff to call the customer
//	}
type MarkReadyCommandHandler struct {
	transitioner  transitioner
	gateway       ports.NotificationGateway
	notifyTimeout time.Duration
	logger        *slog.Logger
}

// DefaultNotifyTimeout bounds one ready notification when none is configured.
const DefaultNotifyTimeout = 5 * time.Second

// NewMarkReadyCommandHandler requires the same locks instance that is given to
// NewBeginPreparationCommandHandler.
func NewMarkReadyCommandHandler(
	uowFactory OrderUoWFactory,
	locks *keylock.Mutex,
	gateway ports.NotificationGateway,
	logger *slog.Logger,
) MarkReadyCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return MarkReadyCommandHandler{
		transitioner:  transitioner{uowFactory: uowFactory, locks: locks},
		gateway:       gateway,
		notifyTimeout: DefaultNotifyTimeout,
		logger:        logger.With("component", "mark_ready_handler"),
	}
}

// WithNotifyTimeout returns a copy that gives the gateway at most timeout per call.
// Non-positive values keep the current timeout.
func (h MarkReadyCommandHandler) WithNotifyTimeout(timeout time.Duration) MarkReadyCommandHandler {
	if timeout > 0 {
		h.notifyTimeout = timeout
	}
	return h
}

// Handle commits the Ready status and then calls the notification gateway exactly
// once. A gateway failure does not undo the transition: it is returned in
// TransitionResult.NotificationErr as an errs.NotificationFailedError.
func (h MarkReadyCommandHandler) Handle(ctx context.Context, cmd MarkReadyCommand) (TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionResult{}, err
	}

	result, err := h.transitioner.apply(ctx, cmd.Token(), (*order.Order).MarkReady)
	if err != nil {
		return TransitionResult{}, err
	}

	// The order is already Ready: the request deadline must not cancel the
	// notification, but a silent gateway must not hold the request forever.
	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.notifyTimeout)
	defer cancel()
	if notifyErr := h.gateway.NotifyReady(notifyCtx, result.Token); notifyErr != nil {
		result.NotificationErr = errs.NewNotificationFailedError(result.Token, notifyErr)
		h.logger.ErrorContext(ctx, "ready notification failed",
			"token", result.Token,
			"error", notifyErr,
		)
	}

	return result, nil
}
