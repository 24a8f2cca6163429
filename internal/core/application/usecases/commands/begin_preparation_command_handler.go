package commands

import (
	"context"

	"kiosk/internal/core/domain/model/order"
	"kiosk/internal/pkg/keylock"
)

// BeginPreparationCommandHandler moves a Queued order to InPreparation.
//
// Example:
//
//	locks := keylock.New()
//	handler := NewBeginPreparationCommandHandler(uowFactory, locks)
//	cmd, _ := NewBeginPreparationCommand("ORD-20250314093000-4F1A9C2E")
//	result, err := handler.Handle(ctx, cmd)
//	switch OutcomeOf(err) {
//	case OutcomeNotFound:
//	    // unknown token
//	case OutcomeInvalidTransition:
//	    // already in preparation or ready
//	}
type BeginPreparationCommandHandler struct {
	transitioner transitioner
}

// NewBeginPreparationCommandHandler requires the same locks instance that is given
// to NewMarkReadyCommandHandler.
func NewBeginPreparationCommandHandler(uowFactory OrderUoWFactory, locks *keylock.Mutex) BeginPreparationCommandHandler {
	return BeginPreparationCommandHandler{
		transitioner: transitioner{uowFactory: uowFactory, locks: locks},
	}
}

// Handle returns errs.ObjectNotFoundError for an unknown token and
// errs.InvalidTransitionError unless the order is Queued.
func (h BeginPreparationCommandHandler) Handle(
	ctx context.Context,
	cmd BeginPreparationCommand,
) (TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionResult{}, err
	}
	return h.transitioner.apply(ctx, cmd.Token(), (*order.Order).BeginPreparation)
}
