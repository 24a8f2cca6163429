package commands

import (
	"context"
	"errors"
	"strings"
	"time"

	"kiosk/internal/core/domain/model/order"
	"kiosk/internal/pkg/errs"
	"kiosk/internal/pkg/keylock"
)

// Outcome classifies the result of a lifecycle command for callers that need
// a closed set of answers (HTTP status mapping, metrics).
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeNotFound
	OutcomeInvalidTransition
	OutcomeStorageUnavailable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeInvalidTransition:
		return "invalid_transition"
	default:
		return "storage_unavailable"
	}
}

// OutcomeOf maps an error returned by BeginPreparation or MarkReady handlers.
// A missing or malformed token cannot name any order and counts as not found.
// Anything unclassified is treated as a storage failure, and so is a storage
// failure whose driver cause happens to be a validation error.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, errs.ErrStorageUnavailable):
		return OutcomeStorageUnavailable
	case errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid):
		return OutcomeNotFound
	case errors.Is(err, errs.ErrInvalidTransition):
		return OutcomeInvalidTransition
	default:
		return OutcomeStorageUnavailable
	}
}

// TransitionResult describes a committed status change.
// NotificationErr is set when MarkReady committed Ready but the customer could
// not be notified; the order stays Ready.
type TransitionResult struct {
	Token           string
	From            order.Status
	To              order.Status
	UpdatedAt       time.Time
	NotificationErr error
}

// NotificationFailed reports whether the ready notification did not go out.
func (r TransitionResult) NotificationFailed() bool {
	return r.NotificationErr != nil
}

// transitioner runs one read-modify-write of a single order. The same keylock
// instance must be shared by every handler that changes order status.
type transitioner struct {
	uowFactory OrderUoWFactory
	locks      *keylock.Mutex
}

func (t transitioner) apply(
	ctx context.Context,
	token string,
	step func(o *order.Order, at time.Time) error,
) (TransitionResult, error) {
	unlock := t.locks.Lock(token)
	defer unlock()

	uow := t.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TransitionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.GetByTokenForUpdate(ctx, token)
	if err != nil {
		return TransitionResult{}, err
	}

	from := aggregate.Status()
	if err = step(aggregate, time.Now().UTC().Truncate(time.Microsecond)); err != nil {
		return TransitionResult{}, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return TransitionResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return TransitionResult{}, err
	}

	return TransitionResult{
		Token:     aggregate.Token().String(),
		From:      from,
		To:        aggregate.Status(),
		UpdatedAt: aggregate.UpdatedAt(),
	}, nil
}

func normalizeToken(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errs.NewValueIsRequiredError("order token")
	}
	return token, nil
}
