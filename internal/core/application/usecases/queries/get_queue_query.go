package queries

import (
	"errors"
	"fmt"
	"strings"

	"kiosk/internal/pkg/errs"
	"kiosk/internal/pkg/guard"
)

var ErrGetQueueQueryIsNotConstructed = errors.New(
	"GetQueueQuery must be created via NewGetQueueQuery constructor",
)

// QueueView selects which part of the queue GetQueueQuery returns.
type QueueView string

const (
	ViewAll           QueueView = "all"
	ViewQueued        QueueView = "queued"
	ViewInPreparation QueueView = "in_preparation"
	ViewReady         QueueView = "ready"
)

// ParseQueueView accepts the view names; an empty string selects ViewAll.
func ParseQueueView(s string) (QueueView, error) {
	switch v := QueueView(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return ViewAll, nil
	case ViewAll, ViewQueued, ViewInPreparation, ViewReady:
		return v, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("view", fmt.Errorf("%q is not a queue view", s))
	}
}

// GetQueueQuery lists orders of one view.
//
//	all             every order in serving order, regardless of status
//	queued          the serving order; the head is the next order to start
//	in_preparation  orders being worked on, in serving order
//	ready           orders awaiting pickup, in storage order
type GetQueueQuery struct {
	view QueueView

	guard guard.ConstructorGuard
}

func NewGetQueueQuery(view QueueView) (GetQueueQuery, error) {
	parsed, err := ParseQueueView(string(view))
	if err != nil {
		return GetQueueQuery{}, err
	}
	return GetQueueQuery{view: parsed, guard: guard.NewConstructorGuard()}, nil
}

func (q GetQueueQuery) Validate() error {
	return q.guard.Validate(ErrGetQueueQueryIsNotConstructed)
}

func (q GetQueueQuery) View() QueueView {
	return q.view
}
