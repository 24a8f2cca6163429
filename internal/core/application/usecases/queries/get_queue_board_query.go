package queries

import (
	"errors"

	"kiosk/internal/pkg/guard"
)

var ErrGetQueueBoardQueryIsNotConstructed = errors.New(
	"GetQueueBoardQuery must be created via NewGetQueueBoardQuery constructor",
)

// GetQueueBoardQuery returns the three staff boards from a single snapshot.
type GetQueueBoardQuery struct {
	guard guard.ConstructorGuard
}

func NewGetQueueBoardQuery() GetQueueBoardQuery {
	return GetQueueBoardQuery{guard: guard.NewConstructorGuard()}
}

func (q GetQueueBoardQuery) Validate() error {
	return q.guard.Validate(ErrGetQueueBoardQueryIsNotConstructed)
}
