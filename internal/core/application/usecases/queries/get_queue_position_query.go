package queries

import (
	"errors"
	"strings"

	"kiosk/internal/pkg/errs"
	"kiosk/internal/pkg/guard"
)

var ErrGetQueuePositionQueryIsNotConstructed = errors.New(
	"GetQueuePositionQuery must be created via NewGetQueuePositionQuery constructor",
)

// GetQueuePositionQuery asks how many orders are ahead of a token, plus one.
type GetQueuePositionQuery struct {
	token string

	guard guard.ConstructorGuard
}

func NewGetQueuePositionQuery(token string) (GetQueuePositionQuery, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return GetQueuePositionQuery{}, errs.NewValueIsRequiredError("order token")
	}
	return GetQueuePositionQuery{token: token, guard: guard.NewConstructorGuard()}, nil
}

func (q GetQueuePositionQuery) Validate() error {
	return q.guard.Validate(ErrGetQueuePositionQueryIsNotConstructed)
}

func (q GetQueuePositionQuery) Token() string {
	return q.token
}
