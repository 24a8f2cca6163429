package queries

import (
	"errors"
	"strings"

	"kiosk/internal/pkg/errs"
	"kiosk/internal/pkg/guard"
)

var ErrGetOrderStatusQueryIsNotConstructed = errors.New(
	"GetOrderStatusQuery must be created via NewGetOrderStatusQuery constructor",
)

// GetOrderStatusQuery is what a customer's screen polls with the token on their receipt.
type GetOrderStatusQuery struct {
	token string

	guard guard.ConstructorGuard
}

func NewGetOrderStatusQuery(token string) (GetOrderStatusQuery, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return GetOrderStatusQuery{}, errs.NewValueIsRequiredError("order token")
	}
	return GetOrderStatusQuery{token: token, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatusQueryIsNotConstructed)
}

func (q GetOrderStatusQuery) Token() string {
	return q.token
}
