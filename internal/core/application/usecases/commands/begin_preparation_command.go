package commands

import (
	"errors"

	"kiosk/internal/pkg/guard"
)

var ErrBeginPreparationCommandIsNotConstructed = errors.New(
	"BeginPreparationCommand must be created via NewBeginPreparationCommand constructor",
)

// BeginPreparationCommand is a staff member starting work on a queued order.
type BeginPreparationCommand struct {
	token string

	guard guard.ConstructorGuard
}

// NewBeginPreparationCommand only checks that a token was given. Whether it names
// an existing order is decided by the handler.
func NewBeginPreparationCommand(token string) (BeginPreparationCommand, error) {
	normalized, err := normalizeToken(token)
	if err != nil {
		return BeginPreparationCommand{}, err
	}
	return BeginPreparationCommand{
		token: normalized,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c BeginPreparationCommand) Validate() error {
	return c.guard.Validate(ErrBeginPreparationCommandIsNotConstructed)
}

func (c BeginPreparationCommand) Token() string {
	return c.token
}
