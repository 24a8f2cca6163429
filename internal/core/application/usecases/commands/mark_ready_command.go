package commands

import (
	"errors"

	"kiosk/internal/pkg/guard"
)

var ErrMarkReadyCommandIsNotConstructed = errors.New(
	"MarkReadyCommand must be created via NewMarkReadyCommand constructor",
)

// MarkReadyCommand is a staff member handing an order over to the pickup counter.
type MarkReadyCommand struct {
	token string

	guard guard.ConstructorGuard
}

func NewMarkReadyCommand(token string) (MarkReadyCommand, error) {
	normalized, err := normalizeToken(token)
	if err != nil {
		return MarkReadyCommand{}, err
	}
	return MarkReadyCommand{
		token: normalized,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c MarkReadyCommand) Validate() error {
	return c.guard.Validate(ErrMarkReadyCommandIsNotConstructed)
}

func (c MarkReadyCommand) Token() string {
	return c.token
}
