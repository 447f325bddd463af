package commands

import (
	"errors"

	"foodbot/internal/core/domain/model/kernel"
	"foodbot/internal/pkg/guard"
)

var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// CompleteOrderCommand turns a session's cart into a placed order.
type CompleteOrderCommand struct {
	sessionID kernel.SessionID

	guard guard.ConstructorGuard
}

// NewCompleteOrderCommand creates the command for sessionID.
func NewCompleteOrderCommand(sessionID kernel.SessionID) (CompleteOrderCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return CompleteOrderCommand{}, err
	}

	return CompleteOrderCommand{
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

// SessionID returns the session whose cart is finalized.
func (c CompleteOrderCommand) SessionID() kernel.SessionID {
	return c.sessionID
}
