package commands

import (
	"foodbot/internal/core/domain/model/cart"
	"foodbot/internal/core/domain/model/kernel"
)

// CartSummary is returned by the add and remove handlers: the lines that were
// applied and the cart as it stands afterwards.
type CartSummary struct {
	SessionID kernel.SessionID
	Applied   []cart.Line
	Cart      []cart.Line
}

// AppliedText renders the applied lines, e.g. "2 pizza".
func (s CartSummary) AppliedText() string {
	return cart.FormatLines(s.Applied)
}

// CartText renders the resulting cart, e.g. "1 coke, 2 pizza".
func (s CartSummary) CartText() string {
	return cart.FormatLines(s.Cart)
}

func newCartSummary(sessionID kernel.SessionID, applied cart.Delta, c *cart.Cart) CartSummary {
	return CartSummary{
		SessionID: sessionID,
		Applied:   applied.Lines(),
		Cart:      c.Lines(),
	}
}
