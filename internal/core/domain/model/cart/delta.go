package cart

import (
	"fmt"
	"strings"

	"foodbot/internal/pkg/guard"
)

// Line is a single item and its quantity.
type Line struct {
	Item     string
	Quantity int
}

// Delta is a validated batch of changes applied to a Cart in one call.
//
// Lines keep the order in which items first appeared. An item repeated in the
// input is collapsed into one line with the quantities summed, so
// {pizza:1, pizza:2} behaves exactly like {pizza:3} for both Merge and Subtract.
type Delta struct {
	lines []Line
	guard guard.ConstructorGuard
}

// NewDelta builds a Delta from the parallel lists the intent router extracts.
//
// Validation:
//   - both lists must be non-empty and of equal length (ErrInputMismatch)
//   - item names must not be blank (ErrInputMismatch)
//   - item names are trimmed and lower-cased, so "Pizza" and "pizza" are one
//     line, matching the catalog's case-insensitive lookup
//   - every quantity must be positive (ErrInvalidQuantity)
//
// Example:
//
//	delta, err := cart.NewDelta([]string{"pizza", "mango lassi"}, []int{2, 1})
//	if err != nil {
//	    return err
//	}
//	c.Merge(delta)
func NewDelta(items []string, quantities []int) (Delta, error) {
	if len(items) == 0 || len(quantities) == 0 {
		return Delta{}, fmt.Errorf("%w: delta is empty", ErrInputMismatch)
	}
	if len(items) != len(quantities) {
		return Delta{}, fmt.Errorf("%w: %d items, %d quantities", ErrInputMismatch, len(items), len(quantities))
	}

	lines := make([]Line, 0, len(items))
	index := make(map[string]int, len(items))
	for i, raw := range items {
		item := NormalizeItem(raw)
		if item == "" {
			return Delta{}, fmt.Errorf("%w: item %d has no name", ErrInputMismatch, i)
		}

		quantity := quantities[i]
		if quantity <= 0 {
			return Delta{}, &InvalidQuantityError{Item: item, Quantity: quantity}
		}

		if pos, seen := index[item]; seen {
			lines[pos].Quantity += quantity
			continue
		}
		index[item] = len(lines)
		lines = append(lines, Line{Item: item, Quantity: quantity})
	}

	return Delta{lines: lines, guard: guard.NewConstructorGuard()}, nil
}

// NormalizeItem is the canonical form of an item name used as a cart key.
func NormalizeItem(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Validate ensures the delta was created through NewDelta.
func (d Delta) Validate() error {
	return d.guard.Validate(ErrDeltaIsNotConstructed)
}

// Lines returns a copy of the delta's lines.
func (d Delta) Lines() []Line {
	out := make([]Line, len(d.lines))
	copy(out, d.lines)
	return out
}

// String renders the delta as "2 pizza, 1 mango lassi".
func (d Delta) String() string {
	return FormatLines(d.lines)
}
