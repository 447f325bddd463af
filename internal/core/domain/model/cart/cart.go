package cart

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"foodbot/internal/pkg/guard"
)

// Cart is the not-yet-committed set of items a session is building.
//
// Invariants:
//   - every stored quantity is > 0
//   - a failed Subtract leaves the cart unchanged
//
// Example:
//
//	c := cart.New()
//	add, _ := cart.NewDelta([]string{"pizza", "coke"}, []int{2, 2})
//	_ = c.Merge(add)
//
//	remove, _ := cart.NewDelta([]string{"coke"}, []int{1})
//	if err := c.Subtract(remove); err != nil {
//	    // ItemNotInCartError, cart untouched
//	}
//	c.String() // "1 coke, 2 pizza"
type Cart struct {
	items map[string]int
	guard guard.ConstructorGuard
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{
		items: make(map[string]int),
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the cart was created through New.
func (c *Cart) Validate() error {
	if c == nil {
		return ErrCartIsNotConstructed
	}
	return c.guard.Validate(ErrCartIsNotConstructed)
}

// Merge adds every line of delta to the cart, creating entries as needed.
func (c *Cart) Merge(delta Delta) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := delta.Validate(); err != nil {
		return err
	}

	for _, line := range delta.lines {
		c.items[line.Item] += line.Quantity
	}
	return nil
}

// Subtract removes every line of delta from the cart, or nothing at all.
//
// Each item must be present with at least the requested quantity. The first
// line (in delta order) that fails this check is returned as an
// *ItemNotInCartError and no quantity is changed. Entries that reach zero are
// deleted.
func (c *Cart) Subtract(delta Delta) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := delta.Validate(); err != nil {
		return err
	}

	for _, line := range delta.lines {
		if c.items[line.Item] < line.Quantity {
			return &ItemNotInCartError{Item: line.Item, Quantity: line.Quantity}
		}
	}

	for _, line := range delta.lines {
		remaining := c.items[line.Item] - line.Quantity
		if remaining <= 0 {
			delete(c.items, line.Item)
			continue
		}
		c.items[line.Item] = remaining
	}
	return nil
}

// Quantity returns the quantity of item, 0 if absent.
func (c *Cart) Quantity(item string) int {
	return c.items[NormalizeItem(item)]
}

// Len returns the number of distinct items.
func (c *Cart) Len() int {
	return len(c.items)
}

// IsEmpty reports whether the cart holds no items.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Lines returns the cart's contents sorted by item name.
func (c *Cart) Lines() []Line {
	lines := make([]Line, 0, len(c.items))
	for _, item := range slices.Sorted(maps.Keys(c.items)) {
		lines = append(lines, Line{Item: item, Quantity: c.items[item]})
	}
	return lines
}

// Clone returns an independent copy of the cart.
func (c *Cart) Clone() *Cart {
	return &Cart{
		items: maps.Clone(c.items),
		guard: c.guard,
	}
}

// String renders the cart as "1 coke, 2 pizza".
func (c *Cart) String() string {
	return FormatLines(c.Lines())
}

// FormatLines renders lines as a comma separated "<quantity> <item>" list.
func FormatLines(lines []Line) string {
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		parts = append(parts, strconv.Itoa(line.Quantity)+" "+line.Item)
	}
	return strings.Join(parts, ", ")
}
