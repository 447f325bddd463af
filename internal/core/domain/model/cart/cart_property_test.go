package cart_test

import (
	"testing"

	"foodbot/internal/core/domain/model/cart"

	"pgregory.net/rapid"
)

var menu = []string{"pizza", "samosa", "mango lassi", "pav bhaji", "masala dosa"}

func drawDelta(t *rapid.T, label string) cart.Delta {
	n := rapid.IntRange(1, 6).Draw(t, label+"_len")
	items := make([]string, n)
	quantities := make([]int, n)
	for i := range n {
		items[i] = rapid.SampledFrom(menu).Draw(t, label+"_item")
		quantities[i] = rapid.IntRange(1, 20).Draw(t, label+"_qty")
	}

	delta, err := cart.NewDelta(items, quantities)
	if err != nil {
		t.Fatalf("generated delta rejected: %v", err)
	}
	return delta
}

func reversed(d cart.Delta) cart.Delta {
	lines := d.Lines()
	items := make([]string, 0, len(lines))
	quantities := make([]int, 0, len(lines))
	for i := len(lines) - 1; i >= 0; i-- {
		items = append(items, lines[i].Item)
		quantities = append(quantities, lines[i].Quantity)
	}
	out, _ := cart.NewDelta(items, quantities)
	return out
}

func assertSameLines(t *rapid.T, want, got *cart.Cart) {
	wantLines, gotLines := want.Lines(), got.Lines()
	if len(wantLines) != len(gotLines) {
		t.Fatalf("carts differ: %v vs %v", wantLines, gotLines)
	}
	for i := range wantLines {
		if wantLines[i] != gotLines[i] {
			t.Fatalf("carts differ: %v vs %v", wantLines, gotLines)
		}
	}
}

func TestMergeIsCommutative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a, b := drawDelta(t, "a"), drawDelta(t, "b")

		ab := cart.New()
		_ = ab.Merge(a)
		_ = ab.Merge(b)

		ba := cart.New()
		_ = ba.Merge(b)
		_ = ba.Merge(a)

		assertSameLines(t, ab, ba)
	})
}

func TestMergeIgnoresLineOrder(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := drawDelta(t, "d")

		forward := cart.New()
		_ = forward.Merge(d)
		backward := cart.New()
		_ = backward.Merge(reversed(d))

		assertSameLines(t, forward, backward)
	})
}

func TestMergeNeverRemovesEntries(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := cart.New()
		_ = c.Merge(drawDelta(t, "seed"))
		before := c.Lines()

		_ = c.Merge(drawDelta(t, "more"))

		for _, line := range before {
			if c.Quantity(line.Item) < line.Quantity {
				t.Fatalf("%s dropped from %d to %d", line.Item, line.Quantity, c.Quantity(line.Item))
			}
		}
	})
}

func TestSubtractIsAllOrNothing(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := cart.New()
		_ = c.Merge(drawDelta(t, "seed"))
		snapshot := c.Clone()

		err := c.Subtract(drawDelta(t, "remove"))

		if err != nil {
			assertSameLines(t, snapshot, c)
			return
		}
		for _, line := range c.Lines() {
			if line.Quantity <= 0 {
				t.Fatalf("non-positive quantity stored for %s", line.Item)
			}
		}
	})
}

func TestSubtractUndoesMerge(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := cart.New()
		_ = c.Merge(drawDelta(t, "seed"))
		snapshot := c.Clone()
		d := drawDelta(t, "d")

		_ = c.Merge(d)
		if err := c.Subtract(d); err != nil {
			t.Fatalf("subtracting what was just merged failed: %v", err)
		}

		assertSameLines(t, snapshot, c)
	})
}
