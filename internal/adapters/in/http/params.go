package http

import (
	"fmt"
	"math"
	"strings"

	"foodbot/internal/core/domain/model/cart"
)

// Parameter names produced by the agent's entity extraction.
const (
	paramFoodItems = "food-items"
	paramNumber    = "number"
)

// stringList accepts a single string or a list of strings. A missing value is
// an empty list.
func stringList(v any) ([]string, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		if strings.TrimSpace(val) == "" {
			return nil, nil
		}
		return []string{val}, nil
	case []any:
		out := make([]string, 0, len(val))
		for _, raw := range val {
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %v is not an item name", cart.ErrInputMismatch, raw)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: unexpected %T for %s", cart.ErrInputMismatch, v, paramFoodItems)
}

// quantityList accepts a single number or a list of numbers. JSON numbers
// arrive as float64; anything that is not a whole number is rejected.
func quantityList(v any) ([]int, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case float64:
		q, err := wholeNumber(val)
		if err != nil {
			return nil, err
		}
		return []int{q}, nil
	case []any:
		out := make([]int, 0, len(val))
		for _, raw := range val {
			f, ok := raw.(float64)
			if !ok {
				return nil, fmt.Errorf("%w: %v is not a number", cart.ErrInvalidQuantity, raw)
			}
			q, err := wholeNumber(f)
			if err != nil {
				return nil, err
			}
			out = append(out, q)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: unexpected %T for %s", cart.ErrInvalidQuantity, v, paramNumber)
}

func wholeNumber(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %v is not a whole number", cart.ErrInvalidQuantity, f)
	}
	return int(f), nil
}

// orderNumber extracts the order id for tracking. A list yields its first
// element.
func orderNumber(v any) (int64, bool) {
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return 0, false
		}
		v = list[0]
	}

	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return int64(f), true
}
