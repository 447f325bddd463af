package queries

import (
	"context"

	"foodbot/internal/core/ports"

	"github.com/shopspring/decimal"
)

// GetOrderTotalQueryHandler returns the order total. An order with no line
// items totals zero.
type GetOrderTotalQueryHandler struct {
	orders ports.OrderRepository
}

func NewGetOrderTotalQueryHandler(orders ports.OrderRepository) GetOrderTotalQueryHandler {
	return GetOrderTotalQueryHandler{orders: orders}
}

func (h GetOrderTotalQueryHandler) Handle(ctx context.Context, query GetOrderTotalQuery) (decimal.Decimal, error) {
	if err := query.Validate(); err != nil {
		return decimal.Zero, err
	}

	return h.orders.GetTotal(ctx, query.OrderID())
}
