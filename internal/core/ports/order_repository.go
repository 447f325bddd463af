// Package ports defines the contracts between the ordering core and its
// infrastructure: durable order storage and the per-session cart store.
package ports

import (
	"context"
	"errors"

	"foodbot/internal/core/domain/model/kernel"
	"foodbot/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// ErrRepositoryUnavailable wraps transport or storage-layer failures (lost
// connection, timeout) as opposed to a query that ran and found nothing.
var ErrRepositoryUnavailable = errors.New("repository unavailable")

// OrderRepository defines the persistence contract for placed orders.
// The core only writes line items and tracking records and reads them back
// through GetStatus and GetTotal.
type OrderRepository interface {
	// NextOrderID allocates a new order id: one greater than the highest id
	// ever assigned, or kernel.FirstOrderID when none exist. Allocation is
	// atomic across concurrent callers; an id is never handed out twice.
	NextOrderID(ctx context.Context) (kernel.OrderID, error)

	// InsertLineItem persists one (order, item, quantity) row. The item must
	// exist in the food catalog, which also prices the line.
	InsertLineItem(ctx context.Context, orderID kernel.OrderID, item string, quantity int) error

	// InsertTracking appends a tracking record for the order.
	InsertTracking(ctx context.Context, orderID kernel.OrderID, status order.Status) error

	// GetStatus returns the latest tracking status for the order.
	// Returns an error wrapping errs.ErrObjectNotFound when the order has no
	// tracking record.
	GetStatus(ctx context.Context, orderID kernel.OrderID) (order.Status, error)

	// GetTotal returns the sum of the order's line totals. An order without
	// line items totals zero.
	GetTotal(ctx context.Context, orderID kernel.OrderID) (decimal.Decimal, error)
}
