package queries

import (
	"context"

	"foodbot/internal/core/domain/model/order"
	"foodbot/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderDetailsQueryHandler reads orders straight from the database with raw
// SQL, bypassing the write-side repository.
//
// Returns an error wrapping errs.ErrObjectNotFound when the order has neither
// line items nor a tracking record.
type GetOrderDetailsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderDetailsQueryHandler requires a GORM connection for query execution.
func NewGetOrderDetailsQueryHandler(db *gorm.DB) GetOrderDetailsQueryHandler {
	return GetOrderDetailsQueryHandler{db: db}
}

func (h GetOrderDetailsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderDetailsQuery,
) (GetOrderDetailsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}

	resp := GetOrderDetailsQueryResponse{
		OrderID: query.OrderID(),
		Lines:   make([]OrderLineResponse, 0),
		Total:   decimal.Zero,
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			f.name,
			o.quantity,
			f.price,
			o.total_price
		FROM orders o
		JOIN food_items f ON f.item_id = o.item_id
		WHERE o.order_id = ?
		ORDER BY f.name
	`, query.OrderID().Int64()).Rows()
	if err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var line OrderLineResponse
		if err = rows.Scan(&line.Item, &line.Quantity, &line.UnitPrice, &line.LineTotal); err != nil {
			return GetOrderDetailsQueryResponse{}, err
		}
		resp.Lines = append(resp.Lines, line)
		resp.Total = resp.Total.Add(line.LineTotal)
	}
	if err = rows.Err(); err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}

	var statuses []string
	err = h.db.WithContext(ctx).Raw(`
		SELECT status
		FROM order_tracking
		WHERE order_id = ?
		ORDER BY id DESC
		LIMIT 1
	`, query.OrderID().Int64()).Scan(&statuses).Error
	if err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}

	if len(statuses) == 0 && len(resp.Lines) == 0 {
		return GetOrderDetailsQueryResponse{}, errs.NewObjectNotFoundError("order id", query.OrderID().Int64())
	}
	if len(statuses) > 0 {
		status, parseErr := order.ParseStatus(statuses[0])
		if parseErr != nil {
			return GetOrderDetailsQueryResponse{}, parseErr
		}
		resp.Status = status
	}

	return resp, nil
}
