package orderrepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"foodbot/internal/core/domain/model/kernel"
	"foodbot/internal/core/domain/model/order"
	"foodbot/internal/core/ports"
	"foodbot/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// allocationLockKey serializes order id allocation across processes.
const allocationLockKey int64 = 0x666f6f64

var _ ports.OrderRepository = (*GormOrderRepository)(nil)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormOrderRepository creates a repository bound to db, which may be a
// transaction.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db, now: time.Now}
}

// NextOrderID allocates max(allocated, placed) + 1 under a transaction-scoped
// advisory lock and records the id in order_ids.
func (r *GormOrderRepository) NextOrderID(ctx context.Context) (kernel.OrderID, error) {
	var next int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", allocationLockKey).Error; err != nil {
			return err
		}

		err := tx.Raw(`
			SELECT GREATEST(
				COALESCE((SELECT MAX(order_id) FROM order_ids), 0),
				COALESCE((SELECT MAX(order_id) FROM orders), 0)
			) + 1
		`).Row().Scan(&next)
		if err != nil {
			return err
		}

		return tx.Create(&OrderIDDTO{OrderID: next, AllocatedAt: r.now()}).Error
	})
	if err != nil {
		return 0, ClassifyError(err)
	}

	return kernel.NewOrderID(next)
}

// InsertLineItem prices the item from food_items and stores the line.
func (r *GormOrderRepository) InsertLineItem(ctx context.Context, orderID kernel.OrderID, item string, quantity int) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}

	var food FoodItemDTO
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(item))).
		Take(&food).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("food item", item)
		}
		return ClassifyError(err)
	}

	dto := LineItemDTO{
		OrderID:    orderID.Int64(),
		ItemID:     food.ItemID,
		Quantity:   quantity,
		TotalPrice: food.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return ClassifyError(err)
	}

	return nil
}

// InsertTracking appends a status row for the order.
func (r *GormOrderRepository) InsertTracking(ctx context.Context, orderID kernel.OrderID, status order.Status) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if err := status.Validate(); err != nil {
		return err
	}

	dto := TrackingDTO{
		OrderID:   orderID.Int64(),
		Status:    string(status),
		CreatedAt: r.now(),
	}
	return ClassifyError(r.db.WithContext(ctx).Create(&dto).Error)
}

// GetStatus returns the most recently written status.
func (r *GormOrderRepository) GetStatus(ctx context.Context, orderID kernel.OrderID) (order.Status, error) {
	if err := orderID.Validate(); err != nil {
		return order.Unknown, err
	}

	var dto TrackingDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Int64()).
		Order("id DESC").
		Take(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return order.Unknown, errs.NewObjectNotFoundError("order id", orderID.Int64())
		}
		return order.Unknown, ClassifyError(err)
	}

	return order.ParseStatus(dto.Status)
}

// GetTotal sums the order's line totals; zero when it has none.
func (r *GormOrderRepository) GetTotal(ctx context.Context, orderID kernel.OrderID) (decimal.Decimal, error) {
	if err := orderID.Validate(); err != nil {
		return decimal.Zero, err
	}

	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Raw("SELECT COALESCE(SUM(total_price), 0) FROM orders WHERE order_id = ?", orderID.Int64()).
		Row().Scan(&total)
	if err != nil {
		return decimal.Zero, ClassifyError(err)
	}

	return total, nil
}
