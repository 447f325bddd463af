// Package orderrepo persists placed orders. Tables:
//
//   - food_items: the priced menu, seeded from the catalog
//   - orders: one row per (order_id, item_id) line item
//   - order_tracking: append-only status history, latest row wins
//   - order_ids: every id ever allocated, so an abandoned id is never reused
package orderrepo

import (
	"time"

	"github.com/shopspring/decimal"
)

// FoodItemDTO is one menu entry. Names are matched case-insensitively.
type FoodItemDTO struct {
	ItemID int64           `gorm:"column:item_id;primaryKey;autoIncrement"`
	Name   string          `gorm:"size:255;not null;uniqueIndex"`
	Price  decimal.Decimal `gorm:"type:numeric(10,2);not null"`
}

func (FoodItemDTO) TableName() string {
	return "food_items"
}

// LineItemDTO is one item of a placed order, priced at write time.
type LineItemDTO struct {
	OrderID    int64           `gorm:"column:order_id;primaryKey;autoIncrement:false"`
	ItemID     int64           `gorm:"column:item_id;primaryKey;autoIncrement:false"`
	Quantity   int             `gorm:"not null"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(10,2);not null"`
}

func (LineItemDTO) TableName() string {
	return "orders"
}

// TrackingDTO is one status transition of an order.
type TrackingDTO struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	OrderID   int64  `gorm:"column:order_id;not null;index"`
	Status    string `gorm:"size:32;not null"`
	CreatedAt time.Time
}

func (TrackingDTO) TableName() string {
	return "order_tracking"
}

// OrderIDDTO records an allocated order id.
type OrderIDDTO struct {
	OrderID     int64 `gorm:"column:order_id;primaryKey;autoIncrement:false"`
	AllocatedAt time.Time
}

func (OrderIDDTO) TableName() string {
	return "order_ids"
}

// Models lists every table owned by this package, in migration order.
func Models() []any {
	return []any{&FoodItemDTO{}, &LineItemDTO{}, &TrackingDTO{}, &OrderIDDTO{}}
}
