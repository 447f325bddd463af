package postgres

import (
	"context"
	"fmt"
	"strings"

	"foodbot/internal/adapters/out/postgres/orderrepo"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Supported database/sql driver names.
const (
	DriverPgx = "pgx"
	DriverPq  = "postgres"
)

// ConnectionSettings describes how to reach the database.
type ConnectionSettings struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	Driver   string
}

// DSN renders the settings as a libpq keyword/value string understood by both
// drivers.
func (s ConnectionSettings) DSN() string {
	sslMode := s.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		s.Host, s.Port, s.User, s.Password, s.Name, sslMode)
}

// Open connects through GORM using the requested driver. An empty driver name
// selects pgx.
func Open(dsn, driver string) (*gorm.DB, error) {
	driver = strings.ToLower(strings.TrimSpace(driver))
	switch driver {
	case "":
		driver = DriverPgx
	case DriverPgx, DriverPq:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		DriverName: driver,
		DSN:        dsn,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, orderrepo.ClassifyError(err)
	}

	return db, nil
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(orderrepo.Models()...)
}

// SeedCatalog upserts menu prices into food_items. Existing items keep their
// id; their price is updated.
func SeedCatalog(ctx context.Context, db *gorm.DB, prices map[string]decimal.Decimal) error {
	if len(prices) == 0 {
		return nil
	}

	items := make([]orderrepo.FoodItemDTO, 0, len(prices))
	for name, price := range prices {
		items = append(items, orderrepo.FoodItemDTO{Name: name, Price: price})
	}

	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"price"}),
	}).Create(&items).Error
}
