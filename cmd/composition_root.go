package cmd

import (
	"log/slog"

	httpin "foodbot/internal/adapters/in/http"
	"foodbot/internal/adapters/out/catalog"
	"foodbot/internal/adapters/out/memory"
	"foodbot/internal/adapters/out/postgres"
	"foodbot/internal/core/application/usecases/commands"
	"foodbot/internal/core/application/usecases/queries"
	"foodbot/internal/core/ports"
	"foodbot/internal/jobs"
	"foodbot/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	carts      *memory.CartStore
	catalog    *catalog.Catalog
	replies    ports.ReplyCache
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	menu *catalog.Catalog,
	replies ports.ReplyCache,
	logger *slog.Logger,
) *CompositionRoot {
	carts := memory.NewCartStore()

	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		carts:      carts,
		catalog:    menu,
		replies:    replies,
		metrics:    metrics.New(carts.Len),
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateNewOrderCommandHandler() commands.NewOrderCommandHandler {
	return commands.NewNewOrderCommandHandler(c.carts)
}

func (c *CompositionRoot) CreateAddItemsCommandHandler() commands.AddItemsCommandHandler {
	return commands.NewAddItemsCommandHandler(c.carts)
}

func (c *CompositionRoot) CreateRemoveItemsCommandHandler() commands.RemoveItemsCommandHandler {
	return commands.NewRemoveItemsCommandHandler(c.carts)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(c.carts, c.orderUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateEvictIdleCartsCommandHandler() commands.EvictIdleCartsCommandHandler {
	return commands.NewEvictIdleCartsCommandHandler(c.carts)
}

func (c *CompositionRoot) CreateTrackOrderQueryHandler() queries.TrackOrderQueryHandler {
	return queries.NewTrackOrderQueryHandler(c.uowFactory.Create().OrderRepository(), c.logger)
}

func (c *CompositionRoot) CreateGetOrderDetailsQueryHandler() queries.GetOrderDetailsQueryHandler {
	return queries.NewGetOrderDetailsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		NewOrder:      c.CreateNewOrderCommandHandler(),
		AddItems:      c.CreateAddItemsCommandHandler(),
		RemoveItems:   c.CreateRemoveItemsCommandHandler(),
		CompleteOrder: c.CreateCompleteOrderCommandHandler(),
		TrackOrder:    c.CreateTrackOrderQueryHandler(),
		OrderDetails:  c.CreateGetOrderDetailsQueryHandler(),
	}, httpin.Options{
		StoreHours:     c.catalog.HoursText(),
		Replies:        c.replies,
		Metrics:        c.metrics,
		Logger:         c.logger,
		RequestTimeout: c.config.RepositoryTimeout,
	})
}

func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	return httpin.NewRouter(c.CreateServer(), c.metrics, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewCartEvictionJob(
			c.CreateEvictIdleCartsCommandHandler(),
			c.config.CartIdleTTL,
			c.config.CartEvictionSchedule,
			c.logger,
		),
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
