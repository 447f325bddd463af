package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodbot/cmd"
	"foodbot/internal/adapters/out/catalog"
	"foodbot/internal/adapters/out/postgres"
	"foodbot/internal/adapters/out/replycache"
	"foodbot/internal/core/ports"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	root := &cobra.Command{
		Use:           "foodbot",
		Short:         "Fulfillment webhook for the food ordering assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCommand(), migrateCommand())

	if err := root.Execute(); err != nil {
		log.Fatalf("foodbot: %v", err)
	}
}

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the webhook server and background jobs",
		RunE: func(c *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the order tables and seed the food catalog",
		RunE: func(c *cobra.Command, _ []string) error {
			config, err := cmd.LoadConfig()
			if err != nil {
				return err
			}

			menu, err := catalog.New().Load(config.CatalogFile)
			if err != nil {
				return err
			}

			db, err := openDatabase(config)
			if err != nil {
				return err
			}
			if err = postgres.Migrate(db); err != nil {
				return fmt.Errorf("migrating: %w", err)
			}
			if err = postgres.SeedCatalog(c.Context(), db, menu.Prices()); err != nil {
				return fmt.Errorf("seeding catalog: %w", err)
			}

			slog.Info("Database migrated", "food_items", len(menu.Menu))
			return nil
		},
	}
}

func serve(ctx context.Context) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	config, err := cmd.LoadConfig()
	if err != nil {
		return err
	}

	menu, err := catalog.New().Load(config.CatalogFile)
	if err != nil {
		return err
	}

	db, err := openDatabase(config)
	if err != nil {
		return err
	}

	replies, closeReplies, err := replyCache(config)
	if err != nil {
		return err
	}
	defer closeReplies.Close()

	app := cmd.NewCompositionRoot(config, db, menu, replies, logger)

	router, err := app.CreateRouter()
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "port", config.HTTPPort)
		errCh <- router.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort))
	}()

	select {
	case err = <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return router.Shutdown(shutdownCtx)
}

func openDatabase(config cmd.Config) (*gorm.DB, error) {
	settings := config.ConnectionSettings()
	db, err := postgres.Open(settings.DSN(), settings.Driver)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return db, nil
}

// replyCache returns the Redis cache when REDIS_URL is set and the no-op cache
// otherwise.
func replyCache(config cmd.Config) (ports.ReplyCache, io.Closer, error) {
	if config.RedisURL == "" {
		return replycache.Noop{}, io.NopCloser(nil), nil
	}

	cache, err := replycache.NewRedisCache(config.RedisURL, config.DedupTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return cache, cache, nil
}
