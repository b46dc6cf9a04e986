package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/CameronXie/ecommerce-backend/commerce/orderaggregator"
	"github.com/CameronXie/ecommerce-backend/internal/config"
	"github.com/CameronXie/ecommerce-backend/internal/repository/gormstore"
	"github.com/CameronXie/ecommerce-backend/internal/repository/postgres"
)

const (
	ReadHeaderTimeout = 5 * time.Second
	ReadTimeout       = 10 * time.Second
	WriteTimeout      = 20 * time.Second
	IdleTimeout       = 60 * time.Second
	ShutdownTimeout   = 15 * time.Second
)

func newServeCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, logger, migrate)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "migrate the database schema before serving")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger, migrate bool) error {
	logger.Info("api_starting", "driver", cfg.Database.Driver, "addr", cfg.Addr())

	db, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access connection pool: %w", err)
	}
	defer sqlDB.Close()

	if migrate {
		if err := gormstore.Migrate(ctx, db); err != nil {
			logger.Error("db_migrate_failed", "error", err)
			return err
		}
	}

	orders, items, closeOrders, err := newOrderReaders(ctx, cfg, db)
	if err != nil {
		logger.Error("db_init_failed", "error", err)
		return err
	}
	defer closeOrders()

	aggregator := orderaggregator.New(orders, items, orderaggregator.WithFetchSize(cfg.Database.FetchSize))

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handler, err := newRouter(db, sqlDB, aggregator, reg, logger)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("api_listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api_serve_failed", "error", err)
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		logger.Info("api_stopping")
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	dsn, err := cfg.Database.DSN()
	if err != nil {
		return nil, err
	}

	dialector, err := gormstore.Dialector(cfg.Database.Driver, dsn)
	if err != nil {
		return nil, err
	}

	db, err := gormstore.Open(ctx, dialector, logger)
	if err != nil {
		logger.Error("db_init_failed", "error", err)
		return nil, err
	}

	return db, nil
}

// newOrderReaders returns the order sources of the aggregator. Postgres deployments read through a
// dedicated pgx pool; other drivers share the gorm connection.
func newOrderReaders(
	ctx context.Context,
	cfg *config.Config,
	db *gorm.DB,
) (orderaggregator.OrderStore, orderaggregator.LineItemStore, func(), error) {
	if cfg.Database.Driver != gormstore.DriverPostgres {
		return gormstore.NewOrderViews(db), gormstore.NewLineItemViews(db), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.Database.Postgres.DSN())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("create_pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, nil, fmt.Errorf("ping_db: %w", err)
	}

	repo := postgres.NewOrderRepository(pool)
	return repo, repo, pool.Close, nil
}
