package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/retailops/store-console/internal/audit"
	"github.com/retailops/store-console/internal/cli"
	"github.com/retailops/store-console/internal/core/ports"
	"github.com/retailops/store-console/internal/core/service"
	"github.com/retailops/store-console/internal/infrastructure/config"
	"github.com/retailops/store-console/internal/infrastructure/db/postgres"
	"github.com/retailops/store-console/internal/infrastructure/db/redis"
	"github.com/retailops/store-console/internal/infrastructure/queue"
	"github.com/retailops/store-console/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(logger.Options{Level: cfg.LogLevel, Dir: cfg.LogDir})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	pool, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN()})
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.Info().Str("host", cfg.Postgres.Host).Msg("database ready")

	persons := postgres.NewPersonRepository(pool)
	purchases := postgres.NewPurchaseRepository(pool)

	var products ports.ProductRepository = postgres.NewProductRepository(pool)
	var invalidator ports.ProductCacheInvalidator
	if cfg.Redis.Addr != "" {
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer client.Close()
		cached := redis.NewCachedProductRepository(products, client, log)
		products = cached
		invalidator = cached
		log.Info().Str("addr", cfg.Redis.Addr).Msg("product cache enabled")
	}

	dispatcher := queue.NewDispatcher(cfg.Workers, log)
	dispatcher.Start(ctx)
	defer dispatcher.Close()

	recorder := audit.NewRecorder(log, dispatcher)

	app := cli.New(cli.Config{
		Auth:      service.NewAuthService(persons, recorder, log),
		Catalog:   service.NewCatalogService(products, purchases, recorder, log),
		Purchases: service.NewPurchaseService(persons, products, purchases, invalidator, recorder, log),
		History:   service.NewHistoryService(persons, purchases, log),
		PageSize:  cfg.PageSize,
		In:        os.Stdin,
		Out:       os.Stdout,
		Logger:    log,
	})

	log.Info().Str("env", cfg.Env).Msg("store console starting")
	return app.Run(ctx)
}
