package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/shop_ledger_app/internal/adapters/backup"
	"github.com/SscSPs/shop_ledger_app/internal/adapters/database/kvrepo"
	"github.com/SscSPs/shop_ledger_app/internal/adapters/kvstore"
	portsrepo "github.com/SscSPs/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger_app/internal/core/services"
	"github.com/SscSPs/shop_ledger_app/internal/platform/config"
	"github.com/SscSPs/shop_ledger_app/pkg/database"
)

// app holds the wired services and the resources that must be released on exit.
type app struct {
	services *portssvc.ServiceContainer
	closers  []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// newApp opens the configured store and builds the service container on top of it.
func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	a := &app{}

	store, err := openStore(ctx, cfg, logger, a)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.closers = append(a.closers, func() {
		if err := store.Close(); err != nil {
			logger.Error("Error closing store", slog.String("error", err.Error()))
		}
	})

	db := kvrepo.New(store)
	repos := portsrepo.RepositoryProvider{TxManager: db, Snapshots: db}

	var sink services.SnapshotSink
	if cfg.Backup.Enabled() {
		exporter, err := backup.NewS3Exporter(ctx, cfg.Backup)
		if err != nil {
			a.Close()
			return nil, err
		}
		sink = exporter
		logger.Info("Backups enabled", slog.String("bucket", cfg.Backup.Bucket))
	}

	a.services = services.NewServiceContainer(cfg, repos, sink)
	return a, nil
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger, a *app) (kvstore.Store, error) {
	switch cfg.StoreBackend {
	case config.StoreMemory:
		logger.Warn("Using in-memory store; data is lost on restart")
		return kvstore.NewMemoryStore(), nil

	case config.StoreRedis:
		store, err := kvstore.NewRedisStore(ctx, kvstore.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("Redis store connected", slog.String("addr", cfg.RedisAddr))
		return store, nil

	case config.StorePostgres:
		if err := migrate(cfg, logger); err != nil {
			return nil, err
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		a.closers = append(a.closers, func() { database.ClosePgxPool(pool) })
		logger.Info("Database connection pool established.")
		return kvstore.NewPostgresStore(pool), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}

func migrate(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	changed, err := database.RunMigrations(cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	if changed {
		logger.Info("Database migrations applied successfully.")
	} else {
		logger.Info("No new migrations to apply.")
	}
	return nil
}
