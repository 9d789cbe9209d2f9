// Package store opens the repositories selected by configuration.
package store

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/parkmate_app/internal/core/ports/repositories"
	"github.com/SscSPs/parkmate_app/internal/platform/config"
	"github.com/SscSPs/parkmate_app/internal/repositories/database/mongo"
	"github.com/SscSPs/parkmate_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/parkmate_app/internal/repositories/database/sqlite"
	"github.com/SscSPs/parkmate_app/internal/repositories/memory"
	"github.com/SscSPs/parkmate_app/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Cleanup releases the connections a store holds.
type Cleanup func()

type cleanups []func()

func (c *cleanups) add(fn func()) { *c = append(*c, fn) }

func (c cleanups) run() {
	for i := len(c) - 1; i >= 0; i-- {
		c[i]()
	}
}

// Open builds every repository. The memory driver keeps everything in
// process; every other driver keeps accounts in PostgreSQL and only moves the
// parking log.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, Cleanup, error) {
	if cfg.LogStoreDriver == config.StoreDriverMemory {
		logger.Warn("Using in-memory stores; data is lost on restart")
		return memory.NewRepositoryProvider(), func() {}, nil
	}

	var done cleanups
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	done.add(func() { database.ClosePgxPool(pool) })

	repos := pgsql.NewRepositoryProvider(pool)
	logStore, closeLog, err := openLogStore(ctx, cfg, pool)
	if err != nil {
		done.run()
		return portsrepo.RepositoryProvider{}, nil, err
	}
	done.add(closeLog)
	repos.LogStore = logStore

	logger.Info("Stores opened", slog.String("log_store", cfg.LogStoreDriver))
	return repos, done.run, nil
}

// OpenLogStore opens only the parking log. A Postgres pool is created when the
// driver needs one.
func OpenLogStore(ctx context.Context, cfg *config.Config) (portsrepo.LogStore, Cleanup, error) {
	switch cfg.LogStoreDriver {
	case config.StoreDriverMemory:
		return memory.NewLogStore(), func() {}, nil
	case config.StoreDriverPostgres:
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
		if err != nil {
			return nil, nil, err
		}
		return pgsql.NewLogRepository(pool), func() { database.ClosePgxPool(pool) }, nil
	default:
		s, closeFn, err := openLogStore(ctx, cfg, nil)
		return s, closeFn, err
	}
}

func openLogStore(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) (portsrepo.LogStore, func(), error) {
	switch cfg.LogStoreDriver {
	case config.StoreDriverPostgres:
		if pool == nil {
			return nil, nil, fmt.Errorf("postgres log store requires a pool")
		}
		return pgsql.NewLogRepository(pool), func() {}, nil

	case config.StoreDriverSQLite:
		db, err := database.OpenSQLiteFile(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite log store: %w", err)
		}
		s, err := sqlite.NewLogRepository(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return s, func() { _ = db.Close() }, nil

	case config.StoreDriverMongo:
		client, err := database.NewMongoClient(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, fmt.Errorf("open mongo log store: %w", err)
		}
		s := mongo.NewLogRepository(client.Database(cfg.MongoDatabase))
		if err := s.Migrate(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, err
		}
		return s, func() { _ = client.Disconnect(context.Background()) }, nil

	default:
		return nil, nil, fmt.Errorf("unknown log store driver %q", cfg.LogStoreDriver)
	}
}
