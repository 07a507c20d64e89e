package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/angelmondragon/rocketcart/internal/cart"
	"github.com/angelmondragon/rocketcart/internal/storage/memstore"
	"github.com/angelmondragon/rocketcart/internal/storage/redisstore"
	"github.com/angelmondragon/rocketcart/internal/storage/sqlstore"
	"github.com/angelmondragon/rocketcart/pkg/config"
	"github.com/angelmondragon/rocketcart/pkg/db"
	"github.com/angelmondragon/rocketcart/pkg/logger"
	"github.com/angelmondragon/rocketcart/pkg/migrate"
	pkgredis "github.com/angelmondragon/rocketcart/pkg/redis"
	"go.uber.org/multierr"
)

// Snapshots is a cart snapshot store that can report its health.
type Snapshots interface {
	cart.SnapshotStore
	Ping(ctx context.Context) error
}

// Backend is the opened snapshot store plus the connections it owns.
type Backend struct {
	Driver    string
	Snapshots Snapshots
	closers   []io.Closer
}

// Open connects the storage driver selected in cfg.
func Open(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*Backend, error) {
	if logg == nil {
		logg = logger.New(logger.Options{ServiceName: "storage", Output: io.Discard})
	}
	driver := cfg.Storage.NormalizedDriver()
	backend := &Backend{Driver: driver}

	switch driver {
	case config.StorageDriverMemory:
		backend.Snapshots = memstore.New()

	case config.StorageDriverRedis:
		client, err := pkgredis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		backend.closers = append(backend.closers, client)
		store, err := redisstore.New(client, cfg.Storage.Key)
		if err != nil {
			return nil, multierr.Append(err, backend.Close())
		}
		backend.Snapshots = store

	case config.StorageDriverSQLite, config.StorageDriverPostgres:
		client, err := db.New(ctx, driver, cfg.DB, logg)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		backend.closers = append(backend.closers, client)
		if err := migrate.MaybeAutoRun(ctx, cfg, logg, client); err != nil {
			return nil, multierr.Append(err, backend.Close())
		}
		store, err := sqlstore.New(client, cfg.Storage.Key)
		if err != nil {
			return nil, multierr.Append(err, backend.Close())
		}
		backend.Snapshots = store

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}

	return backend, nil
}

// Ping checks every connection the backend holds.
func (b *Backend) Ping(ctx context.Context) error {
	if b == nil || b.Snapshots == nil {
		return fmt.Errorf("storage not opened")
	}
	return b.Snapshots.Ping(ctx)
}

// Close releases every connection, reporting all failures.
func (b *Backend) Close() error {
	if b == nil {
		return nil
	}
	var err error
	for i := len(b.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, b.closers[i].Close())
	}
	b.closers = nil
	return err
}
