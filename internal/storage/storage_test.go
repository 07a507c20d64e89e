package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/angelmondragon/rocketcart/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestOpenMemory(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: " Memory ", Key: "cart"}}

	backend, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, config.StorageDriverMemory, backend.Driver)
	assert.NoError(t, backend.Ping(context.Background()))

	require.NoError(t, backend.Snapshots.Save(context.Background(), []byte(`[]`)))
	raw, ok, err := backend.Snapshots.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", string(raw))
	assert.NoError(t, backend.Close())
}

func TestOpenSQLiteRunsMigrations(t *testing.T) {
	cfg := &config.Config{
		App:          config.AppConfig{Env: config.AppEnvDev},
		Storage:      config.StorageConfig{Driver: config.StorageDriverSQLite, Key: "cart"},
		DB:           config.DBConfig{DSN: "file:" + t.Name() + "?mode=memory&cache=shared", MaxOpenConns: 2},
		FeatureFlags: config.FeatureFlagsConfig{AutoMigrate: true},
	}

	backend, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	require.NoError(t, backend.Snapshots.Save(context.Background(), []byte(`[{"id":1,"amount":1}]`)))
	raw, ok, err := backend.Snapshots.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":1,"amount":1}]`, string(raw))
	assert.NoError(t, backend.Ping(context.Background()))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: "etcd", Key: "cart"}}
	if _, err := Open(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestCloseCombinesErrors(t *testing.T) {
	var order []string
	backend := &Backend{closers: []io.Closer{
		closerFunc(func() error { order = append(order, "first"); return errors.New("first failed") }),
		closerFunc(func() error { order = append(order, "second"); return errors.New("second failed") }),
	}}

	err := backend.Close()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.Equal(t, []string{"second", "first"}, order)
	assert.NoError(t, backend.Close())

	var nilBackend *Backend
	assert.NoError(t, nilBackend.Close())
	assert.Error(t, nilBackend.Ping(context.Background()))
}
