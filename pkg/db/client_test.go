package db

import (
	"context"
	"testing"

	"github.com/angelmondragon/rocketcart/pkg/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testModel struct {
	ID   int
	Name string
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&testModel{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

func TestPing(t *testing.T) {
	client := NewFromGorm(newTestDB(t), config.StorageDriverSQLite)
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}
	if client.Dialect() != config.StorageDriverSQLite {
		t.Fatalf("unexpected dialect %q", client.Dialect())
	}
}

func TestNewOpensSQLite(t *testing.T) {
	client, err := New(context.Background(), config.StorageDriverSQLite, config.DBConfig{DSN: "file:" + t.Name() + "?mode=memory&cache=shared", MaxOpenConns: 1}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}
}

func TestNewRejectsUnknownDriverAndMissingDSN(t *testing.T) {
	if _, err := New(context.Background(), "mysql", config.DBConfig{DSN: "x"}, nil); err == nil {
		t.Fatal("expected unsupported driver error")
	}
	if _, err := New(context.Background(), config.StorageDriverSQLite, config.DBConfig{}, nil); err == nil {
		t.Fatal("expected missing DSN error")
	}
}
