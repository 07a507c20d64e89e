package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}
	if cfg.App.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.App.Port)
	}
	if cfg.Inventory.BaseURL != "http://localhost:3333" {
		t.Fatalf("unexpected inventory base url: %q", cfg.Inventory.BaseURL)
	}
	if got := cfg.Inventory.Timeout; got != 10*time.Second {
		t.Fatalf("expected default inventory timeout 10s, got %v", got)
	}
	if cfg.Storage.Driver != StorageDriverSQLite {
		t.Fatalf("expected sqlite default driver, got %q", cfg.Storage.Driver)
	}
	if cfg.Storage.Key != "@RocketShoes:cart" {
		t.Fatalf("unexpected storage key %q", cfg.Storage.Key)
	}
	if got := cfg.App.CORSAllowedOrigins; len(got) != 1 || got[0] != "http://localhost:3000" {
		t.Fatalf("unexpected default cors origins %v", got)
	}
}

func TestLoad_CORSOriginsList(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvCORSOrigins, "https://shop.example.com,http://localhost:5173")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if got := cfg.App.CORSAllowedOrigins; len(got) != 2 || got[1] != "http://localhost:5173" {
		t.Fatalf("unexpected cors origins %v", got)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_NormalizesAndRejectsDrivers(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvStorageDriver, " Memory ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Storage.Driver != StorageDriverMemory {
		t.Fatalf("expected normalized memory driver, got %q", cfg.Storage.Driver)
	}

	t.Setenv(EnvStorageDriver, "localstorage")
	if _, err := Load(); err == nil {
		t.Fatal("expected unknown storage driver to fail")
	}
}

func TestLoad_RedisDriverRequiresAddress(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvStorageDriver, StorageDriverRedis)

	if _, err := Load(); err == nil {
		t.Fatal("expected redis driver without url or address to fail")
	}

	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Fatalf("unexpected Redis URL: %q", cfg.Redis.URL)
	}
}

func TestLoad_EmptyStorageKey(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvStorageKey, "   ")

	if _, err := Load(); err == nil {
		t.Fatal("expected blank storage key to fail")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvInventoryBaseURL, "http://localhost:3333")
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
	if prodConfig.IsDev() {
		t.Fatalf("expected IsDev false for %q", prodConfig.Env)
	}
}
