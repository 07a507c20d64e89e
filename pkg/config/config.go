package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Inventory    InventoryConfig
	Storage      StorageConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	if cfg.Storage.Driver == StorageDriverRedis && cfg.Redis.URL == "" && cfg.Redis.Address == "" {
		return nil, fmt.Errorf("either %s or %s is required for the redis storage driver", EnvRedisURL, EnvRedisAddr)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ROCKETCART_APP_ENV" required:"true"`
	Port         string `envconfig:"ROCKETCART_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"ROCKETCART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ROCKETCART_LOG_WARN_STACK" default:"false"`

	CORSAllowedOrigins []string `envconfig:"ROCKETCART_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type InventoryConfig struct {
	BaseURL string        `envconfig:"ROCKETCART_INVENTORY_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"ROCKETCART_INVENTORY_TIMEOUT" default:"10s"`
}

type StorageConfig struct {
	Driver string `envconfig:"ROCKETCART_STORAGE_DRIVER" default:"sqlite"`
	Key    string `envconfig:"ROCKETCART_STORAGE_KEY" default:"@RocketShoes:cart"`
}

// NormalizedDriver returns the lower-cased storage driver name.
func (s StorageConfig) NormalizedDriver() string {
	return strings.ToLower(strings.TrimSpace(s.Driver))
}

func (s *StorageConfig) validate() error {
	s.Driver = s.NormalizedDriver()
	switch s.Driver {
	case StorageDriverRedis, StorageDriverSQLite, StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("unsupported %s %q", EnvStorageDriver, s.Driver)
	}
	if strings.TrimSpace(s.Key) == "" {
		return fmt.Errorf("%s must not be empty", EnvStorageKey)
	}
	return nil
}

type DBConfig struct {
	DSN string `envconfig:"ROCKETCART_DB_DSN" default:"file:rocketcart.db?cache=shared"`

	MaxOpenConns    int           `envconfig:"ROCKETCART_DB_MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int           `envconfig:"ROCKETCART_DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"ROCKETCART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ROCKETCART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ROCKETCART_REDIS_URL"`
	Address      string        `envconfig:"ROCKETCART_REDIS_ADDR"`
	Password     string        `envconfig:"ROCKETCART_REDIS_PASSWORD"`
	DB           int           `envconfig:"ROCKETCART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ROCKETCART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ROCKETCART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ROCKETCART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ROCKETCART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ROCKETCART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ROCKETCART_AUTO_MIGRATE" default:"false"`
}
