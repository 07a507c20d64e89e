package config

const EnvPrefix = "ROCKETCART"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	StorageDriverRedis    = "redis"
	StorageDriverSQLite   = "sqlite"
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

const (
	EnvAppEnv           = "ROCKETCART_APP_ENV"
	EnvPort             = "ROCKETCART_APP_PORT"
	EnvLogLevel         = "ROCKETCART_LOG_LEVEL"
	EnvInventoryBaseURL = "ROCKETCART_INVENTORY_BASE_URL"
	EnvInventoryTimeout = "ROCKETCART_INVENTORY_TIMEOUT"
	EnvStorageDriver    = "ROCKETCART_STORAGE_DRIVER"
	EnvStorageKey       = "ROCKETCART_STORAGE_KEY"
	EnvDBDSN            = "ROCKETCART_DB_DSN"
	EnvRedisURL         = "ROCKETCART_REDIS_URL"
	EnvRedisAddr        = "ROCKETCART_REDIS_ADDR"
	EnvAutoMigrate      = "ROCKETCART_AUTO_MIGRATE"
	EnvCORSOrigins      = "ROCKETCART_CORS_ALLOWED_ORIGINS"
)
