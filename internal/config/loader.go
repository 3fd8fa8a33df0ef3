package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "refdata.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// YAML file is optional; missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. The YAML file is optional.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is validated by caller
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "REFDATA_PORT")
	setString(&cfg.Server.CORSOrigin, "REFDATA_CORS_ORIGIN")

	setString(&cfg.Storage.Driver, "REFDATA_STORAGE_DRIVER")
	setString(&cfg.Storage.Postgres.DSN, "DATABASE_URL")
	setInt32(&cfg.Storage.Postgres.MaxConns, "REFDATA_PG_MAX_CONNS")
	setInt32(&cfg.Storage.Postgres.MinConns, "REFDATA_PG_MIN_CONNS")
	setDuration(&cfg.Storage.Postgres.MaxConnLifetime, "REFDATA_PG_MAX_CONN_LIFETIME")
	setDuration(&cfg.Storage.Postgres.MaxConnIdleTime, "REFDATA_PG_MAX_CONN_IDLE_TIME")
	setDuration(&cfg.Storage.Postgres.HealthCheck, "REFDATA_PG_HEALTH_CHECK")

	setString(&cfg.NATS.URL, "NATS_URL")

	setBool(&cfg.Cache.Enabled, "REFDATA_CACHE_ENABLED")
	setInt64(&cfg.Cache.L1MaxSizeMB, "REFDATA_CACHE_L1_SIZE_MB")
	setString(&cfg.Cache.L2Bucket, "REFDATA_CACHE_L2_BUCKET")
	setDuration(&cfg.Cache.L2TTL, "REFDATA_CACHE_L2_TTL")
	setDuration(&cfg.Cache.EntryTTL, "REFDATA_CACHE_ENTRY_TTL")
	setDuration(&cfg.Cache.NegativeTTL, "REFDATA_CACHE_NEGATIVE_TTL")

	setInt(&cfg.Guard.MaxConcurrent, "REFDATA_GUARD_MAX_CONCURRENT")
	setInt(&cfg.Guard.Breaker.MaxFailures, "REFDATA_BREAKER_MAX_FAILURES")
	setDuration(&cfg.Guard.Breaker.Timeout, "REFDATA_BREAKER_TIMEOUT")

	setString(&cfg.Logging.Level, "REFDATA_LOG_LEVEL")
	setString(&cfg.Logging.Service, "REFDATA_LOG_SERVICE")
	setBool(&cfg.Logging.Async, "REFDATA_LOG_ASYNC")

	setBool(&cfg.Telemetry.Enabled, "REFDATA_OTEL_ENABLED")
	setString(&cfg.Telemetry.OTLPEndpoint, "REFDATA_OTEL_ENDPOINT")
}

// validate checks that required fields are set.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	switch cfg.Storage.Driver {
	case "postgres":
		if cfg.Storage.Postgres.DSN == "" {
			return errors.New("storage.postgres.dsn is required")
		}
		if cfg.Storage.Postgres.MaxConns < 1 {
			return errors.New("storage.postgres.max_conns must be >= 1")
		}
	case "memory":
	default:
		return fmt.Errorf("storage.driver must be postgres or memory, got %q", cfg.Storage.Driver)
	}
	if cfg.Cache.Enabled {
		if cfg.Cache.L1MaxSizeMB < 1 {
			return errors.New("cache.l1_max_size_mb must be >= 1")
		}
		if cfg.Cache.EntryTTL <= 0 {
			return errors.New("cache.entry_ttl must be positive")
		}
		if cfg.Cache.NegativeTTL <= 0 {
			return errors.New("cache.negative_ttl must be positive")
		}
		if cfg.NATS.URL != "" && cfg.Cache.L2Bucket == "" {
			return errors.New("cache.l2_bucket is required when nats.url is set")
		}
	}
	if cfg.Guard.MaxConcurrent < 0 {
		return errors.New("guard.max_concurrent must be >= 0")
	}
	if cfg.Guard.Breaker.MaxFailures > 0 && cfg.Guard.Breaker.Timeout <= 0 {
		return errors.New("guard.breaker.timeout must be positive")
	}
	if cfg.Telemetry.Enabled && cfg.Telemetry.OTLPEndpoint == "" {
		return errors.New("telemetry.otlp_endpoint is required when telemetry is enabled")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt32(dst *int32, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			*dst = int32(n)
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
