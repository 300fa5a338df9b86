// Package config loads the application configuration from an optional YAML
// file with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	envcfg "vid-catalog/pkg/config"
)

// Modes the server can run in. Production enforces API key authentication
// on mutating requests and hides the development-only routes.
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// Config holds the runtime configuration of the API server and the
// retention worker. Every field can be set in the YAML file and overridden
// by the corresponding environment variable.
type Config struct {
	// Mode selects development or production behavior. Env: MODE.
	Mode string `yaml:"mode"`

	// Addr is the listen address of the HTTP server. Env: ADDR.
	Addr string `yaml:"addr"`

	// DatabaseURL is the PostgreSQL connection string. Env: DATABASE_URL.
	DatabaseURL string `yaml:"database_url"`

	// APIKey gates mutating endpoints in production. Env: API_KEY.
	APIKey string `yaml:"api_key"`

	// MaxBatchSize caps bulk ingestion requests. Env: MAX_BATCH_SIZE.
	MaxBatchSize int `yaml:"max_batch_size"`

	// RetentionDays is how long records are kept before the retention
	// worker prunes them; zero or negative disables pruning.
	// Env: RETENTION_DAYS.
	RetentionDays int `yaml:"retention_days"`

	// PruneSchedule is the cron expression of the retention worker.
	// Env: PRUNE_SCHEDULE.
	PruneSchedule string `yaml:"prune_schedule"`

	// Version is reported by the version endpoint. Env: VERSION.
	Version string `yaml:"version"`

	// ShutdownTimeout bounds graceful shutdown. Env: SHUTDOWN_TIMEOUT.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Load builds a Config from defaults, the YAML file named by CONFIG_FILE
// (skipped when unset), and environment variable overrides, in that order
// of precedence. It fails on an unreadable or malformed file and on
// validation errors.
func Load() (*Config, error) {
	cfg := &Config{
		Mode:            ModeDevelopment,
		Addr:            ":8080",
		MaxBatchSize:    1000,
		PruneSchedule:   "@hourly",
		Version:         "dev",
		ShutdownTimeout: 10 * time.Second,
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.Mode = envcfg.GetEnvString("MODE", cfg.Mode)
	cfg.Addr = envcfg.GetEnvString("ADDR", cfg.Addr)
	cfg.DatabaseURL = envcfg.GetEnvString("DATABASE_URL", cfg.DatabaseURL)
	cfg.APIKey = envcfg.GetEnvString("API_KEY", cfg.APIKey)
	cfg.MaxBatchSize = envcfg.GetEnvInt("MAX_BATCH_SIZE", cfg.MaxBatchSize)
	cfg.RetentionDays = envcfg.GetEnvInt("RETENTION_DAYS", cfg.RetentionDays)
	cfg.PruneSchedule = envcfg.GetEnvString("PRUNE_SCHEDULE", cfg.PruneSchedule)
	cfg.Version = envcfg.GetEnvString("VERSION", cfg.Version)
	cfg.ShutdownTimeout = envcfg.GetEnvDuration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server must not start with.
func (c *Config) Validate() error {
	if c.Mode != ModeDevelopment && c.Mode != ModeProduction {
		return fmt.Errorf("invalid mode %q: must be %s or %s", c.Mode, ModeDevelopment, ModeProduction)
	}
	if c.MaxBatchSize <= 0 {
		return fmt.Errorf("invalid max_batch_size %d: must be positive", c.MaxBatchSize)
	}
	if c.IsProduction() && c.APIKey == "" {
		return fmt.Errorf("API_KEY must be set in production mode")
	}
	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Mode == ModeProduction
}
