package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ModeDevelopment, cfg.Mode)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 1000, cfg.MaxBatchSize)
	assert.Equal(t, "@hourly", cfg.PruneSchedule)
	assert.Equal(t, "dev", cfg.Version)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MODE", "production")
	t.Setenv("ADDR", ":9000")
	t.Setenv("API_KEY", "secret")
	t.Setenv("MAX_BATCH_SIZE", "250")
	t.Setenv("RETENTION_DAYS", "30")
	t.Setenv("VERSION", "1.2.3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, 250, cfg.MaxBatchSize)
	assert.Equal(t, 30, cfg.RetentionDays)
	assert.Equal(t, "1.2.3", cfg.Version)
}

func TestLoad_YAMLFileWithEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"addr: \":7000\"\nmax_batch_size: 500\nversion: from-file\n"), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("VERSION", "from-env")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, 500, cfg.MaxBatchSize)
	// env wins over file
	assert.Equal(t, "from-env", cfg.Version)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: [unclosed"), 0o600))

	t.Setenv("CONFIG_FILE", path)
	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid development", func(c *Config) {}, false},
		{"valid production", func(c *Config) {
			c.Mode = ModeProduction
			c.APIKey = "secret"
		}, false},
		{"unknown mode", func(c *Config) { c.Mode = "staging" }, true},
		{"non-positive batch size", func(c *Config) { c.MaxBatchSize = 0 }, true},
		{"production without api key", func(c *Config) { c.Mode = ModeProduction }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Mode: ModeDevelopment, Addr: ":8080", MaxBatchSize: 1000}
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
