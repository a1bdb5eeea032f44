// internal/config/config_test.go

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "5175", cfg.Port)
	assert.Equal(t, "America/Argentina/Buenos_Aires", cfg.Timezone)
	assert.Equal(t, 15, cfg.MaxAttempts)
	assert.Equal(t, 30, cfg.RateLimitMax)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow())
}

func TestLoadYAMLFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"port: \"9000\"\nsecret: from-file\nmax_attempts: 10\ntimezone: UTC\n",
	), 0o644))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SECRET", "from-env")
	t.Setenv("RATE_LIMIT_MAX", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 10, cfg.MaxAttempts)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, 5, cfg.RateLimitMax)
	// Env wins over the file.
	assert.Equal(t, "from-env", cfg.Secret)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadIgnoresMalformedIntEnv(t *testing.T) {
	t.Setenv("MAX_ATTEMPTS", "not-a-number")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.MaxAttempts)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.ErrorIs(t, cfg.Validate(), ErrMissingSecret)

	cfg.Secret = "s3cret"
	assert.NoError(t, cfg.Validate())

	cfg.MaxAttempts = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Secret = "s3cret"
	cfg.Timezone = "Mars/Olympus_Mons"
	assert.Error(t, cfg.Validate())
}

func TestLocation(t *testing.T) {
	cfg := Default()
	loc, err := cfg.Location()
	require.NoError(t, err)

	// 02:30 UTC is still the previous day in Buenos Aires (UTC-3).
	utc := time.Date(2026, 8, 29, 2, 30, 0, 0, time.UTC)
	assert.Equal(t, 28, utc.In(loc).Day())
}
