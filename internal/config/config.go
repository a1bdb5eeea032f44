// internal/config/config.go
//
// Server configuration.
// Defaults → optional YAML file (CONFIG_FILE) → environment overrides,
// in that order, so an env var always wins over the file.
//
// The daily secret is the one setting with no default and no fallback:
// a missing secret is a fatal configuration error surfaced at startup,
// never swallowed, and the error message carries no secret material.

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrMissingSecret is the fatal error for an unset daily secret.
var ErrMissingSecret = errors.New("config: SECRET is not set")

// Config holds every tunable of the server.
type Config struct {
	Port              string `yaml:"port"`
	Secret            string `yaml:"secret"`
	DBPath            string `yaml:"db_path"` // empty = in-memory catalog only
	Timezone          string `yaml:"timezone"`
	MaxAttempts       int    `yaml:"max_attempts"`
	RateLimitMax      int    `yaml:"rate_limit_max"`
	RateLimitWindowMs int    `yaml:"rate_limit_window_ms"`
	RedisAddr         string `yaml:"redis_addr"` // empty = in-process counters
	ClientOrigin      string `yaml:"client_origin"`
	LogLevel          string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:              "5175",
		Timezone:          "America/Argentina/Buenos_Aires",
		MaxAttempts:       15,
		RateLimitMax:      30,
		RateLimitWindowMs: 60_000,
		ClientOrigin:      "http://localhost:5173",
		LogLevel:          "info",
	}
}

// Load builds the effective configuration.
// Reads the YAML file named by CONFIG_FILE when set, then applies env
// overrides on top.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv overlays environment variables onto cfg.
func applyEnv(cfg *Config) {
	setStr(&cfg.Port, "PORT")
	setStr(&cfg.Secret, "SECRET")
	setStr(&cfg.DBPath, "DB_PATH")
	setStr(&cfg.Timezone, "TZ_NAME")
	setInt(&cfg.MaxAttempts, "MAX_ATTEMPTS")
	setInt(&cfg.RateLimitMax, "RATE_LIMIT_MAX")
	setInt(&cfg.RateLimitWindowMs, "RATE_LIMIT_WINDOW_MS")
	setStr(&cfg.RedisAddr, "REDIS_ADDR")
	setStr(&cfg.ClientOrigin, "CLIENT_ORIGIN")
	setStr(&cfg.LogLevel, "LOG_LEVEL")
}

func setStr(dst *string, key string) {
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

// Validate checks settings the server cannot run without.
func (c Config) Validate() error {
	if c.Secret == "" {
		return ErrMissingSecret
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("config: max_attempts must be positive, got %d", c.MaxAttempts)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("config: invalid timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// Location resolves the configured day-key timezone.
func (c Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// RateLimitWindow returns the rate-limit window as a duration.
func (c Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowMs) * time.Millisecond
}
