// Package config provides centralized runtime configuration for Appdiet.
package config

import (
	"os"
	"strconv"
	"time"
)

// RuntimeConfig holds the runtime values that would otherwise live as
// magic numbers throughout the codebase.
type RuntimeConfig struct {
	// Engine configuration
	Engine EngineConfig

	// HTTP client configuration
	HTTP HTTPConfig

	// Scheduler configuration
	Scheduler SchedulerConfig

	// Daemon configuration
	Daemon DaemonConfig
}

// EngineConfig holds evaluation-pass configuration.
type EngineConfig struct {
	// FetchTimeout bounds the raw-sample fetch; the whole pass fails when
	// it is exceeded. Default: 20s
	FetchTimeout time.Duration

	// HistoryDays is the rolling usage-history window. Default: 30
	HistoryDays int

	// SamplePath is the JSON sample export read by the file source.
	// Empty means no source is configured.
	SamplePath string
}

// HTTPConfig holds webhook HTTP client configuration.
type HTTPConfig struct {
	// Timeout is the per-request timeout. Default: 30s
	Timeout time.Duration
}

// SchedulerConfig holds scheduler configuration.
type SchedulerConfig struct {
	// CheckInterval is the period between evaluation passes. Default: 15m
	CheckInterval time.Duration

	// SleepThreshold is the gap since the previous check that indicates
	// the machine was asleep; a stale check is skipped. Default: 1h
	SleepThreshold time.Duration
}

// DaemonConfig holds daemon configuration.
type DaemonConfig struct {
	// StartupWait is the time to wait before checking a spawned daemon.
	// Default: 500ms
	StartupWait time.Duration

	// KillTimeout is the graceful-shutdown timeout before force kill.
	// Default: 5s
	KillTimeout time.Duration
}

// DefaultRuntimeConfig returns the default runtime configuration.
func DefaultRuntimeConfig() *RuntimeConfig {
	return &RuntimeConfig{
		Engine: EngineConfig{
			FetchTimeout: 20 * time.Second,
			HistoryDays:  30,
		},
		HTTP: HTTPConfig{
			Timeout: 30 * time.Second,
		},
		Scheduler: SchedulerConfig{
			CheckInterval:  15 * time.Minute,
			SleepThreshold: 1 * time.Hour,
		},
		Daemon: DaemonConfig{
			StartupWait: 500 * time.Millisecond,
			KillTimeout: 5 * time.Second,
		},
	}
}

// Global holds the global runtime configuration instance. It is
// initialized with defaults and can be overridden via environment
// variables.
var Global = initGlobal()

func initGlobal() *RuntimeConfig {
	cfg := DefaultRuntimeConfig()
	cfg.loadFromEnv()
	return cfg
}

// loadFromEnv loads configuration overrides from environment variables.
func (c *RuntimeConfig) loadFromEnv() {
	if v := os.Getenv("APPDIET_FETCH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Engine.FetchTimeout = d
		}
	}
	if v := os.Getenv("APPDIET_HISTORY_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Engine.HistoryDays = n
		}
	}
	if v := os.Getenv("APPDIET_SAMPLE_PATH"); v != "" {
		c.Engine.SamplePath = v
	}
	if v := os.Getenv("APPDIET_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.HTTP.Timeout = d
		}
	}
	if v := os.Getenv("APPDIET_CHECK_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Scheduler.CheckInterval = d
		}
	}
	if v := os.Getenv("APPDIET_SLEEP_THRESHOLD"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Scheduler.SleepThreshold = d
		}
	}
	if v := os.Getenv("APPDIET_DAEMON_STARTUP_WAIT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Daemon.StartupWait = d
		}
	}
	if v := os.Getenv("APPDIET_DAEMON_KILL_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Daemon.KillTimeout = d
		}
	}
}

// ReloadFromEnv reloads configuration from environment variables.
func (c *RuntimeConfig) ReloadFromEnv() {
	c.loadFromEnv()
}

// Reset resets the configuration to defaults. Primarily for tests.
func (c *RuntimeConfig) Reset() {
	defaults := DefaultRuntimeConfig()
	*c = *defaults
}
