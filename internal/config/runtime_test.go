package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	assert.Equal(t, 20*time.Second, cfg.Engine.FetchTimeout)
	assert.Equal(t, 30, cfg.Engine.HistoryDays)
	assert.Empty(t, cfg.Engine.SamplePath)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 15*time.Minute, cfg.Scheduler.CheckInterval)
	assert.Equal(t, time.Hour, cfg.Scheduler.SleepThreshold)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("APPDIET_FETCH_TIMEOUT", "5s")
	t.Setenv("APPDIET_HISTORY_DAYS", "14")
	t.Setenv("APPDIET_SAMPLE_PATH", "/tmp/samples.json")
	t.Setenv("APPDIET_CHECK_INTERVAL", "5m")

	cfg := DefaultRuntimeConfig()
	cfg.ReloadFromEnv()

	assert.Equal(t, 5*time.Second, cfg.Engine.FetchTimeout)
	assert.Equal(t, 14, cfg.Engine.HistoryDays)
	assert.Equal(t, "/tmp/samples.json", cfg.Engine.SamplePath)
	assert.Equal(t, 5*time.Minute, cfg.Scheduler.CheckInterval)
}

func TestEnvOverridesIgnoreInvalid(t *testing.T) {
	t.Setenv("APPDIET_FETCH_TIMEOUT", "soon")
	t.Setenv("APPDIET_HISTORY_DAYS", "-2")

	cfg := DefaultRuntimeConfig()
	cfg.ReloadFromEnv()

	assert.Equal(t, 20*time.Second, cfg.Engine.FetchTimeout)
	assert.Equal(t, 30, cfg.Engine.HistoryDays)
}

func TestReset(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	cfg.Engine.HistoryDays = 7
	cfg.Reset()
	assert.Equal(t, 30, cfg.Engine.HistoryDays)
}
