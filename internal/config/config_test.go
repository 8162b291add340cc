package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Store.Path)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	assert.Equal(t, 45, cfg.Fetch.NavTimeoutSecs)
	assert.Equal(t, 15, cfg.Fetch.SelectorWaitSecs)
	assert.Equal(t, 3000, cfg.Fetch.NewsThrottleMs)
	assert.Equal(t, 2000, cfg.Fetch.NewsJitterMs)
	assert.Equal(t, 2000, cfg.Fetch.PressThrottleMs)
	assert.Equal(t, 1500, cfg.Fetch.PressJitterMs)

	assert.Equal(t, 25, cfg.EDGAR.MaxFilings)
	assert.Equal(t, 2, cfg.EDGAR.WindowYears)
	assert.Equal(t, 500, cfg.EDGAR.ThrottleMs)
	assert.NotEmpty(t, cfg.EDGAR.UserAgent)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("RADAR_SERVER_PORT", "9090")
	t.Setenv("RADAR_EDGAR_MAX_FILINGS", "5")
	t.Setenv("RADAR_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5, cfg.EDGAR.MaxFilings)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
	assert.Error(t, InitLogger(LogConfig{Level: "nope", Format: "json"}))
}
