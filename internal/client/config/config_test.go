package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:54321", c.BaseURL)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.False(t, c.AutoAcceptOffline)
	assert.False(t, c.RetryFailedOnSync)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
	assert.Empty(t, c.MetricsAddr)
	assert.NotEmpty(t, c.DatabasePath)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://127.0.0.1:54321", cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.OnlineCheckInterval)
}

func TestParseEnv_OverlaysValues(t *testing.T) {
	t.Setenv("OPTICSAVE_BASE_URL", "https://backend.example.com")
	t.Setenv("OPTICSAVE_API_KEY", "key-123")
	t.Setenv("OPTICSAVE_ONLINE_CHECK_INTERVAL", "10s")
	t.Setenv("OPTICSAVE_AUTO_ACCEPT_OFFLINE", "true")
	t.Setenv("OPTICSAVE_RETRY_FAILED_ON_SYNC", "1")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, "https://backend.example.com", c.BaseURL)
	assert.Equal(t, "key-123", c.APIKey)
	assert.Equal(t, 10*time.Second, c.OnlineCheckInterval)
	assert.True(t, c.AutoAcceptOffline)
	assert.True(t, c.RetryFailedOnSync)
}

func TestParseEnv_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("OPTICSAVE_ONLINE_CHECK_INTERVAL", "soon")
	t.Setenv("OPTICSAVE_AUTO_ACCEPT_OFFLINE", "maybe")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.False(t, c.AutoAcceptOffline)
}
