package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Config holds runtime settings for the OpticSave CLI.
//
// Fields:
//   - BaseURL: root URL of the hosted backend (rest and auth live under it).
//   - APIKey: application key sent with every request.
//   - DatabasePath: location of the local SQLite database file.
//   - OnlineCheckInterval: how often the client probes remote reachability.
//   - AutoAcceptOffline: skip the offline confirmation prompt and queue
//     mutations immediately when connectivity drops.
//   - RetryFailedOnSync: rescan entries that failed a previous pass on the
//     next one instead of leaving them parked.
//   - MetricsAddr: listen address for the Prometheus endpoint, empty to
//     disable it.
type Config struct {
	BaseURL             string
	APIKey              string
	DatabasePath        string
	OnlineCheckInterval time.Duration
	AutoAcceptOffline   bool
	RetryFailedOnSync   bool
	LogLevel            string
	LogFormat           string
	MetricsAddr         string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:54321"
	c.APIKey = ""
	c.DatabasePath = filepath.Join(xdg.DataHome, "opticsave", "opticsave.db")
	c.OnlineCheckInterval = 3 * time.Second
	c.AutoAcceptOffline = false
	c.RetryFailedOnSync = false
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.MetricsAddr = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), environment variables, and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
