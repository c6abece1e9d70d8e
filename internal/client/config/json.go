package config

import (
	"encoding/json"
	"os"

	"github.com/andresMonthn/OpticSave-sub000/internal/flagx"
	"github.com/andresMonthn/OpticSave-sub000/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "3s"
// or as integer nanoseconds.
type JsonConfig struct {
	BaseURL             string         `json:"base_url"`
	APIKey              string         `json:"api_key"`
	DatabasePath        string         `json:"database_path"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	AutoAcceptOffline   *bool          `json:"auto_accept_offline"`
	RetryFailedOnSync   *bool          `json:"retry_failed_on_sync"`
	LogLevel            string         `json:"log_level"`
	LogFormat           string         `json:"log_format"`
	MetricsAddr         string         `json:"metrics_addr"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags; with no flag, nothing is loaded.
// Absent JSON fields leave the current value untouched. Read and unmarshal
// errors panic; configuration is resolved before anything else starts.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.APIKey != "" {
		cfg.APIKey = jc.APIKey
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.AutoAcceptOffline != nil {
		cfg.AutoAcceptOffline = *jc.AutoAcceptOffline
	}
	if jc.RetryFailedOnSync != nil {
		cfg.RetryFailedOnSync = *jc.RetryFailedOnSync
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.LogFormat != "" {
		cfg.LogFormat = jc.LogFormat
	}
	if jc.MetricsAddr != "" {
		cfg.MetricsAddr = jc.MetricsAddr
	}
}
