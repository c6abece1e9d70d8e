package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with OPTICSAVE_* environment variables. A .env
// file in the working directory is loaded first when present; real
// environment variables win over it.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("OPTICSAVE_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("OPTICSAVE_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("OPTICSAVE_DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("OPTICSAVE_ONLINE_CHECK_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.OnlineCheckInterval = d
		}
	}
	if v := os.Getenv("OPTICSAVE_AUTO_ACCEPT_OFFLINE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.AutoAcceptOffline = b
		}
	}
	if v := os.Getenv("OPTICSAVE_RETRY_FAILED_ON_SYNC"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.RetryFailedOnSync = b
		}
	}
	if v := os.Getenv("OPTICSAVE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("OPTICSAVE_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("OPTICSAVE_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
}
