package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load builds the configuration: defaults, then the YAML file at path (a
// missing file is fine), then .env, then environment overrides.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// run on defaults + env
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
			if err := parseDurations(cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	// .env values become plain env vars and go through the same overrides.
	_ = godotenv.Load()

	applyEnvOverrides(cfg)

	return cfg, nil
}

// parseDurations resolves the "30m"-style strings from the YAML file; empty
// strings keep the defaults.
func parseDurations(cfg *Config) error {
	targets := []struct {
		raw  string
		dst  *time.Duration
		name string
	}{
		{cfg.Server.ReadTimeoutStr, &cfg.Server.ReadTimeout, "server.read_timeout"},
		{cfg.Server.WriteTimeoutStr, &cfg.Server.WriteTimeout, "server.write_timeout"},
		{cfg.Server.ShutdownTimeoutStr, &cfg.Server.ShutdownTimeout, "server.shutdown_timeout"},
		{cfg.Cache.TTLStr, &cfg.Cache.TTL, "cache.ttl"},
		{cfg.Feeds.FetchTimeoutStr, &cfg.Feeds.FetchTimeout, "feeds.fetch_timeout"},
		{cfg.Dataset.RefreshIntervalStr, &cfg.Dataset.RefreshInterval, "dataset.refresh_interval"},
	}
	for _, t := range targets {
		if t.raw == "" {
			continue
		}
		d, err := time.ParseDuration(t.raw)
		if err != nil {
			return fmt.Errorf("%s: %w", t.name, err)
		}
		*t.dst = d
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	// Server
	if v, ok := envInt("SERVER_PORT"); ok {
		cfg.Server.Port = v
	}

	// Cache
	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		cfg.Cache.Backend = v
	}
	if v, ok := envInt("BOATS_CACHE_TTL_SECONDS"); ok && v > 0 {
		cfg.Cache.TTL = time.Duration(v) * time.Second
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		cfg.Cache.Redis.Host = v
	}
	if v, ok := envInt("REDIS_PORT"); ok {
		cfg.Cache.Redis.Port = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Cache.Redis.Password = v
	}

	// Feeds
	if v, ok := envInt("BOATS_FETCH_TIMEOUT_MS"); ok && v > 0 {
		cfg.Feeds.FetchTimeout = time.Duration(v) * time.Millisecond
	}
	if v := envString("BOATSCOM_API_KEY"); v != "" {
		cfg.Feeds.BoatsComKey = v
	}
	if v := envString("BOATWIZARD_EVENT_ID"); v != "" {
		cfg.Feeds.BoatWizardEventID = v
	}

	// Rates
	if v := envString("FX_RATES_URL"); v != "" {
		cfg.Rates.FXRatesURL = v
	}
	if v := envString("CURRCONV_API_KEY"); v != "" {
		cfg.Rates.CurrConvKey = v
	} else if v := envString("CURRCONV_KEY"); v != "" {
		cfg.Rates.CurrConvKey = v
	}

	// Dataset
	if v, ok := envInt("BOATS_PER_PAGE"); ok && v > 0 {
		cfg.Dataset.PerPage = v
	}
	if v := os.Getenv("BOATS_LANGUAGE"); v != "" {
		cfg.Dataset.Language = v
	}
	if v, ok := envInt("BOATS_REFRESH_INTERVAL_SECONDS"); ok && v > 0 {
		cfg.Dataset.RefreshInterval = time.Duration(v) * time.Second
	}

	// Logging
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envString(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
