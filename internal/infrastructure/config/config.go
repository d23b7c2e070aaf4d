package config

import (
	"fmt"
	"time"
)

// Built-in demo credentials; production deployments override them through
// the environment.
const (
	defaultBoatsComKey       = "5bd306bd6169"
	defaultBoatWizardEventID = "80eef85c-313d-4b83-9053-0cba19e92a93"
	defaultCurrConvKey       = "32e0eac2807f4ce3ac976f8233ed2f06"
)

type Config struct {
	Server struct {
		Port               int    `yaml:"port"`
		ReadTimeoutStr     string `yaml:"read_timeout"`
		WriteTimeoutStr    string `yaml:"write_timeout"`
		ShutdownTimeoutStr string `yaml:"shutdown_timeout"`
		ReadTimeout        time.Duration
		WriteTimeout       time.Duration
		ShutdownTimeout    time.Duration
	} `yaml:"server"`

	Cache struct {
		// Backend selects the dataset cache: "memory" (default) or "redis".
		Backend string `yaml:"backend"`
		TTLStr  string        `yaml:"ttl"`
		TTL     time.Duration `yaml:"-"`

		Redis struct {
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`

	Feeds struct {
		FetchTimeoutStr   string `yaml:"fetch_timeout"`
		FetchTimeout      time.Duration
		BoatsComKey       string `yaml:"boatscom_key"`
		BoatWizardEventID string `yaml:"boatwizard_event_id"`
		// RequestsPerSecond bounds outbound calls per upstream.
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		Burst             int     `yaml:"burst"`
	} `yaml:"feeds"`

	Rates struct {
		FXRatesURL  string `yaml:"fx_rates_url"`
		CurrConvKey string `yaml:"currconv_key"`
	} `yaml:"rates"`

	Dataset struct {
		PerPage            int    `yaml:"per_page"`
		Language           string `yaml:"language"`
		RefreshIntervalStr string `yaml:"refresh_interval"`
		RefreshInterval    time.Duration
	} `yaml:"dataset"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
}

func defaults() *Config {
	cfg := &Config{}

	cfg.Server.Port = 8080
	cfg.Server.ReadTimeout = 10 * time.Second
	cfg.Server.WriteTimeout = 10 * time.Second
	cfg.Server.ShutdownTimeout = 30 * time.Second

	cfg.Cache.Backend = "memory"
	cfg.Cache.TTL = 30 * time.Minute
	cfg.Cache.Redis.Host = "localhost"
	cfg.Cache.Redis.Port = 6379

	cfg.Feeds.FetchTimeout = 5 * time.Second
	cfg.Feeds.BoatsComKey = defaultBoatsComKey
	cfg.Feeds.BoatWizardEventID = defaultBoatWizardEventID
	cfg.Feeds.RequestsPerSecond = 5
	cfg.Feeds.Burst = 10

	cfg.Rates.CurrConvKey = defaultCurrConvKey

	cfg.Dataset.PerPage = 10
	cfg.Dataset.Language = "en"
	cfg.Dataset.RefreshInterval = 30 * time.Minute

	cfg.Logging.Level = "info"
	cfg.Logging.Format = "text"

	return cfg
}

// Validate reports the fatal configuration case: a pipeline run cannot start
// without upstream credentials.
func (c *Config) Validate() error {
	if c.Feeds.BoatsComKey == "" {
		return fmt.Errorf("BOATSCOM_API_KEY is not set")
	}
	if c.Feeds.BoatWizardEventID == "" {
		return fmt.Errorf("BOATWIZARD_EVENT_ID is not set")
	}
	return nil
}

// RedisAddr returns the host:port address of the configured Redis instance.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Cache.Redis.Host, c.Cache.Redis.Port)
}
