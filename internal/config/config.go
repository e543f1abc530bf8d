package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/rezonia/efaktura/internal/logger"
)

const (
	EnvironmentProduction = "production"
	EnvironmentDemo       = "demo"

	DefaultProductionURL = "https://efaktura.mfin.gov.rs"
	DefaultDemoURL       = "https://demoefaktura.mfin.gov.rs"

	CacheDriverMemory = "memory"
	CacheDriverSQLite = "sqlite"
)

var ErrMissingAPIKey = errors.New("EFAKTURA_API_KEY is required")

type (
	Config struct {
		APIKey      string
		Environment string
		URLs        URLs
		HTTP        HTTP
		Logging     Logging
		Cache       Cache
		Scheduler   Scheduler
		Server      Server
	}

	URLs struct {
		Production string
		Demo       string
	}
	HTTP struct {
		Timeout        time.Duration
		ConnectTimeout time.Duration
		RetryTimes     int // total attempts
		RetrySleep     time.Duration
	}
	Logging struct {
		Enabled bool   // log every API request and response
		Channel string // stderr, stack, stdout or a file path
		Level   string
		Format  string // console, json
	}
	Cache struct {
		Enabled          bool
		Driver           string
		Path             string // database file for the sqlite driver
		Prefix           string
		CompaniesTTL     time.Duration
		UnitMeasuresTTL  time.Duration
		VatExemptionsTTL time.Duration
	}
	Scheduler struct {
		Enabled     bool
		SubscribeAt string // HH:MM, local time
		LogResults  bool
	}
	Server struct {
		Address string
	}
)

// env maps config keys to the environment variables that override them.
var env = map[string]string{
	"api_key":                  "EFAKTURA_API_KEY",
	"environment":              "EFAKTURA_ENVIRONMENT",
	"urls.production":          "EFAKTURA_PRODUCTION_URL",
	"urls.demo":                "EFAKTURA_DEMO_URL",
	"http.timeout":             "EFAKTURA_TIMEOUT",
	"http.connect_timeout":     "EFAKTURA_CONNECT_TIMEOUT",
	"http.retry.times":         "EFAKTURA_RETRY_TIMES",
	"http.retry.sleep":         "EFAKTURA_RETRY_SLEEP",
	"logging.enabled":          "EFAKTURA_LOGGING_ENABLED",
	"logging.channel":          "EFAKTURA_LOG_CHANNEL",
	"logging.level":            "EFAKTURA_LOG_LEVEL",
	"logging.format":           "EFAKTURA_LOG_FORMAT",
	"cache.enabled":            "EFAKTURA_CACHE_ENABLED",
	"cache.driver":             "EFAKTURA_CACHE_DRIVER",
	"cache.path":               "EFAKTURA_CACHE_PATH",
	"cache.prefix":             "EFAKTURA_CACHE_PREFIX",
	"cache.ttl.companies":      "EFAKTURA_CACHE_COMPANIES_TTL",
	"cache.ttl.unit_measures":  "EFAKTURA_CACHE_UNITS_TTL",
	"cache.ttl.vat_exemptions": "EFAKTURA_CACHE_VAT_TTL",
	"scheduler.enabled":        "EFAKTURA_SCHEDULER_ENABLED",
	"scheduler.subscribe_at":   "EFAKTURA_SUBSCRIBE_AT",
	"scheduler.log_results":    "EFAKTURA_SCHEDULER_LOG",
	"server.address":           "EFAKTURA_SERVER_ADDRESS",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_key", "")
	v.SetDefault("environment", EnvironmentProduction)
	v.SetDefault("urls.production", DefaultProductionURL)
	v.SetDefault("urls.demo", DefaultDemoURL)

	v.SetDefault("http.timeout", 30)         // seconds
	v.SetDefault("http.connect_timeout", 10) // seconds
	v.SetDefault("http.retry.times", 3)
	v.SetDefault("http.retry.sleep", 100) // milliseconds

	v.SetDefault("logging.enabled", false)
	v.SetDefault("logging.channel", "stderr")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.driver", CacheDriverMemory)
	v.SetDefault("cache.path", "efaktura-cache.db")
	v.SetDefault("cache.prefix", "efaktura_")
	v.SetDefault("cache.ttl.companies", 86400) // seconds
	v.SetDefault("cache.ttl.unit_measures", 86400)
	v.SetDefault("cache.ttl.vat_exemptions", 86400)

	v.SetDefault("scheduler.enabled", false)
	v.SetDefault("scheduler.subscribe_at", "00:05")
	v.SetDefault("scheduler.log_results", true)

	v.SetDefault("server.address", ":8080")
}

// Load reads defaults, then the optional config file at path, then the
// environment. Later sources win.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, name := range env {
		if err := v.BindEnv(key, name); err != nil {
			return nil, fmt.Errorf("bind %s: %w", name, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	d := durations{v: v}
	cfg := &Config{
		APIKey:      strings.TrimSpace(v.GetString("api_key")),
		Environment: strings.ToLower(strings.TrimSpace(v.GetString("environment"))),
		URLs: URLs{
			Production: v.GetString("urls.production"),
			Demo:       v.GetString("urls.demo"),
		},
		HTTP: HTTP{
			Timeout:        d.get("http.timeout", time.Second),
			ConnectTimeout: d.get("http.connect_timeout", time.Second),
			RetryTimes:     v.GetInt("http.retry.times"),
			RetrySleep:     d.get("http.retry.sleep", time.Millisecond),
		},
		Logging: Logging{
			Enabled: v.GetBool("logging.enabled"),
			Channel: v.GetString("logging.channel"),
			Level:   v.GetString("logging.level"),
			Format:  v.GetString("logging.format"),
		},
		Cache: Cache{
			Enabled:          v.GetBool("cache.enabled"),
			Driver:           strings.ToLower(v.GetString("cache.driver")),
			Path:             v.GetString("cache.path"),
			Prefix:           v.GetString("cache.prefix"),
			CompaniesTTL:     d.get("cache.ttl.companies", time.Second),
			UnitMeasuresTTL:  d.get("cache.ttl.unit_measures", time.Second),
			VatExemptionsTTL: d.get("cache.ttl.vat_exemptions", time.Second),
		},
		Scheduler: Scheduler{
			Enabled:     v.GetBool("scheduler.enabled"),
			SubscribeAt: strings.TrimSpace(v.GetString("scheduler.subscribe_at")),
			LogResults:  v.GetBool("scheduler.log_results"),
		},
		Server: Server{
			Address: v.GetString("server.address"),
		},
	}
	if d.err != nil {
		return nil, d.err
	}
	return cfg, nil
}

// durations reads values that are either a bare number in a default unit
// or a Go duration string. The first failure is kept.
type durations struct {
	v   *viper.Viper
	err error
}

func (d *durations) get(key string, unit time.Duration) time.Duration {
	raw := strings.TrimSpace(cast.ToString(d.v.Get(key)))
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return time.Duration(n * float64(unit))
	}
	dur, err := time.ParseDuration(raw)
	if err != nil && d.err == nil {
		d.err = fmt.Errorf("%s: invalid duration %q", env[key], raw)
	}
	return dur
}

// Validate checks the settings a client needs.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	switch c.Environment {
	case EnvironmentProduction, EnvironmentDemo:
	default:
		return fmt.Errorf("unknown environment %q (want %s or %s)", c.Environment, EnvironmentProduction, EnvironmentDemo)
	}
	if c.BaseURL() == "" {
		return fmt.Errorf("no base URL configured for %s", c.Environment)
	}
	switch c.Cache.Driver {
	case CacheDriverMemory, CacheDriverSQLite:
	default:
		return fmt.Errorf("unknown cache driver %q", c.Cache.Driver)
	}
	if _, err := c.Scheduler.CronSpec(); err != nil {
		return err
	}
	return nil
}

// BaseURL returns the API root for the selected environment.
func (c *Config) BaseURL() string {
	if c.IsDemo() {
		return c.URLs.Demo
	}
	return c.URLs.Production
}

func (c *Config) IsDemo() bool {
	return c.Environment == EnvironmentDemo
}

func (c *Config) IsProduction() bool {
	return c.Environment == EnvironmentProduction
}

// CronSpec converts SubscribeAt to a daily cron expression.
func (s Scheduler) CronSpec() (string, error) {
	t, err := time.Parse("15:04", s.SubscribeAt)
	if err != nil {
		return "", fmt.Errorf("EFAKTURA_SUBSCRIBE_AT: want HH:MM, got %q", s.SubscribeAt)
	}
	return fmt.Sprintf("%d %d * * *", t.Minute(), t.Hour()), nil
}

// LoggerConfig returns the process logger settings.
func (c *Config) LoggerConfig() logger.LogConfig {
	lc := logger.DefaultConfig()
	lc.Level = c.Logging.Level
	lc.Format = c.Logging.Format
	lc.Output = c.Logging.Channel
	return lc
}
