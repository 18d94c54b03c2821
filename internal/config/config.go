package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	defaultAutosaveQuietMs  = 1000
	defaultSessionTTLHours  = 24 * 7
	defaultCalendarCacheMB  = 16
	defaultLoginRateLimit   = 10
	defaultMetricsHost      = "localhost"
	defaultMetricsPort      = "2112"
	defaultPostgresDBName   = "liftly"
	defaultShutdownWaitSecs = 15
)

type Config struct {
	Environment string `toml:"-"`

	Host string `toml:"host"`
	Port int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// auth
	SessionTTLHours             int `toml:"session_ttl_hours"`
	LoginRateLimitAllowedPerMin int `toml:"login_rate_limit_allowed_per_min"`

	// workouts / calendar
	AutosaveQuietMs int `toml:"autosave_quiet_ms"`
	CalendarCacheMB int `toml:"calendar_cache_mb"`

	ShutdownWaitSeconds int `toml:"shutdown_wait_seconds"`
}

type Toml struct {
	Development *Config `toml:"development"`
	Production  *Config `toml:"production"`
	DockerDev   *Config `toml:"dockerdev"`
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
		env = "development"
	case "prod", "production":
		cfg = t.Production
		env = "production"
	case "ddev", "dockerdev":
		cfg = t.DockerDev
		env = "dockerdev"
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	cfg.Environment = env
	cfg.setDefaults()
	return cfg, nil
}

// Load reads the TOML file at path and returns the section for env.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	return t.Get(env)
}

// Parse is like Load, but reads the TOML from a string.
func Parse(env, data string) (*Config, error) {
	var t Toml
	if _, err := toml.Decode(data, &t); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return t.Get(env)
}

func (c *Config) setDefaults() {
	if c.AutosaveQuietMs <= 0 {
		c.AutosaveQuietMs = defaultAutosaveQuietMs
	}
	if c.SessionTTLHours <= 0 {
		c.SessionTTLHours = defaultSessionTTLHours
	}
	if c.CalendarCacheMB <= 0 {
		c.CalendarCacheMB = defaultCalendarCacheMB
	}
	if c.LoginRateLimitAllowedPerMin <= 0 {
		c.LoginRateLimitAllowedPerMin = defaultLoginRateLimit
	}
	if c.PrometheusMetricsHost == "" {
		c.PrometheusMetricsHost = defaultMetricsHost
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = defaultMetricsPort
	}
	if c.PostgresDBName == "" {
		c.PostgresDBName = defaultPostgresDBName
	}
	if c.ShutdownWaitSeconds <= 0 {
		c.ShutdownWaitSeconds = defaultShutdownWaitSecs
	}
}

func (c *Config) AutosaveQuietWindow() time.Duration {
	return time.Duration(c.AutosaveQuietMs) * time.Millisecond
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

func (c *Config) ShutdownWait() time.Duration {
	return time.Duration(c.ShutdownWaitSeconds) * time.Second
}
