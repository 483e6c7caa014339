package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`
	// PostgresMaxConns of the pool, 0 keeps the pgx default
	PostgresMaxConns int32 `toml:"postgres_max_conns"`

	// redis, used for the program locks and rate limiting
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// DistributedLocks switches from in-process to redis program locks,
	// needed when more than one instance serves the same database
	DistributedLocks bool     `toml:"distributed_locks"`
	LockTTL          Duration `toml:"lock_ttl"`

	RateLimitPerMinute  int      `toml:"rate_limit_per_minute"`
	TemplateCacheSizeMB int      `toml:"template_cache_size_mb"`
	AllowedOrigins      []string `toml:"allowed_origins"`
	MaxBodyKB           int64    `toml:"max_body_kb"`

	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
}

// Duration reads TOML strings like "10s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration [%s]: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

type Toml struct {
	Development *Config
	Production  *Config
	DockerDev   *Config `toml:"dockerdev"`
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "ddev", "dockerdev":
		cfg = t.DockerDev
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("env %s not configured", env)
	}
	return cfg, nil
}

// Load reads the TOML file at path and returns the config of env, with
// defaults filled in.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	cfg.setDefaults(env)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config [%s]: %w", env, err)
	}
	return cfg, nil
}

func (c *Config) setDefaults(env string) {
	if c.Environment == "" {
		c.Environment = strings.ToLower(env)
	}
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.PostgresPort == "" {
		c.PostgresPort = "5432"
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
	if c.RedisPort == "" {
		c.RedisPort = "6379"
	}
	if c.LockTTL.Duration == 0 {
		c.LockTTL.Duration = 10 * time.Second
	}
	if c.TemplateCacheSizeMB == 0 {
		c.TemplateCacheSizeMB = 10
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "2112"
	}
	if c.MaxBodyKB == 0 {
		c.MaxBodyKB = 512
	}
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.PostgresHost == "" || c.PostgresDBName == "" {
		return fmt.Errorf("postgres host and db name must be set")
	}
	if c.DistributedLocks && c.RedisHost == "" {
		return fmt.Errorf("distributed locks need redis host")
	}
	if c.PostgresMaxConns < 0 {
		return fmt.Errorf("invalid postgres max conns %d", c.PostgresMaxConns)
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("invalid rate limit %d", c.RateLimitPerMinute)
	}
	return nil
}
