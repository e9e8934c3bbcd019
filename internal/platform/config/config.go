// Package config loads service configuration from CAREHUB_* environment
// variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Draft backends.
const (
	DraftBackendMemory   = "memory"
	DraftBackendRedis    = "redis"
	DraftBackendPostgres = "postgres"
)

// Config is the root service configuration.
type Config struct {
	Addr      string `env:"ADDR" envDefault:":8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	StaffAPI StaffAPIConfig `envPrefix:"STAFF_API_"`
	Draft    DraftConfig    `envPrefix:"DRAFT_"`
	Redis    RedisConfig    `envPrefix:"REDIS_"`
	Postgres PostgresConfig `envPrefix:"POSTGRES_"`
	Audit    AuditConfig    `envPrefix:"AUDIT_"`
	Tracing  TracingConfig  `envPrefix:"OTEL_"`

	FinalizeLockTTL time.Duration `env:"FINALIZE_LOCK_TTL" envDefault:"2m"`
}

// StaffAPIConfig points at the backing staff service.
type StaffAPIConfig struct {
	BaseURL string        `env:"BASE_URL" envDefault:"http://localhost:3000/api"`
	Token   string        `env:"TOKEN"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`
}

// DraftConfig selects and tunes the draft cache.
type DraftConfig struct {
	Backend   string        `env:"BACKEND" envDefault:"memory"`
	KeyPrefix string        `env:"KEY_PREFIX" envDefault:"staff-onboarding-draft:"`
	TTL       time.Duration `env:"TTL" envDefault:"0s"`
	Table     string        `env:"TABLE" envDefault:"onboarding_drafts"`
}

// RedisConfig configures the shared Redis client. An empty URL disables Redis.
type RedisConfig struct {
	URL          string        `env:"URL"`
	PoolSize     int           `env:"POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"3s"`
}

// PostgresConfig configures the Postgres draft store.
type PostgresConfig struct {
	DSN             string        `env:"DSN"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"30m"`
}

// AuditConfig selects the audit sink. Without brokers events stay in memory.
type AuditConfig struct {
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	Topic        string   `env:"TOPIC" envDefault:"carehub.onboarding.audit"`
	BufferSize   int      `env:"BUFFER_SIZE" envDefault:"256"`
	Partitions   int32    `env:"PARTITIONS" envDefault:"3"`
	// Replication of -1 uses the broker default.
	Replication int16 `env:"REPLICATION" envDefault:"-1"`
}

// TracingConfig enables OTLP trace export. An empty endpoint disables it.
type TracingConfig struct {
	Enabled     bool   `env:"ENABLED" envDefault:"true"`
	Endpoint    string `env:"ENDPOINT"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"carehub"`
}

// Load parses CAREHUB_* variables and validates the result.
func Load() (Config, error) {
	return LoadFrom(nil)
}

// LoadFrom parses from the given environment map instead of the process
// environment when environ is non-nil.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{Prefix: "CAREHUB_"}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Draft.Backend = strings.ToLower(strings.TrimSpace(cfg.Draft.Backend))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field requirements.
func (c Config) Validate() error {
	switch c.Draft.Backend {
	case DraftBackendMemory:
	case DraftBackendRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("CAREHUB_REDIS_URL is required for the redis draft backend")
		}
	case DraftBackendPostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("CAREHUB_POSTGRES_DSN is required for the postgres draft backend")
		}
	default:
		return fmt.Errorf("unknown draft backend %q", c.Draft.Backend)
	}
	if c.StaffAPI.BaseURL == "" {
		return fmt.Errorf("CAREHUB_STAFF_API_BASE_URL is required")
	}
	if c.Draft.TTL < 0 {
		return fmt.Errorf("CAREHUB_DRAFT_TTL must not be negative")
	}
	if c.FinalizeLockTTL <= 0 {
		return fmt.Errorf("CAREHUB_FINALIZE_LOCK_TTL must be positive")
	}
	return nil
}
