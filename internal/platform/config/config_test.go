package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DraftBackendMemory, cfg.Draft.Backend)
	assert.Equal(t, "staff-onboarding-draft:", cfg.Draft.KeyPrefix)
	assert.Equal(t, time.Duration(0), cfg.Draft.TTL)
	assert.Equal(t, 15*time.Second, cfg.StaffAPI.Timeout)
	assert.Equal(t, 2*time.Minute, cfg.FinalizeLockTTL)
	assert.Empty(t, cfg.Audit.KafkaBrokers)
	assert.Equal(t, int32(3), cfg.Audit.Partitions)
	assert.Equal(t, int16(-1), cfg.Audit.Replication)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Empty(t, cfg.Tracing.Endpoint)
	assert.Equal(t, "carehub", cfg.Tracing.ServiceName)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"CAREHUB_ADDR":                "127.0.0.1:9000",
		"CAREHUB_DRAFT_BACKEND":       " Redis ",
		"CAREHUB_DRAFT_TTL":           "72h",
		"CAREHUB_REDIS_URL":           "redis://localhost:6379/0",
		"CAREHUB_STAFF_API_BASE_URL":  "https://staff.internal/api",
		"CAREHUB_STAFF_API_TOKEN":     "tok",
		"CAREHUB_AUDIT_KAFKA_BROKERS": "k1:9092,k2:9092",
	})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, DraftBackendRedis, cfg.Draft.Backend)
	assert.Equal(t, 72*time.Hour, cfg.Draft.TTL)
	assert.Equal(t, "tok", cfg.StaffAPI.Token)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Audit.KafkaBrokers)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		environ map[string]string
		want    string
	}{
		{"redis without url", map[string]string{"CAREHUB_DRAFT_BACKEND": "redis"}, "CAREHUB_REDIS_URL"},
		{"postgres without dsn", map[string]string{"CAREHUB_DRAFT_BACKEND": "postgres"}, "CAREHUB_POSTGRES_DSN"},
		{"unknown backend", map[string]string{"CAREHUB_DRAFT_BACKEND": "sqlite"}, "unknown draft backend"},
		{"zero lock ttl", map[string]string{"CAREHUB_FINALIZE_LOCK_TTL": "0s"}, "FINALIZE_LOCK_TTL"},
		{"bad duration", map[string]string{"CAREHUB_DRAFT_TTL": "soon"}, "parse env"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(tt.environ)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
