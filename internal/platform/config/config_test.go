package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, 15*time.Minute, cfg.CacheTTL)
	assert.Nil(t, cfg.KafkaBrokers)
	assert.Equal(t, "licensure.verifications", cfg.AuditTopic)
	assert.True(t, cfg.Headless)
	assert.Equal(t, 1, cfg.JobConcurrency)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("LICENSURE_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DATABASE_URL", "postgres://localhost/licensure")
	t.Setenv("VERIFY_CACHE_TTL", "1h")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092,broker-2:9092")
	t.Setenv("BROWSER_HEADLESS", "false")
	t.Setenv("JOB_CONCURRENCY", "4")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "postgres://localhost/licensure", cfg.DatabaseURL)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.KafkaBrokers)
	assert.False(t, cfg.Headless)
	assert.Equal(t, 4, cfg.JobConcurrency)
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	t.Setenv("VERIFY_CACHE_TTL", "soon")
	t.Setenv("JOB_CONCURRENCY", "-3")
	t.Setenv("LOG_LEVEL", "chatty")

	cfg := FromEnv()

	assert.Equal(t, 15*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 1, cfg.JobConcurrency)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}
