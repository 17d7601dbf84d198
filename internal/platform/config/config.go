package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures process-level configuration so main stays lean. Every
// knob has a working default: the service runs with no environment at all,
// using the in-memory store and no cache or audit sink.
type Config struct {
	Addr     string
	LogLevel slog.Level

	// DatabaseURL selects the Postgres store when set; empty keeps the
	// in-memory store.
	DatabaseURL string
	// RedisURL enables the verification result cache.
	RedisURL string
	CacheTTL time.Duration

	// KafkaBrokers enables the audit event sink.
	KafkaBrokers []string
	AuditTopic   string

	// Browser settings for the verification sessions.
	BrowserPath string
	Headless    bool

	// JobConcurrency caps parallel verifications; the shared resource is
	// the remote licensing site, so the default stays sequential.
	JobConcurrency int
}

// FromEnv builds the configuration from environment variables.
func FromEnv() Config {
	cfg := Config{
		Addr:           envOr("LICENSURE_ADDR", ":8080"),
		LogLevel:       parseLevel(os.Getenv("LOG_LEVEL")),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		CacheTTL:       envDuration("VERIFY_CACHE_TTL", 15*time.Minute),
		AuditTopic:     envOr("AUDIT_TOPIC", "licensure.verifications"),
		BrowserPath:    os.Getenv("BROWSER_EXECUTABLE"),
		Headless:       os.Getenv("BROWSER_HEADLESS") != "false",
		JobConcurrency: envInt("JOB_CONCURRENCY", 1),
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
