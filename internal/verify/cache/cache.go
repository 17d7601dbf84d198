// Package cache keeps recent verification results in Redis so repeated runs
// for the same provider within the TTL skip the browser entirely. The cache
// is optional: a nil *Cache is a no-op, and Redis being down degrades to a
// miss rather than failing the lookup.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"licensure/internal/domain"
	"licensure/internal/verify/normalize"
)

const keyPrefix = "licensure:verify:"

type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// New returns nil when no client is configured, which disables caching.
func New(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Cache {
	if client == nil {
		return nil
	}
	return &Cache{client: client, ttl: ttl, logger: logger}
}

func (c *Cache) Lookup(ctx context.Context, fullName string) ([]domain.LicenseRecord, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, key(fullName)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("verify cache read failed", "error", err)
		}
		return nil, false
	}
	var records []domain.LicenseRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		c.logger.Warn("verify cache entry corrupt", "error", err)
		return nil, false
	}
	return records, true
}

func (c *Cache) Store(ctx context.Context, fullName string, records []domain.LicenseRecord) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key(fullName), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("verify cache write failed", "error", err)
	}
}

func key(fullName string) string {
	return keyPrefix + strings.ToLower(normalize.Clean(fullName))
}
