package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// New connects a go-redis client from a URL. Returns nil when the URL is
// empty, which callers treat as "cache disabled".
func New(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
