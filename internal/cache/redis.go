package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/landscan/zoneaudit/internal/config"
	"github.com/redis/go-redis/v9"
)

// PageCache stores raw fetched response bodies in Redis so repeated analysis
// runs do not re-hit the municipal data sources. A nil *PageCache is valid
// and disables caching; both accessors treat the nil receiver as a miss.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis and returns a PageCache. It returns nil (and no
// error) when cfg.Addr is empty, which disables caching entirely.
func New(ctx context.Context, cfg config.RedisConfig) (*PageCache, error) {
	if cfg.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &PageCache{
		client: client,
		ttl:    cfg.TTL,
	}, nil
}

// Get returns the cached body for a key, with found=false on a miss.
func (c *PageCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if c == nil {
		return nil, false, nil
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get %s from redis: %w", key, err)
	}

	return data, true, nil
}

// Set stores a body under a key with the configured TTL.
func (c *PageCache) Set(ctx context.Context, key string, body []byte) error {
	if c == nil {
		return nil
	}

	if err := c.client.Set(ctx, key, body, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s in redis: %w", key, err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (c *PageCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
