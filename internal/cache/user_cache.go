// Package cache keeps short-lived server-side lookups in Redis.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// UserCache remembers which user ids already have a row in the users table so
// the per-request upsert can be skipped. It holds no authorization state: a hit
// only says "the row exists", the token is still verified on every request.
type UserCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewUserCache connects to redisURL and checks that the server answers.
func NewUserCache(redisURL string, ttl time.Duration) (*UserCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewUserCacheWithClient(client, ttl), nil
}

func NewUserCacheWithClient(client *redis.Client, ttl time.Duration) *UserCache {
	return &UserCache{
		client: client,
		prefix: "known-user:",
		ttl:    ttl,
	}
}

func (c *UserCache) key(userID string) string {
	return c.prefix + userID
}

// Seen reports whether userID was remembered and has not expired yet.
func (c *UserCache) Seen(ctx context.Context, userID string) (bool, error) {
	n, err := c.client.Exists(ctx, c.key(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("lookup known user: %w", err)
	}
	return n > 0, nil
}

func (c *UserCache) Remember(ctx context.Context, userID string) error {
	if err := c.client.Set(ctx, c.key(userID), 1, c.ttl).Err(); err != nil {
		return fmt.Errorf("remember user: %w", err)
	}
	return nil
}

func (c *UserCache) Close() error {
	return c.client.Close()
}
