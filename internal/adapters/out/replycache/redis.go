// Package replycache implements ports.ReplyCache on Redis, with a no-op
// fallback for deployments without Redis.
package replycache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodbot/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "foodbot:reply:"

var _ ports.ReplyCache = (*RedisCache)(nil)

// RedisCache stores replies as plain strings with a TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to redisURL and verifies the connection.
func NewRedisCache(redisURL string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &RedisCache{client: client, ttl: ttl}, nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	reply, err := c.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ports.ErrReplyNotCached
	}
	if err != nil {
		return "", fmt.Errorf("failed to read cached reply: %w", err)
	}
	return reply, nil
}

func (c *RedisCache) Set(ctx context.Context, key, reply string) error {
	if err := c.client.Set(ctx, keyPrefix+key, reply, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache reply: %w", err)
	}
	return nil
}
