package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter limits request rates per key.
type RateLimiter interface {
	// Allow reports whether the request identified by key should be allowed,
	// along with the remaining attempts and the window reset time.
	Allow(ctx context.Context, key string) (bool, int, time.Time, error)
	// Reset resets the counter for a specific key
	Reset(ctx context.Context, key string) error
}

// RedisRateLimiter implements fixed-window rate limiting using Redis.
type RedisRateLimiter struct {
	client      *redis.Client
	prefix      string
	window      time.Duration
	maxAttempts int64
}

// NewRedisRateLimiter creates a new rate limiter using Redis
func NewRedisRateLimiter(client *redis.Client, window time.Duration, maxAttempts int64) *RedisRateLimiter {
	return &RedisRateLimiter{
		client:      client,
		prefix:      "ratelimit:",
		window:      window,
		maxAttempts: maxAttempts,
	}
}

// Allow checks if the request should be allowed based on the key
func (rl *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, int, time.Time, error) {
	redisKey := fmt.Sprintf("%s%s", rl.prefix, key)
	now := time.Now()
	windowStart := now.Truncate(rl.window)

	pipe := rl.client.Pipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireAt(ctx, redisKey, windowStart.Add(rl.window))

	_, err := pipe.Exec(ctx)
	if err != nil {
		return false, 0, time.Time{}, fmt.Errorf("rate limiter error: %w", err)
	}

	count := incr.Val()
	remaining := rl.maxAttempts - count
	if remaining < 0 {
		remaining = 0
	}

	resetTime := windowStart.Add(rl.window)
	allowed := count <= rl.maxAttempts

	return allowed, int(remaining), resetTime, nil
}

// Reset resets the counter for a specific key
func (rl *RedisRateLimiter) Reset(ctx context.Context, key string) error {
	redisKey := fmt.Sprintf("%s%s", rl.prefix, key)
	return rl.client.Del(ctx, redisKey).Err()
}
