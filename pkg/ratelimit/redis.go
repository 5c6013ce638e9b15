package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisRateLimiter implements RateLimiter using Redis as storage
type RedisRateLimiter struct {
	redis *redis.Client
	// prefix for redis keys to avoid collisions
	keyPrefix string
}

// NewRedisRateLimiter creates a new RedisRateLimiter
func NewRedisRateLimiter(redis *redis.Client, keyPrefix string) *RedisRateLimiter {
	return &RedisRateLimiter{
		redis:     redis,
		keyPrefix: keyPrefix,
	}
}

// formatKey formats the rate limit key with prefix
func (l *RedisRateLimiter) formatKey(key string) string {
	return fmt.Sprintf("%s:ratelimit:%s", l.keyPrefix, key)
}

// Allow implements RateLimiter.Allow using Redis sorted sets
// It uses a sliding window algorithm
func (l *RedisRateLimiter) Allow(ctx context.Context, key string, limit Rate) (bool, RateLimitInfo) {
	now := time.Now()
	windowKey := l.formatKey(key)

	pipe := l.redis.TxPipeline()

	// Remove old entries outside the window
	windowStart := now.Add(-limit.Window).UnixNano()
	pipe.ZRemRangeByScore(ctx, windowKey, "0", strconv.FormatInt(windowStart, 10))

	// Get current count
	card := pipe.ZCard(ctx, windowKey)

	// Add current request
	pipe.ZAdd(ctx, windowKey, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: now.UnixNano(),
	})

	// Set expiry to clean up old keys
	pipe.Expire(ctx, windowKey, limit.Window)

	if _, err := pipe.Exec(ctx); err != nil {
		// Fail open so a redis outage does not take the admin down
		logrus.WithError(err).WithField("key", key).Warn("rate limiter unavailable")
		return true, RateLimitInfo{
			Limit:     limit.Requests,
			Remaining: 0,
			Reset:     now.Add(limit.Window),
		}
	}

	// The current request is not part of the count yet
	remaining := limit.Requests - int(card.Val()) - 1
	allowed := remaining >= 0
	if remaining < 0 {
		remaining = 0
	}

	return allowed, RateLimitInfo{
		Limit:     limit.Requests,
		Remaining: remaining,
		Reset:     now.Add(limit.Window),
	}
}

// Reset implements RateLimiter.Reset
func (l *RedisRateLimiter) Reset(ctx context.Context, key string) error {
	return l.redis.Del(ctx, l.formatKey(key)).Err()
}
