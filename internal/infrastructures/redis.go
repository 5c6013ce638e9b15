package infrastructures

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/safatanc/jewelry-backoffice/pkg/ratelimit"
	"github.com/sirupsen/logrus"
)

// KeyPrefix namespaces every redis key owned by this service
type KeyPrefix string

func NewRedisClient() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     Config.REDIS_ADDRESS,
		Password: Config.REDIS_PASSWORD,
		DB:       0, // use default DB
	})

	// Test the connection
	if err := client.Ping(context.Background()).Err(); err != nil {
		logrus.Fatalf("failed to connect redis: %v", err)
	}

	return client
}

func NewKeyPrefix() KeyPrefix {
	return KeyPrefix(Config.CACHE_NAMESPACE)
}

// NewRateLimiter builds the redis limiter under the service's key prefix
func NewRateLimiter(redis *redis.Client, keyPrefix KeyPrefix) *ratelimit.RedisRateLimiter {
	return ratelimit.NewRedisRateLimiter(redis, string(keyPrefix))
}
