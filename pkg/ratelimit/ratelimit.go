package ratelimit

import (
	"context"
	"time"
)

// Rate defines the rate limit configuration
type Rate struct {
	// Requests is the number of requests allowed in the window
	Requests int
	// Window is the time window for the rate limit
	Window time.Duration
}

// RateLimitInfo contains information about the current rate limit status
type RateLimitInfo struct {
	// Limit is the total number of requests allowed
	Limit int
	// Remaining is the number of requests remaining
	Remaining int
	// Reset is when the rate limit will reset
	Reset time.Time
}

// RateLimiter defines the interface for rate limiting implementations
type RateLimiter interface {
	// Allow checks if a request is allowed and returns rate limit info
	Allow(ctx context.Context, key string, limit Rate) (bool, RateLimitInfo)
	// Reset resets the rate limit for a key
	Reset(ctx context.Context, key string) error
}

// Common rate limits
var (
	// AdminReadLimit is for list and form reads (120 req/min)
	AdminReadLimit = Rate{
		Requests: 120,
		Window:   time.Minute,
	}

	// AdminWriteLimit is for create, update and delete calls (30 req/min)
	AdminWriteLimit = Rate{
		Requests: 30,
		Window:   time.Minute,
	}
)
