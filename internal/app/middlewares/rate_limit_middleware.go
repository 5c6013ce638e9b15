package middlewares

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/safatanc/jewelry-backoffice/internal/app/errors"
	"github.com/safatanc/jewelry-backoffice/internal/app/pkg"
	"github.com/safatanc/jewelry-backoffice/pkg/ratelimit"
)

// RateLimitMiddleware handles rate limiting
type RateLimitMiddleware struct {
	limiter ratelimit.RateLimiter
}

// NewRateLimitMiddleware creates a new RateLimitMiddleware
func NewRateLimitMiddleware(limiter ratelimit.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
	}
}

// LimitByIP creates a middleware that rate limits by IP address
func (m *RateLimitMiddleware) LimitByIP(limit ratelimit.Rate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("ip:%s", getIPAddress(c))
		return m.handleRateLimit(c, key, limit)
	}
}

// LimitByToken rate limits per bearer token, falling back to the IP address
func (m *RateLimitMiddleware) LimitByToken(limit ratelimit.Rate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token, ok := c.Locals("token").(string); ok && token != "" {
			return m.handleRateLimit(c, "token:"+tokenFingerprint(token), limit)
		}
		return m.LimitByIP(limit)(c)
	}
}

// handleRateLimit handles the rate limiting logic
func (m *RateLimitMiddleware) handleRateLimit(c *fiber.Ctx, key string, limit ratelimit.Rate) error {
	allowed, info := m.limiter.Allow(c.UserContext(), key, limit)

	// Set rate limit headers
	c.Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
	c.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
	c.Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.Reset.Unix()))

	if !allowed {
		return pkg.ErrorResponse(c, errors.NewTooManyRequestsError("Rate limit exceeded"))
	}

	return c.Next()
}

// tokenFingerprint keeps raw tokens out of redis keys
func tokenFingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:8])
}

// getIPAddress gets the client IP address from request
func getIPAddress(c *fiber.Ctx) string {
	// Try X-Forwarded-For header
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	// Try X-Real-IP header
	if xrip := c.Get("X-Real-IP"); xrip != "" {
		return xrip
	}

	// Fall back to RemoteIP
	return c.IP()
}
