package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/safatanc/jewelry-backoffice/pkg/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingLimiter allows the first n requests per key
type countingLimiter struct {
	mu    sync.Mutex
	n     int
	seen  map[string]int
	reset time.Time
}

func newCountingLimiter(n int) *countingLimiter {
	return &countingLimiter{n: n, seen: map[string]int{}, reset: time.Unix(1750000000, 0)}
}

func (l *countingLimiter) Allow(ctx context.Context, key string, limit ratelimit.Rate) (bool, ratelimit.RateLimitInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seen[key]++
	remaining := l.n - l.seen[key]
	if remaining < 0 {
		remaining = 0
	}
	return l.seen[key] <= l.n, ratelimit.RateLimitInfo{Limit: l.n, Remaining: remaining, Reset: l.reset}
}

func (l *countingLimiter) Reset(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.seen, key)
	return nil
}

func (l *countingLimiter) keys() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	keys := make([]string, 0, len(l.seen))
	for key := range l.seen {
		keys = append(keys, key)
	}
	return keys
}

func newLimitedApp(limiter ratelimit.RateLimiter) *fiber.App {
	app := fiber.New()
	limits := NewRateLimitMiddleware(limiter)
	app.Get("/ip", limits.LimitByIP(ratelimit.AdminReadLimit), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/token", NewAuthMiddleware().AuthBearer, limits.LimitByToken(ratelimit.AdminWriteLimit), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestLimitByIPRejectsOverLimit(t *testing.T) {
	app := newLimitedApp(newCountingLimiter(1))

	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))
	assert.Equal(t, "1750000000", resp.Header.Get("X-RateLimit-Reset"))

	req = httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.1")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	// Another client is unaffected
	req = httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.Header.Set("X-Real-IP", "10.0.0.9")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLimitByTokenKeysOnFingerprint(t *testing.T) {
	limiter := newCountingLimiter(5)
	app := newLimitedApp(limiter)

	req := httptest.NewRequest(http.MethodGet, "/token", nil)
	req.Header.Set("Authorization", "Bearer super-secret-token")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	keys := limiter.keys()
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], "token:"))
	assert.NotContains(t, keys[0], "super-secret-token")
	assert.Equal(t, "token:"+tokenFingerprint("super-secret-token"), keys[0])
}

func TestLimitByTokenUnauthenticatedNeverCounted(t *testing.T) {
	limiter := newCountingLimiter(5)
	app := newLimitedApp(limiter)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/token", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, limiter.keys())
}

func TestRequestIDPropagates(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("request_id").(string))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "req-123", resp.Header.Get("X-Request-ID"))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Len(t, resp.Header.Get("X-Request-ID"), 36)
}
