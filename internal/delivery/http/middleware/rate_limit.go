package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: IP-based)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis
	KeyPrefix string
	// Reject requests when Redis errors instead of falling back to memory
	FailClosed bool
	// Redis client lookup; defaults to the shared client
	RedisClient func() *goredis.Client
	// Requests for which Skip returns true are not counted
	Skip func(*gin.Context) bool
}

type rateLimitResult struct {
	allowed   bool
	remaining int
	resetAt   time.Time
}

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

const memorySweepInterval = 5 * time.Minute

// memoryLimiter is the per-process token bucket fallback. Idle clients are
// swept during check, so it needs no background goroutine.
type memoryLimiter struct {
	limit  int
	window time.Duration

	mu        sync.Mutex
	clients   map[string]*memoryClient
	lastSweep time.Time
}

type memoryClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newMemoryLimiter(limit int, window time.Duration) *memoryLimiter {
	return &memoryLimiter{
		limit:   limit,
		window:  window,
		clients: make(map[string]*memoryClient),
	}
}

func (m *memoryLimiter) check(key string, now time.Time) rateLimitResult {
	m.mu.Lock()
	if now.Sub(m.lastSweep) >= memorySweepInterval {
		m.sweepLocked(now, 2*m.window)
		m.lastSweep = now
	}
	cl, ok := m.clients[key]
	if !ok {
		cl = &memoryClient{
			limiter: rate.NewLimiter(rate.Every(m.window/time.Duration(m.limit)), m.limit),
		}
		m.clients[key] = cl
	}
	cl.lastSeen = now
	m.mu.Unlock()

	r := cl.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return rateLimitResult{allowed: false, remaining: 0, resetAt: now.Add(delay)}
	}

	remaining := int(cl.limiter.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	return rateLimitResult{allowed: true, remaining: remaining, resetAt: now.Add(m.window)}
}

func (m *memoryLimiter) sweepLocked(now time.Time, idle time.Duration) {
	for key, cl := range m.clients {
		if now.Sub(cl.lastSeen) > idle {
			delete(m.clients, key)
		}
	}
}

func (m *memoryLimiter) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.clients)
}

// ContactSubmitRateLimitConfig throttles contact submissions per client IP
func ContactSubmitRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:contact:",
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// ContactEditRateLimitConfig budgets form edits separately, since clients
// may send one per keystroke
func ContactEditRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:edit:",
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// GlobalRateLimitConfig is the general per-IP budget for the whole API.
// Form edits and event streams have their own budget or none.
func GlobalRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:ip:",
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
		Skip: isContactFormStreamOrEdit,
	}
}

func isContactFormStreamOrEdit(c *gin.Context) bool {
	switch c.FullPath() {
	case "/v1/contact/forms/:id":
		return c.Request.Method == http.MethodPatch
	case "/v1/contact/forms/:id/events":
		return true
	}
	return false
}

// RateLimitMiddleware creates a rate limiting middleware with the given config.
// Uses Redis when available, falls back to in-memory when not.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	if config.Limit <= 0 {
		config.Limit = 1
	}
	if config.Window <= 0 {
		config.Window = time.Minute
	}
	if config.KeyFunc == nil {
		config.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	if config.RedisClient == nil {
		config.RedisClient = redis.Client
	}
	fallback := newMemoryLimiter(config.Limit, config.Window)

	return func(c *gin.Context) {
		if config.Skip != nil && config.Skip(c) {
			c.Next()
			return
		}

		fullKey := config.KeyPrefix + config.KeyFunc(c)
		now := time.Now()

		var result rateLimitResult
		if client := config.RedisClient(); client != nil {
			var err error
			result, err = checkRateLimitRedis(c.Request.Context(), client, fullKey, config)
			if err != nil {
				logger.Log.Warn("Rate limit backend error", "key_prefix", config.KeyPrefix, "error", err)
				if config.FailClosed {
					response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", nil)
					c.Abort()
					return
				}
				result = fallback.check(fullKey, now)
			}
		} else {
			result = fallback.check(fullKey, now)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.remaining))
		c.Header("X-RateLimit-Reset", result.resetAt.Format(time.RFC3339))

		if !result.allowed {
			retryAfter := int(time.Until(result.resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logger.Log.Warn("Rate limit exceeded",
				"request_id", c.GetString(string(domain.KeyRequestID)),
				"path", c.FullPath(),
				"key_prefix", config.KeyPrefix,
			)

			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// checkRateLimitRedis checks rate limit using Redis with atomic Lua script
func checkRateLimitRedis(ctx context.Context, client *goredis.Client, key string, config RateLimitConfig) (rateLimitResult, error) {
	ttlSeconds := int(config.Window.Seconds())
	if ttlSeconds < 1 {
		ttlSeconds = 1
	}

	raw, err := client.Eval(ctx, rateLimitLuaScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return rateLimitResult{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := raw.([]interface{})
	if !ok || len(arr) < 2 {
		return rateLimitResult{}, fmt.Errorf("unexpected redis result format")
	}

	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	remaining := config.Limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return rateLimitResult{
		allowed:   int(count) <= config.Limit,
		remaining: remaining,
		resetAt:   time.Now().Add(time.Duration(ttl) * time.Second),
	}, nil
}
