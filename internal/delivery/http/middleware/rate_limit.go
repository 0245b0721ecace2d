package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"celebrai-backend/internal/delivery/http/response"
	"celebrai-backend/pkg/apperror"
	"celebrai-backend/pkg/logger"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
	// KeyPrefix namespaces counters in Redis, e.g. "rl:notify:"
	KeyPrefix string
	// KeyFunc extracts the bucket key; defaults to the client IP
	KeyFunc func(*gin.Context) string
	// FailClosed rejects with 503 when Redis errors instead of falling back
	FailClosed bool
	// Reject writes the 429/503 body; defaults to the standard envelope
	Reject func(c *gin.Context, status int, message string)
}

// Atomic increment with TTL on first hit. Returns {count, ttl}.
var rateLimitScript = goredis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`)

type memoryEntry struct {
	count   int
	resetAt time.Time
}

// RateLimiter counts requests in Redis when a client is given and in process
// memory otherwise or when Redis fails.
type RateLimiter struct {
	redis *goredis.Client

	mu     sync.Mutex
	memory map[string]*memoryEntry
	now    func() time.Time
}

func NewRateLimiter(client *goredis.Client) *RateLimiter {
	return &RateLimiter{
		redis:  client,
		memory: make(map[string]*memoryEntry),
		now:    time.Now,
	}
}

// Middleware enforces cfg on every request through it.
func (rl *RateLimiter) Middleware(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	if cfg.Reject == nil {
		cfg.Reject = func(c *gin.Context, status int, message string) {
			response.Error(c, status, message, nil)
		}
	}

	return func(c *gin.Context) {
		key := cfg.KeyPrefix + cfg.KeyFunc(c)

		count, resetAt, err := rl.hit(c.Request.Context(), key, cfg)
		if err != nil {
			logger.Log.Warn("Rate limit store failed", "key", key, "error", err)
			if cfg.FailClosed {
				appErr := apperror.Unavailable("Service temporarily unavailable. Please try again.", err)
				cfg.Reject(c, appErr.Code, appErr.Message)
				c.Abort()
				return
			}
			count, resetAt = rl.hitMemory(key, cfg.Window)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if count > cfg.Limit {
			retryAfter := int(resetAt.Sub(rl.now()).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logger.Log.Warn("Rate limit exceeded", "ip", c.ClientIP(), "path", c.FullPath(), "request_id", c.GetString(RequestIDKey))
			cfg.Reject(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(0, cfg.Limit-count)))
		c.Next()
	}
}

func (rl *RateLimiter) hit(ctx context.Context, key string, cfg RateLimitConfig) (int, time.Time, error) {
	if rl.redis == nil {
		count, resetAt := rl.hitMemory(key, cfg.Window)
		return count, resetAt, nil
	}

	res, err := rateLimitScript.Run(ctx, rl.redis, []string{key}, int(cfg.Window.Seconds())).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}
	if len(res) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result %v", res)
	}
	return int(res[0]), rl.now().Add(time.Duration(res[1]) * time.Second), nil
}

func (rl *RateLimiter) hitMemory(key string, window time.Duration) (int, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	entry, ok := rl.memory[key]
	if !ok || now.After(entry.resetAt) {
		entry = &memoryEntry{resetAt: now.Add(window)}
		rl.memory[key] = entry
	}
	entry.count++

	// opportunistic sweep keeps the map bounded without a goroutine
	if len(rl.memory) > 10000 {
		for k, e := range rl.memory {
			if now.After(e.resetAt) {
				delete(rl.memory, k)
			}
		}
	}
	return entry.count, entry.resetAt
}
