package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"job-tracker-backend/internal/delivery/http/response"
	"job-tracker-backend/internal/domain"
	"job-tracker-backend/pkg/audit"
	"job-tracker-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

type RateLimitConfig struct {
	// Requests per window
	Limit  int
	Window time.Duration
	// KeyFunc picks the bucket; client IP by default
	KeyFunc   func(*gin.Context) string
	KeyPrefix string
	// FailClosed rejects requests when Redis errors instead of falling back
	FailClosed bool
}

// Atomic increment with TTL on first hit. Returns {count, ttl}.
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

type rateLimitEntry struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

// memoryCounter is the per-process fallback when Redis is absent or failing.
type memoryCounter struct {
	entries sync.Map
}

func (m *memoryCounter) hit(key string, window time.Duration, now time.Time) (int, time.Time) {
	v, _ := m.entries.LoadOrStore(key, &rateLimitEntry{resetAt: now.Add(window)})
	entry := v.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if now.After(entry.resetAt) {
		entry.count = 0
		entry.resetAt = now.Add(window)
	}
	entry.count++
	return entry.count, entry.resetAt
}

func (m *memoryCounter) sweep(now time.Time) {
	m.entries.Range(func(key, value interface{}) bool {
		entry := value.(*rateLimitEntry)
		entry.mu.Lock()
		if now.After(entry.resetAt) {
			m.entries.Delete(key)
		}
		entry.mu.Unlock()
		return true
	})
}

func GlobalRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:ip:",
		KeyFunc:   func(c *gin.Context) string { return c.ClientIP() },
	}
}

// AuthRateLimitConfig guards the sign-in endpoints and fails closed.
func AuthRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:auth:",
		FailClosed: true,
		KeyFunc:    func(c *gin.Context) string { return c.ClientIP() },
	}
}

// UploadRateLimitConfig caps uploads per identity, falling back to the IP.
func UploadRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:upload:",
		KeyFunc: func(c *gin.Context) string {
			if id := CurrentIdentity(c); id.Kind != domain.IdentityUnresolved {
				return audit.HashValue(id.Subject())
			}
			return c.ClientIP()
		},
	}
}

// RateLimitMiddleware counts in Redis when it is initialised and in process
// memory otherwise.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	counter := &memoryCounter{}
	var lastSweep time.Time
	var sweepMu sync.Mutex

	return func(c *gin.Context) {
		fullKey := config.KeyPrefix + config.KeyFunc(c)
		now := time.Now()

		var (
			count   int
			resetAt time.Time
			err     error
		)
		if client := redis.Client(); client != nil {
			count, resetAt, err = checkRateLimitRedis(c.Request.Context(), client, fullKey, config)
			if err != nil {
				if config.FailClosed {
					logRateLimit(c, map[string]interface{}{"error_type": "redis_error", "error": err.Error()})
					response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", nil)
					c.Abort()
					return
				}
				count, resetAt = counter.hit(fullKey, config.Window, now)
			}
		} else {
			count, resetAt = counter.hit(fullKey, config.Window, now)
		}

		sweepMu.Lock()
		if now.Sub(lastSweep) > 5*time.Minute {
			lastSweep = now
			go counter.sweep(now)
		}
		sweepMu.Unlock()

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if count > config.Limit {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logRateLimit(c, map[string]interface{}{"path": c.FullPath()})
			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(config.Limit-count))
		c.Next()
	}
}

func checkRateLimitRedis(ctx context.Context, client *goredis.Client, key string, config RateLimitConfig) (int, time.Time, error) {
	ttlSeconds := int(config.Window.Seconds())

	result, err := client.Eval(ctx, rateLimitLuaScript, []string{key}, ttlSeconds, config.Limit).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}
	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), time.Now().Add(time.Duration(ttl) * time.Second), nil
}

func logRateLimit(c *gin.Context, details map[string]interface{}) {
	audit.Default().Log(c.Request.Context(), audit.Event{
		Event:        audit.EventRateLimitTriggered,
		SubjectType:  "ip",
		SubjectValue: audit.HashValue(c.ClientIP()),
		IP:           c.ClientIP(),
		UserAgent:    c.GetHeader("User-Agent"),
		RequestID:    c.GetString(string(domain.KeyRequestID)),
		Details:      details,
	})
}
