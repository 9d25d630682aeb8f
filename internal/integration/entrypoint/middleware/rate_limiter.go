// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/itissulav/Kharcha/internal/application/adapter"
	domainerror "github.com/itissulav/Kharcha/internal/domain/error"
	"github.com/itissulav/Kharcha/internal/integration/entrypoint/dto"
)

const rateLimitKeyPrefix = "kharcha:ratelimit:"

// WindowCounter counts hits per key inside fixed windows.
// Hit returns the count including this hit and the time left in the window.
type WindowCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// RateLimitConfig describes one limited route group.
type RateLimitConfig struct {
	Scope  string
	Limit  int64
	Window time.Duration
	Code   string
}

// RateLimiter rejects clients that exceed Limit hits per Window.
type RateLimiter struct {
	counter WindowCounter
	cfg     RateLimitConfig
}

// NewRateLimiter creates a limiter on top of counter. An empty Code
// falls back to the generic rate-limited request code.
func NewRateLimiter(counter WindowCounter, cfg RateLimitConfig) *RateLimiter {
	if cfg.Code == "" {
		cfg.Code = string(domainerror.ErrCodeRateLimited)
	}
	return &RateLimiter{counter: counter, cfg: cfg}
}

// Middleware returns the gin handler enforcing the limit.
// Counter failures let the request through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		client := c.ClientIP()
		if client == "" {
			client = c.Request.RemoteAddr
		}

		count, remaining, err := rl.counter.Hit(c.Request.Context(), rl.cfg.Scope+":"+client, rl.cfg.Window)
		if err != nil {
			slog.WarnContext(c.Request.Context(), "Rate limit counter unavailable",
				"scope", rl.cfg.Scope,
				"error", err,
			)
			c.Next()
			return
		}

		if count > rl.cfg.Limit {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(remaining.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  rl.cfg.Code,
			})
			return
		}

		c.Next()
	}
}

type window struct {
	count int64
	ends  time.Time
}

// MemoryCounter is a process-local WindowCounter.
type MemoryCounter struct {
	mu      sync.Mutex
	clock   adapter.Clock
	windows map[string]window
}

// NewMemoryCounter creates a counter reading time from clock.
func NewMemoryCounter(clock adapter.Clock) *MemoryCounter {
	return &MemoryCounter{clock: clock, windows: make(map[string]window)}
}

// Hit opens a new window for key when none is active, pruning closed ones.
func (m *MemoryCounter) Hit(_ context.Context, key string, length time.Duration) (int64, time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	w, ok := m.windows[key]
	if !ok || !now.Before(w.ends) {
		m.prune(now)
		w = window{ends: now.Add(length)}
	}
	w.count++
	m.windows[key] = w

	return w.count, w.ends.Sub(now), nil
}

// Len reports how many windows are tracked.
func (m *MemoryCounter) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.windows)
}

func (m *MemoryCounter) prune(now time.Time) {
	for key, w := range m.windows {
		if !now.Before(w.ends) {
			delete(m.windows, key)
		}
	}
}

// RedisCounter shares windows between API instances via INCR and PEXPIRE.
type RedisCounter struct {
	client *redis.Client
}

// NewRedisCounter creates a counter backed by client.
func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

// Hit increments the key and starts its expiry on the first hit.
func (r *RedisCounter) Hit(ctx context.Context, key string, length time.Duration) (int64, time.Duration, error) {
	key = rateLimitKeyPrefix + key

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count %s: %w", key, err)
	}

	ttl, err := r.client.PTTL(ctx, key).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read window of %s: %w", key, err)
	}
	if count == 1 || ttl < 0 {
		if err := r.client.PExpire(ctx, key, length).Err(); err != nil {
			return 0, 0, fmt.Errorf("failed to open window for %s: %w", key, err)
		}
		ttl = length
	}

	return count, ttl, nil
}
