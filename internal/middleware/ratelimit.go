package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Limiter throttles request volume per key within a rolling window. The
// core services assume this runs upstream of them and implement no
// backpressure of their own.
type Limiter interface {
	// Allow consumes one request for key and reports whether it was within
	// the limit, how many requests remain, and when the window resets.
	Allow(ctx context.Context, key string) (allowed bool, remaining int, resetAt time.Time, err error)
	Limit() int
}

type memoryWindow struct {
	windowStart time.Time
	hits        int
}

// MemoryLimiter is a fixed-window limiter backed by an in-process map.
// Suitable for a single instance; use RedisLimiter when replicas share
// the budget.
type MemoryLimiter struct {
	limit   int
	window  time.Duration
	mu      sync.Mutex
	clients map[string]*memoryWindow
}

func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	if limit <= 0 {
		limit = 120
	}
	if window <= 0 {
		window = time.Minute
	}
	return &MemoryLimiter{
		limit:   limit,
		window:  window,
		clients: make(map[string]*memoryWindow),
	}
}

func (l *MemoryLimiter) Limit() int { return l.limit }

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, int, time.Time, error) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.clients[key]
	if !ok || now.Sub(w.windowStart) >= l.window {
		w = &memoryWindow{windowStart: now}
		l.clients[key] = w
		l.sweepLocked(now)
	}

	resetAt := w.windowStart.Add(l.window)
	if w.hits >= l.limit {
		return false, 0, resetAt, nil
	}

	w.hits++
	return true, l.limit - w.hits, resetAt, nil
}

// sweepLocked drops windows that expired long ago so the map does not grow
// with one entry per client forever. Called with the mutex held.
func (l *MemoryLimiter) sweepLocked(now time.Time) {
	for key, w := range l.clients {
		if now.Sub(w.windowStart) >= 2*l.window {
			delete(l.clients, key)
		}
	}
}

// RateLimit throttles per authenticated user, falling back to the client IP
// for anonymous requests, and attaches the X-RateLimit-* headers.
func RateLimit(limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rateLimitKey(c)

		allowed, remaining, resetAt, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			// A broken limiter backend must not take the API down.
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.Limit()))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if !allowed {
			c.Header("Retry-After", strconv.FormatInt(int64(time.Until(resetAt).Seconds())+1, 10))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "Too Many Requests",
				"code":    "RATE_LIMITED",
				"success": false,
			})
			return
		}

		c.Next()
	}
}

func rateLimitKey(c *gin.Context) string {
	if v, exists := c.Get(UserIDKey); exists {
		if userID, ok := v.(uuid.UUID); ok {
			return "user:" + userID.String()
		}
	}
	return "ip:" + clientIP(c.Request)
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.IndexByte(xff, ','); idx >= 0 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndexByte(ip, ':'); idx >= 0 {
		return ip[:idx]
	}
	return ip
}
