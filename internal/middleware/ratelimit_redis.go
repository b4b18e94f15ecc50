package middleware

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window limiter whose counters live in redis, so
// the budget is shared across replicas.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	if limit <= 0 {
		limit = 120
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RedisLimiter{client: client, limit: limit, window: window}
}

func (l *RedisLimiter) Limit() int { return l.limit }

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, int, time.Time, error) {
	redisKey := "ratelimit:" + key

	hits, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, 0, time.Time{}, err
	}

	// First hit opens the window; the key expires with it.
	if hits == 1 {
		if err := l.client.PExpire(ctx, redisKey, l.window).Err(); err != nil {
			return false, 0, time.Time{}, err
		}
	}

	ttl, err := l.client.PTTL(ctx, redisKey).Result()
	if err != nil {
		return false, 0, time.Time{}, err
	}
	if ttl < 0 {
		ttl = l.window
	}
	resetAt := time.Now().Add(ttl)

	remaining := l.limit - int(hits)
	if remaining < 0 {
		remaining = 0
	}

	return hits <= int64(l.limit), remaining, resetAt, nil
}
