package ratelimit

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Shared fixed-window counter. Keys are identity+route; every process in
// the deployment sees the same counts.
type Limiter interface {
	Allow(ctx context.Context, key string, window time.Duration, limit int64) (bool, error)
}

type RedisLimiter struct {
	client *redis.Client
	logger *slog.Logger
}

func NewRedisLimiter(addr string, logger *slog.Logger) *RedisLimiter {
	return &RedisLimiter{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		logger: logger,
	}
}

// Allow increments the window counter and reports whether the caller is
// still under the limit. Redis being down fails open: a broken counter
// store must not lock every customer out.
func (l *RedisLimiter) Allow(ctx context.Context, key string, window time.Duration, limit int64) (bool, error) {
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Warn("rate limit counter unavailable", "key", key, "error", err.Error())
		return true, err
	}

	if count == 1 {
		if err := l.client.Expire(ctx, key, window).Err(); err != nil {
			l.logger.Warn("rate limit expire failed", "key", key, "error", err.Error())
		}
	}

	return count <= limit, nil
}
