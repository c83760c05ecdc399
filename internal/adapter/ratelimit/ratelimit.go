package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const window = time.Minute
const maxAttempts = 10

// Limiter is a fixed-window counter over Redis. A nil *Limiter is valid
// and allows every request, so callers can skip wiring Redis entirely.
type Limiter struct {
	client *redis.Client
}

func New(url string) (*Limiter, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	return &Limiter{client: redis.NewClient(opts)}, nil
}

// Allow reports whether key may make another attempt in the current
// window. Redis errors fail open.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	if l == nil {
		return true, nil
	}

	bucket := fmt.Sprintf("ratelimit:%s:%d", key, time.Now().Unix()/int64(window.Seconds()))

	n, err := l.client.Incr(ctx, bucket).Result()
	if err != nil {
		return true, err
	}
	if n == 1 {
		l.client.Expire(ctx, bucket, window)
	}

	return n <= maxAttempts, nil
}

func (l *Limiter) Close() error {
	if l == nil {
		return nil
	}
	return l.client.Close()
}
