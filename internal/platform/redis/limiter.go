package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const loginKeyPrefix = "cookboxd:login:"

// LoginLimiter counts login attempts per key (normally the client IP) in a
// fixed window.
type LoginLimiter struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewLoginLimiter creates a limiter allowing maxAttempts per window.
func NewLoginLimiter(client *redis.Client, maxAttempts int, window time.Duration) (*LoginLimiter, error) {
	switch {
	case client == nil:
		return nil, errors.New("redis client cannot be nil")
	case maxAttempts <= 0:
		return nil, errors.New("maxAttempts must be positive")
	case window <= 0:
		return nil, errors.New("window must be positive")
	}
	return &LoginLimiter{client: client, maxAttempts: maxAttempts, window: window}, nil
}

// Allow records an attempt for key and reports whether it is within the
// limit. retryAfter is the remaining window when the attempt is refused.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error) {
	k := loginKeyPrefix + key

	// INCR and the first EXPIRE travel together; NX keeps later attempts
	// from extending the window.
	pipe := l.client.Pipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, l.window)
	ttl := pipe.PTTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("login limiter: %w", err)
	}

	if incr.Val() <= int64(l.maxAttempts) {
		return true, 0, nil
	}
	retryAfter = ttl.Val()
	if retryAfter <= 0 {
		retryAfter = l.window
	}
	return false, retryAfter, nil
}

// Reset clears the counter for key, called after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, loginKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("login limiter reset: %w", err)
	}
	return nil
}
