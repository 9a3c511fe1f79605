package service

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter throttles failed login attempts per email using a redis
// counter with a sliding expiry. A nil *LoginLimiter is valid and performs
// no throttling, which keeps redis optional in deployments that do not
// need it.
type LoginLimiter struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// LoginLimiterOptions configures a LoginLimiter.
type LoginLimiterOptions struct {
	Client      *redis.Client
	MaxAttempts int
	Window      time.Duration
}

// NewLoginLimiter creates a LoginLimiter. Returns nil when no client is
// configured so callers can treat the limiter as absent.
func NewLoginLimiter(opts LoginLimiterOptions) *LoginLimiter {
	if opts.Client == nil {
		return nil
	}
	return &LoginLimiter{
		client:      opts.Client,
		maxAttempts: opts.MaxAttempts,
		window:      opts.Window,
	}
}

func (l *LoginLimiter) key(email string) string {
	return "login_attempts:" + strings.ToLower(email)
}

// Blocked reports whether the email has exhausted its failed attempts.
// Redis errors fail open so an unavailable redis never locks everyone out.
func (l *LoginLimiter) Blocked(ctx context.Context, email string) bool {
	if l == nil {
		return false
	}
	count, err := l.client.Get(ctx, l.key(email)).Int()
	if err != nil {
		return false
	}
	return count >= l.maxAttempts
}

// RecordFailure increments the failed attempt counter and resets its expiry.
func (l *LoginLimiter) RecordFailure(ctx context.Context, email string) {
	if l == nil {
		return
	}
	key := l.key(email)
	if err := l.client.Incr(ctx, key).Err(); err != nil {
		return
	}
	l.client.Expire(ctx, key, l.window)
}

// Reset clears the failed attempt counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, email string) {
	if l == nil {
		return
	}
	l.client.Del(ctx, l.key(email))
}
