// Package ratelimit caps contact submissions per client using Redis.
package ratelimit

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const allowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`

const evalTimeout = 500 * time.Millisecond

// Limiter decides whether a client may submit another message.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

type evaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// RedisLimiter is a fixed-window counter. Redis errors fail open so an
// outage never blocks the contact form.
type RedisLimiter struct {
	client evaler
	window time.Duration
	max    int
	prefix string
}

// NewRedisLimiter allows max submissions per key per window.
func NewRedisLimiter(client *redis.Client, window time.Duration, max int) *RedisLimiter {
	if client == nil {
		return nil
	}
	return newLimiter(client, window, max)
}

func newLimiter(client evaler, window time.Duration, max int) *RedisLimiter {
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &RedisLimiter{
		client: client,
		window: window,
		max:    max,
		prefix: "contact:rl:",
	}
}

// Allow increments the counter for key and reports whether it is within
// the limit.
func (l *RedisLimiter) Allow(ctx context.Context, key string) bool {
	if l == nil || l.client == nil {
		return true
	}
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return true
	}

	ctx, cancel := context.WithTimeout(ctx, evalTimeout)
	defer cancel()

	seconds := int(l.window.Seconds())
	if seconds <= 0 {
		seconds = 60
	}
	count, err := l.client.Eval(ctx, allowScript, []string{l.prefix + key}, seconds).Int()
	if err != nil {
		return true
	}
	return count <= l.max
}
