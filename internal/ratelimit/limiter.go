// Package ratelimit implements a fixed-window request limiter on Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// Counts the hit and returns {count, ttl_ms}. The expiry is only set on the
// first hit, so the window does not slide.
var fixedWindow = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
return {count, ttl}
`)

type RedisLimiter struct {
	client    *redis.Client
	max       int
	window    time.Duration
	keyPrefix string
}

func NewRedisLimiter(client *redis.Client, max int, window time.Duration, keyPrefix string) *RedisLimiter {
	return &RedisLimiter{
		client:    client,
		max:       max,
		window:    window,
		keyPrefix: keyPrefix,
	}
}

var _ Limiter = (*RedisLimiter)(nil)

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	res, err := fixedWindow.Run(ctx, l.client, []string{l.keyPrefix + key}, l.window.Milliseconds()).Result()
	if err != nil {
		return Result{}, fmt.Errorf("rate limit script: %w", err)
	}

	vals, ok := res.([]interface{})
	if !ok || len(vals) != 2 {
		return Result{}, fmt.Errorf("rate limit script: unexpected reply %v", res)
	}
	count, _ := vals[0].(int64)
	ttl, _ := vals[1].(int64)

	if int(count) > l.max {
		return Result{Allowed: false, RetryAfter: time.Duration(ttl) * time.Millisecond}, nil
	}
	return Result{Allowed: true, Remaining: l.max - int(count)}, nil
}
