package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// allowScript implements prune-check-append atomically on the server so that
// concurrent requests for the same key cannot both slip under the threshold.
// KEYS[1] window zset; ARGV: cutoff, threshold, score, member, ttl-ms.
var allowScript = redis.NewScript(`
redis.call('ZREMRANGEBYSCORE', KEYS[1], '-inf', ARGV[1])
if redis.call('ZCARD', KEYS[1]) >= tonumber(ARGV[2]) then
  return 0
end
redis.call('ZADD', KEYS[1], ARGV[3], ARGV[4])
redis.call('PEXPIRE', KEYS[1], ARGV[5])
return 1
`)

// RedisLimiter is a sliding-window limiter backed by a Redis sorted set per
// key, for deployments where the window must be shared across processes.
// Scores are attempt timestamps in nanoseconds; keys expire one full window
// after their last admitted attempt.
type RedisLimiter struct {
	client    *redis.Client
	window    time.Duration
	threshold int
	seq       atomic.Uint64
}

func NewRedisLimiter(client *redis.Client, window time.Duration, threshold int) *RedisLimiter {
	return &RedisLimiter{client: client, window: window, threshold: threshold}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	now := time.Now().UnixNano()
	cutoff := now - l.window.Nanoseconds()

	res, err := allowScript.Run(ctx, l.client, []string{l.redisKey(key)},
		cutoff, l.threshold, now, l.member(now), l.window.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("rate limit script: %w", err)
	}
	return res == 1, nil
}

// member builds a unique ZSET member for one attempt. The sequence suffix
// keeps two attempts landing in the same nanosecond from collapsing into a
// single member, which would undercount the window.
func (l *RedisLimiter) member(now int64) string {
	return strconv.FormatInt(now, 10) + ":" + strconv.FormatUint(l.seq.Add(1), 10)
}

func (l *RedisLimiter) redisKey(key string) string {
	return "ratelimit:" + key
}
