package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter is a process-local sliding-window limiter. Each key holds the
// timestamps of its recent admitted attempts; entries older than the window
// are pruned on every check. The map is shared across requests, so the whole
// prune-check-append sequence runs under one mutex, so two concurrent attempts
// on the same key can never both be admitted past the threshold.
//
// State is lost on restart. Use RedisLimiter when the window must be shared
// across processes.
type MemoryLimiter struct {
	mu        sync.Mutex
	window    time.Duration
	threshold int
	attempts  map[string][]time.Time
	now       func() time.Time
}

func NewMemoryLimiter(window time.Duration, threshold int) *MemoryLimiter {
	return &MemoryLimiter{
		window:    window,
		threshold: threshold,
		attempts:  make(map[string][]time.Time),
		now:       time.Now,
	}
}

// Allow prunes the key's window, denies when the remaining count has reached
// the threshold, and otherwise records the attempt. A denied attempt is not
// recorded, so it never extends the window.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	recent := l.attempts[key][:0]
	for _, ts := range l.attempts[key] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= l.threshold {
		l.attempts[key] = recent
		return false, nil
	}

	l.attempts[key] = append(recent, now)
	return true, nil
}
