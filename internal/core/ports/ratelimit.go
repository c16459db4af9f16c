package ports

import "context"

// RateLimiter guards sensitive operations with a sliding window per key.
// Allow reports whether the attempt may proceed; a denied attempt consumes
// nothing from the window.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
