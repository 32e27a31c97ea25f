package redis

import (
	"context"
	"fmt"
	"time"
)

const rateLimitPrefix = "ratelimit:"

// Decision is the outcome of one rate limit check
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RateLimiter is a fixed one-minute window counter per key
type RateLimiter struct {
	client *Client
	scope  string
	limit  int
	now    func() time.Time
}

// NewRateLimiter creates a limiter admitting requestsPerMinute+burst hits per
// window. scope namespaces the counters so several routes can share a Redis.
func NewRateLimiter(client *Client, scope string, requestsPerMinute, burst int) *RateLimiter {
	return &RateLimiter{
		client: client,
		scope:  scope,
		limit:  requestsPerMinute + burst,
		now:    time.Now,
	}
}

// Allow counts one hit for key in the current window
func (r *RateLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	windowStart := r.now().Truncate(time.Minute)
	fullKey := fmt.Sprintf("%s%s:%s:%d", rateLimitPrefix, r.scope, key, windowStart.Unix())

	pipe := r.client.rdb.TxPipeline()
	incr := pipe.Incr(ctx, fullKey)
	pipe.Expire(ctx, fullKey, time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, fmt.Errorf("failed to execute rate limit check: %w", err)
	}

	count := int(incr.Val())
	return Decision{
		Allowed:   count <= r.limit,
		Limit:     r.limit,
		Remaining: max(r.limit-count, 0),
		ResetAt:   windowStart.Add(time.Minute),
	}, nil
}
