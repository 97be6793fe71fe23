package ratelimit

import (
	"sync"
	"time"
)

// RateLimiter is a sliding-window limiter keyed by client identifier.
type RateLimiter struct {
	requests map[string][]time.Time
	limit    int
	window   time.Duration
	mu       sync.Mutex
}

// New creates a limiter allowing limit requests per window per key.
func New(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
	}
}

// Allow records a request for key and reports whether it is within the
// limit. Expired entries are pruned on each call.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-rl.window)

	var valid []time.Time
	for _, t := range rl.requests[key] {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}

	if len(valid) >= rl.limit {
		rl.requests[key] = valid
		return false
	}

	rl.requests[key] = append(valid, now)
	return true
}

// Remaining returns how many requests key has left in the current window.
func (rl *RateLimiter) Remaining(key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-rl.window)
	used := 0
	for _, t := range rl.requests[key] {
		if t.After(cutoff) {
			used++
		}
	}

	remaining := rl.limit - used
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}
