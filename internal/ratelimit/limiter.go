// Package ratelimit bounds request rates per (client IP, route) pair over a
// fixed 60-second window. Fixed-window counting is kept deliberately: a burst
// straddling a window boundary can admit up to twice the ceiling for a short
// span, which is accepted rather than silently upgraded to a sliding window.
package ratelimit

import (
	"context"
	"sort"
	"strings"
	"time"
)

const Window = time.Minute

// DefaultLimit applies to paths with no matching route prefix.
const DefaultLimit = 100

// routeLimits maps route prefixes to per-window ceilings. Selection is by
// longest matching prefix.
var routeLimits = map[string]int{
	"/api/auth/login":           5,
	"/api/auth/register":        5,
	"/api/auth/forgot-password": 3,
	"/api/auth/reset-password":  5,
	"/api/market/purchase":      10,
	"/api/admin/products":       20,
}

// Store tracks fixed-window counters. The memory store is per-process and does
// not survive restarts; the Redis store shares counters across instances.
type Store interface {
	// Incr increments the counter for key, starting a new window when none is
	// active, and returns the post-increment count and the window reset time.
	Incr(ctx context.Context, key string, window time.Duration) (count int, resetAt time.Time, err error)
}

// Result reports the outcome of a rate-limit check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter returns the whole seconds until the window resets, at least 1.
func (r Result) RetryAfter() int {
	secs := int(time.Until(r.ResetAt).Seconds()) + 1
	if secs < 1 {
		secs = 1
	}
	return secs
}

// Limiter applies per-route ceilings against a Store.
type Limiter struct {
	store Store
}

func NewLimiter(store Store) *Limiter {
	return &Limiter{store: store}
}

// Check records one request from ip against path's route ceiling.
func (l *Limiter) Check(ctx context.Context, ip, path string) (Result, error) {
	limit := LimitFor(path)

	count, resetAt, err := l.store.Incr(ctx, ip+":"+path, Window)
	if err != nil {
		return Result{}, err
	}

	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}, nil
}

// LimitFor selects the ceiling for path by longest-prefix match.
func LimitFor(path string) int {
	best := ""
	for prefix := range routeLimits {
		if strings.HasPrefix(path, prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best == "" {
		return DefaultLimit
	}
	return routeLimits[best]
}

// Routes returns the configured route prefixes, longest first. Exposed for
// introspection and tests.
func Routes() []string {
	out := make([]string, 0, len(routeLimits))
	for p := range routeLimits {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}
