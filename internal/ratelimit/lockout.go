package ratelimit

import (
	"sync"
	"time"
)

// LoginGuard tracks consecutive failed admin-login attempts per IP and imposes
// a temporary lockout once the threshold is reached within the rolling window.
// It is independent of the per-route Limiter; both apply to admin login.
type LoginGuard struct {
	mu      sync.Mutex
	entries map[string]*attemptWindow
	window  time.Duration
	block   time.Duration
	max     int
	now     func() time.Time
}

type attemptWindow struct {
	attempts     int
	first        time.Time
	blockedUntil time.Time
}

// NewLoginGuard uses the admin-login defaults: 5 failures within 10 minutes
// lock the IP out for 5 minutes.
func NewLoginGuard() *LoginGuard {
	return &LoginGuard{
		entries: make(map[string]*attemptWindow),
		window:  10 * time.Minute,
		block:   5 * time.Minute,
		max:     5,
		now:     time.Now,
	}
}

// Check reports whether ip is currently locked out and, if so, for how long.
// An expired failure window is cleared as a side effect.
func (g *LoginGuard) Check(ip string) (blocked bool, retryAfter time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	e, ok := g.entries[ip]
	if !ok {
		return false, 0
	}

	if !e.blockedUntil.IsZero() && e.blockedUntil.After(now) {
		return true, e.blockedUntil.Sub(now)
	}

	if now.Sub(e.first) > g.window {
		g.entries[ip] = &attemptWindow{first: now}
	}
	return false, 0
}

// Fail records one failed attempt from ip.
func (g *LoginGuard) Fail(ip string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	e, ok := g.entries[ip]
	if !ok {
		g.entries[ip] = &attemptWindow{attempts: 1, first: now}
		return
	}

	if now.Sub(e.first) <= g.window {
		e.attempts++
	} else {
		e.attempts = 1
		e.first = now
	}

	if e.attempts >= g.max {
		e.blockedUntil = now.Add(g.block)
	}
}

// Reset clears the failure history for ip after a successful login.
func (g *LoginGuard) Reset(ip string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.entries, ip)
}
