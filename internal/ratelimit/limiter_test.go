package ratelimit

import (
	"context"
	"testing"
	"time"
)

func newTestStore(now *time.Time) *MemoryStore {
	s := &MemoryStore{
		windows: make(map[string]*fixedWindow),
		now:     func() time.Time { return *now },
		done:    make(chan struct{}),
	}
	// no sweep goroutine; the clock is frozen
	return s
}

func TestLimiterCeilingAndRollover(t *testing.T) {
	now := time.Now()
	limiter := NewLimiter(newTestStore(&now))
	ctx := context.Background()

	const path = "/api/auth/login" // ceiling 5

	for i := 0; i < 5; i++ {
		res, err := limiter.Check(ctx, "1.2.3.4", path)
		if err != nil {
			t.Fatalf("check: %v", err)
		}
		if !res.Allowed {
			t.Fatalf("request %d unexpectedly rejected", i+1)
		}
		if want := 5 - (i + 1); res.Remaining != want {
			t.Fatalf("request %d: remaining = %d, want %d", i+1, res.Remaining, want)
		}
	}

	res, err := limiter.Check(ctx, "1.2.3.4", path)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if res.Allowed {
		t.Fatal("6th request within the window must be rejected")
	}
	if res.RetryAfter() < 1 {
		t.Fatalf("retry-after must be positive, got %d", res.RetryAfter())
	}

	// A different IP is unaffected.
	res, _ = limiter.Check(ctx, "5.6.7.8", path)
	if !res.Allowed {
		t.Fatal("other IP must not share the counter")
	}

	// Window rollover admits again.
	now = now.Add(61 * time.Second)
	res, err = limiter.Check(ctx, "1.2.3.4", path)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !res.Allowed {
		t.Fatal("request after window rollover must be accepted")
	}
}

func TestLimitForLongestPrefix(t *testing.T) {
	cases := []struct {
		path string
		want int
	}{
		{"/api/auth/login", 5},
		{"/api/auth/login/extra", 5},
		{"/api/auth/register", 5},
		{"/api/auth/forgot-password", 3},
		{"/api/auth/reset-password", 5},
		{"/api/market/purchase", 10},
		{"/api/admin/products", 20},
		{"/api/admin/products/abc123", 20},
		{"/api/public/news", DefaultLimit},
		{"/anything", DefaultLimit},
	}
	for _, c := range cases {
		if got := LimitFor(c.path); got != c.want {
			t.Errorf("LimitFor(%q) = %d, want %d", c.path, got, c.want)
		}
	}
}

func TestMemoryStoreSweepEvictsExpired(t *testing.T) {
	now := time.Now()
	s := newTestStore(&now)

	if _, _, err := s.Incr(context.Background(), "k", time.Minute); err != nil {
		t.Fatalf("incr: %v", err)
	}

	now = now.Add(2 * time.Minute)
	s.mu.Lock()
	for key, w := range s.windows {
		if now.After(w.resetAt) {
			delete(s.windows, key)
		}
	}
	remaining := len(s.windows)
	s.mu.Unlock()

	if remaining != 0 {
		t.Fatalf("expected expired windows evicted, %d left", remaining)
	}
}

func TestLoginGuardLockout(t *testing.T) {
	now := time.Now()
	g := NewLoginGuard()
	g.now = func() time.Time { return now }

	const ip = "9.9.9.9"

	for i := 0; i < 4; i++ {
		g.Fail(ip)
		if blocked, _ := g.Check(ip); blocked {
			t.Fatalf("blocked after only %d failures", i+1)
		}
	}

	g.Fail(ip) // 5th failure within the window
	blocked, retry := g.Check(ip)
	if !blocked {
		t.Fatal("expected lockout after 5 failures within the window")
	}
	if retry <= 0 || retry > 5*time.Minute {
		t.Fatalf("unexpected retry-after %v", retry)
	}

	// Block expires after the block duration.
	now = now.Add(5*time.Minute + time.Second)
	if blocked, _ := g.Check(ip); blocked {
		t.Fatal("lockout must expire after the block duration")
	}
}

func TestLoginGuardWindowExpiry(t *testing.T) {
	now := time.Now()
	g := NewLoginGuard()
	g.now = func() time.Time { return now }

	const ip = "8.8.8.8"

	for i := 0; i < 4; i++ {
		g.Fail(ip)
	}

	// Failures age out of the 10 minute window.
	now = now.Add(11 * time.Minute)
	g.Fail(ip)
	if blocked, _ := g.Check(ip); blocked {
		t.Fatal("stale failures must not count toward the lockout")
	}
}

func TestLoginGuardReset(t *testing.T) {
	g := NewLoginGuard()
	const ip = "7.7.7.7"

	for i := 0; i < 5; i++ {
		g.Fail(ip)
	}
	g.Reset(ip)
	if blocked, _ := g.Check(ip); blocked {
		t.Fatal("reset must clear the lockout")
	}
}
