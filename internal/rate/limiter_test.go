package rate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestLimiter(t *testing.T, cfg Config) (*Limiter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return New(client, cfg), mr
}

func TestCheckLoginAllowsWithinBudget(t *testing.T) {
	limiter, _ := newTestLimiter(t, Config{
		MaxLoginAttempts:      3,
		LoginCooldownDuration: time.Minute,
	})
	ctx := context.Background()

	if err := limiter.CheckLogin(ctx, "a@b.com", ""); err != nil {
		t.Fatalf("fresh email must be allowed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := limiter.IncrementLogin(ctx, "a@b.com", ""); err != nil {
			t.Fatalf("attempt %d must not trip the limit: %v", i+1, err)
		}
	}
	if err := limiter.CheckLogin(ctx, "a@b.com", ""); err != nil {
		t.Fatalf("budget not yet exhausted: %v", err)
	}
}

func TestCheckLoginDeniesAtBudget(t *testing.T) {
	limiter, _ := newTestLimiter(t, Config{
		MaxLoginAttempts:      3,
		LoginCooldownDuration: time.Minute,
	})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_ = limiter.IncrementLogin(ctx, "a@b.com", "")
	}
	if err := limiter.CheckLogin(ctx, "a@b.com", ""); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestIPThrottleIndependentOfEmail(t *testing.T) {
	limiter, _ := newTestLimiter(t, Config{
		EnableIPThrottle:      true,
		MaxLoginAttempts:      2,
		LoginCooldownDuration: time.Minute,
	})
	ctx := context.Background()

	// Two different emails from the same address share the IP counter.
	_ = limiter.IncrementLogin(ctx, "a@b.com", "203.0.113.9")
	_ = limiter.IncrementLogin(ctx, "c@d.com", "203.0.113.9")

	if err := limiter.CheckLogin(ctx, "e@f.com", "203.0.113.9"); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected IP throttle, got %v", err)
	}
	if err := limiter.CheckLogin(ctx, "e@f.com", "198.51.100.1"); err != nil {
		t.Fatalf("different IP must be unaffected: %v", err)
	}
}

func TestResetLoginClearsCounters(t *testing.T) {
	limiter, _ := newTestLimiter(t, Config{
		MaxLoginAttempts:      1,
		LoginCooldownDuration: time.Minute,
	})
	ctx := context.Background()

	_ = limiter.IncrementLogin(ctx, "a@b.com", "")
	if err := limiter.CheckLogin(ctx, "a@b.com", ""); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited before reset, got %v", err)
	}

	if err := limiter.ResetLogin(ctx, "a@b.com", ""); err != nil {
		t.Fatalf("ResetLogin: %v", err)
	}
	if err := limiter.CheckLogin(ctx, "a@b.com", ""); err != nil {
		t.Fatalf("counter must be cleared after reset: %v", err)
	}
}

func TestCooldownExpiresCounters(t *testing.T) {
	limiter, mr := newTestLimiter(t, Config{
		MaxLoginAttempts:      1,
		LoginCooldownDuration: time.Minute,
	})
	ctx := context.Background()

	_ = limiter.IncrementLogin(ctx, "a@b.com", "")
	if err := limiter.CheckLogin(ctx, "a@b.com", ""); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited before cooldown, got %v", err)
	}

	mr.FastForward(2 * time.Minute)
	if err := limiter.CheckLogin(ctx, "a@b.com", ""); err != nil {
		t.Fatalf("cooldown must clear the counter: %v", err)
	}
}

func TestRedisUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	limiter := New(client, Config{MaxLoginAttempts: 3, LoginCooldownDuration: time.Minute})
	mr.Close()

	ctx := context.Background()
	if err := limiter.CheckLogin(ctx, "a@b.com", ""); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("expected ErrRedisUnavailable, got %v", err)
	}
	if err := limiter.IncrementLogin(ctx, "a@b.com", ""); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("expected ErrRedisUnavailable, got %v", err)
	}
}
