package cookieAuth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// Concurrent renewals for the same subject must never leave the cache
// without the session record: the replace is last-writer-wins and never
// deletes, so the worst case is redundant work, not a lost session.
func TestConcurrentRenewalKeepsSession(t *testing.T) {
	up := newMockUserProvider()
	engine, _ := newTestEngine(t, testConfig(), up)
	seedUser(t, engine, up, "user-1", "alice@example.com", "correct-horse", RoleUser)

	login, err := engine.Login(context.Background(), "alice@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := engine.Renew(context.Background(), login.RefreshToken); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Renew failed: %v", err)
	}

	if _, err := engine.sessionStore.Get(context.Background(), "user-1"); err != nil {
		t.Fatalf("session record lost after concurrent renewals: %v", err)
	}
}

func TestRenewDirect(t *testing.T) {
	up := newMockUserProvider()
	engine, _ := newTestEngine(t, testConfig(), up)
	seedUser(t, engine, up, "user-1", "alice@example.com", "correct-horse", RoleUser)

	login, err := engine.Login(context.Background(), "alice@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	res, err := engine.Renew(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("Renew failed: %v", err)
	}
	if !res.Renewed {
		t.Fatal("expected Renewed result")
	}
	if res.AccessToken == "" || res.RefreshToken == "" {
		t.Fatal("expected replacement token pair")
	}
	if res.Record == nil || res.Record.UserID != "user-1" {
		t.Fatalf("expected record for user-1, got %+v", res.Record)
	}
}

// Renewal slides the session lifetime: each renewal replaces the record with
// an expiry one full lifetime ahead and resets the key TTL, so a client that
// renews in time is never cut off at a deadline stamped at login.
func TestRenewSlidesSessionLifetime(t *testing.T) {
	up := newMockUserProvider()
	engine, mr := newTestEngine(t, testConfig(), up)
	seedUser(t, engine, up, "user-1", "alice@example.com", "correct-horse", RoleUser)

	login, err := engine.Login(context.Background(), "alice@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	before, err := engine.sessionStore.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Get before renewal failed: %v", err)
	}

	// Age the key so the TTL reset is observable, and let wall-clock time
	// pass so the second-granularity record expiry can advance.
	mr.FastForward(24 * time.Hour)
	time.Sleep(1100 * time.Millisecond)

	if _, err := engine.Renew(context.Background(), login.RefreshToken); err != nil {
		t.Fatalf("Renew failed: %v", err)
	}

	after, err := engine.sessionStore.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Get after renewal failed: %v", err)
	}
	if after.ExpiresAt <= before.ExpiresAt {
		t.Fatalf("record expiry must slide forward: before=%d after=%d", before.ExpiresAt, after.ExpiresAt)
	}

	lifetime := engine.config.sessionLifetime()
	if ttl := mr.TTL("ca:user-1"); ttl != lifetime {
		t.Fatalf("expected key TTL reset to %v, got %v", lifetime, ttl)
	}
}

// A renewal that races a logout must not recreate the deleted record.
func TestRenewAfterLogoutDoesNotResurrect(t *testing.T) {
	up := newMockUserProvider()
	engine, mr := newTestEngine(t, testConfig(), up)
	seedUser(t, engine, up, "user-1", "alice@example.com", "correct-horse", RoleUser)

	login, err := engine.Login(context.Background(), "alice@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if err := engine.Logout(context.Background(), login.AccessToken); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	if _, err := engine.Renew(context.Background(), login.RefreshToken); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if mr.Exists("ca:user-1") {
		t.Fatal("renewal must not recreate the ended session")
	}
}
