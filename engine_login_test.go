package cookieAuth

import (
	"context"
	"errors"
	"testing"
)

func TestLoginSuccess(t *testing.T) {
	up := newMockUserProvider()
	engine, _ := newTestEngine(t, testConfig(), up)
	seedUser(t, engine, up, "user-1", "alice@example.com", "correct-horse", RoleUser)

	res, err := engine.Login(context.Background(), "alice@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if res.AccessToken == "" || res.RefreshToken == "" {
		t.Fatal("expected a full token pair")
	}
	if res.Record == nil || res.Record.UserID != "user-1" {
		t.Fatalf("expected session record for user-1, got %+v", res.Record)
	}
	if res.Record.Role != "user" {
		t.Fatalf("expected role user, got %s", res.Record.Role)
	}

	// The session record must be retrievable by subject id.
	rec, err := engine.sessionStore.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("session Get failed: %v", err)
	}
	if rec.Email != "alice@example.com" {
		t.Fatalf("expected cached email, got %s", rec.Email)
	}
}

func TestLoginEmailCaseInsensitive(t *testing.T) {
	up := newMockUserProvider()
	engine, _ := newTestEngine(t, testConfig(), up)
	seedUser(t, engine, up, "user-1", "alice@example.com", "correct-horse", RoleUser)

	if _, err := engine.Login(context.Background(), "  Alice@Example.COM ", "correct-horse"); err != nil {
		t.Fatalf("Login with unnormalized email failed: %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	up := newMockUserProvider()
	engine, _ := newTestEngine(t, testConfig(), up)
	seedUser(t, engine, up, "user-1", "alice@example.com", "correct-horse", RoleUser)

	_, err := engine.Login(context.Background(), "alice@example.com", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmailIndistinguishable(t *testing.T) {
	up := newMockUserProvider()
	engine, _ := newTestEngine(t, testConfig(), up)

	_, err := engine.Login(context.Background(), "ghost@example.com", "whatever")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestLoginRateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.Security.MaxLoginAttempts = 3
	up := newMockUserProvider()
	engine, _ := newTestEngine(t, cfg, up)
	seedUser(t, engine, up, "user-1", "alice@example.com", "correct-horse", RoleUser)

	for i := 0; i < 3; i++ {
		if _, err := engine.Login(context.Background(), "alice@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i, err)
		}
	}

	// Budget exhausted: even the correct password is refused now.
	_, err := engine.Login(context.Background(), "alice@example.com", "correct-horse")
	if !errors.Is(err, ErrLoginRateLimited) {
		t.Fatalf("expected ErrLoginRateLimited, got %v", err)
	}
}

// A limiter outage is a dependency fault, never reported to the client as
// their own rate limit.
func TestLoginLimiterOutageIsDependencyFault(t *testing.T) {
	up := newMockUserProvider()
	engine, mr := newTestEngine(t, testConfig(), up)
	seedUser(t, engine, up, "user-1", "alice@example.com", "correct-horse", RoleUser)

	mr.Close()

	_, err := engine.Login(context.Background(), "alice@example.com", "correct-horse")
	if errors.Is(err, ErrLoginRateLimited) {
		t.Fatalf("outage must not masquerade as rate limiting: %v", err)
	}
	if !errors.Is(err, ErrCacheUnavailable) {
		t.Fatalf("expected ErrCacheUnavailable, got %v", err)
	}
	if apiErr := Normalize(err); apiErr.Status != 500 || apiErr.Message != "Internal server error" {
		t.Fatalf("unexpected normalization: %+v", apiErr)
	}
}

func TestLoginUpgradesWeakHash(t *testing.T) {
	cfg := testConfig()
	cfg.Password.Memory = 64 * 1024
	up := newMockUserProvider()
	engine, _ := newTestEngine(t, cfg, up)

	// Seed with parameters weaker than the engine's configuration.
	weakEngine, _ := newTestEngine(t, testConfig(), newMockUserProvider())
	seedUser(t, weakEngine, up, "user-1", "alice@example.com", "correct-horse", RoleUser)

	if _, err := engine.Login(context.Background(), "alice@example.com", "correct-horse"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	up.mu.RLock()
	defer up.mu.RUnlock()
	if _, ok := up.updatedHashes["user-1"]; !ok {
		t.Fatal("expected password hash upgrade to be persisted")
	}
}

func TestRegisterSuccess(t *testing.T) {
	up := newMockUserProvider()
	engine, _ := newTestEngine(t, testConfig(), up)

	user, err := engine.Register(context.Background(), RegisterRequest{
		Name:     "Bob Example",
		Email:    "Bob@Example.com",
		Password: "secret-pass",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.UserID == "" {
		t.Fatal("expected generated user id")
	}
	if user.Email != "bob@example.com" {
		t.Fatalf("expected lowercased email, got %s", user.Email)
	}
	if user.Role != RoleUser {
		t.Fatalf("expected default role user, got %s", user.Role)
	}

	stored := up.byID[user.UserID]
	if stored.PasswordHash == "" || stored.PasswordHash == "secret-pass" {
		t.Fatal("expected stored password to be hashed")
	}

	// Registered credentials must immediately work for login.
	if _, err := engine.Login(context.Background(), "bob@example.com", "secret-pass"); err != nil {
		t.Fatalf("Login after Register failed: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	up := newMockUserProvider()
	engine, _ := newTestEngine(t, testConfig(), up)
	seedUser(t, engine, up, "user-1", "alice@example.com", "correct-horse", RoleUser)

	_, err := engine.Register(context.Background(), RegisterRequest{
		Name:     "Alice Again",
		Email:    "alice@example.com",
		Password: "another-pass",
	})
	if !errors.Is(err, ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	up := newMockUserProvider()
	engine, _ := newTestEngine(t, testConfig(), up)

	cases := []struct {
		name string
		req  RegisterRequest
	}{
		{"short name", RegisterRequest{Name: "ab", Email: "a@b.co", Password: "secret-pass"}},
		{"bad email", RegisterRequest{Name: "Valid Name", Email: "not-an-email", Password: "secret-pass"}},
		{"short password", RegisterRequest{Name: "Valid Name", Email: "a@b.co", Password: "12345"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := engine.Register(context.Background(), tc.req)
			if !errors.Is(err, ErrAccountInvalid) {
				t.Fatalf("expected ErrAccountInvalid, got %v", err)
			}
		})
	}
}
