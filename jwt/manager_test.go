package jwt

import (
	"errors"
	"testing"
	"time"
)

func testManager(t *testing.T, accessTTL, refreshTTL time.Duration) *Manager {
	t.Helper()

	m, err := NewManager(Config{
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
		AccessSecret:  []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
	})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return m
}

func TestNewManagerValidation(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"zero access ttl", Config{RefreshTTL: time.Hour, AccessSecret: []byte("a"), RefreshSecret: []byte("b")}},
		{"zero refresh ttl", Config{AccessTTL: time.Minute, AccessSecret: []byte("a"), RefreshSecret: []byte("b")}},
		{"missing access secret", Config{AccessTTL: time.Minute, RefreshTTL: time.Hour, RefreshSecret: []byte("b")}},
		{"missing refresh secret", Config{AccessTTL: time.Minute, RefreshTTL: time.Hour, AccessSecret: []byte("a")}},
		{"identical secrets", Config{AccessTTL: time.Minute, RefreshTTL: time.Hour, AccessSecret: []byte("a"), RefreshSecret: []byte("a")}},
		{"excessive leeway", Config{AccessTTL: time.Minute, RefreshTTL: time.Hour, AccessSecret: []byte("a"), RefreshSecret: []byte("b"), Leeway: 5 * time.Minute}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewManager(tc.cfg); err == nil {
				t.Fatal("expected configuration error")
			}
		})
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := testManager(t, 5*time.Minute, time.Hour)

	token, err := m.CreateAccess("user-1")
	if err != nil {
		t.Fatalf("CreateAccess failed: %v", err)
	}

	claims, err := m.ParseAccess(token)
	if err != nil {
		t.Fatalf("ParseAccess failed: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Fatalf("expected subject user-1, got %s", claims.Subject)
	}

	exp := claims.ExpiresAt.Time
	want := time.Now().Add(5 * time.Minute)
	if exp.Before(want.Add(-2*time.Second)) || exp.After(want.Add(2*time.Second)) {
		t.Fatalf("expiry %v not within tolerance of %v", exp, want)
	}
}

func TestEmptySubjectRejected(t *testing.T) {
	m := testManager(t, 5*time.Minute, time.Hour)
	if _, err := m.CreateAccess(""); err == nil {
		t.Fatal("expected error for empty subject")
	}
}

func TestConsecutiveTokensDistinct(t *testing.T) {
	m := testManager(t, 5*time.Minute, time.Hour)

	a, err := m.CreateAccess("user-1")
	if err != nil {
		t.Fatalf("CreateAccess failed: %v", err)
	}
	b, err := m.CreateAccess("user-1")
	if err != nil {
		t.Fatalf("CreateAccess failed: %v", err)
	}
	if a == b {
		t.Fatal("back-to-back tokens for the same subject must differ")
	}
}

func TestSecretIndependence(t *testing.T) {
	m := testManager(t, 5*time.Minute, time.Hour)

	refresh, err := m.CreateRefresh("user-1")
	if err != nil {
		t.Fatalf("CreateRefresh failed: %v", err)
	}

	// A refresh token must never verify under the access secret.
	if _, err := m.ParseAccess(refresh); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}

	access, err := m.CreateAccess("user-1")
	if err != nil {
		t.Fatalf("CreateAccess failed: %v", err)
	}
	if _, err := m.ParseRefresh(access); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	m := testManager(t, 5*time.Minute, time.Hour)

	token, err := m.CreateAccess("user-1")
	if err != nil {
		t.Fatalf("CreateAccess failed: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := m.ParseAccess(tampered); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestExpiredAccessReturnsVerifiedClaims(t *testing.T) {
	m := testManager(t, time.Millisecond, time.Hour)

	token, err := m.CreateAccess("user-1")
	if err != nil {
		t.Fatalf("CreateAccess failed: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	claims, err := m.ParseAccess(token)
	if !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
	// The signature verified, so the claims are trustworthy for the renewal
	// branch.
	if claims == nil || claims.Subject != "user-1" {
		t.Fatalf("expected verified claims with subject, got %+v", claims)
	}
}

func TestExpiredRefreshReturnsNoClaims(t *testing.T) {
	m := testManager(t, time.Minute, time.Millisecond)

	token, err := m.CreateRefresh("user-1")
	if err != nil {
		t.Fatalf("CreateRefresh failed: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	claims, err := m.ParseRefresh(token)
	if !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
	if claims != nil {
		t.Fatal("expired refresh token must not hand back claims")
	}
}

func TestExpiredTokenWrongSecretStaysInvalid(t *testing.T) {
	m := testManager(t, time.Millisecond, time.Hour)
	other := testManager(t, time.Millisecond, time.Hour)
	other.config.AccessSecret = []byte("different-secret")

	token, err := other.CreateAccess("user-1")
	if err != nil {
		t.Fatalf("CreateAccess failed: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	// Expiry must never short-circuit signature verification: an expired
	// forgery is a forgery.
	claims, err := m.ParseAccess(token)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if claims != nil {
		t.Fatal("forged token must not hand back claims")
	}
}

func TestLeewayAcceptsRecentlyExpired(t *testing.T) {
	m, err := NewManager(Config{
		AccessTTL:     time.Millisecond,
		RefreshTTL:    time.Hour,
		AccessSecret:  []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
		Leeway:        time.Minute,
	})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	token, err := m.CreateAccess("user-1")
	if err != nil {
		t.Fatalf("CreateAccess failed: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	if _, err := m.ParseAccess(token); err != nil {
		t.Fatalf("expected leeway to absorb expiry, got %v", err)
	}
}
