package cookieAuth

import (
	"net/http"
	"testing"

	"github.com/MrEthical07/cookieAuth/session"
)

func TestAuthorizeAllowed(t *testing.T) {
	rec := &session.Record{UserID: "user-1", Role: "admin"}
	if err := Authorize(rec, RoleAdmin); err != nil {
		t.Fatalf("expected admin to pass, got %v", err)
	}
	if err := Authorize(rec, RoleUser, RoleAdmin); err != nil {
		t.Fatalf("expected admin to pass multi-role gate, got %v", err)
	}
}

func TestAuthorizeDeniedNamesRole(t *testing.T) {
	rec := &session.Record{UserID: "user-1", Role: "user"}

	err := Authorize(rec, RoleAdmin)
	if err == nil {
		t.Fatal("expected denial")
	}

	apiErr := Normalize(err)
	if apiErr.Status != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", apiErr.Status)
	}
	want := "Role: user is not allowed to access this resource"
	if apiErr.Message != want {
		t.Fatalf("expected %q, got %q", want, apiErr.Message)
	}
}

func TestAuthorizeNilRecord(t *testing.T) {
	err := Authorize(nil, RoleUser)
	if err == nil {
		t.Fatal("expected rejection for missing session")
	}
	if Normalize(err).Status != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing session, got %d", Normalize(err).Status)
	}
}

func TestParseRole(t *testing.T) {
	if r, err := ParseRole("admin"); err != nil || r != RoleAdmin {
		t.Fatalf("ParseRole(admin) = %v, %v", r, err)
	}
	if r, err := ParseRole("user"); err != nil || r != RoleUser {
		t.Fatalf("ParseRole(user) = %v, %v", r, err)
	}
	if _, err := ParseRole("superuser"); err == nil {
		t.Fatal("expected error for unknown role")
	}
}
