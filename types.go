package cookieAuth

import (
	"context"
	"fmt"

	"github.com/MrEthical07/cookieAuth/session"
)

// Role is the closed set of authorization roles a session can carry. Roles
// are a fixed enumeration rather than free-form strings so that a typo in a
// route guard fails at compile time instead of silently denying everyone.
//
// Role instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Role string

const (
	// RoleUser is an exported constant or variable used by the authentication engine.
	RoleUser Role = "user"
	// RoleAdmin is an exported constant or variable used by the authentication engine.
	RoleAdmin Role = "admin"
)

// String describes the string operation and its observable behavior.
func (r Role) String() string {
	return string(r)
}

// ParseRole describes the parserole operation and its observable behavior.
//
// ParseRole may return an error when input validation, dependency calls, or security checks fail.
// ParseRole does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// UserRecord is the credential-store view of one account. The engine never
// persists users itself; the provider owns the canonical record and the
// engine caches a projection of it in the session store.
//
// UserRecord instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type UserRecord struct {
	UserID       string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Verified     bool
	AvatarID     string
	AvatarURL    string
}

// CreateUserInput is handed to the provider on registration. The password
// only ever travels as an argon2id hash.
//
// CreateUserInput instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CreateUserInput struct {
	UserID       string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	AvatarID     string
	AvatarURL    string
}

// UserProvider is the application-supplied credential store. Implementations
// must return ErrUserNotFound for unknown lookups and ErrAccountExists for
// duplicate email registration so the engine can classify the failure.
type UserProvider interface {
	GetUserByEmail(ctx context.Context, email string) (UserRecord, error)
	GetUserByID(ctx context.Context, userID string) (UserRecord, error)
	CreateUser(ctx context.Context, input CreateUserInput) (UserRecord, error)
	UpdatePasswordHash(ctx context.Context, userID, newHash string) error
}

// RegisterRequest is the input to account registration.
//
// RegisterRequest instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RegisterRequest struct {
	Name      string
	Email     string
	Password  string
	AvatarID  string
	AvatarURL string
}

// AuthResult carries the outcome of a successful login, authentication, or
// renewal: the live session record plus, when tokens were minted on this
// call, the pair the transport layer must hand back to the client.
//
// AuthResult instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuthResult struct {
	Record *session.Record

	// Renewed reports that the access token expired mid-request and a
	// fresh pair was minted silently; callers must re-set both cookies.
	Renewed bool

	AccessToken  string
	RefreshToken string
}
