package flows

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AccountCreateRequest is the input to account registration.
type AccountCreateRequest struct {
	Name      string
	Email     string
	Password  string
	AvatarID  string
	AvatarURL string
}

// CreateUserInput is handed to the external credential store; the password
// only ever travels as an argon2id hash.
type CreateUserInput struct {
	UserID       string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	AvatarID     string
	AvatarURL    string
}

// AccountDeps captures registration flow dependencies.
type AccountDeps struct {
	HashPassword func(string) (string, error)
	NewUserID    func() string
	CreateUser   func(context.Context, CreateUserInput) (UserRecord, error)
	Invalid      error
	DefaultRole  string
}

// RunCreateAccount validates the profile, hashes the password, mints a
// subject identifier, and delegates persistence to the credential store.
// A duplicate-email error from the store passes through unchanged so the
// root package can map it.
func RunCreateAccount(ctx context.Context, req AccountCreateRequest, deps AccountDeps) (UserRecord, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if len(name) < 3 || len(name) > 50 {
		return UserRecord{}, fmt.Errorf("%w: name must be 3-50 characters", deps.Invalid)
	}
	if !emailPattern.MatchString(email) {
		return UserRecord{}, fmt.Errorf("%w: email is invalid", deps.Invalid)
	}
	if len(req.Password) < 6 {
		return UserRecord{}, fmt.Errorf("%w: password must be at least 6 characters", deps.Invalid)
	}

	hash, err := deps.HashPassword(req.Password)
	if err != nil {
		return UserRecord{}, err
	}

	user, err := deps.CreateUser(ctx, CreateUserInput{
		UserID:       deps.NewUserID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         deps.DefaultRole,
		AvatarID:     req.AvatarID,
		AvatarURL:    req.AvatarURL,
	})
	if err != nil {
		return UserRecord{}, err
	}

	return user, nil
}
