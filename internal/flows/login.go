package flows

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/MrEthical07/cookieAuth/session"
)

// LoginFailureKind classifies login failures for root-level mapping.
type LoginFailureKind int

const (
	LoginFailureNone LoginFailureKind = iota
	LoginFailureRateLimited
	LoginFailureInvalidCredentials
	LoginFailureDependency
	LoginFailureSessionSave
	LoginFailureIssue
)

// UserRecord is the credential-store view the flows operate on. The root
// package translates provider records into this shape.
type UserRecord struct {
	UserID       string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Verified     bool
	AvatarID     string
	AvatarURL    string
}

// LoginResult carries either the issued token pair plus the created session
// record, or failure metadata.
type LoginResult struct {
	Failure LoginFailureKind
	Err     error

	Record       *session.Record
	AccessToken  string
	RefreshToken string
}

type LoginRateLimiter interface {
	CheckLogin(ctx context.Context, email, ip string) error
	IncrementLogin(ctx context.Context, email, ip string) error
	ResetLogin(ctx context.Context, email, ip string) error
}

type LoginSessionStore interface {
	Save(ctx context.Context, rec *session.Record, ttl time.Duration) error
}

// LoginDeps captures login flow dependencies.
type LoginDeps struct {
	ClientIPFromContext func(context.Context) string
	GetUserByEmail      func(context.Context, string) (UserRecord, error)
	UserNotFound        error
	VerifyPassword      func(password, encodedHash string) (bool, error)
	// UpgradeHash, when set, is invoked after a successful verification so
	// the caller can transparently re-hash with stronger parameters.
	UpgradeHash     func(context.Context, UserRecord, string)
	CreateAccess    func(string) (string, error)
	CreateRefresh   func(string) (string, error)
	SessionLifetime func() time.Duration
	Now             func() time.Time
	SessionStore    LoginSessionStore
	RateLimiter     LoginRateLimiter
	RateLimited     error
	Warn            func(string, ...any)
}

// RunLogin verifies credentials against the external credential store and,
// on success, creates the server-side session record and issues the token
// pair. Credential failures are indistinguishable to the caller: an unknown
// email and a wrong password both report LoginFailureInvalidCredentials.
func RunLogin(ctx context.Context, email, password string, deps LoginDeps) LoginResult {
	email = strings.ToLower(strings.TrimSpace(email))
	ip := ""
	if deps.ClientIPFromContext != nil {
		ip = deps.ClientIPFromContext(ctx)
	}

	if deps.RateLimiter != nil {
		if err := deps.RateLimiter.CheckLogin(ctx, email, ip); err != nil {
			if deps.RateLimited != nil && errors.Is(err, deps.RateLimited) {
				return LoginResult{Failure: LoginFailureRateLimited, Err: err}
			}
			// A limiter outage is a dependency fault, not a client one.
			return LoginResult{Failure: LoginFailureDependency, Err: err}
		}
	}

	user, err := deps.GetUserByEmail(ctx, email)
	if err != nil {
		if deps.UserNotFound != nil && errors.Is(err, deps.UserNotFound) {
			return deps.failCredentials(ctx, email, ip, err)
		}
		return LoginResult{Failure: LoginFailureDependency, Err: err}
	}

	ok, err := deps.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return deps.failCredentials(ctx, email, ip, err)
	}

	if deps.RateLimiter != nil {
		if err := deps.RateLimiter.ResetLogin(ctx, email, ip); err != nil && deps.Warn != nil {
			deps.Warn("cookieAuth: login limiter reset failed")
		}
	}
	if deps.UpgradeHash != nil {
		deps.UpgradeHash(ctx, user, password)
	}

	access, err := deps.CreateAccess(user.UserID)
	if err != nil {
		return LoginResult{Failure: LoginFailureIssue, Err: err}
	}
	refresh, err := deps.CreateRefresh(user.UserID)
	if err != nil {
		return LoginResult{Failure: LoginFailureIssue, Err: err}
	}

	now := deps.Now()
	lifetime := deps.SessionLifetime()
	rec := &session.Record{
		UserID:    user.UserID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Verified:  user.Verified,
		AvatarID:  user.AvatarID,
		AvatarURL: user.AvatarURL,
		CreatedAt: now.Unix(),
		ExpiresAt: now.Add(lifetime).Unix(),
	}

	if err := deps.SessionStore.Save(ctx, rec, lifetime); err != nil {
		return LoginResult{Failure: LoginFailureSessionSave, Err: err}
	}

	return LoginResult{
		Record:       rec,
		AccessToken:  access,
		RefreshToken: refresh,
	}
}

func (deps LoginDeps) failCredentials(ctx context.Context, email, ip string, cause error) LoginResult {
	if deps.RateLimiter != nil {
		if err := deps.RateLimiter.IncrementLogin(ctx, email, ip); err != nil {
			if deps.RateLimited != nil && errors.Is(err, deps.RateLimited) {
				return LoginResult{Failure: LoginFailureRateLimited, Err: err}
			}
			if deps.Warn != nil {
				deps.Warn("cookieAuth: login limiter increment failed")
			}
		}
	}
	return LoginResult{Failure: LoginFailureInvalidCredentials, Err: cause}
}
