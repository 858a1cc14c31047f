package flows

import (
	"context"
	"errors"

	"github.com/MrEthical07/cookieAuth/jwt"
)

// LogoutFailureKind classifies logout failures for root-level mapping.
type LogoutFailureKind int

const (
	LogoutFailureNone LogoutFailureKind = iota
	LogoutFailureMissingToken
	LogoutFailureTokenInvalid
	LogoutFailureDependency
)

// LogoutResult reports which subject was logged out, or why logout was
// refused.
type LogoutResult struct {
	Failure   LogoutFailureKind
	Err       error
	SubjectID string
}

type LogoutSessionStore interface {
	Delete(ctx context.Context, subjectID string) error
}

// LogoutDeps captures logout flow dependencies.
type LogoutDeps struct {
	ParseAccess  func(string) (*jwt.Claims, error)
	TokenExpired error
	SessionStore LogoutSessionStore
}

// RunLogout deletes the subject's session record. An expired access token is
// accepted as long as its signature is authentic: staleness never blocks
// ending a session. Deleting an already-absent record still succeeds.
func RunLogout(ctx context.Context, accessToken string, deps LogoutDeps) LogoutResult {
	if accessToken == "" {
		return LogoutResult{Failure: LogoutFailureMissingToken}
	}

	claims, err := deps.ParseAccess(accessToken)
	if err != nil && !(deps.TokenExpired != nil && errors.Is(err, deps.TokenExpired)) {
		return LogoutResult{Failure: LogoutFailureTokenInvalid, Err: err}
	}
	if claims == nil {
		return LogoutResult{Failure: LogoutFailureTokenInvalid, Err: err}
	}

	if err := deps.SessionStore.Delete(ctx, claims.Subject); err != nil {
		return LogoutResult{Failure: LogoutFailureDependency, Err: err, SubjectID: claims.Subject}
	}

	return LogoutResult{SubjectID: claims.Subject}
}
