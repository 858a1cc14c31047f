package flows

import (
	"context"
	"errors"
	"time"

	"github.com/MrEthical07/cookieAuth/jwt"
	"github.com/MrEthical07/cookieAuth/session"
)

// RenewFailureKind classifies renewal failures for root-level mapping.
type RenewFailureKind int

const (
	RenewFailureNone RenewFailureKind = iota
	RenewFailureMissingRefresh
	RenewFailureRefreshInvalid
	RenewFailureRefreshExpired
	RenewFailureSessionMissing
	RenewFailureDependency
	RenewFailureIssue
)

// RenewResult carries either the freshly issued token pair plus the live
// session record, or failure metadata.
type RenewResult struct {
	Failure RenewFailureKind
	Err     error

	SubjectID    string
	Record       *session.Record
	AccessToken  string
	RefreshToken string
}

type RenewSessionStore interface {
	Get(ctx context.Context, subjectID string) (*session.Record, error)
	Replace(ctx context.Context, rec *session.Record, ttl time.Duration) error
}

// RenewDeps captures renewal flow dependencies.
type RenewDeps struct {
	ParseRefresh    func(string) (*jwt.Claims, error)
	TokenExpired    error
	CreateAccess    func(string) (string, error)
	CreateRefresh   func(string) (string, error)
	SessionLifetime func() time.Duration
	Now             func() time.Time
	SessionStore    RenewSessionStore
	RedisNil        error
	Warn            func(string, ...any)
}

// RunRenew mints a fresh access/refresh pair for a subject whose access
// token expired while the server-side session is still live.
//
// The session lifetime slides: the record is replaced wholesale with a fresh
// expiry one full lifetime ahead, so a client that keeps renewing in time is
// never cut off at an absolute deadline stamped at login.
//
// The procedure is idempotent-safe under concurrent invocations for the same
// subject: the replace is last-writer-wins and refuses to recreate an absent
// record, so racing renewals cannot leave the cache without the record and a
// concurrent logout still wins.
func RunRenew(ctx context.Context, refreshToken string, deps RenewDeps) RenewResult {
	if refreshToken == "" {
		return RenewResult{Failure: RenewFailureMissingRefresh}
	}

	claims, err := deps.ParseRefresh(refreshToken)
	if err != nil {
		if deps.TokenExpired != nil && errors.Is(err, deps.TokenExpired) {
			// Unrecoverable: the client must log in again.
			return RenewResult{Failure: RenewFailureRefreshExpired, Err: err}
		}
		return RenewResult{Failure: RenewFailureRefreshInvalid, Err: err}
	}
	subjectID := claims.Subject

	rec, err := deps.SessionStore.Get(ctx, subjectID)
	if err != nil {
		if deps.RedisNil != nil && errors.Is(err, deps.RedisNil) {
			return RenewResult{Failure: RenewFailureSessionMissing, Err: err, SubjectID: subjectID}
		}
		return RenewResult{Failure: RenewFailureDependency, Err: err, SubjectID: subjectID}
	}

	access, err := deps.CreateAccess(subjectID)
	if err != nil {
		return RenewResult{Failure: RenewFailureIssue, Err: err, SubjectID: subjectID, Record: rec}
	}
	refresh, err := deps.CreateRefresh(subjectID)
	if err != nil {
		return RenewResult{Failure: RenewFailureIssue, Err: err, SubjectID: subjectID, Record: rec}
	}

	lifetime := deps.SessionLifetime()
	renewed := *rec
	renewed.ExpiresAt = deps.Now().Add(lifetime).Unix()

	if err := deps.SessionStore.Replace(ctx, &renewed, lifetime); err != nil {
		if deps.RedisNil != nil && errors.Is(err, deps.RedisNil) {
			// The record vanished between read and replace: logged out
			// elsewhere. The rejection wins over the freshly minted pair.
			return RenewResult{Failure: RenewFailureSessionMissing, Err: err, SubjectID: subjectID}
		}
		if deps.Warn != nil {
			deps.Warn("cookieAuth: session refresh failed during renewal")
		}
		return RenewResult{Failure: RenewFailureDependency, Err: err, SubjectID: subjectID}
	}

	return RenewResult{
		SubjectID:    subjectID,
		Record:       &renewed,
		AccessToken:  access,
		RefreshToken: refresh,
	}
}
