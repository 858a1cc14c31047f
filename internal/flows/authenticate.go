package flows

import (
	"context"
	"errors"

	"github.com/MrEthical07/cookieAuth/jwt"
	"github.com/MrEthical07/cookieAuth/session"
)

// AuthenticateFailureKind classifies authentication failures for root-level
// mapping.
type AuthenticateFailureKind int

const (
	AuthenticateFailureNone AuthenticateFailureKind = iota
	AuthenticateFailureMissingToken
	AuthenticateFailureTokenInvalid
	AuthenticateFailureSessionMissing
	AuthenticateFailureDependency
	AuthenticateFailureRenew
)

// Outcome is the explicit result of one authentication pass: the request is
// either attached (Record set, possibly with a renewed token pair) or
// rejected with a classified failure. There is no continuation passing; the
// caller branches on Failure.
type Outcome struct {
	Failure AuthenticateFailureKind
	Err     error

	Claims *jwt.Claims
	Record *session.Record

	// Renewed is set when the access token was expired and the renewal
	// procedure minted a fresh pair; Renew then carries the new tokens.
	Renewed bool
	Renew   RenewResult
}

// Attached reports whether the pass reached the terminal success state.
func (o Outcome) Attached() bool {
	return o.Failure == AuthenticateFailureNone
}

type AuthenticateSessionStore interface {
	Get(ctx context.Context, subjectID string) (*session.Record, error)
}

// AuthenticateDeps captures authentication flow dependencies.
type AuthenticateDeps struct {
	ParseAccess  func(string) (*jwt.Claims, error)
	TokenExpired error
	Renew        func(context.Context, string) RenewResult
	SessionStore AuthenticateSessionStore
	RedisNil     error
}

// RunAuthenticate executes the per-request authentication state machine:
//
//	NO_TOKEN      -> REJECTED(missing)
//	TOKEN_PRESENT -> DECODED | REJECTED(invalid)
//	DECODED       -> EXPIRED | LIVE
//	EXPIRED       -> RENEWING -> (LIVE | REJECTED)
//	LIVE          -> CACHE_LOOKUP -> (ATTACHED | REJECTED(no-session))
//
// A cache miss after a structurally valid token always rejects: absence of
// the record is the authoritative revocation signal, regardless of what the
// token claims.
func RunAuthenticate(ctx context.Context, accessToken, refreshToken string, deps AuthenticateDeps) Outcome {
	if accessToken == "" {
		return Outcome{Failure: AuthenticateFailureMissingToken}
	}

	claims, err := deps.ParseAccess(accessToken)
	if err != nil {
		if deps.TokenExpired != nil && errors.Is(err, deps.TokenExpired) {
			// Authentic but stale: the only locally recovered failure.
			res := deps.Renew(ctx, refreshToken)
			if res.Failure != RenewFailureNone {
				return Outcome{
					Failure: AuthenticateFailureRenew,
					Err:     res.Err,
					Claims:  claims,
					Renew:   res,
				}
			}
			return Outcome{
				Claims:  claims,
				Record:  res.Record,
				Renewed: true,
				Renew:   res,
			}
		}
		return Outcome{Failure: AuthenticateFailureTokenInvalid, Err: err}
	}

	rec, err := deps.SessionStore.Get(ctx, claims.Subject)
	if err != nil {
		if deps.RedisNil != nil && errors.Is(err, deps.RedisNil) {
			return Outcome{Failure: AuthenticateFailureSessionMissing, Err: err, Claims: claims}
		}
		return Outcome{Failure: AuthenticateFailureDependency, Err: err, Claims: claims}
	}

	return Outcome{Claims: claims, Record: rec}
}
