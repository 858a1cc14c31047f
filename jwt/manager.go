package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrExpired reports a token whose signature verified but whose expiry
	// has passed. Callers may trust the returned claims for renewal only.
	ErrExpired = errors.New("token expired")
	// ErrInvalid reports a token that failed signature or structural checks.
	ErrInvalid = errors.New("invalid token")
)

// Kind selects which signing secret a token is bound to.
type Kind int

const (
	// KindAccess is the short-lived per-request token.
	KindAccess Kind = iota
	// KindRefresh is the long-lived renewal token.
	KindRefresh
)

// Config defines the token codec parameters.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	AccessSecret  []byte
	RefreshSecret []byte
	Issuer        string
	Leeway        time.Duration
}

// Claims carries the subject identifier and registered timing claims of an
// access or refresh token.
type Claims struct {
	jwt.RegisteredClaims
}

// Manager signs and verifies the access/refresh token pair. The two token
// kinds use independent secrets so that compromise of one cannot forge the
// other.
//
// Manager instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Manager struct {
	config Config
}

// NewManager validates cfg and returns an immutable token codec.
//
// NewManager may return an error when input validation, dependency calls, or security checks fail.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}
	if len(cfg.AccessSecret) == 0 {
		return nil, errors.New("access secret required")
	}
	if len(cfg.RefreshSecret) == 0 {
		return nil, errors.New("refresh secret required")
	}
	if string(cfg.AccessSecret) == string(cfg.RefreshSecret) {
		return nil, errors.New("access and refresh secrets must differ")
	}

	return &Manager{config: cfg}, nil
}

// CreateAccess signs a new access token for subject, expiring at
// now+AccessTTL.
//
// CreateAccess does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) CreateAccess(subject string) (string, error) {
	return m.create(subject, KindAccess, m.config.AccessTTL)
}

// CreateRefresh signs a new refresh token for subject, expiring at
// now+RefreshTTL.
//
// CreateRefresh does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) CreateRefresh(subject string) (string, error) {
	return m.create(subject, KindRefresh, m.config.RefreshTTL)
}

func (m *Manager) create(subject string, kind Kind, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("empty subject")
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			// jti makes back-to-back issuances for the same subject distinct
			// even within one clock second.
			ID: uuid.NewString(),
		},
	}
	if m.config.Issuer != "" {
		claims.Issuer = m.config.Issuer
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	key, err := m.key(kind)
	if err != nil {
		return "", err
	}
	return token.SignedString(key)
}

// ParseAccess verifies an access token and returns its claims.
//
// Signature verification always precedes every other check. When the
// signature is authentic but the token has expired, ParseAccess returns the
// verified claims together with [ErrExpired] so callers can branch into the
// renewal path without ever trusting an unverified payload.
func (m *Manager) ParseAccess(tokenStr string) (*Claims, error) {
	return m.parse(tokenStr, KindAccess)
}

// ParseRefresh verifies a refresh token and returns its claims. Expired
// refresh tokens are unrecoverable and report [ErrExpired] with nil claims.
func (m *Manager) ParseRefresh(tokenStr string) (*Claims, error) {
	claims, err := m.parse(tokenStr, KindRefresh)
	if errors.Is(err, ErrExpired) {
		// A stale refresh token has no renewal path of its own; do not hand
		// its claims back.
		return nil, ErrExpired
	}
	return claims, err
}

func (m *Manager) parse(tokenStr string, kind Kind) (*Claims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if m.config.Leeway > 0 {
		options = append(options, jwt.WithLeeway(m.config.Leeway))
	}
	if m.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(m.config.Issuer))
	}

	parser := jwt.NewParser(options...)
	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing algorithm: %s", t.Method.Alg())
		}
		return m.key(kind)
	})
	if err != nil {
		// The jwt/v5 parser verifies the signature before validating claims,
		// so ErrTokenExpired implies the token is authentic.
		if token != nil && errors.Is(err, jwt.ErrTokenExpired) {
			if claims, ok := token.Claims.(*Claims); ok && claims.Subject != "" {
				return claims, ErrExpired
			}
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalid
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalid)
	}

	return claims, nil
}

func (m *Manager) key(kind Kind) (interface{}, error) {
	switch kind {
	case KindAccess:
		return m.config.AccessSecret, nil
	case KindRefresh:
		return m.config.RefreshSecret, nil
	default:
		return nil, errors.New("unknown token kind")
	}
}
