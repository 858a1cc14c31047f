package cookieAuth

import (
	"bytes"
	"errors"
	"net/http"
	"time"
)

// JWTConfig defines a public type used by cookieAuth APIs.
//
// JWTConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type JWTConfig struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// AccessSecret and RefreshSecret are independent HMAC keys. They must
	// differ: a refresh token must never verify under the access secret.
	AccessSecret  []byte
	RefreshSecret []byte

	Issuer string
	Leeway time.Duration
}

// SessionConfig defines a public type used by cookieAuth APIs.
//
// SessionConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionConfig struct {
	RedisPrefix string

	// Lifetime bounds the server-side record. Zero means "track the
	// refresh TTL", which keeps the record alive exactly as long as the
	// client can still renew.
	Lifetime time.Duration
}

// CookieConfig defines a public type used by cookieAuth APIs.
//
// CookieConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CookieConfig struct {
	AccessName  string
	RefreshName string
	Path        string
	Domain      string
	Secure      bool
	SameSite    http.SameSite
}

// PasswordConfig defines a public type used by cookieAuth APIs.
//
// PasswordConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PasswordConfig struct {
	Memory         uint32 // in KB
	Time           uint32
	Parallelism    uint8
	SaltLength     uint32
	KeyLength      uint32
	UpgradeOnLogin bool
}

// SecurityConfig defines a public type used by cookieAuth APIs.
//
// SecurityConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SecurityConfig struct {
	EnableIPThrottle      bool
	MaxLoginAttempts      int
	LoginCooldownDuration time.Duration
}

// AccountConfig defines a public type used by cookieAuth APIs.
//
// AccountConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AccountConfig struct {
	Enabled     bool
	AutoLogin   bool
	DefaultRole Role
}

// AuditConfig defines a public type used by cookieAuth APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by cookieAuth APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// Config defines a public type used by cookieAuth APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	JWT      JWTConfig
	Session  SessionConfig
	Cookie   CookieConfig
	Password PasswordConfig
	Security SecurityConfig
	Account  AccountConfig
	Audit    AuditConfig
	Metrics  MetricsConfig
}

/*
====================================
DEFAULT CONFIG
====================================
*/

func defaultConfig() Config {
	return Config{
		JWT: JWTConfig{
			AccessTTL:  5 * time.Minute,
			RefreshTTL: 7 * 24 * time.Hour,
			Leeway:     0,
		},
		Session: SessionConfig{
			RedisPrefix: "ca",
		},
		Cookie: CookieConfig{
			AccessName:  "access_token",
			RefreshName: "refresh_token",
			Path:        "/",
			Secure:      true,
			SameSite:    http.SameSiteLaxMode,
		},
		Password: PasswordConfig{
			Memory:         65536,
			Time:           3,
			Parallelism:    2,
			SaltLength:     16,
			KeyLength:      32,
			UpgradeOnLogin: true,
		},
		Security: SecurityConfig{
			EnableIPThrottle:      true,
			MaxLoginAttempts:      5,
			LoginCooldownDuration: 15 * time.Minute,
		},
		Account: AccountConfig{
			Enabled:     true,
			AutoLogin:   false,
			DefaultRole: RoleUser,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

// DefaultConfig describes the defaultconfig operation and its observable behavior.
//
// DefaultConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func DefaultConfig() Config {
	return defaultConfig()
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.JWT.AccessSecret = cloneBytes(cfg.JWT.AccessSecret)
	out.JWT.RefreshSecret = cloneBytes(cfg.JWT.RefreshSecret)
	return out
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// JWT. Token expiries serialize at second precision, so sub-second TTLs
	// issue tokens that are already expired when parsed back.
	if c.JWT.AccessTTL < time.Second {
		return errors.New("JWT AccessTTL must be at least one second")
	}
	if c.JWT.RefreshTTL < time.Second {
		return errors.New("JWT RefreshTTL must be at least one second")
	}
	if c.JWT.RefreshTTL <= c.JWT.AccessTTL {
		return errors.New("JWT RefreshTTL must exceed AccessTTL")
	}
	if len(c.JWT.AccessSecret) == 0 {
		return errors.New("JWT AccessSecret required")
	}
	if len(c.JWT.RefreshSecret) == 0 {
		return errors.New("JWT RefreshSecret required")
	}
	if bytes.Equal(c.JWT.AccessSecret, c.JWT.RefreshSecret) {
		return errors.New("JWT AccessSecret and RefreshSecret must differ")
	}
	if c.JWT.Leeway < 0 || c.JWT.Leeway > 2*time.Minute {
		return errors.New("JWT Leeway must be between 0 and 2 minutes")
	}

	// Session
	if c.Session.RedisPrefix == "" {
		return errors.New("Session RedisPrefix required")
	}
	if c.Session.Lifetime < 0 {
		return errors.New("Session Lifetime must not be negative")
	}
	if c.Session.Lifetime > 0 && c.Session.Lifetime < c.JWT.RefreshTTL {
		return errors.New("Session Lifetime must not be shorter than JWT RefreshTTL")
	}

	// Cookie
	if c.Cookie.AccessName == "" || c.Cookie.RefreshName == "" {
		return errors.New("Cookie names required")
	}
	if c.Cookie.AccessName == c.Cookie.RefreshName {
		return errors.New("Cookie names must differ")
	}

	// Security
	if c.Security.MaxLoginAttempts <= 0 {
		return errors.New("Security MaxLoginAttempts must be positive")
	}
	if c.Security.LoginCooldownDuration <= 0 {
		return errors.New("Security LoginCooldownDuration must be positive")
	}

	// Account
	if c.Account.Enabled {
		if _, err := ParseRole(string(c.Account.DefaultRole)); err != nil {
			return errors.New("Account DefaultRole must be a known role")
		}
	}

	return nil
}

// sessionLifetime resolves the effective server-side record lifetime.
func (c *Config) sessionLifetime() time.Duration {
	if c.Session.Lifetime > 0 {
		return c.Session.Lifetime
	}
	return c.JWT.RefreshTTL
}
