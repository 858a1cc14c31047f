package cookieAuth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/MrEthical07/cookieAuth/internal/flows"
	"github.com/MrEthical07/cookieAuth/internal/rate"
	"github.com/MrEthical07/cookieAuth/jwt"
	"github.com/MrEthical07/cookieAuth/password"
	"github.com/MrEthical07/cookieAuth/session"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Engine defines a public type used by cookieAuth APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config       Config
	sessionStore *session.Store
	rateLimiter  *rate.Limiter
	audit        *auditDispatcher
	metrics      *Metrics
	passwordHash *password.Argon2
	jwtManager   *jwt.Manager
	userProvider UserProvider
	flows        flows.Service
}

// Close describes the close operation and its observable behavior.
//
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

func (e *Engine) metricObserve(id MetricID, d time.Duration) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Observe(id, d)
}

func (e *Engine) auditEmit(ctx context.Context, event AuditEvent) {
	if e == nil || e.audit == nil {
		return
	}
	event.IP = clientIPFromContext(ctx)
	if ua := userAgentFromContext(ctx); ua != "" {
		if event.Metadata == nil {
			event.Metadata = make(map[string]string, 1)
		}
		event.Metadata["user_agent"] = ua
	}
	e.audit.emit(ctx, event)
}

func (e *Engine) ready() bool {
	return e != nil && e.flows.Initialized()
}

/*
====================================
FLOW WIRING
====================================
*/

func (e *Engine) buildFlows() flows.Service {
	renewDeps := flows.RenewDeps{
		ParseRefresh:    e.jwtManager.ParseRefresh,
		TokenExpired:    jwt.ErrExpired,
		CreateAccess:    e.jwtManager.CreateAccess,
		CreateRefresh:   e.jwtManager.CreateRefresh,
		SessionLifetime: e.config.sessionLifetime,
		Now:             time.Now,
		SessionStore:    e.sessionStore,
		RedisNil:        redis.Nil,
		Warn:            log.Printf,
	}

	loginDeps := flows.LoginDeps{
		ClientIPFromContext: clientIPFromContext,
		GetUserByEmail: func(ctx context.Context, email string) (flows.UserRecord, error) {
			user, err := e.userProvider.GetUserByEmail(ctx, email)
			if err != nil {
				return flows.UserRecord{}, err
			}
			return providerToFlow(user), nil
		},
		UserNotFound:    ErrUserNotFound,
		VerifyPassword:  e.passwordHash.Verify,
		CreateAccess:    e.jwtManager.CreateAccess,
		CreateRefresh:   e.jwtManager.CreateRefresh,
		SessionLifetime: e.config.sessionLifetime,
		Now:             time.Now,
		SessionStore:    e.sessionStore,
		RateLimiter:     e.rateLimiter,
		RateLimited:     rate.ErrRateLimited,
		Warn:            log.Printf,
	}
	if e.config.Password.UpgradeOnLogin {
		loginDeps.UpgradeHash = e.upgradeHash
	}

	return flows.New(flows.Deps{
		Login: loginDeps,
		Authenticate: flows.AuthenticateDeps{
			ParseAccess:  e.jwtManager.ParseAccess,
			TokenExpired: jwt.ErrExpired,
			Renew: func(ctx context.Context, refreshToken string) flows.RenewResult {
				return flows.RunRenew(ctx, refreshToken, renewDeps)
			},
			SessionStore: e.sessionStore,
			RedisNil:     redis.Nil,
		},
		Renew: renewDeps,
		Logout: flows.LogoutDeps{
			ParseAccess:  e.jwtManager.ParseAccess,
			TokenExpired: jwt.ErrExpired,
			SessionStore: e.sessionStore,
		},
		Account: flows.AccountDeps{
			HashPassword: e.passwordHash.Hash,
			NewUserID:    uuid.NewString,
			CreateUser: func(ctx context.Context, input flows.CreateUserInput) (flows.UserRecord, error) {
				role, err := ParseRole(input.Role)
				if err != nil {
					return flows.UserRecord{}, err
				}
				user, err := e.userProvider.CreateUser(ctx, CreateUserInput{
					UserID:       input.UserID,
					Name:         input.Name,
					Email:        input.Email,
					PasswordHash: input.PasswordHash,
					Role:         role,
					AvatarID:     input.AvatarID,
					AvatarURL:    input.AvatarURL,
				})
				if err != nil {
					return flows.UserRecord{}, err
				}
				return providerToFlow(user), nil
			},
			Invalid:     ErrAccountInvalid,
			DefaultRole: string(e.config.Account.DefaultRole),
		},
	})
}

func providerToFlow(user UserRecord) flows.UserRecord {
	return flows.UserRecord{
		UserID:       user.UserID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		Verified:     user.Verified,
		AvatarID:     user.AvatarID,
		AvatarURL:    user.AvatarURL,
	}
}

// upgradeHash transparently re-hashes a verified password when the stored
// hash uses weaker parameters than the configured ones. Failures only warn;
// login already succeeded.
func (e *Engine) upgradeHash(ctx context.Context, user flows.UserRecord, plaintext string) {
	needs, err := e.passwordHash.NeedsUpgrade(user.PasswordHash)
	if err != nil || !needs {
		return
	}
	newHash, err := e.passwordHash.Hash(plaintext)
	if err != nil {
		log.Printf("cookieAuth: password rehash failed for %s", user.UserID)
		return
	}
	if err := e.userProvider.UpdatePasswordHash(ctx, user.UserID, newHash); err != nil {
		log.Printf("cookieAuth: password hash upgrade persist failed for %s", user.UserID)
	}
}

/*
====================================
OPERATIONS
====================================
*/

// Login describes the login operation and its observable behavior.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// Login does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Login(ctx context.Context, email, pass string) (*AuthResult, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}

	res := e.flows.Login(ctx, email, pass)
	switch res.Failure {
	case flows.LoginFailureNone:
	case flows.LoginFailureRateLimited:
		e.metricInc(MetricLoginRateLimited)
		e.auditEmit(ctx, AuditEvent{EventType: "login", Email: email, Error: "rate limited"})
		return nil, ErrLoginRateLimited
	case flows.LoginFailureInvalidCredentials:
		e.metricInc(MetricLoginFailure)
		e.auditEmit(ctx, AuditEvent{EventType: "login", Email: email, Error: "invalid credentials"})
		return nil, ErrInvalidCredentials
	case flows.LoginFailureSessionSave:
		e.metricInc(MetricLoginFailure)
		return nil, fmt.Errorf("%w: %v", ErrSessionCreationFailed, res.Err)
	default:
		e.metricInc(MetricLoginFailure)
		return nil, fmt.Errorf("%w: %v", ErrCacheUnavailable, res.Err)
	}

	e.metricInc(MetricLoginSuccess)
	e.metricInc(MetricSessionCreated)
	e.auditEmit(ctx, AuditEvent{EventType: "login", UserID: res.Record.UserID, Email: res.Record.Email, Success: true})

	return &AuthResult{
		Record:       res.Record,
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
	}, nil
}

// Register describes the register operation and its observable behavior.
//
// Register may return an error when input validation, dependency calls, or security checks fail.
// Register does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Register(ctx context.Context, req RegisterRequest) (UserRecord, error) {
	if !e.ready() {
		return UserRecord{}, ErrEngineNotReady
	}
	if !e.config.Account.Enabled {
		return UserRecord{}, ErrAccountInvalid
	}

	user, err := e.flows.CreateAccount(ctx, flows.AccountCreateRequest{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		AvatarID:  req.AvatarID,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		e.metricInc(MetricRegisterFailure)
		e.auditEmit(ctx, AuditEvent{EventType: "register", Email: req.Email, Error: err.Error()})
		return UserRecord{}, err
	}

	e.metricInc(MetricRegisterSuccess)
	e.auditEmit(ctx, AuditEvent{EventType: "register", UserID: user.UserID, Email: user.Email, Success: true})

	role, err := ParseRole(user.Role)
	if err != nil {
		role = e.config.Account.DefaultRole
	}
	return UserRecord{
		UserID:    user.UserID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      role,
		Verified:  user.Verified,
		AvatarID:  user.AvatarID,
		AvatarURL: user.AvatarURL,
	}, nil
}

// Authenticate describes the authenticate operation and its observable behavior.
//
// Authenticate may return an error when input validation, dependency calls, or security checks fail.
// Authenticate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Authenticate(ctx context.Context, accessToken, refreshToken string) (*AuthResult, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}

	start := time.Now()
	out := e.flows.Authenticate(ctx, accessToken, refreshToken)
	e.metricObserve(MetricAuthenticateLatency, time.Since(start))

	if !out.Attached() {
		e.metricInc(MetricAuthRejected)
		return nil, e.mapAuthenticateFailure(out)
	}

	e.metricInc(MetricAuthAttached)
	if out.Renewed {
		e.metricInc(MetricRenewSuccess)
	}

	return &AuthResult{
		Record:       out.Record,
		Renewed:      out.Renewed,
		AccessToken:  out.Renew.AccessToken,
		RefreshToken: out.Renew.RefreshToken,
	}, nil
}

func (e *Engine) mapAuthenticateFailure(out flows.Outcome) error {
	switch out.Failure {
	case flows.AuthenticateFailureMissingToken:
		return ErrTokenMissing
	case flows.AuthenticateFailureTokenInvalid:
		return ErrTokenInvalid
	case flows.AuthenticateFailureSessionMissing:
		e.metricInc(MetricSessionMissing)
		return ErrSessionNotFound
	case flows.AuthenticateFailureRenew:
		e.metricInc(MetricRenewFailure)
		return e.mapRenewFailure(out.Renew)
	}
	e.metricInc(MetricCacheUnavailable)
	return fmt.Errorf("%w: %v", ErrCacheUnavailable, out.Err)
}

func (e *Engine) mapRenewFailure(res flows.RenewResult) error {
	switch res.Failure {
	case flows.RenewFailureMissingRefresh:
		return ErrTokenMissing
	case flows.RenewFailureRefreshInvalid:
		return ErrTokenInvalid
	case flows.RenewFailureRefreshExpired:
		return ErrSessionExpired
	case flows.RenewFailureSessionMissing:
		e.metricInc(MetricSessionMissing)
		return ErrSessionNotFound
	}
	e.metricInc(MetricCacheUnavailable)
	return fmt.Errorf("%w: %v", ErrCacheUnavailable, res.Err)
}

// Renew describes the renew operation and its observable behavior.
//
// Renew may return an error when input validation, dependency calls, or security checks fail.
// Renew does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Renew(ctx context.Context, refreshToken string) (*AuthResult, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}

	res := e.flows.Renew(ctx, refreshToken)
	if res.Failure != flows.RenewFailureNone {
		e.metricInc(MetricRenewFailure)
		return nil, e.mapRenewFailure(res)
	}

	e.metricInc(MetricRenewSuccess)
	return &AuthResult{
		Record:       res.Record,
		Renewed:      true,
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
	}, nil
}

// Logout describes the logout operation and its observable behavior.
//
// Logout may return an error when input validation, dependency calls, or security checks fail.
// Logout does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Logout(ctx context.Context, accessToken string) error {
	if !e.ready() {
		return ErrEngineNotReady
	}

	res := e.flows.Logout(ctx, accessToken)
	switch res.Failure {
	case flows.LogoutFailureNone:
	case flows.LogoutFailureMissingToken:
		return ErrTokenMissing
	case flows.LogoutFailureTokenInvalid:
		return ErrTokenInvalid
	default:
		e.metricInc(MetricCacheUnavailable)
		return fmt.Errorf("%w: %v", ErrCacheUnavailable, res.Err)
	}

	e.metricInc(MetricLogout)
	e.metricInc(MetricSessionInvalidated)
	e.auditEmit(ctx, AuditEvent{EventType: "logout", UserID: res.SubjectID, Success: true})
	return nil
}

// Session loads the cached session record for a subject identifier. Cache
// absence is the authoritative "must re-login" signal, so a miss reports
// ErrSessionNotFound and is never papered over with a credential-store read;
// use [Engine.Profile] for a liveness-independent profile lookup.
//
// Session may return an error when input validation, dependency calls, or security checks fail.
// Session does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Session(ctx context.Context, userID string) (*session.Record, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	rec, err := e.sessionStore.Get(ctx, userID)
	if err == nil {
		return rec, nil
	}
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	return nil, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
}

// Profile loads a user's profile from the credential store. It says nothing
// about session liveness: a profile can exist for a subject with no live
// session.
//
// Profile may return an error when input validation, dependency calls, or security checks fail.
// Profile does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Profile(ctx context.Context, userID string) (UserRecord, error) {
	if !e.ready() {
		return UserRecord{}, ErrEngineNotReady
	}
	if userID == "" {
		return UserRecord{}, ErrInvalidUserID
	}

	user, err := e.userProvider.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return UserRecord{}, ErrInvalidUserID
		}
		return UserRecord{}, err
	}
	user.PasswordHash = ""
	return user, nil
}

// Ping reports session cache reachability and round-trip time.
//
// Ping may return an error when input validation, dependency calls, or security checks fail.
// Ping does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Ping(ctx context.Context) (time.Duration, error) {
	if !e.ready() {
		return 0, ErrEngineNotReady
	}
	return e.sessionStore.Ping(ctx)
}

// Config returns a copy of the effective engine configuration.
//
// Config does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Config() Config {
	return cloneConfig(e.config)
}
