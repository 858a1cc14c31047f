package flows

import "context"

// Service is the centralized flow runner built once by the root engine.
type Service struct {
	deps Deps
}

// New returns a flow service with immutable dependency wiring.
func New(deps Deps) Service {
	return Service{deps: deps}
}

// Initialized reports whether the service has been wired with flow deps.
func (s Service) Initialized() bool {
	return s.deps.Authenticate.ParseAccess != nil
}

func (s Service) Login(ctx context.Context, email, password string) LoginResult {
	return RunLogin(ctx, email, password, s.deps.Login)
}

func (s Service) Authenticate(ctx context.Context, accessToken, refreshToken string) Outcome {
	return RunAuthenticate(ctx, accessToken, refreshToken, s.deps.Authenticate)
}

func (s Service) Renew(ctx context.Context, refreshToken string) RenewResult {
	return RunRenew(ctx, refreshToken, s.deps.Renew)
}

func (s Service) Logout(ctx context.Context, accessToken string) LogoutResult {
	return RunLogout(ctx, accessToken, s.deps.Logout)
}

func (s Service) CreateAccount(ctx context.Context, req AccountCreateRequest) (UserRecord, error) {
	return RunCreateAccount(ctx, req, s.deps.Account)
}
