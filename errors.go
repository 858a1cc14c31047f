package cookieAuth

import "errors"

var (
	// ErrInvalidCredentials is an exported constant or variable used by the authentication engine.
	ErrInvalidCredentials = errors.New("Invalid email or password")
	// ErrUserNotFound is an exported constant or variable used by the authentication engine.
	ErrUserNotFound = errors.New("user not found")
	// ErrAccountExists is an exported constant or variable used by the authentication engine.
	ErrAccountExists = errors.New("Email already exist")
	// ErrAccountInvalid is an exported constant or variable used by the authentication engine.
	ErrAccountInvalid = errors.New("invalid account creation request")
	// ErrLoginRateLimited is an exported constant or variable used by the authentication engine.
	ErrLoginRateLimited = errors.New("Too many login attempts, please try again later")
	// ErrTokenMissing is an exported constant or variable used by the authentication engine.
	ErrTokenMissing = errors.New("Please login to access this resource")
	// ErrTokenInvalid is an exported constant or variable used by the authentication engine.
	ErrTokenInvalid = errors.New("Invalid token, please login again")
	// ErrSessionExpired is an exported constant or variable used by the authentication engine.
	ErrSessionExpired = errors.New("Token expired, please login again")
	// ErrSessionNotFound is an exported constant or variable used by the authentication engine.
	ErrSessionNotFound = errors.New("Please login to access this resource")
	// ErrSessionCreationFailed is an exported constant or variable used by the authentication engine.
	ErrSessionCreationFailed = errors.New("session creation failed")
	// ErrPermissionDenied is an exported constant or variable used by the authentication engine.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrCacheUnavailable is an exported constant or variable used by the authentication engine.
	ErrCacheUnavailable = errors.New("session cache unavailable")
	// ErrInvalidUserID is an exported constant or variable used by the authentication engine.
	ErrInvalidUserID = errors.New("Invalid user id")
	// ErrRouteNotFound is an exported constant or variable used by the authentication engine.
	ErrRouteNotFound = errors.New("route not found")
	// ErrEngineNotReady is an exported constant or variable used by the authentication engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)
