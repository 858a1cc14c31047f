package internaldefs

import (
	cookieAuth "github.com/MrEthical07/cookieAuth"
)

// CounterDef defines a public type used by cookieAuth APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   cookieAuth.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by cookieAuth APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   cookieAuth.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the authentication engine.
var CounterDefs = []CounterDef{
	{ID: cookieAuth.MetricLoginSuccess, Name: "cookieauth_login_success_total", Help: "Successful login attempts."},
	{ID: cookieAuth.MetricLoginFailure, Name: "cookieauth_login_failure_total", Help: "Failed login attempts."},
	{ID: cookieAuth.MetricLoginRateLimited, Name: "cookieauth_login_rate_limited_total", Help: "Rate-limited login attempts."},
	{ID: cookieAuth.MetricRegisterSuccess, Name: "cookieauth_register_success_total", Help: "Successful account registrations."},
	{ID: cookieAuth.MetricRegisterFailure, Name: "cookieauth_register_failure_total", Help: "Failed account registrations."},
	{ID: cookieAuth.MetricAuthAttached, Name: "cookieauth_auth_attached_total", Help: "Requests that attached an authenticated session."},
	{ID: cookieAuth.MetricAuthRejected, Name: "cookieauth_auth_rejected_total", Help: "Requests rejected during authentication."},
	{ID: cookieAuth.MetricRenewSuccess, Name: "cookieauth_renew_success_total", Help: "Successful silent token renewals."},
	{ID: cookieAuth.MetricRenewFailure, Name: "cookieauth_renew_failure_total", Help: "Failed token renewal attempts."},
	{ID: cookieAuth.MetricSessionMissing, Name: "cookieauth_session_missing_total", Help: "Authentic tokens rejected because the session record was absent."},
	{ID: cookieAuth.MetricRoleDenied, Name: "cookieauth_role_denied_total", Help: "Requests denied by the role gate."},
	{ID: cookieAuth.MetricLogout, Name: "cookieauth_logout_total", Help: "Logout operations."},
	{ID: cookieAuth.MetricSessionCreated, Name: "cookieauth_session_created_total", Help: "Created sessions."},
	{ID: cookieAuth.MetricSessionInvalidated, Name: "cookieauth_session_invalidated_total", Help: "Invalidated sessions."},
	{ID: cookieAuth.MetricCacheUnavailable, Name: "cookieauth_cache_unavailable_total", Help: "Operations failed by session cache unavailability."},
}

// HistogramDefs is an exported constant or variable used by the authentication engine.
var HistogramDefs = []HistogramDef{
	{ID: cookieAuth.MetricAuthenticateLatency, Name: "cookieauth_authenticate_latency_seconds", Help: "Authenticate call latency."},
}

// HistogramBounds is an exported constant or variable used by the authentication engine.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the authentication engine.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
