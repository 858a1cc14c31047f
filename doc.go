// Package cookieAuth provides a cookie-based authentication engine with a JWT
// access/refresh token pair, a Redis-backed session cache keyed by subject,
// silent renewal of expired access tokens, and role-gated authorization.
//
// The package is designed for concurrent server workloads: Engine methods are safe to call
// from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// cookieAuth is the public surface. It exposes [Engine], [Builder], [Config], and value
// types (AuthResult, MetricsSnapshot, etc.). All internal coordination — flow
// orchestration, session encoding, rate limiting, audit dispatch — lives under internal/
// and is never exported.
//
// # What this package must NOT do
//
//   - Expose Redis clients, internal stores, or encoding details in its public API.
//   - Perform I/O outside of Engine methods (construction via Builder is allocation-only
//     until Build).
//   - Import any sub-package that re-imports cookieAuth (no import cycles).
//
// # Performance contract
//
// Authenticate is the hot path. The fast case (live access token, cached session) costs
// one signature verification and one Redis round-trip. Renewal adds one TTL refresh;
// Login, Logout, and Register are allowed one Redis round-trip plus provider calls.
package cookieAuth
