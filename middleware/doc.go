// Package middleware exposes HTTP adapters for cookie-based authentication
// built on top of cookieAuth.Engine.
//
// # Guards
//
//   - [Guard] — reads the auth cookie pair, authenticates, renews silently.
//   - [RequireRole] — role gate layered after Guard.
//
// Guard reads both cookies, calls Engine.Authenticate, and injects the result
// into the request context. When the access token expired and renewal
// succeeded, the replacement pair is written back as cookies on the same
// response.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT
// implement authentication logic itself — all decisions are delegated to
// Engine.Authenticate and Engine.Authorize.
//
// # What this package must NOT do
//
//   - Parse or create JWTs directly (delegates to Engine).
//   - Access Redis (Engine handles I/O).
//   - Invent its own response shapes (uses the cookieAuth envelope).
package middleware
