// Package jwt implements the two-secret token codec used by cookieAuth:
// HS256-signed access tokens (minutes) and refresh tokens (days), each bound
// to its own signing secret.
//
// # Security contract
//
// Signature verification is unconditional and always precedes expiry
// inspection. There is no non-verifying decode: an expired access token is
// only ever surfaced as verified claims plus [ErrExpired], which is the sole
// entry point into the renewal flow.
//
// # What this package must NOT do
//
//   - Touch Redis or any session state (stateless by design).
//   - Accept tokens signed with an unexpected algorithm.
//   - Share a secret between the access and refresh kinds.
package jwt
