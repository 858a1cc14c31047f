// Package session provides the Redis-backed session cache and the compact
// binary record encoding used on authentication hot paths.
//
// # Binary encoding
//
// Records are stored as a flat binary blob: a format version byte,
// length-prefixed string fields, a verified flag, and big-endian timestamps.
// Decoding is strict — any structural defect yields [ErrCorrupt], which the
// store reports as a cache miss so a poisoned entry can only ever force a
// re-login.
//
// # Architecture boundaries
//
// The store exposes Save/Get/Delete/Touch keyed by subject identifier and
// nothing else. It never interprets roles or tokens; those concerns live in
// the root package and jwt package respectively.
package session
