// Package password provides argon2id password hashing in the PHC string
// format, with constant-time verification and parameter-upgrade detection.
package password
