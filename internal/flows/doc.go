// Package flows contains pure-function orchestrators for every Engine
// operation: login, per-request authentication, token renewal, logout, and
// account creation.
//
// Each flow function (RunLogin, RunAuthenticate, RunRenew, ...) accepts a
// typed dependency struct and returns an explicit result value — attached or
// rejected with a classified failure kind — instead of threading control
// through callbacks. This keeps the branching semantics testable with fake
// codecs and stores, without a simulated request/response pair.
//
// # What this package must NOT do
//
//   - Hold mutable state between calls.
//   - Import the root package (no import cycles).
//   - Perform I/O directly — all I/O is mediated through dependency
//     interfaces owned by the Engine.
package flows
