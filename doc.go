// Package authcore implements the session and credential lifecycle for the
// Bookly API: signed JWT access/refresh tokens, a Redis-backed revocation
// denylist, Argon2id password hashing, role gating, and the out-of-band
// email-verification and password-reset flows.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// authcore is the public surface. It exposes [Engine], [Builder], [Config],
// [Verifier], [RoleGate], and the collaborator interfaces ([UserProvider],
// [Mailer]) a host application must implement. Persistence, HTTP routing, and
// mail transport stay on the host side; the engine only ever sees them
// through those interfaces.
//
// # What this package must NOT do
//
//   - Expose the Redis client, signing secrets, or token encoding details in
//     its public API.
//   - Perform I/O outside of Engine and Verifier methods (construction via
//     Builder is allocation-only until Build).
//   - Distinguish, in any caller-visible way, why a token failed to decode or
//     why a login was rejected.
//
// # Performance contract
//
// Verifier.VerifyToken is the hot path: one token parse plus a single Redis
// round-trip for the revocation lookup. Token issuance and password hashing
// are pure CPU; only the revocation store and the user provider involve I/O.
package authcore
