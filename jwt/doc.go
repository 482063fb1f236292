// Package jwt wraps golang-jwt with the two token formats the engine
// issues: session tokens (access/refresh pairs sharing one HS256 secret)
// and single-use action tokens signed in a separate secret+salt domain.
//
// Decode failures are deliberately opaque. Both codecs collapse malformed
// structure, signature mismatch, and elapsed expiry into [ErrInvalidToken]
// so callers cannot leak which check failed.
package jwt
