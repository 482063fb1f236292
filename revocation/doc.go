// Package revocation implements the Redis-backed token denylist consulted on
// every protected request.
package revocation
