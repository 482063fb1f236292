package revocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrUnavailable classifies Redis transport faults. Callers must treat it as
// an infrastructure error, never as "revoked" or "not revoked".
var ErrUnavailable = errors.New("revocation store unavailable")

// Store is the shared token denylist, keyed by jti. Every server process
// consults the same Redis so a revocation takes effect across all instances.
// Single-key SET/GET are atomic on the Redis side; the store holds no
// in-process state beyond the client handle.
type Store struct {
	redis  *redis.Client
	prefix string
	ttl    time.Duration
}

// NewStore binds the denylist to a Redis client. ttl bounds how long an
// entry is kept; it need only cover the longest possible access-token
// lifetime, since older tokens already fail expiry verification.
func NewStore(client *redis.Client, prefix string, ttl time.Duration) *Store {
	return &Store{
		redis:  client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *Store) key(jti string) string {
	return s.prefix + ":" + jti
}

// Revoke adds jti to the denylist. Idempotent: revoking the same jti twice
// simply refreshes the entry's TTL.
func (s *Store) Revoke(ctx context.Context, jti string) error {
	if err := s.redis.Set(ctx, s.key(jti), "", s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// IsRevoked reports whether jti is on the denylist. Absence means "not known
// to be revoked"; validity still requires a successful decode.
func (s *Store) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := s.redis.Get(ctx, s.key(jti)).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return true, nil
}
