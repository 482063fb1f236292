package authcore

import (
	"context"
	"fmt"

	"github.com/booklyhq/authcore/jwt"
)

// Logout revokes the jti of claims already accepted by the access-kind
// [Verifier]. Only the access token is revoked; the paired refresh token
// stays valid until it expires or is revoked separately.
//
// Revocation is a single atomic Redis write and is idempotent.
func (e *Engine) Logout(ctx context.Context, claims *jwt.Claims) error {
	if e == nil || e.revocation == nil {
		return ErrEngineNotReady
	}
	if claims == nil || claims.ID == "" {
		return ErrTokenInvalid
	}

	if err := e.revocation.Revoke(ctx, claims.ID); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	e.metricInc(MetricTokenRevoked)
	e.metricInc(MetricLogout)
	return nil
}
