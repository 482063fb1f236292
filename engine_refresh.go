package authcore

import (
	"context"
	"time"

	"github.com/booklyhq/authcore/jwt"
)

// Refresh issues a new access token from claims already accepted by the
// refresh-kind [Verifier]. The embedded expiry is re-checked here even
// though the codec already enforced it; a stale claims value handed in by
// the caller must not mint tokens.
//
// The new token carries a fresh jti and the same user payload the refresh
// token was issued with.
func (e *Engine) Refresh(ctx context.Context, claims *jwt.Claims) (string, error) {
	if e == nil || e.codec == nil {
		return "", ErrEngineNotReady
	}
	if claims == nil {
		e.metricInc(MetricRefreshFailure)
		return "", ErrTokenInvalid
	}
	if !claims.Refresh {
		e.metricInc(MetricRefreshFailure)
		return "", ErrWrongTokenKind
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.Time.After(time.Now()) {
		e.metricInc(MetricRefreshFailure)
		return "", ErrTokenInvalid
	}

	access, err := e.codec.Issue(claims.User, e.config.JWT.AccessTTL, false)
	if err != nil {
		return "", providerFault(err)
	}

	e.metricInc(MetricRefreshSuccess)
	return access, nil
}
