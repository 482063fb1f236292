package authcore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/booklyhq/authcore/jwt"
	"github.com/booklyhq/authcore/password"
	"github.com/booklyhq/authcore/revocation"
)

// Claim keys used in the session-token user payload.
const (
	ClaimEmail = "email"
	ClaimUID   = "user_uid"
	ClaimRole  = "role"
)

// Engine orchestrates the session lifecycle: signup, email verification,
// login, refresh, logout, and password reset. It is immutable after
// [Builder.Build]; the Redis-backed revocation store is the only shared
// mutable state it touches.
type Engine struct {
	config     Config
	codec      *jwt.Codec
	actions    *jwt.ActionCodec
	revocation *revocation.Store
	hasher     *password.Hasher
	users      UserProvider
	mail       *mailDispatcher
	metrics    *Metrics
	logger     *slog.Logger
}

// Close drains the mail dispatcher. The engine must not be used afterwards.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.mail != nil {
		e.mail.Close()
	}
}

// AccessVerifier returns the verifier protected API endpoints use.
func (e *Engine) AccessVerifier() *Verifier {
	return e.verifier(KindAccess)
}

// RefreshVerifier returns the verifier the token-refresh endpoint uses.
func (e *Engine) RefreshVerifier() *Verifier {
	return e.verifier(KindRefresh)
}

func (e *Engine) verifier(kind TokenKind) *Verifier {
	if e == nil {
		return nil
	}
	return &Verifier{
		codec:      e.codec,
		revocation: e.revocation,
		kind:       kind,
		metrics:    e.metrics,
	}
}

// MetricsSnapshot exposes the counter state for the exporters under
// metrics/export.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return e.metrics.Snapshot()
}

// MailDropped reports outbound messages discarded under backpressure.
func (e *Engine) MailDropped() uint64 {
	if e == nil {
		return 0
	}
	return e.mail.Dropped()
}

// CurrentUser resolves verified claims back to the full identity. The email
// claim is authoritative; a token whose email no longer resolves yields
// [ErrUserNotFound].
func (e *Engine) CurrentUser(ctx context.Context, claims *jwt.Claims) (*Identity, error) {
	if e == nil || e.users == nil {
		return nil, ErrEngineNotReady
	}
	if claims == nil {
		return nil, ErrTokenInvalid
	}

	email, _ := claims.User[ClaimEmail].(string)
	if email == "" {
		return nil, ErrTokenInvalid
	}

	user, err := e.users.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, providerFault(err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil {
		return
	}
	e.metrics.Inc(id)
}

// providerFault classifies a user-provider error as an infrastructure fault.
func providerFault(err error) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
