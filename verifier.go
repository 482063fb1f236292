package authcore

import (
	"context"
	"fmt"
	"strings"

	"github.com/booklyhq/authcore/jwt"
	"github.com/booklyhq/authcore/revocation"
)

// TokenKind selects which token flavor a [Verifier] accepts.
type TokenKind uint8

const (
	// KindAccess accepts short-lived API tokens and rejects refresh tokens.
	KindAccess TokenKind = iota
	// KindRefresh accepts refresh tokens and rejects access tokens.
	KindRefresh
)

// Verifier classifies a bearer credential into accepted claims or a
// rejection. The two kinds differ only in the final flag check; there is one
// parameterized implementation, not two.
//
// Pipeline per request: bearer extraction, codec decode, revocation lookup,
// kind check. The first failing step terminates with its rejection; the
// revocation lookup is the only I/O.
type Verifier struct {
	codec      *jwt.Codec
	revocation *revocation.Store
	kind       TokenKind
	metrics    *Metrics
}

// NewVerifier builds a standalone verifier. Engines hand out pre-wired ones
// via [Engine.AccessVerifier] and [Engine.RefreshVerifier]; this constructor
// exists for hosts that validate tokens outside an engine.
func NewVerifier(codec *jwt.Codec, store *revocation.Store, kind TokenKind) *Verifier {
	return &Verifier{codec: codec, revocation: store, kind: kind}
}

// VerifyHeader runs the full pipeline against an Authorization header value.
func (v *Verifier) VerifyHeader(ctx context.Context, header string) (*jwt.Claims, error) {
	if v == nil {
		return nil, ErrEngineNotReady
	}

	token, ok := bearerToken(header)
	if !ok {
		v.metrics.Inc(MetricVerifyRejected)
		return nil, ErrMissingCredential
	}
	return v.VerifyToken(ctx, token)
}

// VerifyToken decodes, checks revocation, and checks the token kind. On
// success it returns the embedded claims.
func (v *Verifier) VerifyToken(ctx context.Context, token string) (*jwt.Claims, error) {
	if v == nil || v.codec == nil || v.revocation == nil {
		return nil, ErrEngineNotReady
	}

	claims, err := v.codec.Decode(token)
	if err != nil {
		v.metrics.Inc(MetricVerifyRejected)
		return nil, ErrTokenInvalid
	}

	revoked, err := v.revocation.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if revoked {
		v.metrics.Inc(MetricVerifyRevoked)
		return nil, ErrTokenRevoked
	}

	if claims.Refresh != (v.kind == KindRefresh) {
		v.metrics.Inc(MetricVerifyRejected)
		return nil, ErrWrongTokenKind
	}

	v.metrics.Inc(MetricVerifyAccepted)
	return claims, nil
}

// Kind reports which token flavor this verifier accepts.
func (v *Verifier) Kind() TokenKind {
	return v.kind
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}
