package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	authcore "github.com/booklyhq/authcore"
	"github.com/booklyhq/authcore/jwt"
)

type claimsContextKey struct{}

// ClaimsFromContext returns the verified claims stored by [Guard].
func ClaimsFromContext(ctx context.Context) (*jwt.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*jwt.Claims)
	return claims, ok
}

// Guard verifies the request's bearer credential with the given verifier and
// stores the accepted claims in the request context. Rejections are written
// as JSON with the stable code from [authcore.ErrorCode].
func Guard(verifier *authcore.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				writeRejection(w, authcore.ErrEngineNotReady)
				return
			}

			claims, err := verifier.VerifyHeader(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				writeRejection(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAccess guards a route with the engine's access-kind verifier.
func RequireAccess(engine *authcore.Engine) func(http.Handler) http.Handler {
	return Guard(engine.AccessVerifier())
}

// RequireRefresh guards a route with the engine's refresh-kind verifier.
func RequireRefresh(engine *authcore.Engine) func(http.Handler) http.Handler {
	return Guard(engine.RefreshVerifier())
}

type rejection struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeRejection(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusFor(err))
	_ = json.NewEncoder(w).Encode(rejection{
		Error: err.Error(),
		Code:  authcore.ErrorCode(err),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, authcore.ErrInsufficientRole):
		return http.StatusForbidden
	case errors.Is(err, authcore.ErrMissingCredential),
		errors.Is(err, authcore.ErrTokenInvalid),
		errors.Is(err, authcore.ErrTokenRevoked),
		errors.Is(err, authcore.ErrWrongTokenKind):
		return http.StatusUnauthorized
	default:
		return http.StatusServiceUnavailable
	}
}
