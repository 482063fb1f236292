package middleware

import (
	"net/http"

	authcore "github.com/booklyhq/authcore"
)

// RequireRoles layers a role check over a route already wrapped by [Guard].
// It reads the role claim from the verified claims in the context; a missing
// claims value or a role outside the gate's set is rejected. The role check
// stays separate from credential verification so routes can use either
// independently.
func RequireRoles(gate *authcore.RoleGate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeRejection(w, authcore.ErrMissingCredential)
				return
			}

			role, _ := claims.User[authcore.ClaimRole].(string)
			if !gate.AllowedRole(role) {
				writeRejection(w, authcore.ErrInsufficientRole)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
