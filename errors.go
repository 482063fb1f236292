package authcore

import "errors"

var (
	// ErrMissingCredential is returned when a request carries no bearer token.
	ErrMissingCredential = errors.New("missing credential")
	// ErrTokenInvalid covers malformed, mis-signed, and expired tokens alike.
	// Callers never learn which of the three failed.
	ErrTokenInvalid = errors.New("invalid or expired token")
	// ErrTokenRevoked is returned when a token's jti is on the denylist.
	ErrTokenRevoked = errors.New("token revoked")
	// ErrWrongTokenKind is returned when a refresh token is presented where an
	// access token is expected, or the reverse.
	ErrWrongTokenKind = errors.New("wrong token kind")
	// ErrInsufficientRole is returned by role-gated checks.
	ErrInsufficientRole = errors.New("insufficient role")
	// ErrAccountExists is returned by Signup for an already-registered email.
	ErrAccountExists = errors.New("account already exists")
	// ErrInvalidCredentials is returned by Login for both unknown emails and
	// wrong passwords, with no distinguishable signal between the two.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned when an embedded email no longer resolves.
	ErrUserNotFound = errors.New("user not found")
	// ErrPasswordMismatch is returned by ConfirmPasswordReset when the two
	// submitted passwords differ.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrPasswordPolicy is returned when a new password fails the length floor.
	ErrPasswordPolicy = errors.New("password policy violation")
	// ErrUnavailable wraps revocation-store or user-provider transport faults.
	// It is the only infrastructure-class error the engine surfaces.
	ErrUnavailable = errors.New("auth backend unavailable")
	// ErrEngineNotReady is returned when an Engine method is called on a nil
	// or incompletely built engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)

// ErrorCode maps an engine error to its stable machine-readable rejection
// code. Unrecognized errors map to "unavailable" so transport faults are
// never mistaken for authentication-logic rejections.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrMissingCredential):
		return "missing_credential"
	case errors.Is(err, ErrTokenInvalid):
		return "invalid_or_expired"
	case errors.Is(err, ErrTokenRevoked):
		return "revoked"
	case errors.Is(err, ErrWrongTokenKind):
		return "wrong_token_kind"
	case errors.Is(err, ErrInsufficientRole):
		return "insufficient_role"
	case errors.Is(err, ErrAccountExists):
		return "already_exists"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, ErrPasswordMismatch):
		return "password_mismatch"
	case errors.Is(err, ErrPasswordPolicy):
		return "password_policy"
	case errors.Is(err, ErrEngineNotReady):
		return "not_ready"
	default:
		return "unavailable"
	}
}
