package internaldefs

import (
	authcore "github.com/booklyhq/authcore"
)

// CounterDef names one engine counter for the exporters.
type CounterDef struct {
	ID   authcore.MetricID
	Name string
	Help string
}

// CounterDefs is the canonical export order for engine counters. Both
// exporters iterate this slice so their output stays consistent.
var CounterDefs = []CounterDef{
	{ID: authcore.MetricLoginSuccess, Name: "authcore_login_success_total", Help: "Successful login attempts."},
	{ID: authcore.MetricLoginFailure, Name: "authcore_login_failure_total", Help: "Failed login attempts."},
	{ID: authcore.MetricRefreshSuccess, Name: "authcore_refresh_success_total", Help: "Successful access-token refreshes."},
	{ID: authcore.MetricRefreshFailure, Name: "authcore_refresh_failure_total", Help: "Failed access-token refreshes."},
	{ID: authcore.MetricLogout, Name: "authcore_logout_total", Help: "Logout operations."},
	{ID: authcore.MetricSignupSuccess, Name: "authcore_signup_success_total", Help: "Successful account registrations."},
	{ID: authcore.MetricSignupDuplicate, Name: "authcore_signup_duplicate_total", Help: "Registrations rejected as duplicate."},
	{ID: authcore.MetricEmailVerifySuccess, Name: "authcore_email_verify_success_total", Help: "Successful email verifications."},
	{ID: authcore.MetricEmailVerifyFailure, Name: "authcore_email_verify_failure_total", Help: "Failed email verifications."},
	{ID: authcore.MetricPasswordResetRequest, Name: "authcore_password_reset_request_total", Help: "Password reset requests."},
	{ID: authcore.MetricPasswordResetConfirmSuccess, Name: "authcore_password_reset_confirm_success_total", Help: "Successful password reset confirmations."},
	{ID: authcore.MetricPasswordResetConfirmFailure, Name: "authcore_password_reset_confirm_failure_total", Help: "Failed password reset confirmations."},
	{ID: authcore.MetricVerifyAccepted, Name: "authcore_verify_accepted_total", Help: "Bearer credentials accepted by a verifier."},
	{ID: authcore.MetricVerifyRejected, Name: "authcore_verify_rejected_total", Help: "Bearer credentials rejected by a verifier."},
	{ID: authcore.MetricVerifyRevoked, Name: "authcore_verify_revoked_total", Help: "Bearer credentials rejected as revoked."},
	{ID: authcore.MetricTokenRevoked, Name: "authcore_token_revoked_total", Help: "Tokens added to the revocation denylist."},
}
