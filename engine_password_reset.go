package authcore

import (
	"context"
	"fmt"
)

// RequestPasswordReset queues a reset email carrying a single-use action
// token scoped to the email. It reports success whether or not the email is
// registered, so callers cannot enumerate accounts; for unknown emails no
// token is minted and no mail is sent.
func (e *Engine) RequestPasswordReset(ctx context.Context, email string) error {
	if e == nil || e.users == nil {
		return ErrEngineNotReady
	}

	user, err := e.users.FindUserByEmail(ctx, email)
	if err != nil {
		return providerFault(err)
	}
	e.metricInc(MetricPasswordResetRequest)
	if user == nil {
		return nil
	}

	token, err := e.actions.Seal(map[string]string{
		"email":   email,
		"purpose": actionPurposeReset,
	})
	if err != nil {
		e.logger.Error("reset token issue failed", "error", err)
		return nil
	}

	e.mail.Enqueue(ctx, Message{
		Recipients: []string{email},
		Subject:    "Reset your password",
		Body:       resetMailBody(e.config.Mail.ResetURL, token),
	})

	return nil
}

// ConfirmPasswordReset consumes a reset action token and stores the new
// password hash. Failure order matters: an undecodable or wrong-purpose
// token fails with [ErrTokenInvalid], mismatched passwords fail with
// [ErrPasswordMismatch] before any lookup, and only then can
// [ErrUserNotFound] occur. No state is mutated on any failure path.
func (e *Engine) ConfirmPasswordReset(ctx context.Context, token, newPassword, confirmPassword string) error {
	if e == nil || e.users == nil {
		return ErrEngineNotReady
	}

	data, err := e.actions.Open(token)
	if err != nil {
		e.metricInc(MetricPasswordResetConfirmFailure)
		return ErrTokenInvalid
	}
	email := data["email"]
	if data["purpose"] != actionPurposeReset || email == "" {
		e.metricInc(MetricPasswordResetConfirmFailure)
		return ErrTokenInvalid
	}

	if newPassword != confirmPassword {
		e.metricInc(MetricPasswordResetConfirmFailure)
		return ErrPasswordMismatch
	}
	if len(newPassword) < e.config.Password.MinLength {
		e.metricInc(MetricPasswordResetConfirmFailure)
		return ErrPasswordPolicy
	}

	user, err := e.users.FindUserByEmail(ctx, email)
	if err != nil {
		return providerFault(err)
	}
	if user == nil {
		e.metricInc(MetricPasswordResetConfirmFailure)
		return ErrUserNotFound
	}

	hash, err := e.hasher.Hash(newPassword)
	if err != nil {
		return providerFault(err)
	}

	if _, err := e.users.UpdateUser(ctx, user.ID, UserUpdate{PasswordHash: &hash}); err != nil {
		return providerFault(err)
	}

	e.metricInc(MetricPasswordResetConfirmSuccess)
	return nil
}

func resetMailBody(urlTemplate, token string) string {
	link := token
	if urlTemplate != "" {
		link = fmt.Sprintf(urlTemplate, token)
	}
	return fmt.Sprintf(
		"<h1>Reset Your Password</h1><p>Please click this <a href=%q>link</a> to reset your password</p>",
		link,
	)
}
