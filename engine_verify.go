package authcore

import "context"

// VerifyEmail consumes a verification action token and marks the embedded
// identity verified. Nothing is mutated on a bad token: an undecodable
// token, a token sealed for another purpose, or a missing email claim all
// return [ErrTokenInvalid] before any provider write.
func (e *Engine) VerifyEmail(ctx context.Context, token string) (*Identity, error) {
	if e == nil || e.users == nil {
		return nil, ErrEngineNotReady
	}

	data, err := e.actions.Open(token)
	if err != nil {
		e.metricInc(MetricEmailVerifyFailure)
		return nil, ErrTokenInvalid
	}
	if data["purpose"] != actionPurposeVerify || data["email"] == "" {
		e.metricInc(MetricEmailVerifyFailure)
		return nil, ErrTokenInvalid
	}

	user, err := e.users.FindUserByEmail(ctx, data["email"])
	if err != nil {
		return nil, providerFault(err)
	}
	if user == nil {
		e.metricInc(MetricEmailVerifyFailure)
		return nil, ErrUserNotFound
	}

	verified := true
	updated, err := e.users.UpdateUser(ctx, user.ID, UserUpdate{Verified: &verified})
	if err != nil {
		return nil, providerFault(err)
	}

	e.metricInc(MetricEmailVerifySuccess)
	return updated, nil
}
