package authcore

import (
	"context"
	"errors"

	"github.com/booklyhq/authcore/password"
)

// LoginResult is the issued token pair plus the authenticated identity.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         *Identity
}

// Login checks the password and issues an access/refresh pair. The access
// token embeds email, subject id, and role; the refresh token embeds only
// email and subject id. Unknown email and wrong password both return
// [ErrInvalidCredentials] with no distinguishable signal.
func (e *Engine) Login(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	if e == nil || e.users == nil {
		return nil, ErrEngineNotReady
	}

	user, err := e.users.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, providerFault(err)
	}
	if user == nil {
		e.metricInc(MetricLoginFailure)
		return nil, ErrInvalidCredentials
	}

	ok, err := e.hasher.Verify(plainPassword, user.PasswordHash)
	if err != nil {
		// A stored hash that no longer parses is a data fault, but the caller
		// still only learns "invalid credentials".
		if errors.Is(err, password.ErrHashFormat) {
			e.logger.Error("stored password hash unreadable", "user", user.ID)
		}
		e.metricInc(MetricLoginFailure)
		return nil, ErrInvalidCredentials
	}
	if !ok {
		e.metricInc(MetricLoginFailure)
		return nil, ErrInvalidCredentials
	}

	access, err := e.codec.Issue(map[string]any{
		ClaimEmail: user.Email,
		ClaimUID:   user.ID,
		ClaimRole:  user.Role,
	}, e.config.JWT.AccessTTL, false)
	if err != nil {
		return nil, providerFault(err)
	}

	refresh, err := e.codec.Issue(map[string]any{
		ClaimEmail: user.Email,
		ClaimUID:   user.ID,
	}, e.config.JWT.RefreshTTL, true)
	if err != nil {
		return nil, providerFault(err)
	}

	e.metricInc(MetricLoginSuccess)
	return &LoginResult{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user,
	}, nil
}
