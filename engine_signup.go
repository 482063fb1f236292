package authcore

import (
	"context"
	"fmt"
)

// SignupInput carries the fields of a registration request.
type SignupInput struct {
	Email    string
	Username string
	Password string
}

const (
	actionPurposeVerify = "verify_email"
	actionPurposeReset  = "password_reset"
)

// Signup registers a new, unverified identity and queues a verification
// email carrying a single-use action token. The email is fire-and-forget:
// delivery failure is logged by the dispatcher and never fails the signup.
//
// Returns [ErrAccountExists] when the email is already registered.
func (e *Engine) Signup(ctx context.Context, input SignupInput) (*Identity, error) {
	if e == nil || e.users == nil {
		return nil, ErrEngineNotReady
	}
	if len(input.Password) < e.config.Password.MinLength {
		return nil, ErrPasswordPolicy
	}

	existing, err := e.users.FindUserByEmail(ctx, input.Email)
	if err != nil {
		return nil, providerFault(err)
	}
	if existing != nil {
		e.metricInc(MetricSignupDuplicate)
		return nil, ErrAccountExists
	}

	hash, err := e.hasher.Hash(input.Password)
	if err != nil {
		return nil, providerFault(err)
	}

	user, err := e.users.CreateUser(ctx, CreateUserInput{
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: hash,
		Role:         RoleUser,
	})
	if err != nil {
		return nil, providerFault(err)
	}

	token, err := e.actions.Seal(map[string]string{
		"email":   input.Email,
		"purpose": actionPurposeVerify,
	})
	if err != nil {
		// The account exists either way; the host can re-trigger verification.
		e.logger.Error("verification token issue failed", "error", err)
	} else {
		e.mail.Enqueue(ctx, Message{
			Recipients: []string{input.Email},
			Subject:    "Verify your email",
			Body:       verifyMailBody(e.config.Mail.VerifyURL, token),
		})
	}

	e.metricInc(MetricSignupSuccess)
	return user, nil
}

func verifyMailBody(urlTemplate, token string) string {
	link := token
	if urlTemplate != "" {
		link = fmt.Sprintf(urlTemplate, token)
	}
	return fmt.Sprintf(
		"<h1>Verify your Email</h1><p>Please click this <a href=%q>verification link</a> to verify your email</p>",
		link,
	)
}
