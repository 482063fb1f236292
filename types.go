package authcore

import "context"

// Role names form a closed set. New identities default to RoleUser.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Identity is the authenticated principal as seen by the auth core. The host
// application owns the full user record; the engine only reads and writes the
// fields below.
type Identity struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	Role         string
	Verified     bool
}

// CreateUserInput carries the fields Signup hands to the user provider.
// PasswordHash is already an Argon2id PHC string; the plaintext never
// crosses this boundary.
type CreateUserInput struct {
	Email        string
	Username     string
	PasswordHash string
	Role         string
}

// UserProvider is the interface a host application implements to integrate
// authcore with its user database. All methods must be safe for concurrent
// use. Lookup misses are reported as (nil, nil), not as errors: an error
// return means the backend itself is unavailable and is surfaced to callers
// as [ErrUnavailable].
type UserProvider interface {
	FindUserByEmail(ctx context.Context, email string) (*Identity, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*Identity, error)
	UpdateUser(ctx context.Context, id string, fields UserUpdate) (*Identity, error)
}

// UserUpdate is a partial update; nil fields are left untouched.
type UserUpdate struct {
	Verified     *bool
	PasswordHash *string
}

// Message is an outbound email handed to the host's [Mailer].
type Message struct {
	Recipients []string
	Subject    string
	Body       string
}

// Mailer delivers email on behalf of the engine. Delivery runs on the mail
// dispatcher's goroutine, never on a request path; a returned error is
// logged and counted but does not fail the operation that queued the
// message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// NoOpMailer discards every message. It is the default when no Mailer is
// configured.
type NoOpMailer struct{}

// Send implements [Mailer].
func (NoOpMailer) Send(context.Context, Message) error { return nil }
