package authcore

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return mr, rdb
}

// fakeUserProvider is an in-memory UserProvider keyed by email.
type fakeUserProvider struct {
	mu     sync.Mutex
	users  map[string]*Identity
	nextID int
	// failAll makes every method report a backend fault.
	failAll bool
}

func newFakeUserProvider() *fakeUserProvider {
	return &fakeUserProvider{users: map[string]*Identity{}}
}

func (f *fakeUserProvider) FindUserByEmail(_ context.Context, email string) (*Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errors.New("backend down")
	}
	u, ok := f.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserProvider) CreateUser(_ context.Context, input CreateUserInput) (*Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errors.New("backend down")
	}
	f.nextID++
	u := &Identity{
		ID:           "u" + strconv.Itoa(f.nextID),
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: input.PasswordHash,
		Role:         input.Role,
	}
	f.users[input.Email] = u
	cp := *u
	return &cp, nil
}

func (f *fakeUserProvider) UpdateUser(_ context.Context, id string, fields UserUpdate) (*Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errors.New("backend down")
	}
	for _, u := range f.users {
		if u.ID != id {
			continue
		}
		if fields.Verified != nil {
			u.Verified = *fields.Verified
		}
		if fields.PasswordHash != nil {
			u.PasswordHash = *fields.PasswordHash
		}
		cp := *u
		return &cp, nil
	}
	return nil, errors.New("no such user")
}

// seedUser registers a user directly, bypassing Signup.
func (f *fakeUserProvider) seedUser(t *testing.T, e *Engine, email, plain, role string) *Identity {
	t.Helper()

	hash, err := e.hasher.Hash(plain)
	if err != nil {
		t.Fatalf("seed hash failed: %v", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	u := &Identity{
		ID:           "u" + strconv.Itoa(f.nextID),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Verified:     true,
	}
	f.users[email] = u
	cp := *u
	return &cp
}

// captureMailer records delivered messages. Assert only after Engine.Close,
// which drains the dispatcher queue.
type captureMailer struct {
	mu       sync.Mutex
	messages []Message
	fail     bool
}

func (m *captureMailer) Send(_ context.Context, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("smtp down")
	}
	m.messages = append(m.messages, msg)
	return nil
}

func (m *captureMailer) sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.messages))
	copy(out, m.messages)
	return out
}

func testConfig() Config {
	cfg := defaultConfig()
	cfg.JWT.Secret = []byte("0123456789abcdef0123456789abcdef")
	cfg.JWT.Leeway = 0
	cfg.ActionToken.Secret = []byte("fedcba9876543210fedcba9876543210")
	// Cheapest parameters the hasher accepts, to keep tests fast.
	cfg.Password.Memory = 8 * 1024
	cfg.Password.Time = 1
	cfg.Password.Parallelism = 1
	cfg.Password.SaltLength = 16
	cfg.Password.KeyLength = 16
	cfg.Mail.VerifyURL = "https://bookly.test/verify/%s"
	cfg.Mail.ResetURL = "https://bookly.test/reset/%s"
	return cfg
}

func newTestEngine(t *testing.T, rdb *redis.Client, up UserProvider, mailer Mailer) *Engine {
	t.Helper()

	engine, err := New().
		WithConfig(testConfig()).
		WithRedis(rdb).
		WithUserProvider(up).
		WithMailer(mailer).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	return engine
}

func issueTestAccess(t *testing.T, e *Engine, payload map[string]any) string {
	t.Helper()

	token, err := e.codec.Issue(payload, time.Hour, false)
	if err != nil {
		t.Fatalf("issue access token failed: %v", err)
	}
	return token
}
