package authcore

import (
	"errors"
	"log/slog"

	"github.com/booklyhq/authcore/jwt"
	"github.com/booklyhq/authcore/password"
	"github.com/booklyhq/authcore/revocation"
	"github.com/redis/go-redis/v9"
)

// Builder assembles an [Engine]. Construction is allocation-only; no I/O
// happens until the engine's methods are called.
type Builder struct {
	config Config
	redis  *redis.Client
	users  UserProvider
	mailer Mailer
	logger *slog.Logger
	built  bool
}

// New returns a Builder seeded with defaults. Secrets, the Redis client, and
// the user provider must still be supplied before Build.
func New() *Builder {
	return &Builder{config: defaultConfig()}
}

// WithConfig replaces the entire configuration. Zero-valued fields are
// backfilled from defaults during Build.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithRedis sets the client backing the revocation store. All server
// instances must share one Redis so revocation is effective everywhere.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithUserProvider sets the host's user-lookup collaborator.
func (b *Builder) WithUserProvider(users UserProvider) *Builder {
	b.users = users
	return b
}

// WithMailer sets the outbound mail collaborator. Optional; without it,
// verification and reset messages are silently discarded.
func (b *Builder) WithMailer(mailer Mailer) *Builder {
	b.mailer = mailer
	return b
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithMetricsEnabled toggles the in-process counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration and wires the engine. A Builder is
// single-use.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	if b.redis == nil {
		return nil, errors.New("redis client is required")
	}
	if b.users == nil {
		return nil, errors.New("user provider is required")
	}

	cfg := mergeDefaults(b.config)
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	codec, err := jwt.NewCodec(jwt.Config{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
		Leeway: cfg.JWT.Leeway,
	})
	if err != nil {
		return nil, err
	}

	actions, err := jwt.NewActionCodec(jwt.ActionConfig{
		Secret: cfg.ActionToken.Secret,
		Salt:   cfg.ActionToken.Salt,
		TTL:    cfg.ActionToken.TTL,
	})
	if err != nil {
		return nil, err
	}

	hasher, err := password.NewHasher(password.Params{
		Memory:      cfg.Password.Memory,
		Time:        cfg.Password.Time,
		Parallelism: cfg.Password.Parallelism,
		SaltLength:  cfg.Password.SaltLength,
		KeyLength:   cfg.Password.KeyLength,
	})
	if err != nil {
		return nil, err
	}

	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}

	b.built = true

	return &Engine{
		config:     cfg,
		codec:      codec,
		actions:    actions,
		revocation: revocation.NewStore(b.redis, cfg.Revocation.KeyPrefix, cfg.Revocation.TTL),
		hasher:     hasher,
		users:      b.users,
		mail:       newMailDispatcher(cfg.Mail, b.mailer, logger),
		metrics:    NewMetrics(cfg.Metrics),
		logger:     logger,
	}, nil
}
