package authcore

import (
	"errors"
	"strings"
	"time"
)

// Config groups every tunable of the engine. Zero values are filled in from
// defaultConfig by [Builder.Build]; secrets have no defaults and must be set.
type Config struct {
	JWT         JWTConfig
	ActionToken ActionTokenConfig
	Password    PasswordConfig
	Revocation  RevocationConfig
	Mail        MailConfig
	Metrics     MetricsConfig
}

/*
====================================
JWT CONFIG
====================================
*/

// JWTConfig controls the session-token codec. Access and refresh lifetimes
// are independent; the refresh lifetime is materially longer.
type JWTConfig struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Issuer     string
	Leeway     time.Duration
}

/*
====================================
ACTION TOKEN CONFIG
====================================
*/

// ActionTokenConfig controls the single-use tokens mailed for email
// verification and password reset. Secret and Salt together form a signing
// domain distinct from the session-token secret, so one token format can
// never be replayed as the other.
type ActionTokenConfig struct {
	Secret []byte
	Salt   string
	TTL    time.Duration
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig holds the Argon2id parameters. Memory is in KiB.
type PasswordConfig struct {
	Memory      uint32
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
	MinLength   int
}

/*
====================================
REVOCATION CONFIG
====================================
*/

// RevocationConfig controls the Redis denylist. TTL bounds worst-case key
// growth: entries older than the longest possible access-token lifetime are
// safe to evict because the token itself already fails expiry verification.
type RevocationConfig struct {
	KeyPrefix string
	TTL       time.Duration
}

/*
====================================
MAIL CONFIG
====================================
*/

// MailConfig controls the asynchronous mail dispatcher and the links
// embedded in outbound messages. VerifyURL and ResetURL are printf-style
// templates receiving the action token as their sole argument.
type MailConfig struct {
	VerifyURL  string
	ResetURL   string
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig toggles the in-process counters read by the exporters under
// metrics/export.
type MetricsConfig struct {
	Enabled bool
}

func defaultConfig() Config {
	return Config{
		JWT: JWTConfig{
			AccessTTL:  time.Hour,
			RefreshTTL: 48 * time.Hour,
			Leeway:     30 * time.Second,
		},
		ActionToken: ActionTokenConfig{
			Salt: "authcore-action",
			TTL:  time.Hour,
		},
		Password: PasswordConfig{
			Memory:      64 * 1024,
			Time:        3,
			Parallelism: 2,
			SaltLength:  16,
			KeyLength:   32,
			MinLength:   8,
		},
		Revocation: RevocationConfig{
			KeyPrefix: "blk",
			TTL:       time.Hour,
		},
		Mail: MailConfig{
			BufferSize: 64,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// mergeDefaults fills zero-valued fields so a partially specified Config
// still builds.
func mergeDefaults(cfg Config) Config {
	def := defaultConfig()

	if cfg.JWT.AccessTTL == 0 {
		cfg.JWT.AccessTTL = def.JWT.AccessTTL
	}
	if cfg.JWT.RefreshTTL == 0 {
		cfg.JWT.RefreshTTL = def.JWT.RefreshTTL
	}
	if cfg.JWT.Leeway == 0 {
		cfg.JWT.Leeway = def.JWT.Leeway
	}
	if cfg.ActionToken.Salt == "" {
		cfg.ActionToken.Salt = def.ActionToken.Salt
	}
	if cfg.ActionToken.TTL == 0 {
		cfg.ActionToken.TTL = def.ActionToken.TTL
	}
	if cfg.Password.Memory == 0 {
		cfg.Password = def.Password
	}
	if cfg.Password.MinLength == 0 {
		cfg.Password.MinLength = def.Password.MinLength
	}
	if cfg.Revocation.KeyPrefix == "" {
		cfg.Revocation.KeyPrefix = def.Revocation.KeyPrefix
	}
	if cfg.Revocation.TTL == 0 {
		cfg.Revocation.TTL = def.Revocation.TTL
	}
	if cfg.Mail.BufferSize == 0 {
		cfg.Mail.BufferSize = def.Mail.BufferSize
	}
	return cfg
}

func validateConfig(cfg Config) error {
	if len(cfg.JWT.Secret) < 32 {
		return errors.New("jwt secret must be at least 32 bytes")
	}
	if len(cfg.ActionToken.Secret) < 32 {
		return errors.New("action token secret must be at least 32 bytes")
	}
	if string(cfg.JWT.Secret) == string(cfg.ActionToken.Secret) && strings.TrimSpace(cfg.ActionToken.Salt) == "" {
		return errors.New("action token domain must differ from jwt secret")
	}
	if cfg.JWT.AccessTTL <= 0 || cfg.JWT.RefreshTTL <= 0 {
		return errors.New("invalid TTL configuration")
	}
	if cfg.JWT.RefreshTTL <= cfg.JWT.AccessTTL {
		return errors.New("refresh TTL must exceed access TTL")
	}
	if cfg.JWT.Leeway < 0 || cfg.JWT.Leeway > 2*time.Minute {
		return errors.New("invalid leeway configuration")
	}
	if cfg.ActionToken.TTL <= 0 {
		return errors.New("invalid action token TTL")
	}
	if cfg.Revocation.TTL <= 0 {
		return errors.New("invalid revocation TTL")
	}
	return nil
}
