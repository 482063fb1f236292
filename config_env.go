package authcore

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig is the flat environment-variable surface for hosts that
// configure the engine from the process environment rather than code.
type envConfig struct {
	JWTSecret         string        `env:"AUTH_JWT_SECRET,notEmpty"`
	AccessTTL         time.Duration `env:"AUTH_ACCESS_TTL" envDefault:"1h"`
	RefreshTTL        time.Duration `env:"AUTH_REFRESH_TTL" envDefault:"48h"`
	Issuer            string        `env:"AUTH_ISSUER"`
	ActionTokenSecret string        `env:"AUTH_ACTION_SECRET,notEmpty"`
	ActionTokenSalt   string        `env:"AUTH_ACTION_SALT" envDefault:"authcore-action"`
	ActionTokenTTL    time.Duration `env:"AUTH_ACTION_TTL" envDefault:"1h"`
	RevocationPrefix  string        `env:"AUTH_REVOCATION_PREFIX" envDefault:"blk"`
	RevocationTTL     time.Duration `env:"AUTH_REVOCATION_TTL" envDefault:"1h"`
	VerifyURL         string        `env:"AUTH_VERIFY_URL"`
	ResetURL          string        `env:"AUTH_RESET_URL"`
	MetricsEnabled    bool          `env:"AUTH_METRICS_ENABLED" envDefault:"true"`
}

// ConfigFromEnv builds a Config from AUTH_* environment variables. Fields
// not exposed through the environment (Argon2 parameters, mail buffering)
// keep their defaults.
func ConfigFromEnv() (Config, error) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return Config{}, fmt.Errorf("parse auth environment: %w", err)
	}

	cfg := defaultConfig()
	cfg.JWT.Secret = []byte(ec.JWTSecret)
	cfg.JWT.AccessTTL = ec.AccessTTL
	cfg.JWT.RefreshTTL = ec.RefreshTTL
	cfg.JWT.Issuer = ec.Issuer
	cfg.ActionToken.Secret = []byte(ec.ActionTokenSecret)
	cfg.ActionToken.Salt = ec.ActionTokenSalt
	cfg.ActionToken.TTL = ec.ActionTokenTTL
	cfg.Revocation.KeyPrefix = ec.RevocationPrefix
	cfg.Revocation.TTL = ec.RevocationTTL
	cfg.Mail.VerifyURL = ec.VerifyURL
	cfg.Mail.ResetURL = ec.ResetURL
	cfg.Metrics.Enabled = ec.MetricsEnabled

	return cfg, nil
}
