package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is the single decode failure both codecs return. It covers
// malformed structure, signature mismatch, and elapsed expiry without
// distinguishing between them.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the session-token payload. User is the opaque identity mapping
// supplied at issuance (email, subject id, role); Refresh distinguishes
// refresh tokens from access tokens; the registered JTI is the revocation
// key.
type Claims struct {
	User    map[string]any `json:"user"`
	Refresh bool           `json:"refresh"`
	jwt.RegisteredClaims
}

// Config holds the shared secret and verification options for session
// tokens. TTLs are chosen per call by the engine, not here.
type Config struct {
	Secret []byte
	Issuer string
	Leeway time.Duration
}

// Codec issues and verifies session tokens. Immutable after construction and
// safe for concurrent use.
type Codec struct {
	config Config
}

// NewCodec validates the signing configuration.
func NewCodec(cfg Config) (*Codec, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("hs256 requires a secret")
	}
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}
	return &Codec{config: cfg}, nil
}

// Issue signs a token embedding payload, a fresh jti, an absolute expiry of
// now+ttl, and the refresh flag. Every call produces a distinct jti.
func (c *Codec) Issue(payload map[string]any, ttl time.Duration, refresh bool) (string, error) {
	if ttl <= 0 {
		return "", errors.New("invalid token ttl")
	}

	now := time.Now()
	claims := Claims{
		User:    payload,
		Refresh: refresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    c.config.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.config.Secret)
}

// Decode verifies signature and expiry in one step. Any failure returns
// [ErrInvalidToken]; the underlying library error is never surfaced.
func (c *Codec) Decode(tokenStr string) (*Claims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if c.config.Leeway > 0 {
		options = append(options, jwt.WithLeeway(c.config.Leeway))
	}
	if c.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(c.config.Issuer))
	}

	parser := jwt.NewParser(options...)
	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return c.config.Secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
