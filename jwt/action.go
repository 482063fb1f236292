package jwt

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// actionClaims is the single-use action-token payload: a small data mapping
// (typically just the email) plus the registered expiry.
type actionClaims struct {
	Data map[string]string `json:"data"`
	jwt.RegisteredClaims
}

// ActionConfig describes the action-token signing domain. The effective key
// is derived from Secret and Salt together, so action tokens never verify
// under the session secret even if both are configured from the same source
// material.
type ActionConfig struct {
	Secret []byte
	Salt   string
	TTL    time.Duration
}

// ActionCodec seals and opens single-use tokens for email verification and
// password-reset links.
type ActionCodec struct {
	key []byte
	ttl time.Duration
}

// NewActionCodec derives the salted signing key and fixes the expiry window.
func NewActionCodec(cfg ActionConfig) (*ActionCodec, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("action codec requires a secret")
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("invalid action token ttl")
	}

	// The salt keys the derivation, partitioning the signing domain.
	mac := hmac.New(sha256.New, []byte(cfg.Salt))
	mac.Write(cfg.Secret)

	return &ActionCodec{key: mac.Sum(nil), ttl: cfg.TTL}, nil
}

// Seal signs data with the salted key and the codec's expiry window.
func (a *ActionCodec) Seal(data map[string]string) (string, error) {
	now := time.Now()
	claims := actionClaims{
		Data: data,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.key)
}

// Open verifies and returns the sealed data. Failures collapse to
// [ErrInvalidToken].
func (a *ActionCodec) Open(tokenStr string) (map[string]string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &actionClaims{}, func(t *jwt.Token) (interface{}, error) {
		return a.key, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*actionClaims)
	if !ok || !token.Valid || claims.Data == nil {
		return nil, ErrInvalidToken
	}

	return claims.Data, nil
}
