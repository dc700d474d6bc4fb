package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a token and gives back its claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	// ErrNoSecret means the signing secret was never configured. Treat it as
	// a server fault, not a client one.
	ErrNoSecret = errors.New("jwtx: signing secret not configured")

	// ErrInvalidToken wraps every verification failure. Callers should only
	// ever need to check for this one.
	ErrInvalidToken = errors.New("jwtx: invalid token")

	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrAlgMismatch  = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// Codec issues and verifies HS256 tokens with a shared secret.
type Codec struct {
	Secret []byte
	TTL    time.Duration
	Issuer string

	// Now is overridable for tests. Defaults to time.Now.
	Now func() time.Time
}

// NewCodec returns a codec for secret. A zero ttl falls back to DefaultTokenTTL.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Codec{
		Secret: []byte(secret),
		TTL:    ttl,
		Issuer: "ledger",
	}
}

// Configured reports whether the codec can sign tokens.
func (c *Codec) Configured() bool { return len(c.Secret) > 0 }

func (c *Codec) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Issue signs a token for the user valid for the codec TTL.
func (c *Codec) Issue(userID, email string) (string, error) {
	if !c.Configured() {
		return "", ErrNoSecret
	}

	ttl := c.TTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	claims := NewClaims(userID, email, c.Issuer, ttl, c.now().UTC())
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.Secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm, issuer and time claims. Any failure
// is reported as ErrInvalidToken wrapping the specific cause.
func (c *Codec) Verify(token string) (Claims, error) {
	if !c.Configured() {
		return Claims{}, ErrNoSecret
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	}
	if c.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.Issuer))
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return c.Secret, nil },
		opts...,
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, classify(err))
	}

	if claims.Subject == "" {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, ErrInvalidClaim)
	}

	return claims, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrNotYetValid
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrAlgMismatch
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	default:
		return ErrInvalidClaim
	}
}
