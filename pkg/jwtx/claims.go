package jwtx

import (
	"time"

	"github.com/aussiebroadwan/ledger/pkg/cryptox"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is how long an issued token stays valid. There is no
// refresh flow, so users sign in again once a week.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Claims carried by a ledger access token. The subject is the user id.
type Claims struct {
	jwt.RegisteredClaims

	// Email of the authenticated user at the time of issue
	Email string `json:"email"`
}

// NewClaims builds claims valid from now for ttl.
func NewClaims(userID, email, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Email: email,
	}
}

// NewJTI returns a random URL-safe identifier for the "jti" claim.
func NewJTI() string {
	return cryptox.MustGenerateToken(cryptox.TokenSize128)
}

// UserID is the subject of the token.
func (c Claims) UserID() string { return c.Subject }

// ExpiresIn returns the time left before expiry relative to now.
func (c Claims) ExpiresIn(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return c.ExpiresAt.Sub(now)
}
