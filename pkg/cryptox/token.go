package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// Random secret sizes in bytes before encoding.
const (
	// TokenSize128 is used for token identifiers (22 chars base64url).
	TokenSize128 = 16
	// TokenSize256 is used for long-lived secrets such as the pepper (43 chars).
	TokenSize256 = 32
)

// GenerateToken returns size random bytes encoded as unpadded base64url.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// MustGenerateToken is like GenerateToken but panics on error. Only use it
// with a constant size.
func MustGenerateToken(size int) string {
	token, err := GenerateToken(size)
	if err != nil {
		panic(fmt.Sprintf("cryptox: failed to generate token: %v", err))
	}
	return token
}
