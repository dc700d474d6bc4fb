package domain

import (
	"strings"
	"time"
)

type User struct {
	ID           string
	Name         string
	Email        string // lowercased, unique
	PasswordHash string // argon2id PHC string, never leaves the server
	CreatedAt    time.Time
}

// NormalizeEmail trims and lowercases an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
