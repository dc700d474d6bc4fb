package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/ledger/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestNewClaims(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	c := jwtx.NewClaims("user-1", "alice@example.com", "ledger", time.Hour, now)

	require.Equal(t, "user-1", c.UserID())
	require.Equal(t, "alice@example.com", c.Email)
	require.Equal(t, "ledger", c.Issuer)
	require.Equal(t, now, c.IssuedAt.Time)
	require.Equal(t, now.Add(time.Hour), c.ExpiresAt.Time)
	require.NotEmpty(t, c.ID)
	require.Equal(t, 30*time.Minute, c.ExpiresIn(now.Add(30*time.Minute)))
}

func TestNewJTIUnique(t *testing.T) {
	seen := map[string]bool{}
	for range 100 {
		jti := jwtx.NewJTI()
		require.False(t, seen[jti])
		seen[jti] = true
	}
}
