package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/ledger/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := newTestAuth(s, "secret")

	sess, err := svc.Signup(ctx, SignupInput{Name: "  Alice ", Email: " Alice@Example.COM ", Password: "hunter22"})
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token)
	require.Equal(t, "Alice", sess.User.Name)
	require.Equal(t, "alice@example.com", sess.User.Email)
	require.NotEqual(t, "hunter22", sess.User.PasswordHash)

	claims, err := svc.Tokens.Verify(sess.Token)
	require.NoError(t, err)
	require.Equal(t, sess.User.ID, claims.UserID())
	require.Equal(t, "alice@example.com", claims.Email)

	t.Run("duplicate email is a validation error", func(t *testing.T) {
		_, err := svc.Signup(ctx, SignupInput{Name: "Other", Email: "alice@example.com", Password: "hunter22"})
		require.Contains(t, validationFields(t, err), "email")
	})

	t.Run("duplicate in another case leaves the original untouched", func(t *testing.T) {
		_, err := svc.Signup(ctx, SignupInput{Name: "Mallory", Email: "ALICE@example.com", Password: "other-pass"})
		require.Contains(t, validationFields(t, err), "email")

		got, err := s.Users().GetUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, sess.User.ID, got.ID)
		require.Equal(t, "Alice", got.Name)

		_, err = svc.Login(ctx, "alice@example.com", "hunter22")
		require.NoError(t, err)
	})

	t.Run("reports every bad field", func(t *testing.T) {
		_, err := svc.Signup(ctx, SignupInput{Name: " ", Email: "not-an-email", Password: "12345"})
		fields := validationFields(t, err)
		require.Len(t, fields, 3)
	})

	t.Run("email needs a dotted domain", func(t *testing.T) {
		_, err := svc.Signup(ctx, SignupInput{Name: "Bob", Email: "bob@localhost", Password: "hunter22"})
		require.Contains(t, validationFields(t, err), "email")
	})
}

func TestSignupWithoutSecret(t *testing.T) {
	s := newTestStore(t)
	svc := newTestAuth(s, "")

	_, err := svc.Signup(context.Background(), SignupInput{Name: "A", Email: "a@example.com", Password: "hunter22"})
	require.ErrorIs(t, err, jwtx.ErrNoSecret)

	// nothing was persisted
	_, err = s.Users().GetUserByEmail(context.Background(), "a@example.com")
	require.Error(t, err)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := newTestAuth(s, "secret")
	id := signup(t, s, "alice@example.com")

	sess, err := svc.Login(ctx, "ALICE@example.com", "hunter22")
	require.NoError(t, err)
	require.Equal(t, id, sess.User.ID)
	require.NotEmpty(t, sess.Token)

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		_, wrongPass := svc.Login(ctx, "alice@example.com", "nope-nope")
		_, unknown := svc.Login(ctx, "nobody@example.com", "hunter22")
		require.ErrorIs(t, wrongPass, ErrInvalidCredentials)
		require.ErrorIs(t, unknown, ErrInvalidCredentials)
		require.Equal(t, wrongPass.Error(), unknown.Error())
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Login(ctx, "", "")
		fields := validationFields(t, err)
		require.Contains(t, fields, "email")
		require.Contains(t, fields, "password")
	})

	t.Run("unconfigured secret", func(t *testing.T) {
		_, err := newTestAuth(s, "").Login(ctx, "alice@example.com", "hunter22")
		require.ErrorIs(t, err, jwtx.ErrNoSecret)
	})
}
