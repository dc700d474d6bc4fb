package service

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/ledger/internal/ledger/domain"
	"github.com/aussiebroadwan/ledger/internal/ledger/store"
	"github.com/aussiebroadwan/ledger/pkg/cryptox"
	"github.com/aussiebroadwan/ledger/pkg/idx"
	"github.com/aussiebroadwan/ledger/pkg/jwtx"
	"github.com/aussiebroadwan/ledger/pkg/slogx"
)

const MinPasswordLength = 6

type AuthService struct {
	Store  store.Store
	Hasher *cryptox.PasswordHasher
	Tokens *jwtx.Codec

	Now func() time.Time
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// Session is what a successful signup or login hands back to the client.
type Session struct {
	Token string
	User  domain.User
}

// Signup registers a new user and signs them in.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (Session, error) {
	log := slogx.FromContext(ctx)

	// 1. Refuse early if we could never issue a token
	if !s.Tokens.Configured() {
		return Session{}, jwtx.ErrNoSecret
	}

	// 2. Validate every field
	name := strings.TrimSpace(in.Name)
	email := domain.NormalizeEmail(in.Email)

	var verr ValidationError
	if name == "" {
		verr.Add("name", "name is required")
	}
	if !validEmail(email) {
		verr.Add("email", "a valid email is required")
	}
	if utf8.RuneCountInString(in.Password) < MinPasswordLength {
		verr.Add("password", "password must be at least 6 characters")
	}
	if err := verr.Err(); err != nil {
		return Session{}, err
	}

	// 3. Hash and persist
	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return Session{}, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}

	// 4. Check and insert under one transaction; the unique index still
	// backs this up if another writer slips in between
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Users().GetUserByEmail(ctx, email)
		switch {
		case err == nil:
			return store.ErrAlreadyExists
		case !errors.Is(err, store.ErrNotFound):
			return err
		}
		return tx.Users().CreateUser(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			verr.Add("email", "a user with this email already exists")
			return Session{}, verr.Err()
		}
		return Session{}, err
	}

	// 5. Issue the session token
	token, err := s.Tokens.Issue(user.ID, user.Email)
	if err != nil {
		return Session{}, err
	}

	log.Info("user signed up", slog.String("user_id", user.ID))
	return Session{Token: token, User: user}, nil
}

// Login checks credentials and issues a fresh token. Unknown email and wrong
// password both return ErrInvalidCredentials after similar work.
func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	log := slogx.FromContext(ctx)

	if !s.Tokens.Configured() {
		return Session{}, jwtx.ErrNoSecret
	}

	var verr ValidationError
	email = domain.NormalizeEmail(email)
	if !validEmail(email) {
		verr.Add("email", "a valid email is required")
	}
	if password == "" {
		verr.Add("password", "password is required")
	}
	if err := verr.Err(); err != nil {
		return Session{}, err
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		// burn the same argon2 cost as a real check
		s.Hasher.VerifyDummy(password)
		log.Debug("login for unknown email")
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, err
	}

	if err := s.Hasher.Verify(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			log.Debug("login password mismatch", slog.String("user_id", user.ID))
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}

	token, err := s.Tokens.Issue(user.ID, user.Email)
	if err != nil {
		return Session{}, err
	}

	return Session{Token: token, User: user}, nil
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC().Truncate(time.Millisecond)
	}
	return time.Now().UTC().Truncate(time.Millisecond)
}

// validEmail accepts a bare addr-spec with a dotted domain.
func validEmail(email string) bool {
	if email == "" || strings.ContainsAny(email, " <>") {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndexByte(email, '@')
	return at > 0 && strings.Contains(email[at+1:], ".")
}
