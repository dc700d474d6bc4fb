package service

import (
	"errors"

	"github.com/aussiebroadwan/ledger/internal/ledger/domain"
)

var (
	// ErrInvalidCredentials is returned for both unknown emails and wrong
	// passwords so callers cannot tell which one it was.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrExpenseNotFound = errors.New("expense not found")

	// ErrIdempotencyKeyConflict means the key was already used by a different
	// user. The existing record is never revealed.
	ErrIdempotencyKeyConflict = errors.New("idempotency key already used")
)

// ValidationError lists every rejected input field.
type ValidationError = domain.ValidationError
