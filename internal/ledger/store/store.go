package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/ledger/internal/ledger/domain"
	"github.com/aussiebroadwan/ledger/internal/ledger/query"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrDuplicateKey is returned by Expenses.Create when the idempotency key
	// is already taken. Drivers must report it distinctly from other write
	// failures; the create protocol depends on it.
	ErrDuplicateKey = errors.New("store: duplicate idempotency key")
)

// Store is the root data access interface. It exposes sub-repositories so
// services never reach across concerns, and so a Tx-scoped store looks the
// same as the root one.
type Store interface {
	Users() Users
	Expenses() Expenses

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Optimize runs engine maintenance (statistics, WAL checkpoint).
	Optimize(ctx context.Context) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Users is the credential store.
type Users interface {
	// CreateUser inserts a new user. Returns ErrAlreadyExists when the email
	// is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByEmail looks up by the normalised (lowercase) email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	GetUserByID(ctx context.Context, id string) (domain.User, error)
}

// Expenses is the ledger store. Every read and write other than the
// idempotency key lookup is scoped to an owner inside the same statement.
type Expenses interface {
	// Create inserts e. Returns ErrDuplicateKey when e.IdempotencyKey is
	// already used by another expense.
	Create(ctx context.Context, e domain.Expense) error

	// GetByIdempotencyKey finds the expense created with key, whoever owns it.
	GetByIdempotencyKey(ctx context.Context, key string) (domain.Expense, error)

	// GetOwned returns the expense only if it belongs to ownerID.
	GetOwned(ctx context.Context, id, ownerID string) (domain.Expense, error)

	// UpdateOwned applies patch to the expense matching both id and ownerID
	// in a single statement and returns the updated row. ErrNotFound when
	// nothing matched.
	UpdateOwned(ctx context.Context, id, ownerID string, patch domain.ExpensePatch) (domain.Expense, error)

	// DeleteOwned removes the expense matching both id and ownerID.
	// ErrNotFound when nothing matched.
	DeleteOwned(ctx context.Context, id, ownerID string) error

	// Find returns every expense matching q, in q's order.
	Find(ctx context.Context, q query.Query) ([]domain.Expense, error)
}
