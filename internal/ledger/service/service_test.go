package service

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/aussiebroadwan/ledger/internal/ledger/domain"
	"github.com/aussiebroadwan/ledger/internal/ledger/store"
	"github.com/aussiebroadwan/ledger/internal/ledger/store/drivers/sqlite"
	"github.com/aussiebroadwan/ledger/pkg/cryptox"
	"github.com/aussiebroadwan/ledger/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTestAuth(s store.Store, secret string) *AuthService {
	return &AuthService{
		Store: s,
		Hasher: &cryptox.PasswordHasher{
			Pepper: "pepper",
			Params: cryptox.Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, KeyLength: 32, SaltLength: 16},
		},
		Tokens: jwtx.NewCodec(secret, 0),
	}
}

// signup creates a user and returns its id.
func signup(t *testing.T, s store.Store, email string) string {
	t.Helper()

	sess, err := newTestAuth(s, "secret").Signup(context.Background(), SignupInput{
		Name:     "Test User",
		Email:    email,
		Password: "hunter22",
	})
	require.NoError(t, err)
	return sess.User.ID
}

func validationFields(t *testing.T, err error) map[string]string {
	t.Helper()

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Fields
}

// racyStore hides the first idempotency lookup, forcing Create down the
// duplicate-key path as if another request had inserted in between.
type racyStore struct {
	store.Store
	hidden atomic.Bool
}

func (s *racyStore) Expenses() store.Expenses {
	return &racyExpenses{Expenses: s.Store.Expenses(), parent: s}
}

type racyExpenses struct {
	store.Expenses
	parent *racyStore
}

func (r *racyExpenses) GetByIdempotencyKey(ctx context.Context, key string) (domain.Expense, error) {
	if r.parent.hidden.CompareAndSwap(false, true) {
		return domain.Expense{}, store.ErrNotFound
	}
	return r.Expenses.GetByIdempotencyKey(ctx, key)
}
