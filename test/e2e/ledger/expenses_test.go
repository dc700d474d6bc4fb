package ledger_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/aussiebroadwan/ledger/pkg/ledgersdk"
	"github.com/stretchr/testify/require"
)

func TestExpenseLifecycle(t *testing.T) {
	baseURL := setupLedgerContainer(t, nil)
	alice := newUser(t, baseURL, "alice@example.com")
	bob := newUser(t, baseURL, "bob@example.com")
	ctx := t.Context()

	lunch := ledgersdk.CreateExpenseRequest{
		Amount:         "500",
		Category:       "Food",
		Description:    "Lunch",
		Date:           "2024-03-01",
		IdempotencyKey: "k1",
	}

	// 1. Create, then replay the same key
	first, created, err := alice.CreateExpense(ctx, lunch)
	require.NoError(t, err)
	require.True(t, created)

	again, created, err := alice.CreateExpense(ctx, lunch)
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, first.ID, again.ID)

	// 2. The same key from another user is a conflict
	_, _, err = bob.CreateExpense(ctx, lunch)
	var apiErr *ledgersdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 409, apiErr.StatusCode)

	// 3. Bob cannot see or touch it
	_, err = bob.GetExpense(ctx, first.ID)
	require.True(t, ledgersdk.IsNotFound(err))
	require.True(t, ledgersdk.IsNotFound(bob.DeleteExpense(ctx, first.ID)))

	list, err := bob.ListExpenses(ctx, ledgersdk.ListFilter{})
	require.NoError(t, err)
	require.Zero(t, list.Count)

	// 4. Alice edits it
	desc := "Team lunch"
	updated, err := alice.UpdateExpense(ctx, first.ID, ledgersdk.UpdateExpenseRequest{Description: &desc})
	require.NoError(t, err)
	require.Equal(t, "Team lunch", updated.Description)
	require.Equal(t, "500.00", updated.Amount.String())

	// 5. Filters, export and summary
	_, _, err = alice.CreateExpense(ctx, ledgersdk.CreateExpenseRequest{
		Amount: "120.25", Category: "Travel", Description: "Train, return", Date: "2024-03-05",
	})
	require.NoError(t, err)

	food, err := alice.ListExpenses(ctx, ledgersdk.ListFilter{Category: "Food"})
	require.NoError(t, err)
	require.Equal(t, 1, food.Count)

	var buf bytes.Buffer
	name, err := alice.ExportCSV(ctx, ledgersdk.ListFilter{}, &buf)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(name, "expenses-"))

	rows, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(buf.String(), "\ufeff"))).ReadAll()
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"Date", "Category", "Description", "Amount"},
		{"2024-03-05", "Travel", "Train, return", "120.25"},
		{"2024-03-01", "Food", "Team lunch", "500.00"},
	}, rows)

	sum, err := alice.Summary(ctx, ledgersdk.ListFilter{})
	require.NoError(t, err)
	require.Equal(t, 2, sum.Count)
	require.Equal(t, "620.25", sum.Total.String())

	// 6. Delete
	require.NoError(t, alice.DeleteExpense(ctx, first.ID))
	_, err = alice.GetExpense(ctx, first.ID)
	require.True(t, ledgersdk.IsNotFound(err))
}

func TestLoginFailuresLookAlike(t *testing.T) {
	baseURL := setupLedgerContainer(t, nil)
	newUser(t, baseURL, "alice@example.com")

	client := ledgersdk.NewClient(baseURL)

	_, wrongPassword := client.Login(t.Context(), "alice@example.com", "not-the-password")
	_, unknownEmail := client.Login(t.Context(), "nobody@example.com", "not-the-password")

	require.Error(t, wrongPassword)
	require.Equal(t, wrongPassword.Error(), unknownEmail.Error())

	_, err := client.Login(t.Context(), "ALICE@example.com", testPassword)
	require.NoError(t, err)
}

func TestExpiredSessionIsCleared(t *testing.T) {
	baseURL := setupLedgerContainer(t, nil)
	client := ledgersdk.NewClient(baseURL)

	require.NoError(t, client.Credentials.Save(ledgersdk.Credentials{Token: "not-a-real-token"}))

	_, err := client.ListExpenses(t.Context(), ledgersdk.ListFilter{})
	require.ErrorIs(t, err, ledgersdk.ErrUnauthenticated)
	require.Empty(t, client.Token())
}
