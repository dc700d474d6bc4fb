package export_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/ledger/internal/ledger/domain"
	"github.com/aussiebroadwan/ledger/internal/ledger/export"
	"github.com/stretchr/testify/require"
)

func expense(id, date, amount, category, desc string) domain.Expense {
	return domain.Expense{
		ID:          id,
		OwnerID:     "owner",
		Amount:      domain.MustParseAmount(amount),
		Category:    category,
		Description: desc,
		Date:        domain.MustParseDate(date),
		CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func render(t *testing.T, list []domain.Expense) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, export.CSV(&buf, list))
	return buf.String()
}

func TestCSVLayout(t *testing.T) {
	out := render(t, []domain.Expense{
		expense("a", "2024-03-01", "500", "Food", "Lunch"),
		expense("b", "2024-03-02", "12.5", "Travel", "Taxi"),
	})

	require.True(t, strings.HasPrefix(out, "\ufeff"))
	require.Equal(t,
		"\ufeffDate,Category,Description,Amount\n"+
			"2024-03-02,Travel,\"Taxi\",12.50\n"+
			"2024-03-01,Food,\"Lunch\",500.00\n",
		out)
}

func TestCSVEmpty(t *testing.T) {
	require.Equal(t, "\ufeffDate,Category,Description,Amount\n", render(t, nil))
}

func TestCSVQuotingRoundTrip(t *testing.T) {
	tricky := []domain.Expense{
		expense("a", "2024-03-01", "1", "Food, Drinks", `He said "hi", then left`),
		expense("b", "2024-03-02", "2", `Odd "cat"`, "multi\nline"),
		expense("c", "2024-03-03", "3", " padded", "plain"),
	}

	out := render(t, tricky)
	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, "\ufeff")))
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	require.Equal(t, []string{"Date", "Category", "Description", "Amount"}, records[0])
	require.Equal(t, []string{"2024-03-03", " padded", "plain", "3.00"}, records[1])
	require.Equal(t, []string{"2024-03-02", `Odd "cat"`, "multi\nline", "2.00"}, records[2])
	require.Equal(t, []string{"2024-03-01", "Food, Drinks", `He said "hi", then left`, "1.00"}, records[3])
}

func TestCSVDeterministic(t *testing.T) {
	a := expense("a", "2024-03-01", "1", "Food", "x")
	b := expense("b", "2024-03-01", "2", "Food", "y")
	c := expense("c", "2024-02-01", "3", "Food", "z")

	first := render(t, []domain.Expense{a, b, c})
	second := render(t, []domain.Expense{c, a, b})
	require.Equal(t, first, second)
}

func TestFilename(t *testing.T) {
	require.Equal(t, "expenses-2024-03-09.csv", export.Filename(domain.MustParseDate("2024-03-09")))
}
