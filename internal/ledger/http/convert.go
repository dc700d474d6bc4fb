package http

import (
	"bytes"
	"encoding/json"

	"github.com/aussiebroadwan/ledger/internal/ledger/domain"
	"github.com/aussiebroadwan/ledger/internal/ledger/service"
	"github.com/aussiebroadwan/ledger/pkg/ledgersdk"
)

func toUser(u domain.User) ledgersdk.User {
	return ledgersdk.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func toExpense(e domain.Expense) ledgersdk.Expense {
	return ledgersdk.Expense{
		ID:          e.ID,
		OwnerID:     e.OwnerID,
		Amount:      number(e.Amount),
		Category:    e.Category,
		Description: e.Description,
		Date:        e.Date.String(),
		CreatedAt:   e.CreatedAt,
	}
}

func toExpenses(list []domain.Expense) []ledgersdk.Expense {
	out := make([]ledgersdk.Expense, 0, len(list))
	for _, e := range list {
		out = append(out, toExpense(e))
	}
	return out
}

func toSummary(s service.Summary) ledgersdk.SummaryResponse {
	cats := make([]ledgersdk.CategorySummary, 0, len(s.Categories))
	for _, c := range s.Categories {
		cats = append(cats, ledgersdk.CategorySummary{
			Category:   c.Category,
			Count:      c.Count,
			Total:      number(c.Total),
			Percentage: c.Percentage,
			Formatted:  c.Formatted,
		})
	}
	return ledgersdk.SummaryResponse{
		Currency:       s.Currency,
		Count:          s.Count,
		Total:          number(s.Total),
		Average:        number(s.Average),
		Highest:        number(s.Highest),
		Lowest:         number(s.Lowest),
		FormattedTotal: s.FormattedTotal,
		Categories:     cats,
	}
}

// number renders an amount as a JSON number with exactly two decimals.
func number(a domain.Amount) json.Number {
	return json.Number(a.String())
}

// literal turns a raw JSON value into the text the service validates. Strings
// are unquoted, numbers kept verbatim, null and absent become "".
func literal(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(raw)
}

// present reports whether a raw JSON field was sent with a non-null value.
func present(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}
