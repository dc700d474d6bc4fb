package service

import (
	"cmp"
	"context"
	"slices"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/aussiebroadwan/ledger/internal/ledger/domain"
	"github.com/aussiebroadwan/ledger/internal/ledger/query"
)

// DefaultCurrency is used when ExpenseService.Currency is empty.
const DefaultCurrency = "INR"

// Summary aggregates a filtered set of expenses.
type Summary struct {
	Currency       string
	Count          int
	Total          domain.Amount
	Average        domain.Amount
	Highest        domain.Amount
	Lowest         domain.Amount
	Categories     []CategoryTotal
	FormattedTotal string
}

type CategoryTotal struct {
	Category   string
	Count      int
	Total      domain.Amount
	Percentage float64 // share of the overall total, one decimal
	Formatted  string
}

// Summary totals ownerID's expenses matching f, overall and per category.
func (s *ExpenseService) Summary(ctx context.Context, ownerID string, f query.Filter) (Summary, error) {
	list, err := s.List(ctx, ownerID, f)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(s.currency(), list), nil
}

// Summarize is the pure aggregation behind Summary. Categories are ordered by
// total descending, then name.
func Summarize(currency string, list []domain.Expense) Summary {
	sum := Summary{Currency: currency, Count: len(list)}

	byCategory := map[string]*CategoryTotal{}
	for i, e := range list {
		sum.Total = sum.Total.Add(e.Amount)
		if i == 0 || e.Amount.GreaterThan(sum.Highest) {
			sum.Highest = e.Amount
		}
		if i == 0 || e.Amount.LessThan(sum.Lowest) {
			sum.Lowest = e.Amount
		}

		ct, ok := byCategory[e.Category]
		if !ok {
			ct = &CategoryTotal{Category: e.Category}
			byCategory[e.Category] = ct
		}
		ct.Count++
		ct.Total = ct.Total.Add(e.Amount)
	}

	if sum.Count > 0 {
		avg := sum.Total.Decimal().Div(decimal.NewFromInt(int64(sum.Count)))
		sum.Average = domain.NewAmount(avg)
	}

	hundred := decimal.NewFromInt(100)
	for _, ct := range byCategory {
		if sum.Total.IsPositive() {
			pct := ct.Total.Decimal().Mul(hundred).Div(sum.Total.Decimal()).Round(1)
			ct.Percentage = pct.InexactFloat64()
		}
		ct.Formatted = FormatAmount(currency, ct.Total)
		sum.Categories = append(sum.Categories, *ct)
	}
	slices.SortFunc(sum.Categories, func(a, b CategoryTotal) int {
		if c := b.Total.Cmp(a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})

	sum.FormattedTotal = FormatAmount(currency, sum.Total)
	return sum
}

// FormatAmount renders a in currency with its symbol and grouping, e.g.
// "₹1,234.50". Unknown codes, and totals too large for go-money's int64
// minor units, fall back to the code and the plain amount.
func FormatAmount(currency string, a domain.Amount) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return currency + " " + a.String()
	}
	minor := a.Decimal().Shift(int32(cur.Fraction)).Round(0).BigInt()
	if !minor.IsInt64() {
		return cur.Code + " " + a.String()
	}
	return money.New(minor.Int64(), cur.Code).Display()
}

func (s *ExpenseService) currency() string {
	if s.Currency == "" {
		return DefaultCurrency
	}
	return s.Currency
}
