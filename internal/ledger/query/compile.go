package query

import (
	"errors"
	"slices"
	"strings"

	"github.com/aussiebroadwan/ledger/internal/ledger/domain"
)

// ErrUnscoped is returned by drivers asked to run a query that is not
// scoped to an owner. Only Compile builds valid queries.
var ErrUnscoped = errors.New("query: missing owner scope")

type Field string

const (
	FieldOwner       Field = "owner_id"
	FieldCategory    Field = "category"
	FieldDescription Field = "description"
	FieldDate        Field = "date"
)

type Op string

const (
	OpEq           Op = "eq"
	OpContainsFold Op = "contains_fold" // case-insensitive substring
	OpGTE          Op = "gte"
	OpLT           Op = "lt"
)

// Condition is one conjunct of the predicate. Date values are ISO dates
// (YYYY-MM-DD), which order the same lexically and chronologically.
type Condition struct {
	Field Field
	Op    Op
	Value string
}

// Order is always by date; ties fall back to creation time then id in the
// same direction so results are fully deterministic.
type Order struct {
	Desc bool
}

// Query is a conjunction of conditions plus an ordering. The first
// condition is always the owner equality.
type Query struct {
	Where []Condition
	Order Order
}

// Compile builds the query for ownerID's expenses matching f. The owner
// condition comes first and nothing in f can remove or widen it.
func Compile(ownerID string, f Filter) Query {
	q := Query{
		Where: []Condition{{Field: FieldOwner, Op: OpEq, Value: ownerID}},
		Order: Order{Desc: f.Sort != SortOldest},
	}

	if c := strings.TrimSpace(f.Category); c != "" {
		q.Where = append(q.Where, Condition{Field: FieldCategory, Op: OpEq, Value: c})
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		q.Where = append(q.Where, Condition{Field: FieldDescription, Op: OpContainsFold, Value: s})
	}
	if f.StartDate != nil {
		q.Where = append(q.Where, Condition{Field: FieldDate, Op: OpGTE, Value: f.StartDate.String()})
	}
	if f.EndDate != nil {
		// inclusive through the end of the day
		q.Where = append(q.Where, Condition{Field: FieldDate, Op: OpLT, Value: f.EndDate.AddDays(1).String()})
	}

	return q
}

// Fold maps s to the form OpContainsFold compares, lowering every Unicode
// letter. Drivers must fold both sides with this same function.
func Fold(s string) string { return strings.ToLower(s) }

// OwnerID returns the owner the query is scoped to, or "" if it is not
// scoped (which drivers must refuse).
func (q Query) OwnerID() string {
	if len(q.Where) == 0 {
		return ""
	}
	first := q.Where[0]
	if first.Field != FieldOwner || first.Op != OpEq {
		return ""
	}
	return first.Value
}

// Match evaluates the predicate against e.
func (q Query) Match(e domain.Expense) bool {
	if q.OwnerID() == "" {
		return false
	}
	for _, c := range q.Where {
		if !c.match(e) {
			return false
		}
	}
	return true
}

// Compare orders two expenses according to q.Order.
func (q Query) Compare(a, b domain.Expense) int {
	if q.Order.Desc {
		return domain.NewerFirst(a, b)
	}
	return domain.OlderFirst(a, b)
}

// Apply filters and sorts list in memory, returning a new slice.
func (q Query) Apply(list []domain.Expense) []domain.Expense {
	out := make([]domain.Expense, 0, len(list))
	for _, e := range list {
		if q.Match(e) {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, q.Compare)
	return out
}

func (c Condition) match(e domain.Expense) bool {
	var field string
	switch c.Field {
	case FieldOwner:
		field = e.OwnerID
	case FieldCategory:
		field = e.Category
	case FieldDescription:
		field = e.Description
	case FieldDate:
		field = e.Date.String()
	default:
		return false
	}

	switch c.Op {
	case OpEq:
		return field == c.Value
	case OpContainsFold:
		return strings.Contains(Fold(field), Fold(c.Value))
	case OpGTE:
		return field >= c.Value
	case OpLT:
		return field < c.Value
	default:
		return false
	}
}
