// Package query turns list filters into a backend-agnostic predicate and
// ordering. Compile is pure; drivers translate the result into their own
// query language and Match evaluates it in memory.
package query

import (
	"net/url"
	"strings"

	"github.com/aussiebroadwan/ledger/internal/ledger/domain"
)

type Sort string

const (
	SortNewest Sort = "newest"
	SortOldest Sort = "oldest"
)

// ParseSort accepts the canonical names and the legacy date_desc/date_asc
// spellings. Empty means newest first.
func ParseSort(s string) (Sort, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "newest", "date_desc", "desc":
		return SortNewest, true
	case "oldest", "date_asc", "asc":
		return SortOldest, true
	default:
		return "", false
	}
}

// Filter is what a caller may ask for. It deliberately has no owner field:
// ownership comes from the authenticated identity passed to Compile.
type Filter struct {
	Category  string
	Search    string
	Sort      Sort
	StartDate *domain.Date
	EndDate   *domain.Date
}

// ParseFilter reads a filter from query parameters. Unknown parameters are
// ignored; malformed known ones are reported together.
func ParseFilter(v url.Values) (Filter, error) {
	var (
		f    Filter
		verr domain.ValidationError
	)

	f.Category = strings.TrimSpace(v.Get("category"))
	f.Search = strings.TrimSpace(v.Get("search"))

	sort, ok := ParseSort(v.Get("sort"))
	if !ok {
		verr.Add("sort", "sort must be one of newest, oldest, date_desc, date_asc")
	}
	f.Sort = sort

	if raw := strings.TrimSpace(v.Get("startDate")); raw != "" {
		d, err := domain.ParseDate(raw)
		if err != nil {
			verr.Add("startDate", "startDate must be a valid date (YYYY-MM-DD)")
		} else {
			f.StartDate = &d
		}
	}

	if raw := strings.TrimSpace(v.Get("endDate")); raw != "" {
		d, err := domain.ParseDate(raw)
		if err != nil {
			verr.Add("endDate", "endDate must be a valid date (YYYY-MM-DD)")
		} else {
			f.EndDate = &d
		}
	}

	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		verr.Add("endDate", "endDate must not be before startDate")
	}

	if err := verr.Err(); err != nil {
		return Filter{}, err
	}
	return f, nil
}

// Values encodes f back into query parameters, omitting empty fields.
func (f Filter) Values() url.Values {
	v := url.Values{}
	if f.Category != "" {
		v.Set("category", f.Category)
	}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.Sort != "" {
		v.Set("sort", string(f.Sort))
	}
	if f.StartDate != nil {
		v.Set("startDate", f.StartDate.String())
	}
	if f.EndDate != nil {
		v.Set("endDate", f.EndDate.String())
	}
	return v
}
