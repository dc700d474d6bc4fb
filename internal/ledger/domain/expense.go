package domain

import "time"

// Expense is a single ledger entry. OwnerID, CreatedAt and IdempotencyKey are
// fixed at creation.
type Expense struct {
	ID             string
	OwnerID        string
	Amount         Amount
	Category       string
	Description    string
	Date           Date
	CreatedAt      time.Time
	IdempotencyKey string // empty when the client did not send one
}

// ExpensePatch carries the mutable fields of an update. Nil means untouched.
type ExpensePatch struct {
	Amount      *Amount
	Category    *string
	Description *string
	Date        *Date
}

// IsEmpty reports whether the patch changes nothing.
func (p ExpensePatch) IsEmpty() bool {
	return p.Amount == nil && p.Category == nil && p.Description == nil && p.Date == nil
}

// Apply returns e with the patch fields applied.
func (p ExpensePatch) Apply(e Expense) Expense {
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	return e
}

// NewerFirst orders expenses by date descending, then creation time
// descending, then id, giving a total order for stable output.
func NewerFirst(a, b Expense) int {
	if c := b.Date.Compare(a.Date); c != 0 {
		return c
	}
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	switch {
	case a.ID < b.ID:
		return 1
	case a.ID > b.ID:
		return -1
	}
	return 0
}

// OlderFirst is the reverse of NewerFirst.
func OlderFirst(a, b Expense) int { return NewerFirst(b, a) }
