package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/ledger/internal/ledger/domain"
	"github.com/aussiebroadwan/ledger/internal/ledger/export"
	"github.com/aussiebroadwan/ledger/internal/ledger/query"
	"github.com/aussiebroadwan/ledger/internal/ledger/store"
	"github.com/aussiebroadwan/ledger/pkg/idx"
	"github.com/aussiebroadwan/ledger/pkg/slogx"
)

// MaxIdempotencyKeyLength bounds client supplied keys.
const MaxIdempotencyKeyLength = 128

// Outcome tells a caller whether Create inserted a row or found one.
type Outcome int

const (
	OutcomeCreated Outcome = iota
	OutcomeReplayed
)

func (o Outcome) String() string {
	if o == OutcomeReplayed {
		return "replayed"
	}
	return "created"
}

// NewExpense is the raw create input. Amount and Date are the literals the
// client sent so that every bad field can be reported at once.
type NewExpense struct {
	Amount         string
	Category       string
	Description    string
	Date           string
	IdempotencyKey string
}

// ExpenseUpdate is the raw update input. Nil fields are left untouched.
type ExpenseUpdate struct {
	Amount      *string
	Category    *string
	Description *string
	Date        *string
}

type ExpenseService struct {
	Store store.Store

	// Currency is the ISO 4217 code used for summaries. Defaults to INR.
	Currency string

	Now func() time.Time
}

// Create records an expense for ownerID. With an idempotency key, repeated
// calls return the first expense created with that key instead of inserting
// again, even when the calls race.
func (s *ExpenseService) Create(ctx context.Context, ownerID string, in NewExpense) (domain.Expense, Outcome, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate the whole input
	e, err := validateNew(in)
	if err != nil {
		return domain.Expense{}, OutcomeCreated, err
	}

	// 2. A known key short-circuits to the stored record
	if e.IdempotencyKey != "" {
		existing, err := s.Store.Expenses().GetByIdempotencyKey(ctx, e.IdempotencyKey)
		switch {
		case err == nil:
			return s.replay(ctx, ownerID, existing)
		case !errors.Is(err, store.ErrNotFound):
			return domain.Expense{}, OutcomeCreated, err
		}
	}

	// 3. Insert
	e.ID = idx.New().String()
	e.OwnerID = ownerID
	e.CreatedAt = s.now()

	err = s.Store.Expenses().Create(ctx, e)
	if errors.Is(err, store.ErrDuplicateKey) {
		// 4. Lost the race to a concurrent create with the same key
		existing, err := s.Store.Expenses().GetByIdempotencyKey(ctx, e.IdempotencyKey)
		if err != nil {
			return domain.Expense{}, OutcomeCreated, err
		}
		log.Debug("idempotency key race resolved", slog.String("expense_id", existing.ID))
		return s.replay(ctx, ownerID, existing)
	}
	if err != nil {
		return domain.Expense{}, OutcomeCreated, err
	}

	log.Info("expense created", slog.String("expense_id", e.ID))
	return e, OutcomeCreated, nil
}

func (s *ExpenseService) replay(ctx context.Context, ownerID string, existing domain.Expense) (domain.Expense, Outcome, error) {
	if existing.OwnerID != ownerID {
		slogx.FromContext(ctx).Warn("idempotency key reused across owners",
			slog.String("expense_id", existing.ID))
		return domain.Expense{}, OutcomeCreated, ErrIdempotencyKeyConflict
	}
	return existing, OutcomeReplayed, nil
}

// Get returns one of ownerID's expenses.
func (s *ExpenseService) Get(ctx context.Context, ownerID, id string) (domain.Expense, error) {
	if !idx.Valid(id) {
		return domain.Expense{}, ErrExpenseNotFound
	}
	e, err := s.Store.Expenses().GetOwned(ctx, id, ownerID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Expense{}, ErrExpenseNotFound
	}
	return e, err
}

// Update changes the supplied fields of one of ownerID's expenses. Someone
// else's expense looks exactly like a missing one.
func (s *ExpenseService) Update(ctx context.Context, ownerID, id string, in ExpenseUpdate) (domain.Expense, error) {
	patch, err := validateUpdate(in)
	if err != nil {
		return domain.Expense{}, err
	}
	if !idx.Valid(id) {
		return domain.Expense{}, ErrExpenseNotFound
	}

	e, err := s.Store.Expenses().UpdateOwned(ctx, id, ownerID, patch)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Expense{}, ErrExpenseNotFound
	}
	if err != nil {
		return domain.Expense{}, err
	}

	slogx.FromContext(ctx).Info("expense updated", slog.String("expense_id", id))
	return e, nil
}

// Delete removes one of ownerID's expenses.
func (s *ExpenseService) Delete(ctx context.Context, ownerID, id string) error {
	if !idx.Valid(id) {
		return ErrExpenseNotFound
	}

	err := s.Store.Expenses().DeleteOwned(ctx, id, ownerID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrExpenseNotFound
	}
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("expense deleted", slog.String("expense_id", id))
	return nil
}

// List returns ownerID's expenses matching f.
func (s *ExpenseService) List(ctx context.Context, ownerID string, f query.Filter) ([]domain.Expense, error) {
	return s.Store.Expenses().Find(ctx, query.Compile(ownerID, f))
}

// Export writes ownerID's expenses matching f as CSV.
func (s *ExpenseService) Export(ctx context.Context, ownerID string, f query.Filter, w io.Writer) error {
	list, err := s.List(ctx, ownerID, f)
	if err != nil {
		return err
	}
	return export.CSV(w, list)
}

// Today is the server's current date, used for export file names.
func (s *ExpenseService) Today() domain.Date {
	return domain.DateOf(s.now())
}

func (s *ExpenseService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC().Truncate(time.Millisecond)
	}
	return time.Now().UTC().Truncate(time.Millisecond)
}

func validateNew(in NewExpense) (domain.Expense, error) {
	var (
		verr ValidationError
		e    domain.Expense
	)

	if strings.TrimSpace(in.Amount) == "" {
		verr.Add("amount", "amount is required")
	} else if a, ok := validAmount(&verr, in.Amount); ok {
		e.Amount = a
	}

	e.Category = strings.TrimSpace(in.Category)
	if e.Category == "" {
		verr.Add("category", "category is required")
	}

	e.Description = strings.TrimSpace(in.Description)
	if e.Description == "" {
		verr.Add("description", "description is required")
	}

	if strings.TrimSpace(in.Date) == "" {
		verr.Add("date", "date is required")
	} else if d, ok := validDate(&verr, in.Date); ok {
		e.Date = d
	}

	e.IdempotencyKey = strings.TrimSpace(in.IdempotencyKey)
	if utf8.RuneCountInString(e.IdempotencyKey) > MaxIdempotencyKeyLength {
		verr.Add("idempotencyKey", "idempotency key must be at most 128 characters")
	}

	return e, verr.Err()
}

func validateUpdate(in ExpenseUpdate) (domain.ExpensePatch, error) {
	var (
		verr  ValidationError
		patch domain.ExpensePatch
	)

	if in.Amount != nil {
		if a, ok := validAmount(&verr, *in.Amount); ok {
			patch.Amount = &a
		}
	}
	if in.Category != nil {
		c := strings.TrimSpace(*in.Category)
		if c == "" {
			verr.Add("category", "category cannot be empty")
		}
		patch.Category = &c
	}
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		if d == "" {
			verr.Add("description", "description cannot be empty")
		}
		patch.Description = &d
	}
	if in.Date != nil {
		if d, ok := validDate(&verr, *in.Date); ok {
			patch.Date = &d
		}
	}

	if err := verr.Err(); err != nil {
		return domain.ExpensePatch{}, err
	}
	if patch.IsEmpty() {
		verr.Add("body", "at least one of amount, category, description or date is required")
		return domain.ExpensePatch{}, verr.Err()
	}
	return patch, nil
}

func validAmount(verr *ValidationError, raw string) (domain.Amount, bool) {
	a, err := domain.ParseAmount(raw)
	if errors.Is(err, domain.ErrAmountOutOfRange) {
		verr.Add("amount", "amount must be at most "+domain.MaxAmount.String())
		return domain.Amount{}, false
	}
	if err != nil {
		verr.Add("amount", "amount must be a number")
		return domain.Amount{}, false
	}
	if !a.IsPositive() {
		verr.Add("amount", "amount must be greater than zero")
		return domain.Amount{}, false
	}
	return a, true
}

func validDate(verr *ValidationError, raw string) (domain.Date, bool) {
	d, err := domain.ParseDate(strings.TrimSpace(raw))
	if err != nil {
		verr.Add("date", "date must be a valid YYYY-MM-DD date")
		return domain.Date{}, false
	}
	return d, true
}
