package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/ledger/internal/ledger/domain"
	"github.com/aussiebroadwan/ledger/internal/ledger/query"
	"github.com/aussiebroadwan/ledger/internal/ledger/store"
)

type expensesRepo struct{ q querier }

const expenseColumns = `id, owner_id, amount_minor, category, description, date, created_at, idempotency_key`

func (r *expensesRepo) Create(ctx context.Context, e domain.Expense) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO expenses (`+expenseColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.OwnerID, e.Amount.Minor(), e.Category, e.Description,
		e.Date.String(), toMillis(e.CreatedAt), nullString(e.IdempotencyKey),
	)
	if isUniqueViolation(err, "expenses.idempotency_key") {
		return store.ErrDuplicateKey
	}
	return err
}

func (r *expensesRepo) GetByIdempotencyKey(ctx context.Context, key string) (domain.Expense, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses WHERE idempotency_key = ?`, key)
	return scanExpense(row)
}

func (r *expensesRepo) GetOwned(ctx context.Context, id, ownerID string) (domain.Expense, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses WHERE id = ? AND owner_id = ?`, id, ownerID)
	return scanExpense(row)
}

func (r *expensesRepo) UpdateOwned(ctx context.Context, id, ownerID string, patch domain.ExpensePatch) (domain.Expense, error) {
	var (
		amount              sql.NullInt64
		category, desc, day sql.NullString
	)
	if patch.Amount != nil {
		amount = sql.NullInt64{Int64: patch.Amount.Minor(), Valid: true}
	}
	if patch.Category != nil {
		category = sql.NullString{String: *patch.Category, Valid: true}
	}
	if patch.Description != nil {
		desc = sql.NullString{String: *patch.Description, Valid: true}
	}
	if patch.Date != nil {
		day = sql.NullString{String: patch.Date.String(), Valid: true}
	}

	// Ownership is checked in the same statement as the write.
	row := r.q.QueryRowContext(ctx, `
		UPDATE expenses SET
			amount_minor = COALESCE(?, amount_minor),
			category     = COALESCE(?, category),
			description  = COALESCE(?, description),
			date         = COALESCE(?, date)
		WHERE id = ? AND owner_id = ?
		RETURNING `+expenseColumns,
		amount, category, desc, day, id, ownerID,
	)
	return scanExpense(row)
}

func (r *expensesRepo) DeleteOwned(ctx context.Context, id, ownerID string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM expenses WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *expensesRepo) Find(ctx context.Context, q query.Query) ([]domain.Expense, error) {
	where, args, err := compileWhere(q)
	if err != nil {
		return nil, err
	}

	dir := "ASC"
	if q.Order.Desc {
		dir = "DESC"
	}

	stmt := fmt.Sprintf(`SELECT %s FROM expenses WHERE %s ORDER BY date %s, created_at %s, id %s`,
		expenseColumns, where, dir, dir, dir)

	rows, err := r.q.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// compileWhere turns q into a parameterised WHERE clause. Column names come
// from a fixed table, never from the query values.
func compileWhere(q query.Query) (string, []any, error) {
	if q.OwnerID() == "" {
		return "", nil, query.ErrUnscoped
	}

	columns := map[query.Field]string{
		query.FieldOwner:       "owner_id",
		query.FieldCategory:    "category",
		query.FieldDescription: "description",
		query.FieldDate:        "date",
	}

	parts := make([]string, 0, len(q.Where))
	args := make([]any, 0, len(q.Where))
	for _, c := range q.Where {
		col, ok := columns[c.Field]
		if !ok {
			return "", nil, fmt.Errorf("sqlite: unknown field %q", c.Field)
		}

		switch c.Op {
		case query.OpEq:
			parts = append(parts, col+" = ?")
			args = append(args, c.Value)
		case query.OpContainsFold:
			parts = append(parts, "instr("+foldFunc+"("+col+"), ?) > 0")
			args = append(args, query.Fold(c.Value))
		case query.OpGTE:
			parts = append(parts, col+" >= ?")
			args = append(args, c.Value)
		case query.OpLT:
			parts = append(parts, col+" < ?")
			args = append(args, c.Value)
		default:
			return "", nil, fmt.Errorf("sqlite: unknown op %q", c.Op)
		}
	}

	return strings.Join(parts, " AND "), args, nil
}

func scanExpense(row scanner) (domain.Expense, error) {
	var (
		e       domain.Expense
		minor   int64
		day     string
		created int64
		key     sql.NullString
	)
	err := row.Scan(&e.ID, &e.OwnerID, &minor, &e.Category, &e.Description, &day, &created, &key)
	if err != nil {
		return domain.Expense{}, mapNotFound(err)
	}

	date, err := domain.ParseDate(day)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("sqlite: stored date %q: %w", day, err)
	}

	e.Amount = domain.AmountFromMinor(minor)
	e.Date = date
	e.CreatedAt = fromMillis(created)
	e.IdempotencyKey = key.String
	return e, nil
}
