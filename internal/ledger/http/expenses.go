package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/ledger/internal/ledger/query"
	"github.com/aussiebroadwan/ledger/internal/ledger/service"
	"github.com/aussiebroadwan/ledger/pkg/httpx"
	"github.com/aussiebroadwan/ledger/pkg/ledgersdk"
	"github.com/aussiebroadwan/ledger/pkg/slogx"
)

// ExpensesHandler serves the owner scoped /expenses routes. Every route sits
// behind AuthnMiddleware, so the identity is always present.
type ExpensesHandler struct {
	ExpenseService *service.ExpenseService
}

// createExpenseBody keeps amount and the key raw so a number, a numeric
// string and a wrongly typed key can each be told apart.
type createExpenseBody struct {
	Amount         json.RawMessage `json:"amount"`
	Category       string          `json:"category"`
	Description    string          `json:"description"`
	Date           string          `json:"date"`
	IdempotencyKey json.RawMessage `json:"idempotencyKey"`
	RequestID      json.RawMessage `json:"request_id"` // older clients
}

type updateExpenseBody struct {
	Amount      json.RawMessage `json:"amount"`
	Category    *string         `json:"category"`
	Description *string         `json:"description"`
	Date        *string         `json:"date"`
}

// HandleCreate godoc
//
//	@Summary		Record an expense
//	@Description	Creates an expense owned by the caller. Sending an idempotencyKey that was already used returns the original expense with 200 instead of creating a duplicate.
//	@Tags			Expenses
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			body	body		ledgersdk.CreateExpenseRequest		true	"amount, category, description, date, idempotencyKey"
//	@Success		201		{object}	ledgersdk.ExpenseResponse			"created"
//	@Success		200		{object}	ledgersdk.ExpenseResponse			"replayed"
//	@Failure		400		{object}	ledgersdk.ValidationErrorResponse	"code, message, details"
//	@Failure		401		{object}	ledgersdk.ErrorResponse				"error, error_description"
//	@Failure		409		{object}	ledgersdk.ErrorResponse				"error, error_description"
//	@Router			/expenses [post].
func (h *ExpensesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// 1. Decode
	var body createExpenseBody
	if err := httpx.DecodeJSON(w, r, &body); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	// 2. The key must be a string when sent
	rawKey := body.IdempotencyKey
	if !present(rawKey) {
		rawKey = body.RequestID
	}
	var key string
	if present(rawKey) {
		if err := json.Unmarshal(rawKey, &key); err != nil {
			ledgersdk.NewValidationError("invalid input", map[string]string{
				"idempotencyKey": "idempotency key must be a string",
			}).WriteError(w)
			return
		}
	}

	// 3. Create or replay
	exp, outcome, err := h.ExpenseService.Create(ctx, httpx.UserIDFrom(ctx), service.NewExpense{
		Amount:         literal(body.Amount),
		Category:       body.Category,
		Description:    body.Description,
		Date:           body.Date,
		IdempotencyKey: key,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	slogx.FromContext(ctx).Debug("create expense", slog.String("outcome", outcome.String()))

	status, message := http.StatusCreated, "Expense added successfully"
	if outcome == service.OutcomeReplayed {
		status, message = http.StatusOK, "Expense already recorded"
	}
	httpx.WriteJSON(w, status, ledgersdk.ExpenseResponse{
		Message: message,
		Expense: toExpense(exp),
	})
}

// HandleList godoc
//
//	@Summary		List expenses
//	@Description	Lists the caller's expenses, newest first unless sort=oldest. Dates are inclusive.
//	@Tags			Expenses
//	@Produce		json
//	@Security		BearerAuth
//	@Param			category	query		string							false	"exact category"
//	@Param			search		query		string							false	"case-insensitive substring of the description"
//	@Param			sort		query		string							false	"newest or oldest"	Enums(newest, oldest, date_desc, date_asc)
//	@Param			startDate	query		string							false	"YYYY-MM-DD"
//	@Param			endDate		query		string							false	"YYYY-MM-DD"
//	@Success		200			{object}	ledgersdk.ExpenseListResponse	"expenses, count"
//	@Failure		400			{object}	ledgersdk.ValidationErrorResponse
//	@Failure		401			{object}	ledgersdk.ErrorResponse
//	@Router			/expenses [get].
func (h *ExpensesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	f, err := query.ParseFilter(r.URL.Query())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	list, err := h.ExpenseService.List(ctx, httpx.UserIDFrom(ctx), f)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, ledgersdk.ExpenseListResponse{
		Expenses: toExpenses(list),
		Count:    len(list),
	})
}

// HandleGet godoc
//
//	@Summary	Fetch one expense
//	@Tags		Expenses
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string				true	"expense id"
//	@Success	200	{object}	ledgersdk.Expense
//	@Failure	401	{object}	ledgersdk.ErrorResponse
//	@Failure	404	{object}	ledgersdk.ErrorResponse
//	@Router		/expenses/{id} [get].
func (h *ExpensesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	exp, err := h.ExpenseService.Get(ctx, httpx.UserIDFrom(ctx), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toExpense(exp))
}

// HandleUpdate godoc
//
//	@Summary		Edit an expense
//	@Description	Changes the supplied fields only. Expenses of other users are reported as not found.
//	@Tags			Expenses
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string								true	"expense id"
//	@Param			body	body		ledgersdk.UpdateExpenseRequest		true	"any of amount, category, description, date"
//	@Success		200		{object}	ledgersdk.ExpenseResponse			"updated"
//	@Failure		400		{object}	ledgersdk.ValidationErrorResponse	"code, message, details"
//	@Failure		401		{object}	ledgersdk.ErrorResponse
//	@Failure		404		{object}	ledgersdk.ErrorResponse
//	@Router			/expenses/{id} [put].
func (h *ExpensesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body updateExpenseBody
	if err := httpx.DecodeJSON(w, r, &body); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	in := service.ExpenseUpdate{
		Category:    body.Category,
		Description: body.Description,
		Date:        body.Date,
	}
	if present(body.Amount) {
		amount := literal(body.Amount)
		in.Amount = &amount
	}

	exp, err := h.ExpenseService.Update(ctx, httpx.UserIDFrom(ctx), r.PathValue("id"), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, ledgersdk.ExpenseResponse{
		Message: "Expense updated successfully",
		Expense: toExpense(exp),
	})
}

// HandleDelete godoc
//
//	@Summary	Delete an expense
//	@Tags		Expenses
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string					true	"expense id"
//	@Success	200	{object}	ledgersdk.DeleteResponse	"message, id"
//	@Failure	401	{object}	ledgersdk.ErrorResponse
//	@Failure	404	{object}	ledgersdk.ErrorResponse
//	@Router		/expenses/{id} [delete].
func (h *ExpensesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	if err := h.ExpenseService.Delete(ctx, httpx.UserIDFrom(ctx), id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, ledgersdk.DeleteResponse{
		Message: "Expense deleted successfully",
		ID:      id,
	})
}
