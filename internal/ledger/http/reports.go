package http

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/ledger/internal/ledger/export"
	"github.com/aussiebroadwan/ledger/internal/ledger/query"
	"github.com/aussiebroadwan/ledger/pkg/httpx"
)

// HandleExport godoc
//
//	@Summary		Export expenses as CSV
//	@Description	Streams the caller's expenses matching the filter as a UTF-8 CSV file with a BOM, newest first.
//	@Tags			Expenses
//	@Produce		text/csv
//	@Security		BearerAuth
//	@Param			category	query		string	false	"exact category"
//	@Param			search		query		string	false	"case-insensitive substring of the description"
//	@Param			sort		query		string	false	"ignored, exports are always newest first"
//	@Param			startDate	query		string	false	"YYYY-MM-DD"
//	@Param			endDate		query		string	false	"YYYY-MM-DD"
//	@Success		200			{string}	string	"CSV body"
//	@Header			200			{string}	Content-Disposition	"attachment; filename=\"expenses-YYYY-MM-DD.csv\""
//	@Failure		400			{object}	ledgersdk.ValidationErrorResponse
//	@Failure		401			{object}	ledgersdk.ErrorResponse
//	@Router			/expenses/export/csv [get].
func (h *ExpensesHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	f, err := query.ParseFilter(r.URL.Query())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	// render fully first so a failure can still become a JSON error
	var buf bytes.Buffer
	if err := h.ExpenseService.Export(ctx, httpx.UserIDFrom(ctx), f, &buf); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.Filename(h.ExpenseService.Today())))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// HandleSummary godoc
//
//	@Summary		Summarise expenses
//	@Description	Totals, average, extremes and per-category shares of the caller's expenses matching the filter.
//	@Tags			Expenses
//	@Produce		json
//	@Security		BearerAuth
//	@Param			category	query		string	false	"exact category"
//	@Param			search		query		string	false	"case-insensitive substring of the description"
//	@Param			startDate	query		string	false	"YYYY-MM-DD"
//	@Param			endDate		query		string	false	"YYYY-MM-DD"
//	@Success		200			{object}	ledgersdk.SummaryResponse
//	@Failure		400			{object}	ledgersdk.ValidationErrorResponse
//	@Failure		401			{object}	ledgersdk.ErrorResponse
//	@Router			/expenses/summary [get].
func (h *ExpensesHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	f, err := query.ParseFilter(r.URL.Query())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	sum, err := h.ExpenseService.Summary(ctx, httpx.UserIDFrom(ctx), f)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSummary(sum))
}
