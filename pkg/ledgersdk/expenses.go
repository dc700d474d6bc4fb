package ledgersdk

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
)

// CreateExpense records an expense. If req has no IdempotencyKey one is
// generated, so retries of this call never create duplicates. created is
// false when the server returned an expense recorded earlier with the same
// key.
func (c *Client) CreateExpense(ctx context.Context, req CreateExpenseRequest) (exp *Expense, created bool, err error) {
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = NewIdempotencyKey()
	}

	r, err := jsonRequest(http.MethodPost, "/expenses", req, true)
	if err != nil {
		return nil, false, err
	}

	resp, err := c.do(ctx, r)
	if err != nil {
		return nil, false, err
	}

	var out ExpenseResponse
	if err := decodeJSON(resp, &out, http.StatusCreated, http.StatusOK); err != nil {
		return nil, false, err
	}
	return &out.Expense, resp.StatusCode == http.StatusCreated, nil
}

// ListExpenses returns the caller's expenses matching f.
func (c *Client) ListExpenses(ctx context.Context, f ListFilter) (*ExpenseListResponse, error) {
	r, _ := jsonRequest(http.MethodGet, withQuery("/expenses", f.Values()), nil, true)

	var out ExpenseListResponse
	if err := c.call(ctx, r, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetExpense fetches one of the caller's expenses.
func (c *Client) GetExpense(ctx context.Context, id string) (*Expense, error) {
	r, _ := jsonRequest(http.MethodGet, "/expenses/"+url.PathEscape(id), nil, true)

	var out Expense
	if err := c.call(ctx, r, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateExpense changes the fields set in req.
func (c *Client) UpdateExpense(ctx context.Context, id string, req UpdateExpenseRequest) (*Expense, error) {
	r, err := jsonRequest(http.MethodPut, "/expenses/"+url.PathEscape(id), req, true)
	if err != nil {
		return nil, err
	}

	var out ExpenseResponse
	if err := c.call(ctx, r, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out.Expense, nil
}

// DeleteExpense removes an expense.
func (c *Client) DeleteExpense(ctx context.Context, id string) error {
	r, _ := jsonRequest(http.MethodDelete, "/expenses/"+url.PathEscape(id), nil, true)
	return c.call(ctx, r, http.StatusOK, &DeleteResponse{})
}

// ExportCSV streams the CSV export for f into w and returns the file name
// suggested by the server.
func (c *Client) ExportCSV(ctx context.Context, f ListFilter, w io.Writer) (string, error) {
	r := request{
		method: http.MethodGet,
		path:   withQuery("/expenses/export/csv", f.Values()),
		authed: true,
		accept: "text/csv",
	}

	resp, err := c.do(ctx, r)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", decodeJSON(resp, nil, http.StatusOK)
	}
	defer resp.Body.Close()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return "", fmt.Errorf("read export: %w", err)
	}

	name := "expenses.csv"
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		name = params["filename"]
	}
	return name, nil
}

// Summary totals the caller's expenses matching f.
func (c *Client) Summary(ctx context.Context, f ListFilter) (*SummaryResponse, error) {
	r, _ := jsonRequest(http.MethodGet, withQuery("/expenses/summary", f.Values()), nil, true)

	var out SummaryResponse
	if err := c.call(ctx, r, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func withQuery(path string, v url.Values) string {
	if len(v) == 0 {
		return path
	}
	return path + "?" + v.Encode()
}
