package ledgersdk

import (
	"encoding/json"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

// ErrorResponse is the body of every non-validation error.
type ErrorResponse struct {
	// Error is a short machine readable code (e.g. "not_found")
	Error string `json:"error"`

	// ErrorDescription is a human readable explanation
	ErrorDescription string `json:"error_description"`
}

// ValidationErrorResponse is returned with 400 when input fields are invalid.
type ValidationErrorResponse struct {
	// Code is always "validation_error"
	Code string `json:"code"`

	Message string `json:"message"`

	// Details maps each rejected field to its message
	Details map[string]string `json:"details,omitempty"`
}

// HealthResponse is returned by /livez, /readyz and /health.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks lists readiness of critical dependencies.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// User is the public view of an account. It never carries the password hash.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// Expense as seen by its owner. Amount is a JSON number with two decimals.
type Expense struct {
	ID          string      `json:"id"`
	OwnerID     string      `json:"ownerId"`
	Amount      json.Number `json:"amount" swaggertype:"number"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Date        string      `json:"date"` // YYYY-MM-DD
	CreatedAt   time.Time   `json:"createdAt"`
}

// AmountDecimal parses Amount without going through a float.
func (e Expense) AmountDecimal() (decimal.Decimal, error) {
	return decimal.NewFromString(e.Amount.String())
}

// CreateExpenseRequest creates an expense. A request carrying an
// IdempotencyKey that was already used returns the original expense.
type CreateExpenseRequest struct {
	Amount         json.Number `json:"amount" swaggertype:"number"`
	Category       string      `json:"category"`
	Description    string      `json:"description"`
	Date           string      `json:"date"`
	IdempotencyKey string      `json:"idempotencyKey,omitempty"`
}

// UpdateExpenseRequest changes only the non-nil fields.
type UpdateExpenseRequest struct {
	Amount      *json.Number `json:"amount,omitempty" swaggertype:"number"`
	Category    *string      `json:"category,omitempty"`
	Description *string      `json:"description,omitempty"`
	Date        *string      `json:"date,omitempty"`
}

// ExpenseResponse wraps a single expense returned by create and update.
type ExpenseResponse struct {
	Message string  `json:"message"`
	Expense Expense `json:"expense"`
}

type ExpenseListResponse struct {
	Expenses []Expense `json:"expenses"`
	Count    int       `json:"count"`
}

type DeleteResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// ListFilter narrows list, export and summary calls. Empty fields are ignored.
type ListFilter struct {
	Category  string
	Search    string
	Sort      string // newest (default) or oldest
	StartDate string // YYYY-MM-DD, inclusive
	EndDate   string // YYYY-MM-DD, inclusive
}

// Values encodes the filter as query parameters.
func (f ListFilter) Values() url.Values {
	v := url.Values{}
	set := func(k, val string) {
		if val != "" {
			v.Set(k, val)
		}
	}
	set("category", f.Category)
	set("search", f.Search)
	set("sort", f.Sort)
	set("startDate", f.StartDate)
	set("endDate", f.EndDate)
	return v
}

// CategorySummary is one category's share of a summary.
type CategorySummary struct {
	Category   string      `json:"category"`
	Count      int         `json:"count"`
	Total      json.Number `json:"total" swaggertype:"number"`
	Percentage float64     `json:"percentage"`
	Formatted  string      `json:"formatted"`
}

// SummaryResponse aggregates the expenses matching a filter.
type SummaryResponse struct {
	Currency       string            `json:"currency"`
	Count          int               `json:"count"`
	Total          json.Number       `json:"total" swaggertype:"number"`
	Average        json.Number       `json:"average" swaggertype:"number"`
	Highest        json.Number       `json:"highest" swaggertype:"number"`
	Lowest         json.Number       `json:"lowest" swaggertype:"number"`
	FormattedTotal string            `json:"formattedTotal"`
	Categories     []CategorySummary `json:"categories"`
}
