package ledgersdk_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/ledger/pkg/ledgersdk"
	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/require"
)

// recordingTimer fires immediately and remembers every wait it was asked for.
type recordingTimer struct {
	mu     sync.Mutex
	waits  []time.Duration
	c      chan time.Time
	onWait func()
}

func newRecordingTimer() *recordingTimer {
	return &recordingTimer{c: make(chan time.Time, 1)}
}

func (t *recordingTimer) Start(d time.Duration) {
	t.mu.Lock()
	t.waits = append(t.waits, d)
	t.mu.Unlock()

	if t.onWait != nil {
		t.onWait()
		return
	}
	t.c <- time.Now()
}

func (t *recordingTimer) Stop()               {}
func (t *recordingTimer) C() <-chan time.Time { return t.c }

func (t *recordingTimer) Waits() []time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]time.Duration(nil), t.waits...)
}

func newTestClient(t *testing.T, h http.Handler) (*ledgersdk.Client, *recordingTimer) {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	timer := newRecordingTimer()
	c := ledgersdk.NewClient(srv.URL)
	c.NewTimer = func() backoff.Timer { return timer }
	return c, timer
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func loggedIn(t *testing.T, c *ledgersdk.Client) {
	t.Helper()
	require.NoError(t, c.Credentials.Save(ledgersdk.Credentials{Token: "tok"}))
}

func TestRetriesServerErrorsWithBackoff(t *testing.T) {
	var calls atomic.Int32
	c, timer := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 3 {
			writeJSON(w, http.StatusInternalServerError, ledgersdk.ErrorResponse{Error: "server_error"})
			return
		}
		writeJSON(w, http.StatusOK, ledgersdk.ExpenseListResponse{Count: 0, Expenses: []ledgersdk.Expense{}})
	}))
	loggedIn(t, c)

	list, err := c.ListExpenses(context.Background(), ledgersdk.ListFilter{})
	require.NoError(t, err)
	require.Equal(t, 0, list.Count)
	require.EqualValues(t, 4, calls.Load())
	require.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, timer.Waits())
}

func TestRetriesDroppedConnections(t *testing.T) {
	var calls atomic.Int32
	c, timer := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			// hang up without writing a response
			conn, _, err := w.(http.Hijacker).Hijack()
			require.NoError(t, err)
			_ = conn.Close()
			return
		}
		writeJSON(w, http.StatusOK, ledgersdk.ExpenseListResponse{Count: 0, Expenses: []ledgersdk.Expense{}})
	}))
	loggedIn(t, c)

	list, err := c.ListExpenses(context.Background(), ledgersdk.ListFilter{})
	require.NoError(t, err)
	require.Equal(t, 0, list.Count)
	require.EqualValues(t, 3, calls.Load())
	require.Equal(t, []time.Duration{time.Second, 2 * time.Second}, timer.Waits())
}

func TestGivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	c, timer := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusServiceUnavailable, ledgersdk.ErrorResponse{Error: "server_error", ErrorDescription: "down"})
	}))
	loggedIn(t, c)

	_, err := c.ListExpenses(context.Background(), ledgersdk.ListFilter{})

	var apiErr *ledgersdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	require.True(t, apiErr.Temporary())
	require.EqualValues(t, 4, calls.Load())
	require.Len(t, timer.Waits(), 3)
}

func TestRetriesResendTheSameBody(t *testing.T) {
	var (
		mu     sync.Mutex
		bodies [][]byte
	)
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)

		mu.Lock()
		bodies = append(bodies, b)
		n := len(bodies)
		mu.Unlock()

		if n < 3 {
			writeJSON(w, http.StatusBadGateway, nil)
			return
		}
		writeJSON(w, http.StatusCreated, ledgersdk.ExpenseResponse{
			Message: "Expense added successfully",
			Expense: ledgersdk.Expense{ID: "e1", Amount: "12.50"},
		})
	}))
	loggedIn(t, c)

	exp, created, err := c.CreateExpense(context.Background(), ledgersdk.CreateExpenseRequest{
		Amount:      "12.50",
		Category:    "Food",
		Description: "Lunch",
		Date:        "2024-03-01",
	})
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, "e1", exp.ID)

	require.Len(t, bodies, 3)
	for _, b := range bodies[1:] {
		require.True(t, bytes.Equal(bodies[0], b))
	}

	var sent ledgersdk.CreateExpenseRequest
	require.NoError(t, json.Unmarshal(bodies[0], &sent))
	require.NotEmpty(t, sent.IdempotencyKey, "a key is generated when the caller has none")
}

func TestCreateExpenseReplay(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ledgersdk.ExpenseResponse{Expense: ledgersdk.Expense{ID: "e1"}})
	}))
	loggedIn(t, c)

	exp, created, err := c.CreateExpense(context.Background(), ledgersdk.CreateExpenseRequest{IdempotencyKey: "k1"})
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, "e1", exp.ID)
}

func TestClientErrorsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	c, timer := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusBadRequest, ledgersdk.ValidationErrorResponse{
			Code:    ledgersdk.ErrorCodeValidation,
			Message: "invalid expense",
			Details: map[string]string{"amount": "must be positive"},
		})
	}))
	loggedIn(t, c)

	_, _, err := c.CreateExpense(context.Background(), ledgersdk.CreateExpenseRequest{Amount: "-1"})
	require.True(t, ledgersdk.IsValidation(err))

	var apiErr *ledgersdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "must be positive", apiErr.Details["amount"])
	require.EqualValues(t, 1, calls.Load())
	require.Empty(t, timer.Waits())
}

func TestUnauthorizedClearsCredentials(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusUnauthorized, ledgersdk.ErrorResponse{Error: "unauthenticated"})
	}))
	loggedIn(t, c)

	_, err := c.ListExpenses(context.Background(), ledgersdk.ListFilter{})
	require.ErrorIs(t, err, ledgersdk.ErrUnauthenticated)
	require.Empty(t, c.Token())
	require.EqualValues(t, 1, calls.Load())

	// nothing is sent without a token
	_, err = c.ListExpenses(context.Background(), ledgersdk.ListFilter{})
	require.ErrorIs(t, err, ledgersdk.ErrUnauthenticated)
	require.EqualValues(t, 1, calls.Load())
}

// stickyCredentials holds a token it refuses to forget.
type stickyCredentials struct {
	ledgersdk.MemoryCredentials
}

func (s *stickyCredentials) Clear() error { return errors.New("read-only filesystem") }

func TestUnauthorizedClearFailureIsLogged(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, ledgersdk.ErrorResponse{Error: "unauthenticated"})
	}))

	var logs bytes.Buffer
	c.Logger = slog.New(slog.NewJSONHandler(&logs, nil))
	c.Credentials = &stickyCredentials{}
	loggedIn(t, c)

	_, err := c.ListExpenses(context.Background(), ledgersdk.ListFilter{})
	require.ErrorIs(t, err, ledgersdk.ErrUnauthenticated)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
	require.Equal(t, "WARN", entry["level"])
	require.Equal(t, "ledgersdk: failed to clear credentials", entry["msg"])
	require.Equal(t, "read-only filesystem", entry["err"])
}

func TestContextCancelStopsWaiting(t *testing.T) {
	var calls atomic.Int32
	c, timer := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusInternalServerError, nil)
	}))
	loggedIn(t, c)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	timer.onWait = cancel

	_, err := c.ListExpenses(ctx, ledgersdk.ListFilter{})
	require.ErrorIs(t, err, context.Canceled)
	require.EqualValues(t, 1, calls.Load())
}

func TestLoginStoresSession(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			var req ledgersdk.LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			if req.Password != "secret" {
				writeJSON(w, http.StatusUnauthorized, ledgersdk.ErrorResponse{Error: "invalid_credentials"})
				return
			}
			writeJSON(w, http.StatusOK, ledgersdk.AuthResponse{
				Message: "Login successful",
				Token:   "tok-1",
				User:    ledgersdk.User{ID: "u1", Email: req.Email},
			})
		case "/expenses":
			require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
			require.Equal(t, "Food", r.URL.Query().Get("category"))
			writeJSON(w, http.StatusOK, ledgersdk.ExpenseListResponse{Expenses: []ledgersdk.Expense{}})
		}
	}))

	_, err := c.Login(context.Background(), "alice@example.com", "wrong")
	require.Error(t, err)
	require.NotErrorIs(t, err, ledgersdk.ErrUnauthenticated, "login is not an authenticated call")
	require.Empty(t, c.Token())

	resp, err := c.Login(context.Background(), "alice@example.com", "secret")
	require.NoError(t, err)
	require.Equal(t, "tok-1", resp.Token)
	require.Equal(t, "tok-1", c.Token())

	user, ok := c.CurrentUser()
	require.True(t, ok)
	require.Equal(t, "u1", user.ID)

	_, err = c.ListExpenses(context.Background(), ledgersdk.ListFilter{Category: "Food"})
	require.NoError(t, err)

	require.NoError(t, c.Logout())
	require.Empty(t, c.Token())
}

func TestExportCSV(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/expenses/export/csv", r.URL.Path)
		require.Equal(t, "text/csv", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="expenses-2024-03-01.csv"`)
		_, _ = io.WriteString(w, "Date,Category,Description,Amount\n")
	}))
	loggedIn(t, c)

	var buf bytes.Buffer
	name, err := c.ExportCSV(context.Background(), ledgersdk.ListFilter{}, &buf)
	require.NoError(t, err)
	require.Equal(t, "expenses-2024-03-01.csv", name)
	require.Equal(t, "Date,Category,Description,Amount\n", buf.String())
}

func TestDeleteNotFound(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/expenses/missing", r.URL.Path)
		writeJSON(w, http.StatusNotFound, ledgersdk.ErrorResponse{Error: "not_found", ErrorDescription: "Expense not found"})
	}))
	loggedIn(t, c)

	err := c.DeleteExpense(context.Background(), "missing")
	require.True(t, ledgersdk.IsNotFound(err))
}

func TestFileCredentials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.json")
	store := &ledgersdk.FileCredentials{Path: path}

	creds, err := store.Load()
	require.NoError(t, err)
	require.Empty(t, creds.Token)

	require.NoError(t, store.Save(ledgersdk.Credentials{Token: "tok", User: &ledgersdk.User{ID: "u1"}}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	creds, err = (&ledgersdk.FileCredentials{Path: path}).Load()
	require.NoError(t, err)
	require.Equal(t, "tok", creds.Token)
	require.Equal(t, "u1", creds.User.ID)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())

	_, err = os.Stat(path)
	require.True(t, errors.Is(err, os.ErrNotExist))
}
