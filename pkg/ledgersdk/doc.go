/*
Package ledgersdk is a Go client for the ledger expense service.

# Overview

A Client wraps every call with three behaviours:

  - Authenticated calls carry "Authorization: Bearer <token>" taken from the
    client's CredentialStore. There is no package level token state; each
    Client owns its store.
  - A 401 on an authenticated call clears the stored credentials and
    returns ErrUnauthenticated. It is never retried.
  - Transport errors and 5xx responses are retried up to MaxRetries times
    (3 by default) with exponential waits of 1s, 2s and 4s. The request body
    is buffered, so every attempt sends the same bytes. Waits stop early
    when the context is cancelled.

Basic use:

	client := ledgersdk.NewClient("http://localhost:8080")

	if _, err := client.Login(ctx, "alice@example.com", "secret"); err != nil {
		return err
	}

	exp, created, err := client.CreateExpense(ctx, ledgersdk.CreateExpenseRequest{
		Amount:      "12.50",
		Category:    "Food",
		Description: "Lunch",
		Date:        "2024-03-01",
	})

# Idempotent creates

CreateExpense always sends an idempotency key, generating one with
NewIdempotencyKey when the request has none. Retries of that call reuse the
key, so a request that reached the server before the connection dropped is
answered with the original expense (created == false) instead of a
duplicate. Callers that retry at a higher level (a user pressing "save"
twice) should generate the key once per user action and set it themselves.

# Persisting sessions

MemoryCredentials keeps the token for the life of the process.
FileCredentials stores it as a 0600 JSON file, which is what the ledger CLI
uses:

	path, _ := ledgersdk.DefaultCredentialsPath()
	client.Credentials = &ledgersdk.FileCredentials{Path: path}

# Errors

Server errors are returned as *APIError with the HTTP status, the error
code and, for validation failures, a map of field messages:

	var apiErr *ledgersdk.APIError
	if errors.As(err, &apiErr) && apiErr.Code == ledgersdk.ErrorCodeValidation {
		for field, msg := range apiErr.Details {
			fmt.Printf("%s: %s\n", field, msg)
		}
	}

Use errors.Is(err, ledgersdk.ErrUnauthenticated) to detect an expired or
missing session.
*/
package ledgersdk
