package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/ledger/internal/ledger/service"
	"github.com/aussiebroadwan/ledger/pkg/jwtx"
	"github.com/aussiebroadwan/ledger/pkg/ledgersdk"
	"github.com/aussiebroadwan/ledger/pkg/slogx"
)

// writeServiceError maps a service error to its response. Anything
// unrecognised is logged and answered with a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		ledgersdk.NewValidationError("invalid input", verr.Fields).WriteError(w)
	case errors.Is(err, service.ErrExpenseNotFound):
		ledgersdk.ErrExpenseNotFound.WriteError(w)
	case errors.Is(err, service.ErrIdempotencyKeyConflict):
		ledgersdk.ErrKeyConflict.WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		ledgersdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, jwtx.ErrNoSecret):
		slogx.FromContext(r.Context()).Error("token signing is not configured, set JWT_SECRET")
		ledgersdk.ErrMisconfigured.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", slog.Any("err", err))
		ledgersdk.ErrServerError.WriteError(w)
	}
}

// writeDecodeError answers a body that could not be decoded at all.
func writeDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	slogx.FromContext(r.Context()).Debug("rejecting request body", slog.Any("err", err))
	ledgersdk.ErrInvalidRequest.WriteError(w)
}
