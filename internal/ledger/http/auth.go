package http

import (
	"net/http"

	"github.com/aussiebroadwan/ledger/internal/ledger/service"
	"github.com/aussiebroadwan/ledger/pkg/httpx"
	"github.com/aussiebroadwan/ledger/pkg/ledgersdk"
)

// AuthHandler serves signup and login.
type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleSignup godoc
//
//	@Summary		Create an account
//	@Description	Registers a user and returns a session token valid for seven days.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ledgersdk.SignupRequest				true	"name, email, password (min 6 chars)"
//	@Success		201		{object}	ledgersdk.AuthResponse				"message, token, user"
//	@Failure		400		{object}	ledgersdk.ValidationErrorResponse	"code, message, details"
//	@Failure		429		{object}	ledgersdk.ErrorResponse				"error, error_description"
//	@Failure		500		{object}	ledgersdk.ErrorResponse				"error, error_description"
//	@Router			/auth/signup [post].
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req ledgersdk.SignupRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	sess, err := h.AuthService.Signup(r.Context(), service.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, ledgersdk.AuthResponse{
		Message: "User registered successfully",
		Token:   sess.Token,
		User:    toUser(sess.User),
	})
}

// HandleLogin godoc
//
//	@Summary		Log in
//	@Description	Exchanges email and password for a session token. Unknown emails and wrong passwords get the same 401.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ledgersdk.LoginRequest	true	"email, password"
//	@Success		200		{object}	ledgersdk.AuthResponse	"message, token, user"
//	@Failure		400		{object}	ledgersdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	ledgersdk.ErrorResponse	"error, error_description"
//	@Failure		429		{object}	ledgersdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	ledgersdk.ErrorResponse	"error, error_description"
//	@Router			/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req ledgersdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	sess, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, ledgersdk.AuthResponse{
		Message: "Login successful",
		Token:   sess.Token,
		User:    toUser(sess.User),
	})
}
