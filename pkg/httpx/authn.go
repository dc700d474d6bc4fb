package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/ledger/pkg/jwtx"
	"github.com/aussiebroadwan/ledger/pkg/slogx"
)

// AuthnMiddleware requires a valid bearer token. Every failure gets the same
// 401 so callers cannot tell a malformed token from an expired one; the
// reason is only logged.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				log.Debug("authn: missing bearer token")
				WriteUnauthenticated(w)
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Debug("authn: token rejected", "err", err)
				WriteUnauthenticated(w)
				return
			}

			ctx = WithIdentity(ctx, Identity{UserID: claims.UserID(), Email: claims.Email})
			ctx = slogx.WithUserID(ctx, claims.UserID())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the credentials of an "Authorization: Bearer x"
// header. The scheme is case-insensitive.
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// WriteUnauthenticated writes the uniform 401 used for every auth failure.
func WriteUnauthenticated(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="ledger"`)
	WriteJSON(w, http.StatusUnauthorized, map[string]string{
		"error":             "unauthenticated",
		"error_description": "authentication required",
	})
}
