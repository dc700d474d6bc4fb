package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/ledger/internal/ledger/service"
	"github.com/aussiebroadwan/ledger/internal/ledger/store"
	"github.com/aussiebroadwan/ledger/pkg/httpx"
	"github.com/aussiebroadwan/ledger/pkg/jwtx"
	"github.com/aussiebroadwan/ledger/pkg/slogx"

	_ "github.com/aussiebroadwan/ledger/api/ledger" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	tokens       *jwtx.Codec
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	AuthService    *service.AuthService
	ExpenseService *service.ExpenseService
}

// NewRouter builds a router. corsOrigins may be empty, in which case no
// cross-origin headers are ever sent.
func NewRouter(
	tokens *jwtx.Codec,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	corsOrigins ...string,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		tokens:       tokens,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// logging outermost so preflights are logged too
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(corsOrigins...),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerExpenses()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Ledger Service API
//	@version		0.1.0
//	@description	Personal expense ledger. Users sign up, then record, edit, filter, summarise and export their expenses.
//	@description
//	@description				Creates are idempotent: resend the same idempotencyKey and the original expense comes back.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/ledger
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				HS256 session token from /auth/login. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// strict per-IP limits, these are the brute force targets
	r.Mux.Handle("POST /auth/signup",
		httpx.Chain(http.HandlerFunc(h.HandleSignup),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerExpenses() {
	h := &ExpensesHandler{ExpenseService: r.ExpenseService}

	secured := func(fn http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.tokens),
			httpx.RateLimitByUser(limit),
		)
	}

	r.Mux.Handle("POST /expenses", secured(h.HandleCreate, httpx.ModerateLimit))
	r.Mux.Handle("GET /expenses", secured(h.HandleList, httpx.ModerateLimit))
	r.Mux.Handle("GET /expenses/{id}", secured(h.HandleGet, httpx.ModerateLimit))
	r.Mux.Handle("PUT /expenses/{id}", secured(h.HandleUpdate, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /expenses/{id}", secured(h.HandleDelete, httpx.ModerateLimit))

	// reads that scan the whole ledger
	r.Mux.Handle("GET /expenses/export/csv", secured(h.HandleExport, httpx.LenientLimit))
	r.Mux.Handle("GET /expenses/summary", secured(h.HandleSummary, httpx.LenientLimit))
}

func (r *Router) registerSystem() {
	ready := ReadyzHandler(r.startTime, r.buildVersion, r.store, r.tokens.Configured)

	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz", httpx.Chain(ready, httpx.RateLimitByIP(httpx.PublicLimit)))
	r.Mux.Handle("GET /health", httpx.Chain(ready, httpx.RateLimitByIP(httpx.PublicLimit)))
}
