package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/forum/internal/forum/service"
	"github.com/aussiebroadwan/forum/internal/forum/store"
	"github.com/aussiebroadwan/forum/pkg/httpx"
	"github.com/aussiebroadwan/forum/pkg/jwtx"
	"github.com/aussiebroadwan/forum/pkg/metrics"
	"github.com/aussiebroadwan/forum/pkg/slogx"

	_ "github.com/aussiebroadwan/forum/api/forum" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware
	handler     http.Handler

	tokens       *jwtx.Authority
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	// Rate limits for anonymous reads and for admin writes. Defaults to
	// httpx.PublicLimit and httpx.ModerateLimit.
	PublicLimit   httpx.RateLimitConfig
	ModerateLimit httpx.RateLimitConfig

	// TrustedProxies may report the client address in forwarding headers.
	// Empty means rate limits key on the direct peer.
	TrustedProxies httpx.TrustedProxies

	store           store.Store
	AccountService  *service.AccountService
	CategoryService *service.CategoryService
}

func NewRouter(
	tokens *jwtx.Authority,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	cors httpx.CORSConfig,
) *Router {
	r := &Router{
		Mux:           http.NewServeMux(),
		tokens:        tokens,
		buildVersion:  buildVersion,
		startTime:     time.Now(),
		store:         st,
		logger:        logger,
		PublicLimit:   httpx.PublicLimit,
		ModerateLimit: httpx.ModerateLimit,
	}

	// metrics.HTTPMiddleware reads the matched pattern, so it must sit
	// directly on the mux.
	r.middlewares = []httpx.Middleware{
		httpx.CORS(cors),
		slogx.HTTPMiddleware(r.logger),
		metrics.HTTPMiddleware,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerCategories()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())

	r.handler = httpx.Chain(r.Mux, r.middlewares...)
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain built by ApplyRoutes.
//
//	@title			Forum API
//	@version		0.1.0
//	@description	Backend for a community forum: accounts, bearer-token authentication and the category tree.
//	@description
//	@description				Tokens are HS256 JWTs valid for 24 hours. Send them as "Authorization: Bearer {token}".
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/forum
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8000
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AccountService: r.AccountService}

	r.Mux.HandleFunc("POST /api/auth/register", h.HandleRegister)
	r.Mux.HandleFunc("POST /api/auth/login", h.HandleLogin)

	r.Mux.Handle("GET /api/auth/validate",
		httpx.Chain(http.HandlerFunc(h.HandleValidate),
			httpx.RequireAuth(r.tokens),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{AccountService: r.AccountService}

	authed := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, httpx.RequireAuth(r.tokens))
	}

	r.Mux.Handle("GET /api/users/me", authed(h.HandleMe))
	r.Mux.Handle("PUT /api/users/me", authed(h.HandleUpdateMe))
	r.Mux.Handle("POST /api/users/change-password", authed(h.HandleChangePassword))
	r.Mux.Handle("GET /api/users/{id}", authed(h.HandleGet))
}

func (r *Router) registerCategories() {
	h := &CategoriesHandler{CategoryService: r.CategoryService}

	// Public reads - rate limited by IP
	public := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, httpx.RateLimitByIP(r.PublicLimit, r.TrustedProxies))
	}

	r.Mux.Handle("GET /api/categories", public(h.HandleList))
	r.Mux.Handle("GET /api/categories/{id}", public(h.HandleGet))
	r.Mux.Handle("GET /api/categories/slug/{slug}", public(h.HandleGetBySlug))

	// Admin writes - Authenticate then Authorize, rate limited per admin
	admin := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.RequireAdmin(r.tokens),
			httpx.RateLimitByUser(r.ModerateLimit, r.TrustedProxies),
		)
	}

	r.Mux.Handle("POST /api/categories/admin", admin(h.HandleCreate))
	r.Mux.Handle("PUT /api/categories/admin/{id}", admin(h.HandleUpdate))
	r.Mux.Handle("DELETE /api/categories/admin/{id}", admin(h.HandleDelete))
	r.Mux.Handle("POST /api/categories/admin/{id}/subcategories", admin(h.HandleCreateSubcategory))
	r.Mux.Handle("PUT /api/categories/admin/{id}/subcategories/{subcategory_id}", admin(h.HandleUpdateSubcategory))
	r.Mux.Handle("DELETE /api/categories/admin/{id}/subcategories/{subcategory_id}", admin(h.HandleDeleteSubcategory))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.tokens))
	r.Mux.Handle("GET /metrics", metrics.Handler())
}
