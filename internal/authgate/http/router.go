package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/authgate/internal/authgate/domain"
	"github.com/aussiebroadwan/authgate/internal/authgate/service"
	"github.com/aussiebroadwan/authgate/internal/authgate/store"
	"github.com/aussiebroadwan/authgate/pkg/httpx"
	"github.com/aussiebroadwan/authgate/pkg/jwtx"
	"github.com/aussiebroadwan/authgate/pkg/slogx"

	_ "github.com/aussiebroadwan/authgate/api/authgate" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	port         string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store       store.Store
	UserService *service.UserService

	// SwaggerEnabled mounts the Swagger UI under /swagger/.
	SwaggerEnabled bool
}

func NewRouter(
	verifier jwtx.Verifier,
	port, buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		port:         port,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerUsers()
	r.registerSystem()

	if r.SwaggerEnabled {
		r.Mux.Handle("GET /swagger/", httpSwagger.Handler())
	}

	// Anything else, including a known path with the wrong method.
	r.Mux.Handle("/", NotFoundHandler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			authgate API
//	@version		0.1.0
//	@description	Minimal authentication gateway: registration, password login issuing HS256 bearer tokens, and a role-gated user listing.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/authgate
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:3333
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	r.Mux.Handle("POST /register", http.HandlerFunc(h.HandleRegister))
	r.Mux.Handle("POST /login", http.HandlerFunc(h.HandleLogin))

	// Listing users needs a valid token carrying the admin role.
	secured := httpx.Chain(http.HandlerFunc(h.HandleList),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireRole(domain.RoleAdmin),
	)
	r.Mux.Handle("GET /users", secured)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /{$}", GreetingHandler(r.port))
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
