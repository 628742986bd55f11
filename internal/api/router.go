package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/staffdir/internal/api/apierr"
	"github.com/mcoot/staffdir/internal/api/handler"
	"github.com/mcoot/staffdir/internal/api/middleware"
	"github.com/mcoot/staffdir/internal/dependencies/clock"
	basemiddleware "github.com/mcoot/staffdir/internal/middleware"
	"github.com/mcoot/staffdir/internal/services/auth"
	"github.com/mcoot/staffdir/internal/services/directory"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger           *slog.Logger
	Clock            clock.Clock
	AuthService      *auth.Service
	DirectoryService *directory.Service
	// GraphQL is mounted at /graphql when set
	GraphQL http.Handler
	// Fallback serves every path not matched above, such as the client bundle
	Fallback http.Handler
}

// NewRouter creates the HTTP router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Logger)
	employeeHandler := handler.NewEmployeeHandler(cfg.DirectoryService, cfg.Logger)
	healthHandler := handler.NewHealthHandler(cfg.Clock)

	// Common middleware, outermost first
	r.Use(basemiddleware.RequestID)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(basemiddleware.Logging(cfg.Logger))
	r.Use(middleware.OptionalAuth(cfg.AuthService))

	api := r.PathPrefix("/api").Subrouter()

	// Auth routes
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/me", authHandler.Me).Methods(http.MethodGet)

	// Employee routes; the directory service enforces roles
	api.HandleFunc("/employees", employeeHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/employees", employeeHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/employees/{id}", employeeHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/employees/{id}", employeeHandler.Update).Methods(http.MethodPatch)
	api.HandleFunc("/employees/{id}", employeeHandler.Delete).Methods(http.MethodDelete)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler.Check).Methods(http.MethodGet)

	api.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apierr.WriteError(w, apierr.NewNotFoundError())
	})
	api.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Allow", strings.Join(allowedMethods(api, req), ", "))
		apierr.WriteError(w, apierr.NewMethodNotAllowedError())
	})

	if cfg.GraphQL != nil {
		r.Handle("/graphql", cfg.GraphQL).Methods(http.MethodGet, http.MethodPost)
	}
	if cfg.Fallback != nil {
		r.PathPrefix("/").Handler(cfg.Fallback)
	}

	return r
}

// allowedMethods lists the methods router would accept for the request's path
func allowedMethods(router *mux.Router, req *http.Request) []string {
	var allowed []string
	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete} {
		trial := req.Clone(req.Context())
		trial.Method = method

		var match mux.RouteMatch
		if router.Match(trial, &match) && match.MatchErr == nil {
			allowed = append(allowed, method)
		}
	}
	return allowed
}
