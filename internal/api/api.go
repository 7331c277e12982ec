// Package api assembles the HTTP surface: document, thread, movie, and chat
// endpoints under /api plus health, readiness, and metrics endpoints.
package api

import (
	"net/http"

	"github.com/JaimeStill/neurocore/internal/config"
	"github.com/JaimeStill/neurocore/internal/documents"
	"github.com/JaimeStill/neurocore/internal/movies"
	"github.com/JaimeStill/neurocore/internal/threads"
	"github.com/JaimeStill/neurocore/pkg/lifecycle"
	"github.com/JaimeStill/neurocore/pkg/middleware"
	"github.com/JaimeStill/neurocore/pkg/routes"
)

// BasePath prefixes every domain endpoint.
const BasePath = "/api"

// NewHandler builds the service handler with its full middleware stack.
func NewHandler(cfg *config.Config, runtime *Runtime) (http.Handler, *Domain, error) {
	domain, err := NewDomain(cfg, runtime)
	if err != nil {
		return nil, nil, err
	}

	r := routes.New()
	registerRoutes(r, cfg, runtime, domain)

	mw := middleware.New()
	mw.Use(middleware.TrimSlash())
	mw.Use(middleware.Logger(runtime.Logger))
	mw.Use(middleware.CORS(&cfg.CORS))
	mw.Use(middleware.Identity(&cfg.Auth))
	if runtime.Metrics != nil {
		// innermost so the matched pattern is visible after routing
		mw.Use(runtime.Metrics.Middleware())
	}

	return mw.Apply(r.Build()), domain, nil
}

func registerRoutes(r routes.System, cfg *config.Config, runtime *Runtime, domain *Domain) {
	documentHandler := documents.NewHandler(domain.Documents, runtime.Logger, runtime.Pagination, cfg.Documents.MaxContentBytes())
	threadHandler := threads.NewHandler(domain.Threads, runtime.Logger)
	movieHandler := movies.NewHandler(runtime.Catalog, runtime.Logger)
	chatHandler := NewChatHandler(domain.Supervisor, domain.Threads, runtime.Logger)

	r.RegisterGroup(routes.Group{
		Prefix: BasePath,
		Children: []routes.Group{
			documentHandler.Routes(),
			threadHandler.Routes(),
			movieHandler.Routes(),
			chatHandler.Routes(),
		},
	})

	r.RegisterRoute(routes.Route{Method: "GET", Pattern: "/healthz", Handler: handleHealthCheck})
	r.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/readyz",
		Handler: func(w http.ResponseWriter, r *http.Request) {
			handleReadinessCheck(w, runtime.Lifecycle)
		},
	})

	if runtime.Metrics != nil {
		r.RegisterRoute(routes.Route{Method: "GET", Pattern: "/metrics", Handler: runtime.Metrics.Handler().ServeHTTP})
	}
}

// handleHealthCheck responds with OK status for health monitoring.
func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func handleReadinessCheck(w http.ResponseWriter, ready lifecycle.ReadinessChecker) {
	if ready == nil || !ready.Ready() {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("NOT READY"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("READY"))
}
