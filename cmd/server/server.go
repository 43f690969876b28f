package main

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/janisto/devconnector-api/internal/http/health"
	"github.com/janisto/devconnector-api/internal/http/v1/routes"
	"github.com/janisto/devconnector-api/internal/platform/auth"
	"github.com/janisto/devconnector-api/internal/platform/logging"
	appmiddleware "github.com/janisto/devconnector-api/internal/platform/middleware"
	"github.com/janisto/devconnector-api/internal/platform/respond"
	githubsvc "github.com/janisto/devconnector-api/internal/service/github"
	profilesvc "github.com/janisto/devconnector-api/internal/service/profile"
)

const (
	docsPath       = "/api-docs"
	maxRequestBody = 1 << 20 // 1 MB
)

// deps are the collaborators the HTTP layer needs.
type deps struct {
	ProjectID string
	Verifier  auth.Verifier
	Profiles  profilesvc.Service
	GitHub    githubsvc.Service
	Checks    map[string]health.Check
	Registry  *prometheus.Registry
}

// newRegistry returns a registry with the Go runtime and process collectors.
func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// newRouter assembles the middleware stack, infrastructure endpoints, and API.
func newRouter(d deps) (chi.Router, huma.API) {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	metrics := appmiddleware.NewMetrics(d.Registry)
	router.Use(
		appmiddleware.Security(docsPath),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// Trusts X-Forwarded-For; deploy behind a proxy that sets it.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(maxRequestBody),
		logging.RequestLogger(d.ProjectID),
		logging.AccessLogger(),
		metrics.Handler(),
		respond.Recoverer(),
	)

	router.Get("/health", health.Handler(d.Checks))
	router.Handle("/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{Registry: d.Registry}))

	cfg := huma.DefaultConfig("DevConnector Profile API", Version)
	cfg.DocsPath = docsPath
	api := humachi.New(router, cfg)
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation, advertiseCBOR)

	routes.Register(api, d.Verifier, d.Profiles, d.GitHub)
	return router, api
}

// advertiseCBOR lists application/cbor next to every JSON request and response body.
func advertiseCBOR(_ *huma.OpenAPI, op *huma.Operation) {
	if op.RequestBody != nil && op.RequestBody.Content != nil {
		if c, ok := op.RequestBody.Content["application/json"]; ok {
			op.RequestBody.Content["application/cbor"] = c
		}
	}
	for _, resp := range op.Responses {
		if resp.Content == nil {
			continue
		}
		if c, ok := resp.Content["application/json"]; ok {
			resp.Content["application/cbor"] = c
		}
	}
}

func newHTTPServer(port string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10,
	}
}
