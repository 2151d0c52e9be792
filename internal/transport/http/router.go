package httptransport

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"visitorid/internal/platform/metrics"
	"visitorid/internal/platform/middleware"
	"visitorid/pkg/platform/httputil"
	"visitorid/pkg/platform/middleware/metadata"
	"visitorid/pkg/platform/middleware/requesttime"
	"visitorid/pkg/requestcontext"
)

// APIPrefix is where every application route is mounted.
const APIPrefix = "/api"

// RouteRegistrar is implemented by handlers that own a group of routes.
type RouteRegistrar interface {
	Register(r chi.Router)
}

// Deps collects what the router needs. Handlers are registered under
// APIPrefix in order.
type Deps struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	AllowedOrigins []string
	Handlers       []RouteRegistrar
}

// Endpoints lists the public routes for the API index and 404 responses.
var Endpoints = []endpoint{
	{"POST", "/api/tourist/register", "Register a new visitor"},
	{"GET", "/api/tourist/{address}", "Get a visitor by account address"},
	{"GET", "/api/tourist/passport/{passport}", "Get a visitor by passport or national ID"},
	{"GET", "/api/tourist/{address}/validate", "Check a visitor's registration status"},
	{"GET", "/api/stats", "System statistics"},
	{"GET", "/api/wallet", "Signer wallet information"},
	{"GET", "/api/health", "Health check"},
}

type endpoint struct {
	Method      string
	Path        string
	Description string
}

func (e endpoint) String() string {
	return e.Method + " " + e.Path
}

// NewRouter wires middleware, the API routes, /metrics and JSON fallbacks.
func NewRouter(d Deps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(metadata.RequestMetadata)
	r.Use(requesttime.Middleware)
	r.Use(middleware.Logger(logger, d.Metrics))
	r.Use(chimw.Recoverer)
	r.Use(middleware.SecurityHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/", handleRoot)
	r.Handle("/metrics", promhttp.Handler())

	r.Route(APIPrefix, func(api chi.Router) {
		api.Get("/", handleIndex)
		for _, h := range d.Handlers {
			h.Register(api)
		}
	})

	r.NotFound(handleNotFound)
	r.MethodNotAllowed(handleMethodNotAllowed)
	return r
}

func handleRoot(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Digital Tourist ID Generation Platform",
		"status":  "Active",
		"api": map[string]string{
			"prefix": APIPrefix,
			"index":  APIPrefix,
			"health": APIPrefix + "/health",
		},
		"timestamp": requestcontext.Now(r.Context()).UTC().Format(time.RFC3339),
	})
}

func handleIndex(w http.ResponseWriter, _ *http.Request) {
	endpoints := make(map[string]string, len(Endpoints))
	for _, e := range Endpoints {
		endpoints[e.String()] = e.Description
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"message":   "Digital Tourist ID Generation Platform API",
		"endpoints": endpoints,
	})
}

type notFoundResponse struct {
	httputil.ErrorResponse
	AvailableEndpoints []string `json:"availableEndpoints"`
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeRouteError(w, http.StatusNotFound, "not_found",
		fmt.Sprintf("the requested endpoint %s %s does not exist", r.Method, r.URL.Path))
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeRouteError(w, http.StatusMethodNotAllowed, "method_not_allowed",
		fmt.Sprintf("method %s is not allowed on %s", r.Method, r.URL.Path))
}

func writeRouteError(w http.ResponseWriter, status int, code, description string) {
	available := make([]string, 0, len(Endpoints))
	for _, e := range Endpoints {
		available = append(available, e.String())
	}
	httputil.WriteJSON(w, status, notFoundResponse{
		ErrorResponse: httputil.ErrorResponse{
			Success:          false,
			Error:            code,
			ErrorDescription: description,
		},
		AvailableEndpoints: available,
	})
}
