package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"adequa/pkg/platform/httputil"
	"adequa/pkg/platform/middleware/admin"
	"adequa/pkg/platform/middleware/auth"
	"adequa/pkg/platform/middleware/metadata"
	"adequa/pkg/platform/middleware/request"
	"adequa/pkg/platform/middleware/requesttime"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

type routerConfig struct {
	checks  map[string]HealthCheck
	metrics http.Handler
}

// RouterOption configures NewRouter.
type RouterOption func(*routerConfig)

// WithHealthCheck adds a named dependency check to /health.
func WithHealthCheck(name string, check HealthCheck) RouterOption {
	return func(c *routerConfig) {
		c.checks[name] = check
	}
}

// WithMetricsHandler replaces the default Prometheus handler on /metrics.
func WithMetricsHandler(h http.Handler) RouterOption {
	return func(c *routerConfig) {
		c.metrics = h
	}
}

// NewRouter wires the public endpoints. /health and /metrics are open; every
// other route requires a bearer token, and /admin routes the admin role.
func NewRouter(h *Handler, validator auth.TokenValidator, logger *slog.Logger, opts ...RouterOption) http.Handler {
	cfg := &routerConfig{checks: map[string]HealthCheck{}, metrics: promhttp.Handler()}
	for _, opt := range opts {
		opt(cfg)
	}

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(request.Logger(logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", healthHandler(cfg.checks))
	r.Handle("/metrics", cfg.metrics)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(validator, logger))
		h.Register(r)

		r.Group(func(r chi.Router) {
			r.Use(admin.RequireAdmin(logger))
			h.RegisterAdmin(r)
		})
	})
	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(checks))}
		status := http.StatusOK
		for name, check := range checks {
			if err := check(ctx); err != nil {
				resp.Checks[name] = err.Error()
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		httputil.WriteJSON(w, status, resp)
	}
}
