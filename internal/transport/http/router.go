package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter assembles the API routes.
func NewRouter(handler *Handler, logger *slog.Logger, registry *prometheus.Registry) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(requestScope)
	r.Use(requestLogger(logger))

	r.Route("/subdomains", func(r chi.Router) {
		r.Post("/", handler.Provision)
		r.Get("/{name}", handler.Status)
		r.Delete("/{name}", handler.Revoke)
	})
	r.Get("/security/report", handler.Report)
	r.Get("/audit/recent", handler.RecentEvents)

	r.Get("/healthz", handler.Healthz)
	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	return r
}
