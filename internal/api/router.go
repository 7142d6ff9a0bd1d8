package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Sourcing/internal/hermes"
	"github.com/MikeSquared-Agency/Sourcing/internal/sourcing"
	"github.com/MikeSquared-Agency/Sourcing/internal/store"
)

func NewRouter(s store.Store, h hermes.Client, ev *sourcing.Evaluator, cache LocationCache, adminToken string, rateLimitPerMin int, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(rateLimitPerMin))

	rules := NewRulesHandler(s, h, ev, logger)
	locations := NewLocationsHandler(s, h, cache, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/rules/validate", rules.Validate)
		r.Get("/rules", rules.List)
		r.Get("/rules/{id}", rules.Get)
		r.Post("/rules/{id}/evaluate", rules.Evaluate)
		r.Get("/rules/{id}/evaluations", rules.Evaluations)

		r.Get("/locations", locations.List)
		r.Get("/locations/{id}", locations.Get)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(adminToken))
			r.Post("/rules", rules.Create)
			r.Put("/rules/{id}", rules.Update)
			r.Delete("/rules/{id}", rules.Delete)
			r.Put("/locations/{id}", locations.Put)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
