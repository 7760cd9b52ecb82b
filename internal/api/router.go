package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Matrix/internal/relay"
	"github.com/MikeSquared-Agency/Matrix/internal/scoring"
	"github.com/MikeSquared-Agency/Matrix/internal/store"
)

type RouterConfig struct {
	AdminToken         string
	RateLimitPerMinute int
}

func NewRouter(e *scoring.Engine, j store.Journal, rl *relay.Relay, cfg RouterConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(cfg.RateLimitPerMinute))

	criteria := NewCriteriaHandler(e)
	explain := NewExplainHandler(e)
	admin := NewAdminHandler(e, j, rl)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/options", criteria.Options)

		r.Get("/criteria", criteria.List)
		r.Post("/criteria", criteria.Add)
		r.Get("/criteria/{id}", criteria.Get)
		r.Patch("/criteria/{id}", criteria.Update)
		r.Delete("/criteria/{id}", criteria.Remove)
		r.Put("/criteria/{id}/scores/{option}", criteria.UpdateScore)

		r.Post("/reset", criteria.Reset)

		r.Get("/analysis", explain.Analysis)
		r.Get("/analysis/explain/{option}", explain.Explain)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.AdminToken))
			r.Get("/stats", admin.Stats)
			r.Get("/journal", admin.Journal)
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
