package api

import (
	"context"
	"net/http"

	"github.com/Rrens/mock-analyst/internal/api/handler"
	customMiddleware "github.com/Rrens/mock-analyst/internal/api/middleware"
	"github.com/Rrens/mock-analyst/internal/config"
	"github.com/Rrens/mock-analyst/internal/metrics"
	"github.com/Rrens/mock-analyst/internal/progress"
	"github.com/Rrens/mock-analyst/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Dependencies are the services the HTTP layer is wired to
type Dependencies struct {
	QueryService   *service.QueryService
	SessionService *service.SessionService
	UploadService  *service.UploadService
	Progress       *progress.Channel

	// RateLimiter guards query submission when set
	RateLimiter customMiddleware.Limiter
	// Ready reports progress store health
	Ready func(ctx context.Context) error
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID", "X-RateLimit-Remaining"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	queryHandler := handler.NewQueryHandler(deps.QueryService)
	sessionHandler := handler.NewSessionHandler(deps.SessionService)
	uploadHandler := handler.NewUploadHandler(deps.UploadService, cfg.Upload.MaxBytes)
	progressHandler := handler.NewProgressHandler(deps.Progress)

	ready := deps.Ready
	if ready == nil {
		ready = func(context.Context) error { return nil }
	}

	// websocket connections outlive the request timeout
	r.Get("/ws/progress/{sessionID}", progressHandler.Stream)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(cfg.Server.MiddlewareTimeout))

		r.Get("/", handler.Root)
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(ready))

		if cfg.Metrics.Enabled {
			r.Handle(cfg.Metrics.Path, metrics.Handler())
		}

		r.Route("/api", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				if deps.RateLimiter != nil {
					r.Use(customMiddleware.RateLimit(deps.RateLimiter))
				}
				r.Post("/query", queryHandler.Submit)
			})

			r.Get("/progress/{sessionID}", sessionHandler.Progress)
			r.Get("/status/{sessionID}", sessionHandler.Status)

			r.Route("/sessions", func(r chi.Router) {
				r.Get("/", sessionHandler.List)

				r.Route("/{sessionID}", func(r chi.Router) {
					r.Get("/", sessionHandler.Get)
					r.Delete("/", sessionHandler.Delete)
					r.Post("/mark-read", sessionHandler.MarkRead)
				})
			})

			r.Post("/upload", uploadHandler.Upload)
			r.Get("/download/{fileID}", uploadHandler.Download)
		})
	})

	return r
}
