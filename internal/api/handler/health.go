package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/Rrens/mock-analyst/internal/api/response"
)

// Root returns the API banner
func Root(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]any{
		"message":   "Mock Analyst API is running",
		"timestamp": time.Now(),
	})
}

// HealthCheck returns a simple health check response
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{
		"status": "ok",
	})
}

// ReadyCheck returns readiness status including progress store connectivity
func ReadyCheck(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ping(r.Context()); err != nil {
			response.Error(w, http.StatusServiceUnavailable, "progress store not ready")
			return
		}

		response.OK(w, map[string]string{
			"status": "ready",
		})
	}
}
