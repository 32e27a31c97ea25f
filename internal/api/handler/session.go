package handler

import (
	"net/http"

	"github.com/Rrens/mock-analyst/internal/api/response"
	"github.com/Rrens/mock-analyst/internal/domain"
	"github.com/Rrens/mock-analyst/internal/service"
	"github.com/go-chi/chi/v5"
)

// SessionHandler handles session endpoints
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// List returns every session with its unread notification flag
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.sessionService.List())
}

// Get returns one session and marks its notification as read
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.sessionService.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, detail)
}

func (h *SessionHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionService.Acknowledge(chi.URLParam(r, "sessionID")); err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, map[string]string{
		"message": "Notification marked as read",
	})
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionService.Delete(chi.URLParam(r, "sessionID")); err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, map[string]string{
		"message": "Session deleted successfully",
	})
}

// Status returns lifecycle status without acknowledging notifications
func (h *SessionHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.sessionService.Status(chi.URLParam(r, "sessionID"))
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, status)
}

// Progress returns the ordered progress log of a session
func (h *SessionHandler) Progress(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if err := domain.ValidateSessionID(sessionID); err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, map[string]any{
		"session_id": sessionID,
		"logs":       h.sessionService.Progress(r.Context(), sessionID),
	})
}
