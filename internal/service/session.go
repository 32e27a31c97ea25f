package service

import (
	"context"

	"github.com/Rrens/mock-analyst/internal/domain"
	"github.com/Rrens/mock-analyst/internal/progress"
)

// SessionService serves session reads, acknowledgments and deletion
type SessionService struct {
	sessions      domain.SessionStore
	notifications domain.NotificationStore
	progress      *progress.Channel
}

// NewSessionService creates a new session service
func NewSessionService(sessions domain.SessionStore, notifications domain.NotificationStore, progress *progress.Channel) *SessionService {
	return &SessionService{
		sessions:      sessions,
		notifications: notifications,
		progress:      progress,
	}
}

func (s *SessionService) List() []domain.SessionSummary {
	return s.sessions.List()
}

// Get returns the session detail and acknowledges its notification
func (s *SessionService) Get(id string) (*domain.SessionDetail, error) {
	return s.sessions.Get(id)
}

// Acknowledge marks the session's notification as read
func (s *SessionService) Acknowledge(id string) error {
	if _, err := s.sessions.Peek(id); err != nil {
		return err
	}
	s.notifications.MarkRead(id)
	return nil
}

func (s *SessionService) Delete(id string) error {
	return s.sessions.Delete(id)
}

// Status reports lifecycle status without acknowledging notifications
func (s *SessionService) Status(id string) (*domain.SessionStatusInfo, error) {
	session, err := s.sessions.Peek(id)
	if err != nil {
		return nil, err
	}
	return &domain.SessionStatusInfo{
		ID:           session.ID,
		Status:       session.Status,
		Message:      "Session is active",
		LastActivity: session.LastActivity,
	}, nil
}

// Progress returns the session's progress log. Unknown sessions yield an
// empty log so that logs mirrored before a restart stay readable.
func (s *SessionService) Progress(ctx context.Context, id string) []domain.ProgressEvent {
	return s.progress.Read(ctx, id)
}
