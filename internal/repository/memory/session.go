// Package memory holds the process-wide in-memory tables: sessions,
// notifications and uploads.
package memory

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/Rrens/mock-analyst/internal/domain"
	"github.com/google/uuid"
)

// SessionStore implements domain.SessionStore
type SessionStore struct {
	mu            sync.RWMutex
	sessions      map[string]*domain.Session
	notifications domain.NotificationStore
	now           func() time.Time
}

// NewSessionStore creates an empty session table joined with notifications
func NewSessionStore(notifications domain.NotificationStore) *SessionStore {
	return &SessionStore{
		sessions:      make(map[string]*domain.Session),
		notifications: notifications,
		now:           time.Now,
	}
}

// CreateOrGet returns the session with the given id, creating it in the
// processing state when absent. An empty id gets a fresh uuid. The boolean
// reports whether the session was created.
func (s *SessionStore) CreateOrGet(id, title, userEmail string) (*domain.Session, bool) {
	if id == "" {
		id = uuid.New().String()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[id]; ok {
		s.touch(session)
		return cloneSession(session), false
	}

	now := s.now()
	session := &domain.Session{
		ID:           id,
		Title:        title,
		UserEmail:    userEmail,
		CreatedAt:    now,
		LastActivity: now,
		Status:       domain.StatusProcessing,
		Messages:     []domain.Message{},
	}
	s.sessions[id] = session
	return cloneSession(session), true
}

func (s *SessionStore) AppendMessage(id string, message domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = s.now()
	}
	session.Messages = append(session.Messages, message)
	s.touch(session)
	return nil
}

func (s *SessionStore) SetStatus(id string, status domain.SessionStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	session.Status = status
	s.touch(session)
	return nil
}

func (s *SessionStore) Complete(id, notice string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	session.Status = domain.StatusCompleted
	s.touch(session)
	s.notifications.Raise(id, notice)
	return nil
}

// List returns session summaries, most recently active first
func (s *SessionStore) List() []domain.SessionSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]domain.SessionSummary, 0, len(s.sessions))
	for _, session := range s.sessions {
		summaries = append(summaries, domain.SessionSummary{
			ID:              session.ID,
			Title:           session.Title,
			CreatedAt:       session.CreatedAt,
			LastActivity:    session.LastActivity,
			Status:          session.Status,
			HasNotification: s.notifications.HasUnread(session.ID),
		})
	}

	slices.SortFunc(summaries, func(a, b domain.SessionSummary) int {
		if c := b.LastActivity.Compare(a.LastActivity); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return summaries
}

// Get returns the full session and acknowledges its notification
func (s *SessionStore) Get(id string) (*domain.SessionDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	s.notifications.MarkRead(id)
	notification, _ := s.notifications.Get(id)

	return &domain.SessionDetail{
		Session:      *cloneSession(session),
		Notification: notification,
	}, nil
}

// Peek returns the session without touching its notification
func (s *SessionStore) Peek(id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return cloneSession(session), nil
}

// Delete removes the session, its messages and its notification
func (s *SessionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(s.sessions, id)
	s.notifications.Delete(id)
	return nil
}

// touch advances last activity, never moving it backwards
func (s *SessionStore) touch(session *domain.Session) {
	if now := s.now(); now.After(session.LastActivity) {
		session.LastActivity = now
	}
}

func cloneSession(session *domain.Session) *domain.Session {
	c := *session
	c.Messages = slices.Clone(session.Messages)
	if c.Messages == nil {
		c.Messages = []domain.Message{}
	}
	return &c
}
