package memory

import (
	"sync"
	"time"

	"github.com/Rrens/mock-analyst/internal/domain"
)

// NotificationStore implements domain.NotificationStore
type NotificationStore struct {
	mu    sync.RWMutex
	items map[string]domain.Notification
	now   func() time.Time
}

func NewNotificationStore() *NotificationStore {
	return &NotificationStore{
		items: make(map[string]domain.Notification),
		now:   time.Now,
	}
}

// Raise stores an unread notification, overwriting the previous one
func (n *NotificationStore) Raise(sessionID, message string) domain.Notification {
	notification := domain.Notification{
		Message:   message,
		Timestamp: n.now(),
	}

	n.mu.Lock()
	n.items[sessionID] = notification
	n.mu.Unlock()

	return notification
}

func (n *NotificationStore) Get(sessionID string) (*domain.Notification, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	notification, ok := n.items[sessionID]
	if !ok {
		return nil, false
	}
	return &notification, true
}

// MarkRead acknowledges the notification. It reports whether one existed.
func (n *NotificationStore) MarkRead(sessionID string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	notification, ok := n.items[sessionID]
	if !ok {
		return false
	}
	notification.Read = true
	n.items[sessionID] = notification
	return true
}

func (n *NotificationStore) HasUnread(sessionID string) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()

	notification, ok := n.items[sessionID]
	return ok && !notification.Read
}

func (n *NotificationStore) Delete(sessionID string) {
	n.mu.Lock()
	delete(n.items, sessionID)
	n.mu.Unlock()
}
