package domain

import "time"

// Notification is the single live completion notice of a session
type Notification struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

// NotificationStore keeps at most one notification per session
type NotificationStore interface {
	Raise(sessionID, message string) Notification
	Get(sessionID string) (*Notification, bool)
	MarkRead(sessionID string) bool
	HasUnread(sessionID string) bool
	Delete(sessionID string)
}
