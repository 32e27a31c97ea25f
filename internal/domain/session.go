package domain

import (
	"strings"
	"time"
)

// SessionStatus is the lifecycle status of a conversation session
type SessionStatus string

const (
	StatusProcessing SessionStatus = "processing"
	StatusCompleted  SessionStatus = "completed"
	StatusError      SessionStatus = "error"
)

// Session represents one conversation thread and its ordered messages
type Session struct {
	ID           string        `json:"session_id"`
	Title        string        `json:"title"`
	UserEmail    string        `json:"user_email,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	LastActivity time.Time     `json:"last_activity"`
	Status       SessionStatus `json:"status"`
	Messages     []Message     `json:"messages"`
}

// SessionSummary is the list view of a session joined with its notification state
type SessionSummary struct {
	ID              string        `json:"session_id"`
	Title           string        `json:"title"`
	CreatedAt       time.Time     `json:"created_at"`
	LastActivity    time.Time     `json:"last_activity"`
	Status          SessionStatus `json:"status"`
	HasNotification bool          `json:"has_notification"`
}

// SessionDetail is a full session returned together with its notification
type SessionDetail struct {
	Session
	Notification *Notification `json:"notification,omitempty"`
}

// SessionStatusInfo is the lightweight status view served by the status endpoint
type SessionStatusInfo struct {
	ID           string        `json:"session_id"`
	Status       SessionStatus `json:"status"`
	Message      string        `json:"message"`
	LastActivity time.Time     `json:"last_activity"`
}

const (
	maxTitleLength = 50
	titleCutLength = 47
)

// SessionTitle derives a session title from the first query of the session
func SessionTitle(query string) string {
	runes := []rune(query)
	if len(runes) <= maxTitleLength {
		return query
	}
	return string(runes[:titleCutLength]) + "..."
}

// MaxSessionIDLength bounds caller-supplied session ids
const MaxSessionIDLength = 128

// ValidateSessionID rejects ids that cannot safely key files and storage rows
func ValidateSessionID(id string) error {
	if id == "" || len(id) > MaxSessionIDLength || id == "." || id == ".." {
		return ErrInvalidSessionID
	}
	if strings.ContainsAny(id, "/\\\x00") {
		return ErrInvalidSessionID
	}
	return nil
}

// SessionStore defines the process-wide session table
type SessionStore interface {
	CreateOrGet(id, title, userEmail string) (*Session, bool)
	AppendMessage(id string, message Message) error
	SetStatus(id string, status SessionStatus) error
	// Complete marks the session completed and raises its notification in one step
	Complete(id, notice string) error
	List() []SessionSummary
	Get(id string) (*SessionDetail, error)
	Peek(id string) (*Session, error)
	Delete(id string) error
}
