package domain

import (
	"context"
	"time"
)

// ProgressEvent is one timestamped step notification in a session's work log.
// TotalSteps is 0 for a pure error signal.
type ProgressEvent struct {
	SessionID  string    `json:"session_id" bson:"session_id"`
	Step       string    `json:"step" bson:"step"`
	Message    string    `json:"message" bson:"message"`
	StepNumber int       `json:"step_number" bson:"step_number"`
	TotalSteps int       `json:"total_steps" bson:"total_steps"`
	Timestamp  time.Time `json:"timestamp" bson:"timestamp"`
}

// ProgressMirror is durable storage of whole progress logs keyed by session id.
// ReadAll reports absence with ok=false and a nil error.
type ProgressMirror interface {
	ReadAll(ctx context.Context, sessionID string) (events []ProgressEvent, ok bool, err error)
	WriteAll(ctx context.Context, sessionID string, events []ProgressEvent) error
}

// LiveTransport is a connected endpoint receiving serialized progress events
type LiveTransport interface {
	Send(data []byte) error
}
