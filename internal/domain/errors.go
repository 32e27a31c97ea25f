package domain

import "errors"

// Sentinel errors shared by stores, services and handlers.
var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrInvalidSessionID = errors.New("invalid session id")
	ErrUploadNotFound   = errors.New("upload not found")
)
