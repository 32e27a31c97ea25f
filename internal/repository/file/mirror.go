// Package file mirrors progress logs as one JSON document per session on local disk.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Rrens/mock-analyst/internal/domain"
)

const fileSuffix = "_progress.json"

// ProgressMirror implements domain.ProgressMirror on the local filesystem
type ProgressMirror struct {
	dir string
}

// NewProgressMirror creates the logs directory if needed
func NewProgressMirror(dir string) (*ProgressMirror, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}
	return &ProgressMirror{dir: dir}, nil
}

func (m *ProgressMirror) ReadAll(_ context.Context, sessionID string) ([]domain.ProgressEvent, bool, error) {
	path, err := m.path(sessionID)
	if err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read progress file: %w", err)
	}

	var events []domain.ProgressEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, false, fmt.Errorf("failed to decode progress file: %w", err)
	}
	return events, true, nil
}

// WriteAll replaces the session file atomically
func (m *ProgressMirror) WriteAll(_ context.Context, sessionID string, events []domain.ProgressEvent) error {
	path, err := m.path(sessionID)
	if err != nil {
		return err
	}

	if events == nil {
		events = []domain.ProgressEvent{}
	}
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode progress log: %w", err)
	}

	tmp, err := os.CreateTemp(m.dir, ".progress-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace progress file: %w", err)
	}
	return nil
}

func (m *ProgressMirror) path(sessionID string) (string, error) {
	if err := domain.ValidateSessionID(sessionID); err != nil {
		return "", err
	}
	return filepath.Join(m.dir, sessionID+fileSuffix), nil
}
