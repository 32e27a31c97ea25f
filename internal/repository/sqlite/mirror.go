// Package sqlite mirrors progress logs into a single-file SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Rrens/mock-analyst/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS progress_logs (
	session_id TEXT PRIMARY KEY,
	events     TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

// ProgressMirror implements domain.ProgressMirror on SQLite
type ProgressMirror struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema
func Open(ctx context.Context, path string) (*ProgressMirror, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// a single writer avoids SQLITE_BUSY under concurrent emits
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create progress_logs table: %w", err)
	}

	return &ProgressMirror{db: db}, nil
}

// Close closes the database
func (m *ProgressMirror) Close() error {
	return m.db.Close()
}

func (m *ProgressMirror) ReadAll(ctx context.Context, sessionID string) ([]domain.ProgressEvent, bool, error) {
	var data string
	err := m.db.QueryRowContext(ctx,
		`SELECT events FROM progress_logs WHERE session_id = ?`, sessionID,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get progress log: %w", err)
	}

	var events []domain.ProgressEvent
	if err := json.Unmarshal([]byte(data), &events); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal progress log: %w", err)
	}
	return events, true, nil
}

func (m *ProgressMirror) WriteAll(ctx context.Context, sessionID string, events []domain.ProgressEvent) error {
	if events == nil {
		events = []domain.ProgressEvent{}
	}
	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("failed to marshal progress log: %w", err)
	}

	_, err = m.db.ExecContext(ctx, `
		INSERT INTO progress_logs (session_id, events, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE
		SET events = excluded.events, updated_at = excluded.updated_at`,
		sessionID, string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert progress log: %w", err)
	}
	return nil
}
