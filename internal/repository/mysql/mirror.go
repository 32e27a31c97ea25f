// Package mysql mirrors progress logs into a MySQL table.
package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Rrens/mock-analyst/internal/config"
	"github.com/Rrens/mock-analyst/internal/domain"
	_ "github.com/go-sql-driver/mysql"
)

const schema = `
CREATE TABLE IF NOT EXISTS progress_logs (
	session_id VARCHAR(128) NOT NULL PRIMARY KEY,
	events     JSON         NOT NULL,
	updated_at DATETIME(6)  NOT NULL
)`

// ProgressMirror implements domain.ProgressMirror on MySQL
type ProgressMirror struct {
	db *sql.DB
}

// Open connects to MySQL and ensures the progress_logs table exists
func Open(ctx context.Context, cfg config.MySQLConfig) (*ProgressMirror, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql: %w", err)
	}
	db.SetConnMaxLifetime(3 * time.Minute)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping mysql: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create progress_logs table: %w", err)
	}

	return &ProgressMirror{db: db}, nil
}

// Close closes the connection pool
func (m *ProgressMirror) Close() error {
	return m.db.Close()
}

func (m *ProgressMirror) ReadAll(ctx context.Context, sessionID string) ([]domain.ProgressEvent, bool, error) {
	var data []byte
	err := m.db.QueryRowContext(ctx,
		"SELECT events FROM progress_logs WHERE session_id = ?", sessionID,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get progress log: %w", err)
	}

	var events []domain.ProgressEvent
	if err := json.Unmarshal(data, &events); err != nil {
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
		ON DUPLICATE KEY UPDATE events = VALUES(events), updated_at = VALUES(updated_at)`,
		sessionID, string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert progress log: %w", err)
	}
	return nil
}
