package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Rrens/mock-analyst/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProgressMirror implements domain.ProgressMirror on the progress_logs table
type ProgressMirror struct {
	pool *pgxpool.Pool
}

// NewProgressMirror creates a new Postgres progress mirror
func NewProgressMirror(pool *pgxpool.Pool) *ProgressMirror {
	return &ProgressMirror{pool: pool}
}

func (m *ProgressMirror) ReadAll(ctx context.Context, sessionID string) ([]domain.ProgressEvent, bool, error) {
	query := `
		SELECT events
		FROM progress_logs
		WHERE session_id = $1
	`
	var data []byte
	err := m.pool.QueryRow(ctx, query, sessionID).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
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

	query := `
		INSERT INTO progress_logs (session_id, events, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (session_id) DO UPDATE
		SET events = EXCLUDED.events, updated_at = EXCLUDED.updated_at
	`
	if _, err := m.pool.Exec(ctx, query, sessionID, data); err != nil {
		return fmt.Errorf("failed to upsert progress log: %w", err)
	}
	return nil
}

func (m *ProgressMirror) Ping(ctx context.Context) error {
	return m.pool.Ping(ctx)
}

func (m *ProgressMirror) Close(context.Context) error {
	m.pool.Close()
	return nil
}
