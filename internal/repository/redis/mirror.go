package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Rrens/mock-analyst/internal/domain"
	"github.com/redis/go-redis/v9"
)

const progressPrefix = "progress:"

// ProgressMirror implements domain.ProgressMirror with one JSON value per session
type ProgressMirror struct {
	client *Client
	ttl    time.Duration
}

// NewProgressMirror creates a Redis-backed mirror. A zero ttl keeps logs forever.
func NewProgressMirror(client *Client, ttl time.Duration) *ProgressMirror {
	return &ProgressMirror{client: client, ttl: ttl}
}

func (m *ProgressMirror) ReadAll(ctx context.Context, sessionID string) ([]domain.ProgressEvent, bool, error) {
	data, err := m.client.rdb.Get(ctx, progressPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
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

	if err := m.client.rdb.Set(ctx, progressPrefix+sessionID, data, m.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set progress log: %w", err)
	}
	return nil
}
