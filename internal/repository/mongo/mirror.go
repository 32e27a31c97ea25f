// Package mongo mirrors progress logs as one document per session.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rrens/mock-analyst/internal/config"
	"github.com/Rrens/mock-analyst/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type progressDocument struct {
	SessionID string                 `bson:"_id"`
	Events    []domain.ProgressEvent `bson:"events"`
	UpdatedAt time.Time              `bson:"updated_at"`
}

// ProgressMirror implements domain.ProgressMirror on a MongoDB collection
type ProgressMirror struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// Connect dials MongoDB and verifies the connection
func Connect(ctx context.Context, cfg config.MongoConfig) (*ProgressMirror, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return &ProgressMirror{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Close disconnects the client
func (m *ProgressMirror) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *ProgressMirror) ReadAll(ctx context.Context, sessionID string) ([]domain.ProgressEvent, bool, error) {
	var doc progressDocument
	err := m.collection.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get progress log: %w", err)
	}
	if doc.Events == nil {
		doc.Events = []domain.ProgressEvent{}
	}
	return doc.Events, true, nil
}

func (m *ProgressMirror) WriteAll(ctx context.Context, sessionID string, events []domain.ProgressEvent) error {
	if events == nil {
		events = []domain.ProgressEvent{}
	}
	doc := progressDocument{
		SessionID: sessionID,
		Events:    events,
		UpdatedAt: time.Now().UTC(),
	}

	_, err := m.collection.ReplaceOne(ctx, bson.M{"_id": sessionID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert progress log: %w", err)
	}
	return nil
}
