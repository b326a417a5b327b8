package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a map document does not exist.
var ErrNotFound = errors.New("not found")

// Visit records one player's stay in a room.
type Visit struct {
	ID       string
	PlayerID string
	Name     string
	Room     string
	Map      string
	JoinedAt time.Time
	LeftAt   time.Time
}

// Store defines the interface for persistent map and visit storage.
type Store interface {
	// LoadMap returns the raw geometry document stored under name.
	LoadMap(ctx context.Context, name string) ([]byte, error)
	// SaveMap inserts or replaces a geometry document.
	SaveMap(ctx context.Context, name string, doc []byte) error
	// RecordVisit saves a finished visit.
	RecordVisit(ctx context.Context, v *Visit) error
	// Close releases database resources.
	Close() error
}
