package store

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps maps and visits in process memory. Used when no
// database is configured.
type MemoryStore struct {
	maps   map[string][]byte
	visits []Visit
	mu     sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{maps: make(map[string][]byte)}
}

func (s *MemoryStore) LoadMap(_ context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.maps[name]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(doc), nil
}

func (s *MemoryStore) SaveMap(_ context.Context, name string, doc []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maps[name] = slices.Clone(doc)
	return nil
}

func (s *MemoryStore) RecordVisit(_ context.Context, v *Visit) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visits = append(s.visits, *v)
	return nil
}

// Visits returns a copy of every recorded visit in insertion order.
func (s *MemoryStore) Visits() []Visit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.visits)
}

func (s *MemoryStore) Close() error { return nil }
