// Package memory provides an in-process storage.Medium.
// It is the fallback when no durable medium can be opened, and the medium used in tests.
package memory

import (
	"context"
	"sync"

	"github.com/mmynk/groupbuy/internal/storage"
)

var _ storage.Medium = (*Store)(nil)

// Store keeps items in a map. Contents are lost when the process exits.
type Store struct {
	mu    sync.RWMutex
	items map[string]string
}

// New creates an empty Store.
func New() *Store {
	return &Store{items: make(map[string]string)}
}

// GetItem returns the value stored under key.
func (s *Store) GetItem(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok, nil
}

// SetItem stores value under key.
func (s *Store) SetItem(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}
