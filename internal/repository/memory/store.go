// Package memory is a process-local PreferenceStore used in tests and when no
// persistence is configured.
package memory

import (
	"context"
	"sync"

	"bridge/internal/domain"
	"bridge/internal/port"
)

// Store keeps preferences in a map.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ port.PreferenceStore = (*Store)(nil)

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{values: make(map[string]string)}
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return v, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *Store) Ping(context.Context) error {
	return nil
}
