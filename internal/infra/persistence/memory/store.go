// Package memory provides an in-process RecordStore, used by tests and
// the "memory" store driver.
package memory

import (
	"context"
	"slices"
	"sync"

	"addrcard/internal/domain/repository"
)

// Store keeps records in a map guarded by a RWMutex.
type Store struct {
	mu      sync.RWMutex
	records map[string][]byte
}

var _ repository.RecordStore = (*Store)(nil)

// New creates an empty Store
func New() *Store {
	return &Store{records: make(map[string][]byte)}
}

// Get returns a copy of the stored value
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, repository.NewStoreIOError(repository.OpGet, key, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.records[key]
	if !ok {
		return nil, false, nil
	}

	return slices.Clone(value), true, nil
}

// Set stores a copy of value
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return repository.NewStoreIOError(repository.OpSet, key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[key] = slices.Clone(value)

	return nil
}

// Remove deletes key
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return repository.NewStoreIOError(repository.OpRemove, key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, key)

	return nil
}
