// Package persistence selects the configured record store driver and wraps
// it with per-key serialization and instrumentation.
package persistence

import (
	"context"
	"sync"

	"addrcard/internal/domain/repository"
)

// Serialized runs operations on the same key one at a time, so a Get issued
// after a Set returned always observes that Set, whatever the driver does.
// A caller waiting for the key gives up when its context ends.
type Serialized struct {
	next  repository.RecordStore
	locks sync.Map // key -> chan struct{}, holding a token while the key is in use
}

var _ repository.RecordStore = (*Serialized)(nil)

// NewSerialized wraps next
func NewSerialized(next repository.RecordStore) *Serialized {
	return &Serialized{next: next}
}

func (s *Serialized) lock(ctx context.Context, op, key string) (func(), error) {
	value, _ := s.locks.LoadOrStore(key, make(chan struct{}, 1))
	token := value.(chan struct{})

	select {
	case token <- struct{}{}:
		return func() { <-token }, nil
	case <-ctx.Done():
		return nil, repository.NewStoreIOError(op, key, ctx.Err())
	}
}

func (s *Serialized) Get(ctx context.Context, key string) ([]byte, bool, error) {
	unlock, err := s.lock(ctx, repository.OpGet, key)
	if err != nil {
		return nil, false, err
	}
	defer unlock()

	return s.next.Get(ctx, key)
}

func (s *Serialized) Set(ctx context.Context, key string, value []byte) error {
	unlock, err := s.lock(ctx, repository.OpSet, key)
	if err != nil {
		return err
	}
	defer unlock()

	return s.next.Set(ctx, key, value)
}

func (s *Serialized) Remove(ctx context.Context, key string) error {
	unlock, err := s.lock(ctx, repository.OpRemove, key)
	if err != nil {
		return err
	}
	defer unlock()

	return s.next.Remove(ctx, key)
}
