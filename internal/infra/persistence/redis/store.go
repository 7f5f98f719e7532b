// Package redis stores records as plain string values in Redis.
package redis

import (
	"context"

	"addrcard/internal/domain/repository"
	"addrcard/internal/errors"

	"github.com/redis/go-redis/v9"
)

// Store is a RecordStore backed by Redis. SET is atomic, so readers never
// observe a partially written value.
type Store struct {
	client    *redis.Client
	keyPrefix string
}

var _ repository.RecordStore = (*Store)(nil)

// NewStore creates a Store. keyPrefix is prepended to every key.
func NewStore(client *redis.Client, keyPrefix string) *Store {
	return &Store{client: client, keyPrefix: keyPrefix}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, s.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, repository.NewStoreIOError(repository.OpGet, key, err)
	}

	return value, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	err := s.client.Set(ctx, s.keyPrefix+key, value, 0).Err()

	return repository.NewStoreIOError(repository.OpSet, key, err)
}

func (s *Store) Remove(ctx context.Context, key string) error {
	err := s.client.Del(ctx, s.keyPrefix+key).Err()

	return repository.NewStoreIOError(repository.OpRemove, key, err)
}

// Close closes the underlying client
func (s *Store) Close() error {
	return s.client.Close()
}
