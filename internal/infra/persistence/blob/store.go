// Package blob stores records as objects in a gocloud.dev bucket.
// The file:// and mem:// schemes are linked in.
package blob

import (
	"context"

	"addrcard/internal/domain/repository"
	"addrcard/internal/errors"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	"gocloud.dev/gcerrors"
)

const contentType = "application/json"

// Store is a RecordStore over a blob bucket. Bucket writes only become
// visible once the writer is closed, so a reader never sees a partial value.
type Store struct {
	bucket *blob.Bucket
}

var _ repository.RecordStore = (*Store)(nil)

// Open opens the bucket at url
func Open(ctx context.Context, url string) (*Store, error) {
	bucket, err := blob.OpenBucket(ctx, url)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %q", url)
	}

	return &Store{bucket: bucket}, nil
}

// NewWithBucket wraps an already opened bucket
func NewWithBucket(bucket *blob.Bucket) *Store {
	return &Store{bucket: bucket}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.bucket.ReadAll(ctx, key)
	if gcerrors.Code(err) == gcerrors.NotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, repository.NewStoreIOError(repository.OpGet, key, err)
	}

	return value, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	err := s.bucket.WriteAll(ctx, key, value, &blob.WriterOptions{ContentType: contentType})

	return repository.NewStoreIOError(repository.OpSet, key, err)
}

func (s *Store) Remove(ctx context.Context, key string) error {
	err := s.bucket.Delete(ctx, key)
	if gcerrors.Code(err) == gcerrors.NotFound {
		return nil
	}

	return repository.NewStoreIOError(repository.OpRemove, key, err)
}

// Close releases the bucket
func (s *Store) Close() error {
	return s.bucket.Close()
}
