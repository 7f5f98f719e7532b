// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"addrcard/internal/errors"
)

// DefaultRecordKey is the key the address record is stored under.
const DefaultRecordKey = "address"

// Store operations, used in StoreIOError.Op.
const (
	OpGet    = "get"
	OpSet    = "set"
	OpRemove = "remove"
)

// ErrStoreIO matches every StoreIOError.
var ErrStoreIO = errors.New("record store I/O failure")

// StoreIOError reports a failure of the underlying storage medium, as opposed
// to a stored value that cannot be decoded.
type StoreIOError struct {
	Op  string
	Key string
	Err error
}

// NewStoreIOError wraps a driver failure. It returns nil for a nil err.
func NewStoreIOError(op, key string, err error) error {
	if err == nil {
		return nil
	}

	return &StoreIOError{Op: op, Key: key, Err: err}
}

func (e *StoreIOError) Error() string {
	return "record store " + e.Op + " " + e.Key + ": " + e.Err.Error()
}

func (e *StoreIOError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrStoreIO) hold for every StoreIOError.
func (e *StoreIOError) Is(target error) bool {
	return target == ErrStoreIO
}

// RecordStore is durable key-value storage for serialized records.
// Operations on the same key are serialized: a Get never observes a partial
// Set, and a Get issued after a Set returned sees that value.
type RecordStore interface {
	// Get returns the stored value and whether one exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}
