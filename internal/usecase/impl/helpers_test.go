package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"addrcard/internal/domain/entity"
	"addrcard/internal/domain/repository"
	"addrcard/internal/domain/validation"
	"addrcard/internal/usecase"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestValidator(t *testing.T) *validation.Validator {
	t.Helper()

	v, err := validation.New(validation.PhoneMinLength)
	require.NoError(t, err)

	return v
}

func johnDoe() entity.AddressFields {
	return entity.AddressFields{
		FirstName:   "John",
		LastName:    "Doe",
		Street:      "123 Main",
		PostalCode:  "10001",
		City:        "Anytown",
		PhoneNumber: "5555551234",
		Email:       "j@d.com",
		DateOfBirth: "01.01.1990",
	}
}

func newAddressServiceWithStore(t *testing.T, store repository.RecordStore) usecase.AddressUsecase {
	t.Helper()

	return NewAddressService(AddressServiceParams{
		Store:     store,
		Validator: newTestValidator(t),
		Logger:    discardLogger(),
	})
}

// gatedStore blocks Get until release is closed, so tests can act while a load is in flight
type gatedStore struct {
	repository.RecordStore
	started chan struct{}
	release chan struct{}
}

func newGatedStore(next repository.RecordStore) *gatedStore {
	return &gatedStore{
		RecordStore: next,
		started:     make(chan struct{}, 1),
		release:     make(chan struct{}),
	}
}

func (s *gatedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.started <- struct{}{}
	<-s.release

	return s.RecordStore.Get(ctx, key)
}
