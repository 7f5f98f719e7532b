package usecase

import (
	"context"

	"addrcard/internal/domain/entity"
	"addrcard/internal/domain/validation"
)

// LoadStatus tells what a load found in the store
type LoadStatus string

const (
	LoadAbsent LoadStatus = "absent"
	LoadLoaded LoadStatus = "loaded"
	// LoadMalformed is a stored value that could not be decoded. Forms treat it as absent.
	LoadMalformed LoadStatus = "malformed"
)

// LoadedAddress is the stored record as the address form sees it
type LoadedAddress struct {
	Status        LoadStatus
	Fields        entity.AddressFields
	StoredVersion entity.SchemaVersion
	HasVersion    bool
	// Outdated is set when the record was written by an older schema or carries no version
	Outdated bool
}

// AddressUsecase defines the stateless address operations shared by the
// form controller, the HTTP API and the CLI
type AddressUsecase interface {
	// Load reads and decodes the stored record
	Load(ctx context.Context) (*LoadedAddress, error)

	// Save validates fields against the current schema and stores them.
	// An invalid form returns validation.ValidationErrors and stores nothing.
	Save(ctx context.Context, fields entity.AddressFields) error

	// Delete removes the stored record; removing a missing record succeeds
	Delete(ctx context.Context) error

	// Validate checks fields against the current schema, nil when valid
	Validate(fields entity.AddressFields) (validation.ValidationErrors, error)

	// Rules lists the current schema's fields and rules in form order
	Rules() ([]validation.FieldRule, error)

	// CurrentVersion is the schema version new records are written with
	CurrentVersion() entity.SchemaVersion
}
