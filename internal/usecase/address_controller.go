package usecase

import (
	"context"

	"addrcard/internal/domain/entity"
	"addrcard/internal/domain/validation"
	"addrcard/internal/errors"
)

// FormState is the state of the address form
type FormState string

const (
	FormLoading  FormState = "loading"
	FormAbsent   FormState = "absent"
	FormLoaded   FormState = "loaded"
	FormDirty    FormState = "dirty"
	FormSaving   FormState = "saving"
	FormDeleting FormState = "deleting"
)

var (
	// ErrAlreadyActive is returned by Activate while an activation is still open
	ErrAlreadyActive = errors.New("address form is already active")
	// ErrBusy is returned for edits and deletes while a save or delete is running
	ErrBusy = errors.New("address form is busy")
	// ErrNotModified is returned by Submit when the form has no edits
	ErrNotModified = errors.New("address form has not been modified")
)

// FormSnapshot is a copy of the form state
type FormSnapshot struct {
	State  FormState
	Fields entity.AddressFields
	Errors validation.ValidationErrors
	Active bool
	// StoredVersion and Outdated describe the record the form was last loaded from
	StoredVersion entity.SchemaVersion
	Outdated      bool
}

// Activation is one active period of the address screen. The load it started
// is cancelled on Close and its result is never applied afterwards.
type Activation interface {
	// Wait blocks until the load finished and returns its error
	Wait(ctx context.Context) error

	// Close ends the activation; calling it more than once is a no-op
	Close()
}

// AddressController drives the address form over the stored record
type AddressController interface {
	// Activate starts loading the stored record into the form
	Activate(ctx context.Context) (Activation, error)

	// Edit changes one field and marks the form dirty
	Edit(field entity.FieldName, value string) error

	// Submit validates and saves a dirty form and navigates to the QR code screen.
	// On a store failure the form stays dirty so the save can be retried.
	Submit(ctx context.Context) error

	// Delete clears the form and removes the stored record. The form stays
	// cleared even when the remove fails.
	Delete(ctx context.Context) error

	// CanSubmit reports whether the form is dirty and valid
	CanSubmit() bool

	Snapshot() FormSnapshot
}

// AddressControllerFactory creates a controller per screen instance
type AddressControllerFactory interface {
	NewController() AddressController
}
