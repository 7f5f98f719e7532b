package entity

import (
	"slices"

	"addrcard/internal/errors"
)

// SchemaVersion tags a stored record with the field set and rules that produced it.
type SchemaVersion int

const (
	// SchemaV1 is the original six-field form with a 10 character phone number.
	SchemaV1 SchemaVersion = 1
	// SchemaV2 kept the six fields but only required a phone number to be present.
	SchemaV2 SchemaVersion = 2
	// SchemaV3 added email and date of birth.
	SchemaV3 SchemaVersion = 3

	// CurrentSchemaVersion is the version written by this build.
	CurrentSchemaVersion = SchemaV3
)

// ErrUnknownSchemaVersion is returned for versions this build has no rules for.
var ErrUnknownSchemaVersion = errors.New("unknown schema version")

var legacyFields = []FieldName{
	FieldFirstName,
	FieldLastName,
	FieldStreet,
	FieldPostalCode,
	FieldCity,
	FieldPhoneNumber,
}

// FieldsFor returns the form fields of a schema version in form order.
func FieldsFor(version SchemaVersion) ([]FieldName, error) {
	switch version {
	case SchemaV1, SchemaV2:
		return slices.Clone(legacyFields), nil
	case SchemaV3:
		return AllFields(), nil
	default:
		return nil, errors.Wrapf(ErrUnknownSchemaVersion, "version %d", version)
	}
}

// IsStale reports whether a record written with stored is older than current.
func IsStale(stored, current SchemaVersion) bool {
	return stored < current
}
