// Package entity contains the core business objects of the project.
package entity

import (
	"addrcard/internal/errors"
)

// FieldName identifies one field of the address form.
type FieldName string

const (
	FieldFirstName   FieldName = "firstName"
	FieldLastName    FieldName = "lastName"
	FieldStreet      FieldName = "street"
	FieldPostalCode  FieldName = "postalCode"
	FieldCity        FieldName = "city"
	FieldPhoneNumber FieldName = "phoneNumber"
	FieldEmail       FieldName = "email"
	FieldDateOfBirth FieldName = "dateOfBirth"
)

// ErrUnknownField is returned when a field name is not part of any schema.
var ErrUnknownField = errors.New("unknown address field")

// AllFields lists every known field in form order.
func AllFields() []FieldName {
	return []FieldName{
		FieldFirstName,
		FieldLastName,
		FieldStreet,
		FieldPostalCode,
		FieldCity,
		FieldPhoneNumber,
		FieldEmail,
		FieldDateOfBirth,
	}
}

// ParseFieldName validates a raw field name.
func ParseFieldName(raw string) (FieldName, error) {
	for _, name := range AllFields() {
		if string(name) == raw {
			return name, nil
		}
	}

	return "", errors.Wrapf(ErrUnknownField, "field %q", raw)
}

// AddressFields is the user-editable content of the address form.
type AddressFields struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Street      string `json:"street"`
	PostalCode  string `json:"postalCode"`
	City        string `json:"city"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	DateOfBirth string `json:"dateOfBirth"`
}

// Get returns the value of the named field.
func (f AddressFields) Get(name FieldName) (string, error) {
	switch name {
	case FieldFirstName:
		return f.FirstName, nil
	case FieldLastName:
		return f.LastName, nil
	case FieldStreet:
		return f.Street, nil
	case FieldPostalCode:
		return f.PostalCode, nil
	case FieldCity:
		return f.City, nil
	case FieldPhoneNumber:
		return f.PhoneNumber, nil
	case FieldEmail:
		return f.Email, nil
	case FieldDateOfBirth:
		return f.DateOfBirth, nil
	default:
		return "", errors.Wrapf(ErrUnknownField, "field %q", name)
	}
}

// Set assigns the named field.
func (f *AddressFields) Set(name FieldName, value string) error {
	switch name {
	case FieldFirstName:
		f.FirstName = value
	case FieldLastName:
		f.LastName = value
	case FieldStreet:
		f.Street = value
	case FieldPostalCode:
		f.PostalCode = value
	case FieldCity:
		f.City = value
	case FieldPhoneNumber:
		f.PhoneNumber = value
	case FieldEmail:
		f.Email = value
	case FieldDateOfBirth:
		f.DateOfBirth = value
	default:
		return errors.Wrapf(ErrUnknownField, "field %q", name)
	}

	return nil
}

// IsEmpty reports whether no field carries a value.
func (f AddressFields) IsEmpty() bool {
	return f == AddressFields{}
}

// AddressRecord is the persisted address: the complete field set plus the
// schema version of the writer.
type AddressRecord struct {
	Fields  AddressFields
	Version SchemaVersion
}
