package entity

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"addrcard/internal/errors"
)

const versionKey = "version"

// ErrMalformedRecord matches every DeserializeError.
var ErrMalformedRecord = errors.New("malformed address record")

// DeserializeError reports a stored blob that is not a well-formed record.
// Callers treat it like an absent record.
type DeserializeError struct {
	Reason string
	Err    error
}

func (e *DeserializeError) Error() string {
	if e.Err != nil {
		return "deserialize address record: " + e.Reason + ": " + e.Err.Error()
	}

	return "deserialize address record: " + e.Reason
}

func (e *DeserializeError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrMalformedRecord) hold for every DeserializeError.
func (e *DeserializeError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// PartialRecord is what could be read back from a stored blob. Fields absent
// from the blob are left empty.
type PartialRecord struct {
	Fields AddressFields
	// Present lists the field keys found in the blob.
	Present map[FieldName]bool
	// Version is only meaningful when HasVersion is true.
	Version    SchemaVersion
	HasVersion bool
	// Extra keeps keys unknown to this build, written by a newer schema.
	Extra map[string]json.RawMessage
}

// Record returns the fields with the stored version, or false if the blob had no usable version.
func (p *PartialRecord) Record() (AddressRecord, bool) {
	if !p.HasVersion {
		return AddressRecord{}, false
	}

	return AddressRecord{Fields: p.Fields, Version: p.Version}, true
}

type addressDocument struct {
	FirstName   string        `json:"firstName"`
	LastName    string        `json:"lastName"`
	Street      string        `json:"street"`
	PostalCode  string        `json:"postalCode"`
	City        string        `json:"city"`
	PhoneNumber string        `json:"phoneNumber"`
	Email       string        `json:"email"`
	DateOfBirth string        `json:"dateOfBirth"`
	Version     SchemaVersion `json:"version"`
}

// Serialize encodes the complete field set and the writer's schema version as one blob.
func Serialize(fields AddressFields, version SchemaVersion) ([]byte, error) {
	doc := addressDocument{
		FirstName:   fields.FirstName,
		LastName:    fields.LastName,
		Street:      fields.Street,
		PostalCode:  fields.PostalCode,
		City:        fields.City,
		PhoneNumber: fields.PhoneNumber,
		Email:       fields.Email,
		DateOfBirth: fields.DateOfBirth,
		Version:     version,
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal address record")
	}

	return raw, nil
}

// Deserialize decodes a stored blob. Only a blob that is not a JSON object
// fails. Unknown keys, and known fields holding something other than a string,
// are kept in Extra.
func Deserialize(raw []byte) (*PartialRecord, error) {
	var object map[string]json.RawMessage
	if err := json.Unmarshal(raw, &object); err != nil {
		return nil, &DeserializeError{Reason: "not a JSON object", Err: err}
	}
	if object == nil {
		return nil, &DeserializeError{Reason: "null document"}
	}

	record := &PartialRecord{
		Present: make(map[FieldName]bool),
	}

	for key, value := range object {
		if key == versionKey {
			record.Version, record.HasVersion = parseVersion(value)

			continue
		}

		name, err := ParseFieldName(key)
		if err != nil {
			record.keep(key, value)

			continue
		}

		var text string
		if err := json.Unmarshal(value, &text); err != nil {
			record.keep(key, value)

			continue
		}
		// Set cannot fail for a parsed name.
		_ = record.Fields.Set(name, text)
		record.Present[name] = true
	}

	return record, nil
}

func (p *PartialRecord) keep(key string, value json.RawMessage) {
	if p.Extra == nil {
		p.Extra = make(map[string]json.RawMessage)
	}
	p.Extra[key] = value
}

// parseVersion reads a version the way the first app build did: a JSON number
// is truncated toward zero, a string counts up to its first non-digit ("3abc"
// is 3). Anything without leading digits counts as no version.
func parseVersion(value json.RawMessage) (SchemaVersion, bool) {
	value = bytes.TrimSpace(value)
	if bytes.Equal(value, []byte("null")) {
		return 0, false
	}

	var number float64
	if err := json.Unmarshal(value, &number); err == nil {
		return versionFromNumber(math.Trunc(number))
	}

	var text string
	if err := json.Unmarshal(value, &text); err == nil {
		return versionFromText(text)
	}

	return 0, false
}

func versionFromNumber(n float64) (SchemaVersion, bool) {
	if math.IsNaN(n) || n > math.MaxInt32 || n < math.MinInt32 {
		return 0, false
	}

	return SchemaVersion(n), true
}

func versionFromText(text string) (SchemaVersion, bool) {
	text = strings.TrimSpace(text)

	end := 0
	if end < len(text) && (text[end] == '+' || text[end] == '-') {
		end++
	}
	digits := end
	for end < len(text) && text[end] >= '0' && text[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}

	n, err := strconv.ParseInt(text[:end], 10, 64)
	if err != nil || n > math.MaxInt32 || n < math.MinInt32 {
		return 0, false
	}

	return SchemaVersion(n), true
}
