package validation

import (
	"strings"

	"addrcard/internal/domain/entity"
)

// ValidationError reports one failing field.
type ValidationError struct {
	Field  entity.FieldName `json:"field"`
	Reason Reason           `json:"reason"`
}

func (e ValidationError) Error() string {
	return string(e.Field) + ": " + string(e.Reason)
}

// ValidationErrors is the per-field outcome of an invalid form.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fieldErr := range e {
		parts = append(parts, fieldErr.Error())
	}

	return "invalid address: " + strings.Join(parts, ", ")
}

// For returns the failure of a field, if any.
func (e ValidationErrors) For(field entity.FieldName) (ValidationError, bool) {
	for _, fieldErr := range e {
		if fieldErr.Field == field {
			return fieldErr, true
		}
	}

	return ValidationError{}, false
}

// Without returns a copy with the failure of field removed.
func (e ValidationErrors) Without(field entity.FieldName) ValidationErrors {
	var kept ValidationErrors
	for _, fieldErr := range e {
		if fieldErr.Field != field {
			kept = append(kept, fieldErr)
		}
	}

	return kept
}
