// Package validation evaluates address form rules. Rules are looked up by
// schema version so older records are judged by the rules that wrote them.
package validation

import (
	"regexp"
	"strconv"
	"strings"

	"addrcard/internal/domain/entity"
	"addrcard/internal/errors"

	"github.com/go-playground/validator/v10"
)

// Reason is the symbolic cause of a failed field.
type Reason string

const (
	ReasonMissing         Reason = "missing"
	ReasonTooShort        Reason = "tooShort"
	ReasonPatternMismatch Reason = "patternMismatch"
)

// Pattern names a registered text pattern.
type Pattern string

const (
	PatternNone  Pattern = ""
	PatternEmail Pattern = "address_email"
	PatternDate  Pattern = "address_dob"
)

// PhonePolicy selects the phone number rule of the current schema.
type PhonePolicy string

const (
	PhoneMinLength PhonePolicy = "minLength"
	PhonePresence  PhonePolicy = "presence"
)

// PhoneMinLengthValue is the minimum phone number length under PhoneMinLength.
const PhoneMinLengthValue = 10

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	datePattern  = regexp.MustCompile(`^(0?[1-9]|[12][0-9]|3[01])\.(0?[1-9]|1[0-2])\.[0-9]{4}$`)
)

// Rule constrains a single field.
type Rule struct {
	Required  bool    `json:"required"`
	MinLength int     `json:"min_length,omitempty"`
	Pattern   Pattern `json:"pattern,omitempty"`
}

// tag compiles the rule into a validator tag.
func (r Rule) tag() string {
	parts := make([]string, 0, 3)
	if r.Required {
		parts = append(parts, "required")
	} else {
		parts = append(parts, "omitempty")
	}
	if r.MinLength > 0 {
		parts = append(parts, "min="+strconv.Itoa(r.MinLength))
	}
	if r.Pattern != PatternNone {
		parts = append(parts, string(r.Pattern))
	}

	return strings.Join(parts, ",")
}

// FieldRule pairs a field with its rule.
type FieldRule struct {
	Field entity.FieldName `json:"field"`
	Rule  Rule             `json:"rule"`
}

// Result is the outcome of checking one value.
type Result struct {
	Valid  bool
	Reason Reason
}

// Validator checks field values. It is safe for concurrent use.
type Validator struct {
	validate    *validator.Validate
	phonePolicy PhonePolicy
}

// New builds a Validator whose current schema uses the given phone policy.
func New(phonePolicy PhonePolicy) (*Validator, error) {
	if phonePolicy != PhoneMinLength && phonePolicy != PhonePresence {
		return nil, errors.Errorf("unknown phone policy: %s", phonePolicy)
	}

	validate := validator.New()
	if err := registerPattern(validate, PatternEmail, emailPattern); err != nil {
		return nil, err
	}
	if err := registerPattern(validate, PatternDate, datePattern); err != nil {
		return nil, err
	}

	return &Validator{
		validate:    validate,
		phonePolicy: phonePolicy,
	}, nil
}

func registerPattern(validate *validator.Validate, name Pattern, pattern *regexp.Regexp) error {
	err := validate.RegisterValidation(string(name), func(fl validator.FieldLevel) bool {
		return pattern.MatchString(fl.Field().String())
	})

	return errors.Wrapf(err, "register pattern %s", name)
}

// PhonePolicy returns the phone policy of the current schema.
func (v *Validator) PhonePolicy() PhonePolicy {
	return v.phonePolicy
}

// Check evaluates one value against one rule.
func (v *Validator) Check(value string, rule Rule) Result {
	err := v.validate.Var(value, rule.tag())
	if err == nil {
		return Result{Valid: true}
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return Result{Reason: ReasonPatternMismatch}
	}

	switch fieldErrs[0].Tag() {
	case "required":
		return Result{Reason: ReasonMissing}
	case "min":
		return Result{Reason: ReasonTooShort}
	default:
		return Result{Reason: ReasonPatternMismatch}
	}
}

// RulesFor returns the rules of a schema version in form order.
func (v *Validator) RulesFor(version entity.SchemaVersion) ([]FieldRule, error) {
	fields, err := entity.FieldsFor(version)
	if err != nil {
		return nil, err
	}

	phone := Rule{Required: true}
	switch version {
	case entity.SchemaV1:
		phone.MinLength = PhoneMinLengthValue
	case entity.SchemaV2:
	default:
		if v.phonePolicy == PhoneMinLength {
			phone.MinLength = PhoneMinLengthValue
		}
	}

	rules := make([]FieldRule, 0, len(fields))
	for _, field := range fields {
		rule := Rule{Required: true}
		switch field {
		case entity.FieldPhoneNumber:
			rule = phone
		case entity.FieldEmail:
			rule.Pattern = PatternEmail
		case entity.FieldDateOfBirth:
			rule.Pattern = PatternDate
		}
		rules = append(rules, FieldRule{Field: field, Rule: rule})
	}

	return rules, nil
}

// ValidateForm checks every field of the schema version and returns one
// ValidationError per failing field, or nil when the form is valid.
func (v *Validator) ValidateForm(fields entity.AddressFields, version entity.SchemaVersion) (ValidationErrors, error) {
	rules, err := v.RulesFor(version)
	if err != nil {
		return nil, err
	}

	var failures ValidationErrors
	for _, fieldRule := range rules {
		value, err := fields.Get(fieldRule.Field)
		if err != nil {
			return nil, err
		}

		if result := v.Check(value, fieldRule.Rule); !result.Valid {
			failures = append(failures, ValidationError{Field: fieldRule.Field, Reason: result.Reason})
		}
	}

	return failures, nil
}
