// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	"net/http"
	"reflect"
	"strings"

	"addrcard/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator validates bound request structs
type CustomValidator struct {
	validate *validator.Validate
}

// New creates a CustomValidator reporting json field names
func New() *CustomValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			name, _, _ = strings.Cut(field.Tag.Get("query"), ",")
		}

		return name
	})

	return &CustomValidator{validate: validate}
}

// Validate implements echo.Validator
func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validate.Struct(i); err != nil {
		var messages []string
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fieldErr := range fieldErrs {
				messages = append(messages, fieldErr.Field()+" failed on "+fieldErr.Tag())
			}
		} else {
			messages = append(messages, err.Error())
		}

		return echo.NewHTTPError(http.StatusBadRequest, strings.Join(messages, "; "))
	}

	return nil
}
