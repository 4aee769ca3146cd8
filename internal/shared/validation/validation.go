// Package validation is the schema gate for request payloads. It decodes a
// JSON body into a tagged struct, applies the validator rules declared on it,
// and converts failures into field-level errors the client can act on.
package validation

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	apperrors "planets-api/internal/shared/errors"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report field names as they appear on the wire, not as Go identifiers.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// DecodeAndValidate decodes the request body into payload and validates it.
// Any failure comes back as a typed validation error carrying field details,
// which the response layer turns into a 400.
func DecodeAndValidate(r *http.Request, payload interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(payload); err != nil {
		return apperrors.WrapValidation("invalid request body", err)
	}

	return Struct(payload)
}

// Struct validates an already-populated payload.
func Struct(payload interface{}) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.WrapValidation("invalid payload", err)
	}

	fields := make([]apperrors.FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, apperrors.FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}

	return apperrors.ValidationFields("Validation failed", fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Type().Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Type().Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s:%s validation", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
