package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/voicecheck/errors"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// getValidator returns the singleton validator instance.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Use json tag names for field names in error messages
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Validate validates a struct using its `validate` tags and returns an
// AppError naming the first offending field, in declaration order.
func Validate(s any) error {
	fields := Check(s)
	if len(fields) == 0 {
		return nil
	}
	first := fields[0]
	var appErr *errors.AppError
	if first.Tag == "required" {
		appErr = errors.MissingField(first.Field)
	} else {
		appErr = errors.Validation(first.Field, first.Message)
	}
	if len(fields) > 1 {
		appErr.WithDetail("fields", fields)
	}
	return appErr
}

// Check returns every field that breaks a tag rule. A value that is not a
// struct yields a single error for "body".
func Check(s any) []FieldError {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "body", Tag: "struct", Message: "must be a JSON object"}}
	}

	out := make([]FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		out = append(out, FieldError{
			Field:   e.Field(),
			Tag:     e.Tag(),
			Message: formatValidationError(e),
		})
	}
	return out
}

// formatValidationError creates a human-readable error message.
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(e.Param(), " ", ", ")
	case "eq":
		return "must be " + e.Param()
	case "base64":
		return "must be valid base64"
	case "min":
		return "must be at least " + e.Param()
	case "max":
		return "must be at most " + e.Param()
	case "url":
		return "must be a valid URL"
	default:
		return "is invalid"
	}
}
