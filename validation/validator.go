package validation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kbukum/voicecheck/errors"
)

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag,omitempty"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Message
}

// Validator collects validation errors.
type Validator struct {
	errors []FieldError
}

// New creates a new Validator.
func New() *Validator {
	return &Validator{}
}

// AddError adds a field error.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{Field: field, Message: message})
}

// HasErrors returns true if there are validation errors.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Validate returns an AppError naming the first failing field, nil otherwise.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}
	first := v.errors[0]
	appErr := errors.Validation(first.Field, first.Message)
	if len(v.errors) > 1 {
		appErr.WithDetail("fields", v.errors)
	}
	return appErr
}

// Err joins all collected errors into a plain error, for config validation.
func (v *Validator) Err() error {
	if !v.HasErrors() {
		return nil
	}
	messages := make([]string, len(v.errors))
	for i, e := range v.errors {
		messages[i] = e.String()
	}
	return fmt.Errorf("%s", strings.Join(messages, "; "))
}

// Required checks that a string is non-blank.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
	return v
}

// OneOf checks that a value is one of the allowed values.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	if !slices.Contains(allowed, value) {
		v.AddError(field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
	}
	return v
}

// Min checks that a number meets a minimum value.
func (v *Validator) Min(field string, value, minVal int64) *Validator {
	if value < minVal {
		v.AddError(field, fmt.Sprintf("must be at least %d", minVal))
	}
	return v
}

// Range checks that a number is within [minVal, maxVal].
func (v *Validator) Range(field string, value, minVal, maxVal int64) *Validator {
	if value < minVal || value > maxVal {
		v.AddError(field, fmt.Sprintf("must be between %d and %d", minVal, maxVal))
	}
	return v
}

// Custom applies a custom validation condition.
func (v *Validator) Custom(condition bool, field, message string) *Validator {
	if !condition {
		v.AddError(field, message)
	}
	return v
}
