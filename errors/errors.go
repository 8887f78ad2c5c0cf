package errors

import (
	"fmt"
	"math"
	"net/http"
	"time"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message returned to the client.
	Message string `json:"message"`
	// Retryable indicates if the caller may retry the request.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for logs.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Validation ---

// Validation creates a ValidationError for a field that broke a rule.
func Validation(field, reason string) *AppError {
	return &AppError{
		Code: ErrCodeValidation, Message: fmt.Sprintf("Invalid %s: %s", field, reason),
		HTTPStatus: http.StatusUnprocessableEntity, Retryable: false,
		Details: map[string]any{"field": field},
	}
}

// MissingField creates a ValidationError for a required field that is absent.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeValidation, Message: fmt.Sprintf("Missing required field: %s", field),
		HTTPStatus: http.StatusUnprocessableEntity, Retryable: false,
		Details: map[string]any{"field": field},
	}
}

// MalformedBody creates a ValidationError for a body that is not a JSON object
// of the expected shape.
func MalformedBody(reason string) *AppError {
	return &AppError{
		Code: ErrCodeMalformedBody, Message: fmt.Sprintf("Malformed request body: %s", reason),
		HTTPStatus: http.StatusBadRequest, Retryable: false,
		Details: map[string]any{"field": "body"},
	}
}

// --- Authentication ---

// Unauthorized creates an AuthError.
func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "Invalid API key"
	}
	return &AppError{
		Code: ErrCodeUnauthorized, Message: reason,
		HTTPStatus: http.StatusUnauthorized, Retryable: false,
	}
}

// RateLimited creates an AppError for a client over its request budget.
func RateLimited(retryAfter time.Duration) *AppError {
	secs := int(math.Ceil(retryAfter.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return &AppError{
		Code: ErrCodeRateLimited, Message: "Too many requests. Please slow down.",
		HTTPStatus: http.StatusTooManyRequests, Retryable: true,
		Details: map[string]any{"retry_after": secs},
	}
}

// --- Audio ---

// DecodeFailed creates a DecodeError for audio that cannot be decoded or
// violates the duration limit.
func DecodeFailed(reason string) *AppError {
	return &AppError{
		Code: ErrCodeDecode, Message: fmt.Sprintf("Invalid audio data: %s", reason),
		HTTPStatus: http.StatusUnprocessableEntity, Retryable: false,
	}
}

// PayloadTooLarge creates a DecodeError for audio above the size limit.
func PayloadTooLarge(limit string) *AppError {
	return &AppError{
		Code: ErrCodePayloadTooLarge, Message: fmt.Sprintf("Audio file too large. Maximum size: %s", limit),
		HTTPStatus: http.StatusRequestEntityTooLarge, Retryable: false,
		Details: map[string]any{"limit": limit},
	}
}

// --- Classifier ---

// ClassifierFailed creates a ClassifierError for an upstream failure.
func ClassifierFailed(backend string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeClassifier, Message: "Error processing audio: the voice classifier failed. Please try again.",
		HTTPStatus: http.StatusBadGateway, Retryable: true,
		Details: map[string]any{"backend": backend}, Cause: cause,
	}
}

// ClassifierTimeout creates a ClassifierError for a call that exceeded its deadline.
func ClassifierTimeout(backend string) *AppError {
	return &AppError{
		Code: ErrCodeClassifierTimeout, Message: "Error processing audio: the voice classifier timed out. Please try again.",
		HTTPStatus: http.StatusGatewayTimeout, Retryable: true,
		Details: map[string]any{"backend": backend},
	}
}

// --- Routing / internal ---

// NotFound creates an AppError for an unknown route.
func NotFound(path string) *AppError {
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("Route %s not found", path),
		HTTPStatus: http.StatusNotFound, Retryable: false,
	}
}

// MethodNotAllowed creates an AppError for a known route called with the wrong method.
func MethodNotAllowed(method, path string) *AppError {
	return &AppError{
		Code: ErrCodeMethodNotAllowed, Message: fmt.Sprintf("Method %s not allowed on %s", method, path),
		HTTPStatus: http.StatusMethodNotAllowed, Retryable: false,
	}
}

// Internal creates a new AppError for an internal server error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred. Please try again or contact support.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}
