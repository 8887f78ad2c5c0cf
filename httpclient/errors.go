package httpclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies HTTP client errors.
type ErrorCode int

const (
	// ErrCodeTimeout indicates a request or connection timeout.
	ErrCodeTimeout ErrorCode = iota
	// ErrCodeConnection indicates a connection failure (refused, DNS, etc).
	ErrCodeConnection
	// ErrCodeAuth indicates an authentication/authorization failure (401/403).
	ErrCodeAuth
	// ErrCodeNotFound indicates the resource was not found (404).
	ErrCodeNotFound
	// ErrCodeRateLimit indicates rate limiting (429).
	ErrCodeRateLimit
	// ErrCodeValidation indicates the request was rejected (other 4xx) or could not be built.
	ErrCodeValidation
	// ErrCodeServer indicates a server-side error (5xx).
	ErrCodeServer
)

var codeNames = map[ErrorCode]string{
	ErrCodeTimeout:    "timeout",
	ErrCodeConnection: "connection",
	ErrCodeAuth:       "auth",
	ErrCodeNotFound:   "not_found",
	ErrCodeRateLimit:  "rate_limit",
	ErrCodeValidation: "validation",
	ErrCodeServer:     "server",
}

// String returns the error code name.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "unknown"
}

// Error is a structured HTTP client error with classification.
type Error struct {
	// StatusCode is the HTTP status code (0 for connection-level errors).
	StatusCode int
	Code       ErrorCode
	// Message is the server's error envelope message when it sent one,
	// otherwise a generic description.
	Message   string
	Retryable bool
	// Body is the original response body (may be nil).
	Body []byte
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(err error) *Error {
	return &Error{Code: ErrCodeTimeout, Message: err.Error(), Retryable: true, Err: err}
}

// NewConnectionError creates a connection error.
func NewConnectionError(err error) *Error {
	return &Error{Code: ErrCodeConnection, Message: err.Error(), Retryable: true, Err: err}
}

// NewValidationError creates a client-side validation error.
func NewValidationError(msg string) *Error {
	return &Error{Code: ErrCodeValidation, Message: msg}
}

func newStatusError(code ErrorCode, status int, body []byte, retryable bool) *Error {
	return &Error{
		StatusCode: status,
		Code:       code,
		Message:    envelopeMessage(status, body),
		Retryable:  retryable,
		Body:       body,
	}
}

// ClassifyStatusCode converts an HTTP status code into a typed error.
// Returns nil for 2xx status codes.
func ClassifyStatusCode(statusCode int, body []byte) *Error {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return nil
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return newStatusError(ErrCodeAuth, statusCode, body, false)
	case statusCode == http.StatusNotFound:
		return newStatusError(ErrCodeNotFound, statusCode, body, false)
	case statusCode == http.StatusTooManyRequests:
		return newStatusError(ErrCodeRateLimit, statusCode, body, true)
	case statusCode >= 400 && statusCode < 500:
		return newStatusError(ErrCodeValidation, statusCode, body, false)
	case statusCode >= 500:
		return newStatusError(ErrCodeServer, statusCode, body, true)
	default:
		return newStatusError(ErrCodeServer, statusCode, body, false)
	}
}

// envelopeMessage extracts "message" from a JSON error body.
func envelopeMessage(status int, body []byte) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if len(body) > 0 && json.Unmarshal(body, &envelope) == nil && envelope.Message != "" {
		return envelope.Message
	}
	return fmt.Sprintf("HTTP %d", status)
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool { return hasCode(err, ErrCodeTimeout) }

// IsConnection checks if an error is a connection error.
func IsConnection(err error) bool { return hasCode(err, ErrCodeConnection) }

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}
