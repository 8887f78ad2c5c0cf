package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Request errors
const (
	// ErrCodeValidation indicates a request field failed validation.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	// ErrCodeMalformedBody indicates the request body could not be parsed.
	ErrCodeMalformedBody ErrorCode = "MALFORMED_BODY"
	// ErrCodeNotFound indicates the route does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeMethodNotAllowed indicates the route exists for another method.
	ErrCodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
)

// Authentication errors
const (
	// ErrCodeUnauthorized indicates a missing or invalid API key.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeRateLimited indicates the client exceeded its request rate.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
)

// Audio errors
const (
	// ErrCodeDecode indicates the audio payload could not be decoded.
	ErrCodeDecode ErrorCode = "DECODE_ERROR"
	// ErrCodePayloadTooLarge indicates the decoded audio exceeds the size limit.
	ErrCodePayloadTooLarge ErrorCode = "PAYLOAD_TOO_LARGE"
)

// Classifier errors (retryable)
const (
	// ErrCodeClassifier indicates the classifier failed.
	ErrCodeClassifier ErrorCode = "CLASSIFIER_ERROR"
	// ErrCodeClassifierTimeout indicates the classifier did not answer in time.
	ErrCodeClassifierTimeout ErrorCode = "CLASSIFIER_TIMEOUT"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeClassifier:        true,
	ErrCodeClassifierTimeout: true,
	ErrCodeRateLimited:       true,
	ErrCodeInternal:          false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
