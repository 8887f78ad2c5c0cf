package errors

import (
	stderrors "errors"
)

// StatusError is the envelope status for every failed request.
const StatusError = "error"

// ErrorResponse is the error envelope returned to clients.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ToResponse converts an AppError to the error envelope.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{
		Status:  StatusError,
		Message: e.Message,
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
