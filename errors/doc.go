// Package errors provides the structured error type used across voicecheck.
//
// Every failure on the detection path (validation, authentication, decoding,
// classification) is an *AppError carrying a machine-readable code and the
// HTTP status the formatter should use. The client-facing shape is the fixed
// error envelope {"status":"error","message":...}.
package errors
