// Package detection implements the voice detection pipeline:
// parse and validate the request, decode the audio, classify it and build
// the result. Every failure is an *errors.AppError whose kind decides the
// HTTP status.
package detection
