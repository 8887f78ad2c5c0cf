package commands

import "errors"

// Exit codes shared by the client commands.
const (
	ExitOK      = 0
	ExitFailure = 1 // the API answered with an error
	ExitLocal   = 2 // bad input, missing key, or the API could not be reached
)

// exitError carries a process exit code through cobra.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

// withCode attaches an exit code to err. A nil err with a non-zero code
// exits silently; the command already printed its output.
func withCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

// exitCode maps an error returned by a command to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitFailure
}
