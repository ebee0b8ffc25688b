package output

import "errors"

// Process exit codes. A run that converted nothing still succeeds.
const (
	ExitSuccess     = 0
	ExitUserError   = 1 // bad flags, no database selectable, unknown folder or group
	ExitSystemError = 2 // database cannot be opened or queried
)

// ExitError carries the exit code a command failure maps to.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap exposes Cause to errors.Is and errors.As.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUserError reports a problem the user can fix with other flags or
// configuration. cause may be nil.
func NewUserError(message string, cause error) *ExitError {
	return &ExitError{Code: ExitUserError, Message: message, Cause: cause}
}

// NewSystemError reports a failure of the database or the file system.
// cause may be nil.
func NewSystemError(message string, cause error) *ExitError {
	return &ExitError{Code: ExitSystemError, Message: message, Cause: cause}
}

// GetExitCode maps err to a process exit code. Errors that carry no
// ExitError count as user errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUserError
}
