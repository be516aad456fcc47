package output

import "errors"

// Exit codes form the outward contract of every hooksmith command and the
// installed hook shims. Scripts and CI wrappers branch on them, so the
// meanings are fixed:
//
//	0  success
//	1  user error (rejected commit message, bad arguments, missing input file)
//	2  system error (git or an external tool failed, I/O error)
//	3  conflict (a foreign hook occupies the slot, state mismatch)
const (
	ExitSuccess     = 0
	ExitUserError   = 1
	ExitSystemError = 2
	ExitConflict    = 3
)

// ExitError pairs an error message with the process exit code the CLI
// should terminate with.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ExitError) Error() string { return e.Message }

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *ExitError) Unwrap() error { return e.Cause }

// NewUserError reports something the user can fix: a rejected subject,
// bad arguments, an input file that does not exist.
func NewUserError(message string) *ExitError {
	return &ExitError{Code: ExitUserError, Message: message}
}

// NewSystemError reports an environment failure: git errored, an external
// tool exited nonzero, a write failed.
func NewSystemError(message string) *ExitError {
	return &ExitError{Code: ExitSystemError, Message: message}
}

// NewSystemErrorWithCause is NewSystemError with the underlying error
// attached for unwrapping.
func NewSystemErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{Code: ExitSystemError, Message: message, Cause: cause}
}

// NewConflictError reports a state collision, such as a hook slot already
// occupied by a script hooksmith did not write.
func NewConflictError(message string) *ExitError {
	return &ExitError{Code: ExitConflict, Message: message}
}

// GetExitCode maps an error to the process exit code. nil is success and
// untyped errors default to a user error.
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
