package cli

import (
	"errors"

	"github.com/thenoetrevino/tablero/internal/services"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: Database errors, unexpected failures,
	// or any error that doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags or invalid flag combinations.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: Task, project, user, comment or notification IDs that don't exist.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: Import files that cannot be decoded.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Invalid priority values, invalid status,
	// or any case where input fails validation rules.
	ExitValidation = 5
)

// CodedError carries the exit code a failed command should end with
type CodedError struct {
	Code int
	Err  error
}

func (e *CodedError) Error() string {
	return e.Err.Error()
}

func (e *CodedError) Unwrap() error {
	return e.Err
}

// ErrDataFormat marks input that could not be decoded
var ErrDataFormat = errors.New("malformed input")

// ExitCode picks the process exit code for err
func ExitCode(err error) int {
	var exitErr *CodedError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &exitErr):
		return exitErr.Code
	case services.IsNotFound(err):
		return ExitNotFound
	case services.IsValidation(err):
		return ExitValidation
	case errors.Is(err, ErrDataFormat):
		return ExitDataErr
	}
	return ExitError
}

// errorCode is the machine-readable name reported with JSON errors
func errorCode(code int) string {
	switch code {
	case ExitNotFound:
		return "NOT_FOUND"
	case ExitValidation:
		return "VALIDATION_ERROR"
	case ExitDataErr:
		return "DATA_ERROR"
	case ExitUsage:
		return "USAGE_ERROR"
	}
	return "ERROR"
}
