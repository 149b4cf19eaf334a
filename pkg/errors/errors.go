package errors

import (
	"errors"
	"fmt"
)

var (
	ErrDirectoryUnreadable = errors.New("directory unreadable")
	ErrDocumentUnreadable  = errors.New("document unreadable")
	ErrDocumentExists      = errors.New("document already indexed")
	ErrMissingQuery        = errors.New("missing query token")
	ErrUsage               = errors.New("invalid arguments")
	ErrTokenNotFound       = errors.New("token not found")
	ErrInvalidConfig       = errors.New("invalid configuration")
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
	ExitConfig  = 78
)

type AppError struct {
	Err      error
	Message  string
	ExitCode int
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(sentinel error, message string) *AppError {
	return &AppError{
		Err:      sentinel,
		Message:  message,
		ExitCode: exitCodeFor(sentinel),
	}
}

func Newf(sentinel error, format string, args ...any) *AppError {
	return &AppError{
		Err:      sentinel,
		Message:  fmt.Sprintf(format, args...),
		ExitCode: exitCodeFor(sentinel),
	}
}

// ExitCode maps an error returned by the run to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.ExitCode
	}
	return exitCodeFor(err)
}

func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, ErrMissingQuery), errors.Is(err, ErrUsage):
		return ExitUsage
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfig
	default:
		return ExitFailure
	}
}
