package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument covers bad document ids, malformed query words and
	// words containing control characters.
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrDocumentNotFound = errors.New("document not found")
)

type AppError struct {
	Err     error
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(sentinel error, message string) *AppError {
	return &AppError{
		Err:     sentinel,
		Message: message,
	}
}

func Newf(sentinel error, format string, args ...any) *AppError {
	return &AppError{
		Err:     sentinel,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsInvalidArgument reports whether err is, or wraps, ErrInvalidArgument.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsNotFound reports whether err is, or wraps, ErrDocumentNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrDocumentNotFound)
}

// ExitCode maps an error to a CLI process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case IsInvalidArgument(err):
		return 2
	case IsNotFound(err):
		return 3
	default:
		return 1
	}
}
