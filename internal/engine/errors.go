package engine

import (
	"errors"
	"fmt"
)

// CommandError represents a failure executing an engine operation on
// malformed input. The engine never aborts on bad input; it reports one of
// these with a human-readable message and leaves prior state unchanged.
type CommandError struct {
	// Code identifies the error category.
	Code CommandErrorCode

	// Message is a human-readable description.
	Message string

	// Path is the offending address, when one was involved.
	Path string
}

// CommandErrorCode categorizes command errors.
type CommandErrorCode string

const (
	// ErrCodeBadPath indicates wrong colon arity or an empty required
	// component in a path.
	ErrCodeBadPath CommandErrorCode = "BAD_PATH"

	// ErrCodeBadKey indicates a key that failed the bracket transform.
	ErrCodeBadKey CommandErrorCode = "BAD_KEY"

	// ErrCodeUnknownCommand indicates an unrecognized control command.
	ErrCodeUnknownCommand CommandErrorCode = "UNKNOWN_COMMAND"

	// ErrCodeUnknownTarget indicates an unrecognized control target.
	ErrCodeUnknownTarget CommandErrorCode = "UNKNOWN_TARGET"
)

// Error implements the error interface.
func (e *CommandError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s (path=%s)", e.Code, e.Message, e.Path)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsBadPath returns true if err is a path format error.
// Uses errors.As to handle wrapped errors.
func IsBadPath(err error) bool {
	var ce *CommandError
	return errors.As(err, &ce) && ce.Code == ErrCodeBadPath
}

// IsUnknownCommand returns true if err is an unknown command or target error.
func IsUnknownCommand(err error) bool {
	var ce *CommandError
	return errors.As(err, &ce) &&
		(ce.Code == ErrCodeUnknownCommand || ce.Code == ErrCodeUnknownTarget)
}

func badPath(path, format string, args ...any) *CommandError {
	return &CommandError{Code: ErrCodeBadPath, Message: fmt.Sprintf(format, args...), Path: path}
}
