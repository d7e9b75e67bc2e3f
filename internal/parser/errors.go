package parser

import (
	"errors"
	"fmt"
)

// FormatError represents malformed stream text: the input could not be
// understood by the grammar at all, as opposed to a semantic violation of
// well-formed input (see meteor.SemanticError).
type FormatError struct {
	// Code identifies the error category.
	Code FormatErrorCode

	// Message is a human-readable description.
	Message string

	// Segment is the offending stream segment, when one is identifiable.
	Segment string
}

// FormatErrorCode categorizes format errors.
type FormatErrorCode string

const (
	// ErrCodeMissingAssignment indicates a segment without "=".
	ErrCodeMissingAssignment FormatErrorCode = "MISSING_ASSIGNMENT"

	// ErrCodeBadAddress indicates wrong colon arity or an empty required
	// component in an explicit address.
	ErrCodeBadAddress FormatErrorCode = "BAD_ADDRESS"

	// ErrCodeBadControl indicates a malformed or unknown control command.
	ErrCodeBadControl FormatErrorCode = "BAD_CONTROL"

	// ErrCodeBadQuoting indicates unbalanced quotes or an invalid escape.
	ErrCodeBadQuoting FormatErrorCode = "BAD_QUOTING"

	// ErrCodeBadKey indicates a key that failed the bracket transform.
	ErrCodeBadKey FormatErrorCode = "BAD_KEY"

	// ErrCodeLimitExceeded indicates a key or value longer than the profile
	// allows. Only the validation entry points report this.
	ErrCodeLimitExceeded FormatErrorCode = "LIMIT_EXCEEDED"
)

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.Segment != "" {
		return fmt.Sprintf("%s: %s (segment=%q)", e.Code, e.Message, e.Segment)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsFormatError returns true if err is any parser format error.
// Uses errors.As to handle wrapped errors.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

func formatErr(code FormatErrorCode, segment, format string, args ...any) *FormatError {
	return &FormatError{Code: code, Message: fmt.Sprintf(format, args...), Segment: segment}
}
