package meteor

import (
	"errors"
	"fmt"
)

// SemanticError represents a validation failure on otherwise well-formed
// input: the text parsed, but the values violate a structural rule.
type SemanticError struct {
	// Code identifies the error category.
	Code SemanticErrorCode

	// Message is a human-readable description.
	Message string
}

// SemanticErrorCode categorizes semantic errors.
type SemanticErrorCode string

const (
	// ErrCodeEmptyContext indicates an empty context name.
	ErrCodeEmptyContext SemanticErrorCode = "EMPTY_CONTEXT"

	// ErrCodeEmptyTokens indicates a record built with no tokens.
	ErrCodeEmptyTokens SemanticErrorCode = "EMPTY_TOKENS"

	// ErrCodeNamespaceMismatch indicates a token whose explicit namespace
	// differs from its record's namespace.
	ErrCodeNamespaceMismatch SemanticErrorCode = "NAMESPACE_MISMATCH"

	// ErrCodeDepthExceeded indicates a namespace deeper than the profile
	// limit allows.
	ErrCodeDepthExceeded SemanticErrorCode = "DEPTH_EXCEEDED"
)

// Error implements the error interface.
func (e *SemanticError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsNamespaceMismatch returns true if err is a record namespace mismatch.
// Uses errors.As to handle wrapped errors.
func IsNamespaceMismatch(err error) bool {
	var se *SemanticError
	return errors.As(err, &se) && se.Code == ErrCodeNamespaceMismatch
}

// IsDepthExceeded returns true if err is a namespace depth violation.
func IsDepthExceeded(err error) bool {
	var se *SemanticError
	return errors.As(err, &se) && se.Code == ErrCodeDepthExceeded
}
