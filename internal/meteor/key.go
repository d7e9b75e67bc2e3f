package meteor

import (
	"github.com/roach88/meteor/internal/bracket"
)

// Key is a user-supplied identifier, optionally in bracket notation. The
// flattened form is computed once at construction and cached; both forms are
// immutable afterwards.
type Key struct {
	original string
	flat     string
}

// NewKey creates a key, flattening bracket notation. Construction fails on
// malformed brackets (a format error from the bracket package).
func NewKey(raw string) (Key, error) {
	flat, err := bracket.Transform(raw)
	if err != nil {
		return Key{}, err
	}
	return Key{original: raw, flat: flat}, nil
}

// Original returns the key as the user wrote it.
func (k Key) Original() string { return k.original }

// Flat returns the cached flattened form used for storage addressing.
func (k Key) Flat() string { return k.flat }

// HasBrackets reports whether the original form used bracket notation.
func (k Key) HasBrackets() bool { return k.original != k.flat }

func (k Key) String() string { return k.original }
