// Package bracket implements the key transform between user-facing bracket
// notation (name[0], grid[2,3], queue[], dict[name]) and the flat identifier
// form stored by the engine (name__i_0, grid__i_2_3, queue__i_APPEND,
// dict__i_name).
//
// Transform is strict and validates its input. ReverseTransform is
// best-effort and never fails: named indices containing underscores cannot be
// reconstructed exactly because the separator choice is unrecoverable. That
// loss is deliberate; the flat form is the canonical one.
package bracket

import (
	"fmt"
	"strings"
)

// Separator marks the boundary between the base name and the index suffix in
// a flat key.
const Separator = "__"

// indexMarker prefixes the joined index list inside a flat key.
const indexMarker = "i_"

// AppendIndex is the sentinel index produced by empty brackets (name[]).
const AppendIndex = "APPEND"

// TransformError reports why a bracketed key could not be flattened.
type TransformError struct {
	Key     string
	Message string
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("invalid bracket key %q: %s", e.Key, e.Message)
}

// Transform converts bracket notation to the flat identifier form.
// Keys without brackets pass through unchanged.
func Transform(key string) (string, error) {
	open := strings.IndexByte(key, '[')
	closing := strings.LastIndexByte(key, ']')

	if open < 0 && closing < 0 {
		return key, nil
	}
	if open < 0 || closing < 0 || closing < open {
		return "", &TransformError{Key: key, Message: "mismatched brackets"}
	}

	base := key[:open]
	if base == "" {
		return "", &TransformError{Key: key, Message: "empty name before bracket"}
	}

	content := key[open+1 : closing]
	if strings.ContainsAny(content, "[]") {
		return "", &TransformError{Key: key, Message: "nested brackets are not supported"}
	}

	indices, err := parseIndices(key, content)
	if err != nil {
		return "", err
	}

	return base + Separator + indexMarker + strings.Join(indices, "_"), nil
}

func parseIndices(key, content string) ([]string, error) {
	if strings.TrimSpace(content) == "" {
		return []string{AppendIndex}, nil
	}

	parts := strings.Split(content, ",")
	indices := make([]string, 0, len(parts))
	for _, part := range parts {
		idx := strings.TrimSpace(part)
		if idx == "" {
			return nil, &TransformError{Key: key, Message: "empty index in index list"}
		}
		for pos, r := range idx {
			if !validIndexRune(r) {
				return nil, &TransformError{
					Key:     key,
					Message: fmt.Sprintf("invalid character %q at position %d in index %q", r, pos, idx),
				}
			}
		}
		indices = append(indices, idx)
	}
	return indices, nil
}

func validIndexRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '_', r == '-':
		return true
	}
	return false
}

// ReverseTransform converts a flat identifier back to bracket notation.
// Best-effort: a key without the separator is returned unchanged, and any
// suffix that does not carry the index marker becomes a single named index.
func ReverseTransform(flat string) string {
	sep := strings.Index(flat, Separator)
	if sep < 0 {
		return flat
	}

	base := flat[:sep]
	suffix := flat[sep+len(Separator):]

	if suffix == indexMarker+AppendIndex {
		return base + "[]"
	}
	if rest, ok := strings.CutPrefix(suffix, indexMarker); ok {
		return base + "[" + strings.Join(strings.Split(rest, "_"), ",") + "]"
	}
	// Unknown suffix shape: treat the whole suffix as one named index.
	return base + "[" + suffix + "]"
}
