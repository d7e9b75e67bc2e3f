package archive

import (
	"strings"

	"github.com/roach88/meteor/internal/bracket"
)

// Content-type hints attached to exported entries. Classification looks only
// at the flat key shape; values are opaque.
const (
	HintText   = "text"   // plain key, no bracket pattern
	HintArray  = "array"  // all-numeric index list
	HintAppend = "append" // the APPEND sentinel
	HintMap    = "map"    // at least one named index
)

// ContentType classifies a flat key by its bracket-pattern suffix.
func ContentType(flatKey string) string {
	sep := strings.Index(flatKey, bracket.Separator)
	if sep < 0 {
		return HintText
	}
	suffix := flatKey[sep+len(bracket.Separator):]

	rest, ok := strings.CutPrefix(suffix, "i_")
	if !ok {
		// Bare separator without the index marker still names an index.
		return HintMap
	}
	if rest == bracket.AppendIndex {
		return HintAppend
	}
	for _, idx := range strings.Split(rest, "_") {
		if !numeric(idx) {
			return HintMap
		}
	}
	return HintArray
}

func numeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
