package meteor

import (
	"fmt"
	"strings"
)

// DefaultNamespaceName is the namespace the engine cursor starts in.
const DefaultNamespaceName = "main"

// WarnDepth is the namespace depth at which parsers emit a soft warning.
const WarnDepth = 3

// Namespace is an ordered sequence of dot-separated segments grouping keys
// within a context. The empty namespace is the root.
type Namespace struct {
	path string
}

// NewNamespace creates a namespace from its dotted path. An empty path is
// the root namespace.
func NewNamespace(path string) Namespace {
	return Namespace{path: path}
}

// RootNamespace returns the empty root namespace.
func RootNamespace() Namespace {
	return Namespace{}
}

// DefaultNamespace returns the "main" namespace.
func DefaultNamespace() Namespace {
	return Namespace{path: DefaultNamespaceName}
}

// Segments returns the dot-separated segments, nil for the root.
func (n Namespace) Segments() []string {
	if n.path == "" {
		return nil
	}
	return strings.Split(n.path, ".")
}

// Depth returns the segment count; the root has depth 0.
func (n Namespace) Depth() int {
	return len(n.Segments())
}

// IsRoot reports whether n is the empty root namespace.
func (n Namespace) IsRoot() bool { return n.path == "" }

func (n Namespace) String() string { return n.path }

// Validate checks the namespace against the profile depth limit. Depth at or
// beyond maxDepth is a semantic error; the soft-warning threshold (WarnDepth)
// is the caller's concern since only the caller has a logger.
func (n Namespace) Validate(maxDepth int) error {
	if d := n.Depth(); maxDepth > 0 && d >= maxDepth {
		return &SemanticError{
			Code:    ErrCodeDepthExceeded,
			Message: fmt.Sprintf("namespace %q has depth %d, limit is %d", n.path, d, maxDepth),
		}
	}
	return nil
}
