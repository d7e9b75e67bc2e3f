package engine

import (
	"github.com/roach88/meteor/internal/meteor"
	"github.com/roach88/meteor/internal/splitter"
)

// keyRef is a fully resolved storage address. key holds the flattened form.
type keyRef struct {
	ctx, ns, key string
}

var pathSplitConfig = splitter.Config{
	Escapes:   splitter.EscapeInQuotes,
	KeepEmpty: true,
}

// splitPath splits a colon path, keeping empty components so arity is exact.
func splitPath(path string) ([]string, error) {
	if path == "" {
		return nil, badPath(path, "empty path")
	}
	parts := splitter.Split(path, ":", pathSplitConfig)
	if len(parts) > 3 {
		return nil, badPath(path, "want at most context:namespace:key, got %d segments", len(parts))
	}
	if parts[0] == "" {
		return nil, badPath(path, "empty context")
	}
	return parts, nil
}

// parseKeyPath resolves a full "ctx:ns:key" address for set/get. The
// namespace may be empty (root); the key may not, and bracket notation in it
// is flattened here.
func parseKeyPath(path string) (keyRef, error) {
	parts, err := splitPath(path)
	if err != nil {
		return keyRef{}, err
	}
	if len(parts) != 3 {
		return keyRef{}, badPath(path, "want context:namespace:key, got %d segments", len(parts))
	}
	if parts[2] == "" {
		return keyRef{}, badPath(path, "empty key")
	}
	key, err := meteor.NewKey(parts[2])
	if err != nil {
		return keyRef{}, &CommandError{Code: ErrCodeBadKey, Message: err.Error(), Path: path}
	}
	return keyRef{ctx: parts[0], ns: parts[1], key: key.Flat()}, nil
}

// parseNodePath resolves an address for the structural tree queries. Unlike
// parseKeyPath the key part may be empty (the namespace root) and is taken
// literally: tree nodes are named by flat segments, brackets have no meaning
// here.
func parseNodePath(path string) (keyRef, error) {
	parts, err := splitPath(path)
	if err != nil {
		return keyRef{}, err
	}
	if len(parts) != 3 {
		return keyRef{}, badPath(path, "want context:namespace:key, got %d segments", len(parts))
	}
	return keyRef{ctx: parts[0], ns: parts[1], key: parts[2]}, nil
}
