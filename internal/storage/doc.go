// Package storage implements the context-isolated hybrid index that is the
// system of record.
//
// Each context holds two views of the same data: a flat map from canonical
// key ("namespace:key") to value for O(1) lookups, and a per-namespace tree
// of tagged directory/file nodes built from key segments split on ".". Every
// mutation updates both views; deletions prune now-empty ancestor directories
// bottom-up so the tree never holds dangling empty directories.
//
// Storage performs no validation beyond what is needed for consistency. The
// engine's parsers validate input; storage trusts its caller.
package storage
