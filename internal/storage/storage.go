package storage

import (
	"sort"
	"strings"
)

// Storage is the context-isolated hybrid index. Not safe for concurrent use;
// the engine owns exactly one instance and serializes access.
type Storage struct {
	contexts map[string]*contextData
}

// contextData holds one context's flat and tree views. The two stay
// consistent: every canonical key in flat has a reachable file node in
// exactly one namespace tree, and vice versa.
type contextData struct {
	flat  map[string]string
	trees map[string]*node // namespace path -> root directory
}

// Entry is one key/value pair from a namespace listing.
type Entry struct {
	Key   string
	Value string
}

// New creates an empty storage.
func New() *Storage {
	return &Storage{contexts: make(map[string]*contextData)}
}

// CanonicalKey builds the flat-map lookup key for a namespace and key.
func CanonicalKey(ns, key string) string {
	return ns + ":" + key
}

// Set writes value under ctx/ns/key, updating both views. The namespace root
// is created on first use. A tree node whose kind conflicts with the write
// (file where a directory is needed, or the reverse) is displaced along with
// its flat entries, keeping the two views consistent.
func (s *Storage) Set(ctx, ns, key, value string) {
	cd := s.contexts[ctx]
	if cd == nil {
		cd = &contextData{flat: make(map[string]string), trees: make(map[string]*node)}
		s.contexts[ctx] = cd
	}

	cd.flat[CanonicalKey(ns, key)] = value

	root := cd.trees[ns]
	if root == nil {
		root = newDirectory()
		cd.trees[ns] = root
	}

	segs := strings.Split(key, ".")
	cur := root
	for _, seg := range segs[:len(segs)-1] {
		child := cur.children[seg]
		if child == nil || !child.isDirectory() {
			if child != nil {
				// File displaced by a directory: drop its flat entry.
				delete(cd.flat, child.canonical)
			}
			child = newDirectory()
			cur.children[seg] = child
		}
		cur = child
	}

	last := segs[len(segs)-1]
	if old := cur.children[last]; old != nil && old.isDirectory() {
		// Directory displaced by a file: drop the subtree's flat entries.
		var canon []string
		old.collectCanonical(&canon)
		for _, c := range canon {
			delete(cd.flat, c)
		}
	}
	cur.children[last] = newFile(CanonicalKey(ns, key))
}

// Get returns the value at ctx/ns/key.
func (s *Storage) Get(ctx, ns, key string) (string, bool) {
	cd := s.contexts[ctx]
	if cd == nil {
		return "", false
	}
	v, ok := cd.flat[CanonicalKey(ns, key)]
	return v, ok
}

// Exists reports whether ctx/ns/key holds a value.
func (s *Storage) Exists(ctx, ns, key string) bool {
	_, ok := s.Get(ctx, ns, key)
	return ok
}

// DeleteKey removes ctx/ns/key from both views. A missing key reports false
// ("nothing removed") and leaves the tree untouched. When the key is present
// the leaf file node goes, then every now-empty ancestor directory bottom-up,
// then the namespace root itself if it emptied.
func (s *Storage) DeleteKey(ctx, ns, key string) bool {
	cd := s.contexts[ctx]
	if cd == nil {
		return false
	}
	canonical := CanonicalKey(ns, key)
	if _, ok := cd.flat[canonical]; !ok {
		return false
	}
	delete(cd.flat, canonical)

	root := cd.trees[ns]
	if root != nil {
		removeLeaf(root, strings.Split(key, "."))
		if root.isEmpty() {
			delete(cd.trees, ns)
		}
	}
	return true
}

// removeLeaf deletes the file node at the segment path and prunes empty
// directories on the way back up.
func removeLeaf(dir *node, segs []string) {
	if len(segs) == 1 {
		if child := dir.children[segs[0]]; child != nil && child.isFile() {
			delete(dir.children, segs[0])
		}
		return
	}
	child := dir.children[segs[0]]
	if child == nil || !child.isDirectory() {
		return
	}
	removeLeaf(child, segs[1:])
	if child.isEmpty() {
		delete(dir.children, segs[0])
	}
}

// DeleteNamespace removes every key under ctx/ns. Reports whether anything
// was removed.
func (s *Storage) DeleteNamespace(ctx, ns string) bool {
	cd := s.contexts[ctx]
	if cd == nil {
		return false
	}
	removed := false
	prefix := ns + ":"
	for canonical := range cd.flat {
		if strings.HasPrefix(canonical, prefix) {
			delete(cd.flat, canonical)
			removed = true
		}
	}
	if _, ok := cd.trees[ns]; ok {
		delete(cd.trees, ns)
		removed = true
	}
	return removed
}

// DeleteContext removes the whole context. Reports whether it existed.
func (s *Storage) DeleteContext(ctx string) bool {
	if _, ok := s.contexts[ctx]; !ok {
		return false
	}
	delete(s.contexts, ctx)
	return true
}

// Clear removes everything.
func (s *Storage) Clear() {
	s.contexts = make(map[string]*contextData)
}

// Contexts lists context names, sorted.
func (s *Storage) Contexts() []string {
	out := make([]string, 0, len(s.contexts))
	for name := range s.contexts {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Namespaces lists the namespaces present in ctx, sorted.
func (s *Storage) Namespaces(ctx string) []string {
	cd := s.contexts[ctx]
	if cd == nil {
		return nil
	}
	out := make([]string, 0, len(cd.trees))
	for ns := range cd.trees {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}

// Entries lists the key/value pairs under ctx/ns, sorted by key.
func (s *Storage) Entries(ctx, ns string) []Entry {
	cd := s.contexts[ctx]
	if cd == nil {
		return nil
	}
	prefix := ns + ":"
	var out []Entry
	for canonical, value := range cd.flat {
		if key, ok := strings.CutPrefix(canonical, prefix); ok {
			out = append(out, Entry{Key: key, Value: value})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Len returns the total number of stored keys across all contexts.
func (s *Storage) Len() int {
	n := 0
	for _, cd := range s.contexts {
		n += len(cd.flat)
	}
	return n
}

// IsFile reports whether keyPath names a file node in ctx/ns.
func (s *Storage) IsFile(ctx, ns, keyPath string) bool {
	n := s.lookup(ctx, ns, keyPath)
	return n != nil && n.isFile()
}

// IsDirectory reports whether keyPath names a directory node in ctx/ns. The
// empty keyPath names the namespace root.
func (s *Storage) IsDirectory(ctx, ns, keyPath string) bool {
	n := s.lookup(ctx, ns, keyPath)
	return n != nil && n.isDirectory()
}

// Children lists the child segment names under a directory, sorted.
func (s *Storage) Children(ctx, ns, keyPath string) []string {
	n := s.lookup(ctx, ns, keyPath)
	if n == nil || !n.isDirectory() {
		return nil
	}
	out := make([]string, 0, len(n.children))
	for seg := range n.children {
		out = append(out, seg)
	}
	sort.Strings(out)
	return out
}

// HasDefault reports whether the directory at keyPath has a child file
// literally named "index".
func (s *Storage) HasDefault(ctx, ns, keyPath string) bool {
	_, ok := s.GetDefault(ctx, ns, keyPath)
	return ok
}

// GetDefault returns the value of the directory's "index" child.
func (s *Storage) GetDefault(ctx, ns, keyPath string) (string, bool) {
	n := s.lookup(ctx, ns, keyPath)
	if n == nil || !n.isDirectory() {
		return "", false
	}
	child := n.children["index"]
	if child == nil || !child.isFile() {
		return "", false
	}
	cd := s.contexts[ctx]
	v, ok := cd.flat[child.canonical]
	return v, ok
}

func (s *Storage) lookup(ctx, ns, keyPath string) *node {
	cd := s.contexts[ctx]
	if cd == nil {
		return nil
	}
	root := cd.trees[ns]
	if root == nil {
		return nil
	}
	if keyPath == "" {
		return root
	}
	return root.walk(strings.Split(keyPath, "."))
}
