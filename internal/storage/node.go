package storage

// nodeKind tags a tree node as directory or file. The tree is a closed sum:
// no other kinds exist.
type nodeKind int

const (
	nodeDirectory nodeKind = iota
	nodeFile
)

// node is one entry in a namespace tree. A directory owns children keyed by
// segment; a file points at the canonical key of its flat entry. The tree has
// no cross-links or cycles, so recursive removal needs no indirection.
type node struct {
	kind      nodeKind
	children  map[string]*node
	canonical string
}

func newDirectory() *node {
	return &node{kind: nodeDirectory, children: make(map[string]*node)}
}

func newFile(canonical string) *node {
	return &node{kind: nodeFile, canonical: canonical}
}

func (n *node) isDirectory() bool { return n.kind == nodeDirectory }

func (n *node) isFile() bool { return n.kind == nodeFile }

func (n *node) isEmpty() bool { return n.kind == nodeDirectory && len(n.children) == 0 }

// walk descends the directory chain for segments, returning nil when any hop
// is missing or not a directory.
func (n *node) walk(segments []string) *node {
	cur := n
	for _, seg := range segments {
		if cur == nil || !cur.isDirectory() {
			return nil
		}
		cur = cur.children[seg]
	}
	return cur
}

// collectCanonical appends the canonical keys of every file reachable from n.
func (n *node) collectCanonical(out *[]string) {
	if n.isFile() {
		*out = append(*out, n.canonical)
		return
	}
	for _, child := range n.children {
		child.collectCanonical(out)
	}
}
