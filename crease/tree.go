package crease

import "github.com/dmorth/creasetree/buffer"

// Tree structure constants
const (
	// maxEntries is the maximum entries in a leaf node before splitting.
	maxEntries = 8

	// maxChildren is the maximum children per internal node before splitting.
	maxChildren = 8
)

// node is one node of the persistent crease tree.
// Leaf nodes (height == 0) hold entries; internal nodes hold children.
// Every node carries the anchor range of the LAST entry in its subtree:
// entries are kept sorted ascending by range, so the last range is the
// subtree maximum and is the only aggregate seeking needs.
//
// Nodes are never modified after construction. Tree versions built from an
// older version share every node outside the rebuilt root-to-edge path,
// which is what makes snapshots O(1) to capture and immutable to hold.
type node struct {
	height   uint8
	last     buffer.AnchorRange
	children []*node // internal node fields (height > 0)
	entries  []Entry // leaf node fields (height == 0)
}

// newLeaf creates a leaf node. The entry slice must be non-empty and is
// owned by the node afterwards.
func newLeaf(entries []Entry) *node {
	return &node{
		height:  0,
		last:    entries[len(entries)-1].Crease.Range(),
		entries: entries,
	}
}

// newInternal creates an internal node. The child slice must be non-empty,
// all children of equal height, and is owned by the node afterwards.
func newInternal(children []*node) *node {
	return &node{
		height:   children[0].height + 1,
		last:     children[len(children)-1].last,
		children: children,
	}
}

// isLeaf returns true if this is a leaf node.
func (n *node) isLeaf() bool {
	return n.height == 0
}

// tree is a persistent ordered sequence of crease entries.
// The zero value is an empty tree. Copying a tree copies a handle; the
// underlying nodes are shared and immutable.
type tree struct {
	root *node
}

// isEmpty returns true if the tree holds no entries.
func (t tree) isEmpty() bool {
	return t.root == nil
}

// push appends a single entry at the right edge. The entry's range must not
// sort before the tree's current last entry.
func (t *tree) push(e Entry) {
	t.append(tree{root: newLeaf([]Entry{e})})
}

// append concatenates another tree to the right edge, sharing its subtrees
// wholesale. Both operands remain valid; only the receiver's handle moves.
func (t *tree) append(other tree) {
	if other.root == nil {
		return
	}
	if t.root == nil {
		t.root = other.root
		return
	}
	if t.root.height < other.root.height {
		// The other tree is taller: feed it in as its subtrees, which
		// recursion reduces to the pushable height.
		for _, child := range other.root.children {
			t.append(tree{root: child})
		}
		return
	}
	root, split := pushTree(t.root, other.root)
	if split != nil {
		root = newInternal([]*node{root, split})
	}
	t.root = root
}

// pushTree appends other (no taller than n) under n's rightmost edge,
// rebuilding only that path. Returns the replacement node and, if the
// append overflowed, a second node to be inserted as its right sibling.
func pushTree(n, other *node) (*node, *node) {
	if n.height == other.height {
		return mergeNodes(n, other)
	}

	child, split := pushTree(n.children[len(n.children)-1], other)
	children := make([]*node, 0, len(n.children)+1)
	children = append(children, n.children[:len(n.children)-1]...)
	children = append(children, child)
	if split != nil {
		children = append(children, split)
	}
	return buildSiblings(children)
}

// mergeNodes combines two nodes of equal height into one when the result
// fits, and otherwise leaves them as adjacent siblings.
func mergeNodes(a, b *node) (*node, *node) {
	if a.isLeaf() {
		total := len(a.entries) + len(b.entries)
		if total > maxEntries {
			return a, b
		}
		entries := make([]Entry, 0, total)
		entries = append(entries, a.entries...)
		entries = append(entries, b.entries...)
		return newLeaf(entries), nil
	}

	total := len(a.children) + len(b.children)
	if total > maxChildren {
		return a, b
	}
	children := make([]*node, 0, total)
	children = append(children, a.children...)
	children = append(children, b.children...)
	return newInternal(children), nil
}

// buildSiblings wraps a run of equal-height nodes into one node, splitting
// into two when the run overflows.
func buildSiblings(children []*node) (*node, *node) {
	if len(children) <= maxChildren {
		return newInternal(children), nil
	}
	mid := (len(children) + 1) / 2
	return newInternal(children[:mid:mid]), newInternal(children[mid:])
}
