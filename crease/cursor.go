package crease

import "github.com/dmorth/creasetree/buffer"

// seekTarget is a position in the entry order a cursor can seek to.
type seekTarget interface {
	// compare returns <0 if the target sorts before the given summary
	// range, 0 if equal, >0 if after. The snapshot supplies the anchor
	// comparator context.
	compare(rng buffer.AnchorRange, snap *buffer.Snapshot) int
}

// rangeTarget seeks by full anchor range.
type rangeTarget buffer.AnchorRange

func (t rangeTarget) compare(rng buffer.AnchorRange, snap *buffer.Snapshot) int {
	return buffer.AnchorRange(t).Compare(rng, snap)
}

// anchorTarget seeks by a bare anchor, compared against range starts.
type anchorTarget buffer.Anchor

func (t anchorTarget) compare(rng buffer.AnchorRange, snap *buffer.Snapshot) int {
	return buffer.Anchor(t).Compare(rng.Start, snap)
}

// frame is one level of a cursor's descent path.
type frame struct {
	n   *node
	idx int // child index (internal) or entry index (leaf)
}

// cursor is a forward-only traversal over one tree version, bound to the
// buffer snapshot that defines the anchor order. It never rewinds: seeking
// to a target earlier than the current position is a no-op.
type cursor struct {
	tree    tree
	snap    *buffer.Snapshot
	stack   []frame
	started bool
}

// newCursor creates an unpositioned cursor; call seek, slice, or next to
// position it.
func (t tree) newCursor(snap *buffer.Snapshot) *cursor {
	return &cursor{tree: t, snap: snap}
}

// item returns the entry at the cursor, or nil if the cursor is
// unpositioned or exhausted. The returned pointer stays valid across
// further cursor movement; nodes are immutable.
func (c *cursor) item() *Entry {
	if !c.started || len(c.stack) == 0 {
		return nil
	}
	f := &c.stack[len(c.stack)-1]
	return &f.n.entries[f.idx]
}

// next advances to the following entry. On an unpositioned cursor it moves
// to the first entry.
func (c *cursor) next() {
	if !c.started {
		c.started = true
		if c.tree.root != nil {
			c.descendLeftmost(c.tree.root)
		}
		return
	}
	if len(c.stack) == 0 {
		return
	}

	top := &c.stack[len(c.stack)-1]
	top.idx++
	if top.idx < len(top.n.entries) {
		return
	}
	c.stack = c.stack[:len(c.stack)-1]
	for len(c.stack) > 0 {
		f := &c.stack[len(c.stack)-1]
		f.idx++
		if f.idx < len(f.n.children) {
			c.descendLeftmost(f.n.children[f.idx])
			return
		}
		c.stack = c.stack[:len(c.stack)-1]
	}
}

func (c *cursor) descendLeftmost(n *node) {
	for {
		c.stack = append(c.stack, frame{n: n})
		if n.isLeaf() {
			return
		}
		n = n.children[0]
	}
}

// seek positions the cursor at the first entry that does not sort before
// the target. With BiasLeft, entries strictly before the target are
// skipped; with BiasRight, entries equal to the target are skipped too.
func (c *cursor) seek(target seekTarget, bias buffer.Bias) {
	c.seekInternal(target, bias, nil)
}

// slice advances like seek but returns the skipped entries as a tree,
// sharing whole subtrees of the source wherever the boundary permits.
func (c *cursor) slice(target seekTarget, bias buffer.Bias) tree {
	var out tree
	c.seekInternal(target, bias, &out)
	return out
}

// suffix returns every entry at or after the cursor position as a tree and
// exhausts the cursor. On an unpositioned cursor it returns the whole tree.
func (c *cursor) suffix() tree {
	if !c.started {
		c.started = true
		return c.tree
	}
	var out tree
	if len(c.stack) == 0 {
		return out
	}

	leaf := c.stack[len(c.stack)-1]
	for i := leaf.idx; i < len(leaf.n.entries); i++ {
		out.push(leaf.n.entries[i])
	}
	for fi := len(c.stack) - 2; fi >= 0; fi-- {
		f := c.stack[fi]
		for i := f.idx + 1; i < len(f.n.children); i++ {
			out.append(tree{root: f.n.children[i]})
		}
	}
	c.stack = nil
	return out
}

// before reports whether a subtree or entry whose last range is rng lies on
// the consumed side of the target.
func (c *cursor) before(target seekTarget, bias buffer.Bias, rng buffer.AnchorRange) bool {
	cmp := target.compare(rng, c.snap)
	if bias == buffer.BiasLeft {
		return cmp > 0
	}
	return cmp >= 0
}

func (c *cursor) seekInternal(target seekTarget, bias buffer.Bias, out *tree) {
	if !c.started {
		c.started = true
		if c.tree.root == nil {
			return
		}
		if c.before(target, bias, c.tree.root.last) {
			// The whole tree is before the target; share it outright.
			if out != nil {
				out.append(c.tree)
			}
			return
		}
		c.descendTo(c.tree.root, target, bias, out)
		return
	}
	if len(c.stack) == 0 {
		return
	}

	// Consume the remainder of the current leaf up to the target.
	leaf := &c.stack[len(c.stack)-1]
	for leaf.idx < len(leaf.n.entries) &&
		c.before(target, bias, leaf.n.entries[leaf.idx].Crease.Range()) {
		if out != nil {
			out.push(leaf.n.entries[leaf.idx])
		}
		leaf.idx++
	}
	if leaf.idx < len(leaf.n.entries) {
		return
	}
	c.stack = c.stack[:len(c.stack)-1]

	// Ascend, consuming whole subtrees before the target, until one
	// straddling the boundary is found.
	for len(c.stack) > 0 {
		f := &c.stack[len(c.stack)-1]
		f.idx++
		for f.idx < len(f.n.children) {
			child := f.n.children[f.idx]
			if c.before(target, bias, child.last) {
				if out != nil {
					out.append(tree{root: child})
				}
				f.idx++
				continue
			}
			c.descendTo(child, target, bias, out)
			return
		}
		c.stack = c.stack[:len(c.stack)-1]
	}
}

// descendTo pushes the path to the first entry not before the target,
// collecting skipped siblings into out. The caller guarantees the subtree's
// last entry is not before the target, so the scans below cannot run off
// the end of a node.
func (c *cursor) descendTo(n *node, target seekTarget, bias buffer.Bias, out *tree) {
	for !n.isLeaf() {
		idx := 0
		for c.before(target, bias, n.children[idx].last) {
			if out != nil {
				out.append(tree{root: n.children[idx]})
			}
			idx++
		}
		c.stack = append(c.stack, frame{n: n, idx: idx})
		n = n.children[idx]
	}

	idx := 0
	for c.before(target, bias, n.entries[idx].Crease.Range()) {
		if out != nil {
			out.push(n.entries[idx])
		}
		idx++
	}
	c.stack = append(c.stack, frame{n: n, idx: idx})
}
