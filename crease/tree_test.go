package crease

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dmorth/creasetree/buffer"
)

// testBuffer builds a buffer with the given number of lines, named
// "line1".."lineN".
func testBuffer(lines int) *buffer.Buffer {
	var sb strings.Builder
	for i := 0; i < lines; i++ {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "line%d", i+1)
	}
	return buffer.NewFromString(sb.String())
}

// foldOn creates a fold crease spanning columns 0..5 of one line.
func foldOn(snap *buffer.Snapshot, line uint32) Crease {
	return foldSpan(snap, line, line)
}

// foldSpan creates a fold crease from the start of startLine to column 5 of
// endLine.
func foldSpan(snap *buffer.Snapshot, startLine, endLine uint32) Crease {
	return NewFold(buffer.NewAnchorRange(
		snap.AnchorBefore(buffer.Point{Line: startLine}),
		snap.AnchorAfter(buffer.Point{Line: endLine, Column: 5}),
	), nil)
}

// buildTree pushes n single-line entries with sequential IDs.
func buildTree(snap *buffer.Snapshot, n int) tree {
	var t tree
	for i := 0; i < n; i++ {
		t.push(Entry{ID: ID(i + 1), Crease: foldOn(snap, uint32(i))})
	}
	return t
}

func collectEntries(t tree, snap *buffer.Snapshot) []Entry {
	var out []Entry
	c := t.newCursor(snap)
	for c.next(); c.item() != nil; c.next() {
		out = append(out, *c.item())
	}
	return out
}

// validateNode checks the structural invariants of a subtree: node sizes,
// uniform child heights, and summaries equal to the last entry's range.
func validateNode(t *testing.T, n *node) {
	t.Helper()
	if n.isLeaf() {
		if len(n.entries) == 0 || len(n.entries) > maxEntries {
			t.Fatalf("leaf has %d entries", len(n.entries))
		}
		if n.last != n.entries[len(n.entries)-1].Crease.Range() {
			t.Fatal("leaf summary is not the last entry's range")
		}
		return
	}
	if len(n.children) == 0 || len(n.children) > maxChildren {
		t.Fatalf("internal node has %d children", len(n.children))
	}
	for _, child := range n.children {
		if child.height != n.height-1 {
			t.Fatalf("child height %d under node height %d", child.height, n.height)
		}
		validateNode(t, child)
	}
	if n.last != n.children[len(n.children)-1].last {
		t.Fatal("internal summary is not the last child's summary")
	}
}

func collectNodes(n *node, set map[*node]bool) {
	set[n] = true
	for _, child := range n.children {
		collectNodes(child, set)
	}
}

func rightmostLeaf(n *node) *node {
	for !n.isLeaf() {
		n = n.children[len(n.children)-1]
	}
	return n
}

func TestTreePushKeepsOrderAndInvariants(t *testing.T) {
	snap := testBuffer(200).Snapshot()

	for _, n := range []int{1, 7, 8, 9, 64, 65, 200} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			tr := buildTree(snap, n)
			validateNode(t, tr.root)

			entries := collectEntries(tr, snap)
			if len(entries) != n {
				t.Fatalf("got %d entries, want %d", len(entries), n)
			}
			for i, e := range entries {
				if e.ID != ID(i+1) {
					t.Fatalf("entry %d has ID %d, want %d", i, e.ID, i+1)
				}
			}
		})
	}
}

func TestTreeAppendSharesSubtrees(t *testing.T) {
	snap := testBuffer(100).Snapshot()

	t1 := buildTree(snap, 64)
	t2 := t1 // O(1) handle copy
	t2.push(Entry{ID: 65, Crease: foldOn(snap, 64)})

	if got := len(collectEntries(t1, snap)); got != 64 {
		t.Fatalf("original tree has %d entries after push on copy, want 64", got)
	}
	if got := len(collectEntries(t2, snap)); got != 65 {
		t.Fatalf("new tree has %d entries, want 65", got)
	}
	validateNode(t, t2.root)

	// Every node of the old version except the rightmost-edge path must be
	// shared with the new version.
	oldNodes := map[*node]bool{}
	newNodes := map[*node]bool{}
	collectNodes(t1.root, oldNodes)
	collectNodes(t2.root, newNodes)

	edge := map[*node]bool{}
	for n := t1.root; ; n = n.children[len(n.children)-1] {
		edge[n] = true
		if n.isLeaf() {
			break
		}
	}
	for n := range oldNodes {
		if !edge[n] && !newNodes[n] {
			t.Fatal("off-edge node of the old version is not shared with the new version")
		}
	}
}

func TestCursorSliceAndSuffix(t *testing.T) {
	snap := testBuffer(120).Snapshot()
	tr := buildTree(snap, 100)

	cur := tr.newCursor(snap)
	target := rangeTarget(foldOn(snap, 30).Range())

	prefix := cur.slice(target, buffer.BiasLeft)
	got := collectEntries(prefix, snap)
	if len(got) != 30 {
		t.Fatalf("slice returned %d entries, want 30", len(got))
	}
	for i, e := range got {
		if e.ID != ID(i+1) {
			t.Fatalf("sliced entry %d has ID %d, want %d", i, e.ID, i+1)
		}
	}
	if prefix.root != nil {
		validateNode(t, prefix.root)
	}

	if it := cur.item(); it == nil || it.ID != 31 {
		t.Fatalf("cursor item after slice = %v, want ID 31", it)
	}

	rest := cur.suffix()
	got = collectEntries(rest, snap)
	if len(got) != 70 {
		t.Fatalf("suffix returned %d entries, want 70", len(got))
	}
	if got[0].ID != 31 || got[69].ID != 100 {
		t.Fatalf("suffix spans IDs %d..%d, want 31..100", got[0].ID, got[69].ID)
	}

	if it := cur.item(); it != nil {
		t.Fatal("cursor should be exhausted after suffix")
	}
}

func TestCursorSliceBiasRight(t *testing.T) {
	snap := testBuffer(60).Snapshot()
	tr := buildTree(snap, 50)

	cur := tr.newCursor(snap)
	prefix := cur.slice(rangeTarget(foldOn(snap, 20).Range()), buffer.BiasRight)

	// Right bias consumes the equal entry too.
	if got := len(collectEntries(prefix, snap)); got != 21 {
		t.Fatalf("slice returned %d entries, want 21", got)
	}
	if it := cur.item(); it == nil || it.ID != 22 {
		t.Fatalf("cursor item = %v, want ID 22", it)
	}
}

func TestCursorContinuedSlice(t *testing.T) {
	snap := testBuffer(120).Snapshot()
	tr := buildTree(snap, 100)

	cur := tr.newCursor(snap)
	first := cur.slice(rangeTarget(foldOn(snap, 30).Range()), buffer.BiasLeft)
	second := cur.slice(rangeTarget(foldOn(snap, 60).Range()), buffer.BiasLeft)

	if got := len(collectEntries(first, snap)); got != 30 {
		t.Fatalf("first slice has %d entries, want 30", got)
	}
	got := collectEntries(second, snap)
	if len(got) != 30 {
		t.Fatalf("second slice has %d entries, want 30", len(got))
	}
	if got[0].ID != 31 || got[29].ID != 60 {
		t.Fatalf("second slice spans IDs %d..%d, want 31..60", got[0].ID, got[29].ID)
	}
}

func TestCursorNeverRewinds(t *testing.T) {
	snap := testBuffer(120).Snapshot()
	tr := buildTree(snap, 100)

	cur := tr.newCursor(snap)
	cur.seek(rangeTarget(foldOn(snap, 50).Range()), buffer.BiasLeft)
	if it := cur.item(); it == nil || it.ID != 51 {
		t.Fatalf("cursor item = %v, want ID 51", it)
	}

	// An earlier target slices nothing and leaves the cursor in place.
	earlier := cur.slice(rangeTarget(foldOn(snap, 10).Range()), buffer.BiasLeft)
	if !earlier.isEmpty() {
		t.Fatal("slice to an earlier target should be empty")
	}
	if it := cur.item(); it == nil || it.ID != 51 {
		t.Fatalf("cursor item = %v, want ID 51", it)
	}
}

func TestCursorSliceBeyondEndSharesRoot(t *testing.T) {
	snap := testBuffer(120).Snapshot()
	tr := buildTree(snap, 100)

	cur := tr.newCursor(snap)
	out := cur.slice(rangeTarget(foldOn(snap, 110).Range()), buffer.BiasLeft)

	if out.root != tr.root {
		t.Error("slicing past the end should share the source root wholesale")
	}
	if it := cur.item(); it != nil {
		t.Error("cursor should be exhausted")
	}
	if !cur.suffix().isEmpty() {
		t.Error("suffix after exhausting slice should be empty")
	}
}

func TestEmptyTreeCursor(t *testing.T) {
	snap := testBuffer(5).Snapshot()
	var tr tree

	cur := tr.newCursor(snap)
	cur.next()
	if cur.item() != nil {
		t.Error("empty tree cursor should have no item")
	}

	cur = tr.newCursor(snap)
	if !cur.slice(rangeTarget(foldOn(snap, 2).Range()), buffer.BiasLeft).isEmpty() {
		t.Error("slice of empty tree should be empty")
	}
	if !cur.suffix().isEmpty() {
		t.Error("suffix of empty tree should be empty")
	}
}
