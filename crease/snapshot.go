package crease

import "github.com/dmorth/creasetree/buffer"

// Snapshot is an immutable view of one version of the crease sequence.
// The zero value is an empty snapshot. Copying a Snapshot is O(1); the
// underlying tree is shared and never mutated, so a captured snapshot keeps
// reporting the same crease set no matter what the Map does afterwards.
//
// All queries take the buffer snapshot that defines anchor positions; it
// should be from the same buffer lineage the creases were anchored against.
type Snapshot struct {
	entries tree
}

// QueryLine returns the first crease whose start anchor resolves to exactly
// the given line. Creases whose start anchor has been invalidated by edits
// are skipped silently.
func (s Snapshot) QueryLine(line uint32, snap *buffer.Snapshot) (Crease, bool) {
	start := snap.AnchorBefore(buffer.Point{Line: line})
	c := s.entries.newCursor(snap)
	c.seek(anchorTarget(start), buffer.BiasLeft)
	for it := c.item(); it != nil; it = c.item() {
		startLine := it.Crease.Range().Start.ToPoint(snap).Line
		switch {
		case startLine < line:
			c.next()
		case startLine == line:
			if it.Crease.Range().Start.IsValid(snap) {
				return it.Crease, true
			}
			c.next()
		default:
			return Crease{}, false
		}
	}
	return Crease{}, false
}

// CreasesInRange returns a lazy iterator over the creases contained in the
// line range [start, end): a crease is produced when its resolved start
// line is >= start and its resolved end line is < end. A crease whose end
// line lands exactly on end is skipped without being produced.
//
// The iterator is forward-only and not restartable; call CreasesInRange
// again for a fresh traversal.
func (s Snapshot) CreasesInRange(start, end uint32, snap *buffer.Snapshot) *RangeIterator {
	c := s.entries.newCursor(snap)
	c.seek(anchorTarget(snap.AnchorBefore(buffer.Point{Line: start})), buffer.BiasLeft)
	return &RangeIterator{
		cursor: c,
		snap:   snap,
		start:  start,
		end:    end,
	}
}

// RangeIterator produces the creases contained in a line range, in anchor
// order. See Snapshot.CreasesInRange.
type RangeIterator struct {
	cursor *cursor
	snap   *buffer.Snapshot
	start  uint32
	end    uint32
}

// Next returns the next contained crease, or false when the traversal is
// done.
func (it *RangeIterator) Next() (Crease, bool) {
	for e := it.cursor.item(); e != nil; e = it.cursor.item() {
		it.cursor.next()
		r := e.Crease.Range().ToPointRange(it.snap)
		if r.End.Line > it.end {
			continue
		}
		if r.Start.Line >= it.start && r.End.Line < it.end {
			return e.Crease, true
		}
	}
	return Crease{}, false
}

// Collect drains the iterator into a slice.
func (it *RangeIterator) Collect() []Crease {
	var creases []Crease
	for c, ok := it.Next(); ok; c, ok = it.Next() {
		creases = append(creases, c)
	}
	return creases
}

// ItemOffsets pairs a crease identity with its resolved coordinate range.
type ItemOffsets struct {
	ID    ID
	Range buffer.PointRange
}

// ItemsWithOffsets returns every crease in sequence order with its anchors
// resolved to line/column ranges under the given buffer snapshot.
func (s Snapshot) ItemsWithOffsets(snap *buffer.Snapshot) []ItemOffsets {
	c := s.entries.newCursor(snap)
	var results []ItemOffsets

	c.next()
	for it := c.item(); it != nil; it = c.item() {
		results = append(results, ItemOffsets{
			ID:    it.ID,
			Range: it.Crease.Range().ToPointRange(snap),
		})
		c.next()
	}
	return results
}
