package crease

import (
	"sort"

	"github.com/dmorth/creasetree/buffer"
)

// Map owns the current crease set: it allocates identities, tracks the
// reverse identity-to-range index, and publishes a new Snapshot after every
// mutation. Snapshots captured earlier are never altered.
//
// Map is a single-writer structure: the caller must serialize Insert and
// Remove. Reading previously captured Snapshots needs no synchronization.
type Map struct {
	snapshot  Snapshot
	nextID    ID
	idToRange map[ID]buffer.AnchorRange
}

// New creates an empty crease map.
func New() *Map {
	return &Map{
		idToRange: make(map[ID]buffer.AnchorRange),
	}
}

// Snapshot returns the current crease snapshot. O(1); the result shares
// structure with the map and stays valid forever.
func (m *Map) Snapshot() Snapshot {
	return m.snapshot
}

// Len returns the number of creases currently tracked.
func (m *Map) Len() int {
	return len(m.idToRange)
}

// Insert adds the given creases and returns their identities, positionally
// matching the input. The input must already be sorted ascending by anchor
// range under the given snapshot; this is not validated, and unsorted input
// yields a structurally valid but misordered sequence.
//
// Insert always succeeds; empty input returns an empty identity list and
// leaves the sequence unchanged.
func (m *Map) Insert(creases []Crease, snap *buffer.Snapshot) []ID {
	ids := make([]ID, 0, len(creases))

	var entries tree
	cur := m.snapshot.entries.newCursor(snap)
	for _, c := range creases {
		rng := c.Range()
		entries.append(cur.slice(rangeTarget(rng), buffer.BiasLeft))

		m.nextID++
		id := m.nextID
		m.idToRange[id] = rng
		entries.push(Entry{ID: id, Crease: c})
		ids = append(ids, id)
	}
	entries.append(cur.suffix())

	m.snapshot = Snapshot{entries: entries}
	return ids
}

// Remove deletes the creases with the given identities. Identities that are
// not present are ignored. Among creases with coincident ranges, exactly
// the entry carrying each requested identity is removed.
func (m *Map) Remove(ids []ID, snap *buffer.Snapshot) {
	type removal struct {
		id  ID
		rng buffer.AnchorRange
	}
	removals := make([]removal, 0, len(ids))
	for _, id := range ids {
		if rng, ok := m.idToRange[id]; ok {
			removals = append(removals, removal{id: id, rng: rng})
			delete(m.idToRange, id)
		}
	}
	// Order by range; same-range entries are stored newest-first, so ties
	// break by descending identity to match the sequence order.
	sort.Slice(removals, func(i, j int) bool {
		if c := removals[i].rng.Compare(removals[j].rng, snap); c != 0 {
			return c < 0
		}
		return removals[i].id > removals[j].id
	})

	var entries tree
	cur := m.snapshot.entries.newCursor(snap)
	for _, rm := range removals {
		entries.append(cur.slice(rangeTarget(rm.rng), buffer.BiasLeft))
		for it := cur.item(); it != nil; it = cur.item() {
			e := *it
			cur.next()
			if e.ID == rm.id {
				break
			}
			entries.push(e)
		}
	}
	entries.append(cur.suffix())

	m.snapshot = Snapshot{entries: entries}
}
