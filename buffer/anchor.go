package buffer

import (
	"fmt"

	"github.com/google/uuid"
)

// Bias controls which side of a position an anchor (or a tree cursor seek)
// gravitates toward when text is inserted exactly at that position.
type Bias uint8

const (
	// BiasLeft keeps the position before text inserted at it.
	BiasLeft Bias = iota

	// BiasRight moves the position past text inserted at it.
	BiasRight
)

// String returns a human-readable representation of the bias.
func (b Bias) String() string {
	if b == BiasLeft {
		return "left"
	}
	return "right"
}

// Anchor is a logical, edit-stable reference to a position in a buffer.
// It records the byte offset at the revision it was created against; the
// current position is recovered by replaying the edits between that
// revision and the snapshot it is resolved under.
//
// Anchors are only comparable relative to a snapshot of the buffer that
// created them. Resolving against a snapshot of a different buffer reports
// the anchor invalid.
type Anchor struct {
	offset   ByteOffset
	bias     Bias
	revision RevisionID
	lineage  uuid.UUID
}

// Bias returns the anchor's gravity.
func (a Anchor) Bias() Bias {
	return a.bias
}

// String returns a human-readable representation of the anchor.
func (a Anchor) String() string {
	return fmt.Sprintf("anchor(%d@r%d %s)", a.offset, a.revision, a.bias)
}

// resolve replays the snapshot's edit history onto the anchor's recorded
// offset. It returns the position in the snapshot's coordinates and whether
// the anchor still denotes live content.
func (a Anchor) resolve(s *Snapshot) (ByteOffset, bool) {
	if a.lineage != s.lineage {
		return 0, false
	}

	off := a.offset
	valid := true
	for _, e := range s.editsSince(a.revision) {
		switch {
		case off < e.start:
			// Edit is entirely after the anchor.
		case off == e.start:
			if e.oldEnd > e.start {
				// The content the anchor referenced was deleted or
				// replaced; clamp to the edit start.
				valid = false
			} else if a.bias == BiasRight {
				// Insertion exactly at the anchor.
				off += e.newLen
			}
		case off < e.oldEnd:
			// Anchor was inside the replaced region.
			valid = false
			off = e.start
		default:
			off += e.delta()
		}
	}
	return off, valid
}

// ToOffset resolves the anchor to a byte offset under the given snapshot.
// Invalid anchors resolve to the clamped position of the text they used to
// reference.
func (a Anchor) ToOffset(s *Snapshot) ByteOffset {
	off, _ := a.resolve(s)
	return s.clampOffset(off)
}

// ToPoint resolves the anchor to a line/column position under the given
// snapshot.
func (a Anchor) ToPoint(s *Snapshot) Point {
	return s.OffsetToPoint(a.ToOffset(s))
}

// IsValid reports whether the anchor still denotes live content under the
// given snapshot. An anchor becomes invalid when the text it referenced is
// deleted or replaced.
func (a Anchor) IsValid(s *Snapshot) bool {
	_, valid := a.resolve(s)
	return valid
}

// Compare totally orders two anchors under the given snapshot.
// Returns -1, 0, or 1. Anchors at the same resolved offset are ordered by
// bias: left before right.
func (a Anchor) Compare(other Anchor, s *Snapshot) int {
	ao := a.ToOffset(s)
	bo := other.ToOffset(s)
	switch {
	case ao < bo:
		return -1
	case ao > bo:
		return 1
	case a.bias < other.bias:
		return -1
	case a.bias > other.bias:
		return 1
	}
	return 0
}

// AnchorRange is a pair of anchors delimiting a region of the buffer.
type AnchorRange struct {
	Start Anchor
	End   Anchor
}

// NewAnchorRange creates an AnchorRange from start and end anchors.
func NewAnchorRange(start, end Anchor) AnchorRange {
	return AnchorRange{Start: start, End: end}
}

// Compare totally orders two anchor ranges under the given snapshot:
// by start ascending, then by end descending, so that a range containing
// another sorts before it.
func (r AnchorRange) Compare(other AnchorRange, s *Snapshot) int {
	if c := r.Start.Compare(other.Start, s); c != 0 {
		return c
	}
	return other.End.Compare(r.End, s)
}

// ToPointRange resolves both anchors to line/column positions.
func (r AnchorRange) ToPointRange(s *Snapshot) PointRange {
	return PointRange{
		Start: r.Start.ToPoint(s),
		End:   r.End.ToPoint(s),
	}
}
