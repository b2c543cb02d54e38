package buffer

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Snapshot provides a read-only view of a buffer at a specific revision.
// It is safe for concurrent access and will not change even if the original
// buffer is modified.
//
// A snapshot resolves and compares anchors created against it or against
// any earlier snapshot of the same buffer.
type Snapshot struct {
	text       string
	revision   RevisionID
	history    []appliedEdit
	lineage    uuid.UUID
	lineStarts []ByteOffset
}

func newSnapshot(text string, revision RevisionID, history []appliedEdit, lineage uuid.UUID) *Snapshot {
	lineStarts := make([]ByteOffset, 1, strings.Count(text, "\n")+1)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lineStarts = append(lineStarts, ByteOffset(i)+1)
		}
	}

	return &Snapshot{
		text:       text,
		revision:   revision,
		history:    history[:len(history):len(history)],
		lineage:    lineage,
		lineStarts: lineStarts,
	}
}

// Text returns the full snapshot content.
func (s *Snapshot) Text() string {
	return s.text
}

// Len returns the total byte length of the snapshot.
func (s *Snapshot) Len() ByteOffset {
	return ByteOffset(len(s.text))
}

// IsEmpty returns true if the snapshot is empty.
func (s *Snapshot) IsEmpty() bool {
	return len(s.text) == 0
}

// Revision returns the revision this snapshot was captured at.
func (s *Snapshot) Revision() RevisionID {
	return s.revision
}

// LineCount returns the number of lines.
func (s *Snapshot) LineCount() uint32 {
	return uint32(len(s.lineStarts))
}

// LineText returns the text of a specific line (without newline).
// Out-of-range lines return "".
func (s *Snapshot) LineText(line uint32) string {
	if line >= s.LineCount() {
		return ""
	}
	start := s.lineStarts[line]
	end := s.lineEnd(line)
	return s.text[start:end]
}

// LineStartOffset returns the byte offset of the start of a line.
func (s *Snapshot) LineStartOffset(line uint32) ByteOffset {
	if line >= s.LineCount() {
		return s.Len()
	}
	return s.lineStarts[line]
}

// LineLen returns the length of a specific line in bytes (without newline).
func (s *Snapshot) LineLen(line uint32) int {
	if line >= s.LineCount() {
		return 0
	}
	return int(s.lineEnd(line) - s.lineStarts[line])
}

// lineEnd returns the offset just past the last content byte of the line,
// excluding the trailing newline.
func (s *Snapshot) lineEnd(line uint32) ByteOffset {
	if int(line)+1 < len(s.lineStarts) {
		return s.lineStarts[line+1] - 1
	}
	return s.Len()
}

// OffsetToPoint converts a byte offset to line/column.
// The offset is clamped to the snapshot bounds.
func (s *Snapshot) OffsetToPoint(offset ByteOffset) Point {
	offset = s.clampOffset(offset)
	line := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > offset
	}) - 1
	return Point{
		Line:   uint32(line),
		Column: uint32(offset - s.lineStarts[line]),
	}
}

// PointToOffset converts line/column to a byte offset.
// The point is clamped to the snapshot bounds; columns past the end of a
// line clamp to the line end.
func (s *Snapshot) PointToOffset(p Point) ByteOffset {
	if p.Line >= s.LineCount() {
		return s.Len()
	}
	start := s.lineStarts[p.Line]
	off := start + ByteOffset(p.Column)
	if end := s.lineEnd(p.Line); off > end {
		return end
	}
	return off
}

// AnchorBefore returns a left-biased anchor at the given point: it stays
// before any text later inserted at that position.
func (s *Snapshot) AnchorBefore(p Point) Anchor {
	return s.AnchorAt(s.PointToOffset(p), BiasLeft)
}

// AnchorAfter returns a right-biased anchor at the given point: it follows
// text later inserted at that position.
func (s *Snapshot) AnchorAfter(p Point) Anchor {
	return s.AnchorAt(s.PointToOffset(p), BiasRight)
}

// AnchorAt returns an anchor at the given byte offset with the given bias.
// The offset is clamped to the snapshot bounds.
func (s *Snapshot) AnchorAt(offset ByteOffset, bias Bias) Anchor {
	return Anchor{
		offset:   s.clampOffset(offset),
		bias:     bias,
		revision: s.revision,
		lineage:  s.lineage,
	}
}

// editsSince returns the recorded edits applied after the given revision,
// up to and including this snapshot's revision, in application order.
func (s *Snapshot) editsSince(rev RevisionID) []appliedEdit {
	i := sort.Search(len(s.history), func(i int) bool {
		return s.history[i].revision > rev
	})
	return s.history[i:]
}

func (s *Snapshot) clampOffset(offset ByteOffset) ByteOffset {
	return clamp(offset, 0, s.Len())
}
