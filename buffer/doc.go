// Package buffer provides a versioned text buffer with edit-stable anchors.
// It backs the crease package: creases are anchored to buffer positions and
// must survive edits to the underlying text.
//
// The buffer package provides:
//
//   - Thread-safe read/write access via sync.RWMutex
//   - Immutable snapshots for concurrent access
//   - Coordinate conversion between byte offsets and line/column positions
//   - Anchors: logical positions that follow their surrounding text as the
//     buffer is edited
//   - Revision tracking so anchors created against one snapshot can be
//     resolved against any later snapshot of the same buffer
//
// Basic usage:
//
//	buf := buffer.NewFromString("line1\nline2\nline3")
//	snap := buf.Snapshot()
//	a := snap.AnchorBefore(buffer.Point{Line: 1, Column: 0})
//
//	buf.Insert(0, "line0\n")
//	snap2 := buf.Snapshot()
//	p := a.ToPoint(snap2) // (2:0) — the anchor followed its text
//
// Position Types:
//
//   - ByteOffset: raw byte position in the buffer
//   - Point: line and column position (0-indexed, column in bytes)
//
// Anchors:
//
// An anchor records the position it was created at together with the buffer
// revision it was created against. Resolving an anchor against a later
// snapshot replays the edits between the two revisions, shifting the
// position past insertions and deletions that happened before it. An anchor
// whose referenced text has been deleted resolves to a clamped position and
// reports itself invalid.
//
// Anchors are only meaningful relative to snapshots of the buffer that
// created them. Resolving an anchor against a snapshot of an unrelated
// buffer reports the anchor invalid.
//
// Thread Safety:
//
// All Buffer methods are thread-safe. Snapshots are immutable and may be
// shared freely across goroutines without synchronization.
package buffer
