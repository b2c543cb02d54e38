// Package crease tracks collapsible text regions ("creases") anchored to
// positions in a buffer, and answers point and range queries against them
// as the buffer is edited.
//
// Creases are stored in a persistent ordered tree keyed by anchor range.
// Mutations build a new version of the tree that shares all unaffected
// structure with the previous one, so a Snapshot captured by a reader is
// immutable forever: later Insert/Remove calls on the Map never alter an
// already-captured snapshot's contents.
//
// Basic usage:
//
//	buf := buffer.NewFromString("line1\nline2\nline3\nline4\nline5")
//	snap := buf.Snapshot()
//
//	m := crease.New()
//	ids := m.Insert([]crease.Crease{
//		crease.NewFold(buffer.NewAnchorRange(
//			snap.AnchorBefore(buffer.Point{Line: 1}),
//			snap.AnchorAfter(buffer.Point{Line: 1, Column: 5}),
//		), nil),
//	}, snap)
//
//	cs := m.Snapshot()
//	if c, ok := cs.QueryLine(1, snap); ok {
//		_ = c // the crease starting on line 1
//	}
//	m.Remove(ids, snap)
//
// Concurrency:
//
// The Map is a single-writer structure: callers must serialize Insert and
// Remove. Snapshots (both crease and buffer snapshots) are immutable and
// may be read from any number of goroutines without synchronization.
package crease
