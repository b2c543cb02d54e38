package buffer

import (
	"sync"

	"github.com/google/uuid"
)

// Buffer is a mutable text buffer with revision tracking.
// Every edit produces a new revision and is recorded in an append-only
// history so that anchors created against older snapshots can be resolved
// against newer ones.
//
// All methods are thread-safe. For consistent multi-read access use
// Snapshot().
type Buffer struct {
	mu       sync.RWMutex
	text     string
	revision RevisionID
	history  []appliedEdit
	lineage  uuid.UUID
}

// New creates an empty buffer.
func New() *Buffer {
	return NewFromString("")
}

// NewFromString creates a buffer with the given initial text.
func NewFromString(text string) *Buffer {
	return &Buffer{
		text:    text,
		lineage: uuid.New(),
	}
}

// Insert inserts text at the given byte offset.
// The offset is clamped to the buffer bounds.
func (b *Buffer) Insert(offset ByteOffset, text string) {
	b.Replace(Range{Start: offset, End: offset}, text)
}

// Delete removes the text in [start, end).
// The range is clamped to the buffer bounds.
func (b *Buffer) Delete(start, end ByteOffset) {
	b.Replace(Range{Start: start, End: end}, "")
}

// Replace replaces the text in the given range with new text.
// A no-op edit (empty range, empty text) does not create a revision.
func (b *Buffer) Replace(r Range, newText string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	start := clamp(r.Start, 0, ByteOffset(len(b.text)))
	end := clamp(r.End, start, ByteOffset(len(b.text)))
	if start == end && newText == "" {
		return
	}

	b.text = b.text[:start] + newText + b.text[end:]
	b.revision++
	b.history = append(b.history, appliedEdit{
		revision: b.revision,
		start:    start,
		oldEnd:   end,
		newLen:   ByteOffset(len(newText)),
	})
}

// Apply applies a batch of edits in order.
// Each edit is interpreted against the text as left by the previous one.
func (b *Buffer) Apply(edits ...Edit) {
	for _, e := range edits {
		if e.IsNoOp() {
			continue
		}
		b.Replace(e.Range, e.NewText)
	}
}

// Snapshot returns an immutable view of the buffer's current state.
// The snapshot never changes, even as the buffer is edited, and is safe to
// share across goroutines without synchronization.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return newSnapshot(b.text, b.revision, b.history, b.lineage)
}

// Revision returns the buffer's current revision.
func (b *Buffer) Revision() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// Len returns the buffer length in bytes.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(len(b.text))
}

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

func clamp(v, lo, hi ByteOffset) ByteOffset {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
