package crease

import (
	"fmt"

	"github.com/dmorth/creasetree/buffer"
)

// ID uniquely identifies one crease within a Map instance.
// IDs are issued in strictly increasing allocation order and never reused.
type ID uint64

// Kind discriminates the crease variants. Only folds exist today; the type
// leaves room for other collapsible-region kinds.
type Kind uint8

const (
	// KindFold is a foldable region.
	KindFold Kind = iota
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindFold:
		return "fold"
	default:
		return "unknown"
	}
}

// Crease describes one collapsible region: an anchor range plus an opaque
// host-supplied rendering payload and optional display metadata.
//
// A Crease is immutable once constructed; WithMetadata returns a new value.
type Crease struct {
	kind    Kind
	rng     buffer.AnchorRange
	payload any
	meta    *Metadata
}

// NewFold creates a fold crease over the given anchor range.
// The payload carries host presentation behavior (placeholder, toggle and
// trailer rendering); it is stored and returned verbatim, never inspected.
func NewFold(rng buffer.AnchorRange, payload any) Crease {
	return Crease{
		kind:    KindFold,
		rng:     rng,
		payload: payload,
	}
}

// Kind returns the crease variant.
func (c Crease) Kind() Kind {
	return c.kind
}

// Range returns the crease's anchor range.
func (c Crease) Range() buffer.AnchorRange {
	return c.rng
}

// Payload returns the host-supplied rendering payload, unmodified.
func (c Crease) Payload() any {
	return c.payload
}

// Metadata returns the crease's display metadata, if any was attached.
func (c Crease) Metadata() (Metadata, bool) {
	if c.meta == nil {
		return Metadata{}, false
	}
	return *c.meta, true
}

// WithMetadata returns a copy of the crease with the given metadata
// attached. The receiver is unchanged.
func (c Crease) WithMetadata(m Metadata) Crease {
	c.meta = &m
	return c
}

// String returns a human-readable representation of the crease.
func (c Crease) String() string {
	return fmt.Sprintf("Crease{%s}", c.kind)
}

// Metadata is serializable display metadata for a crease.
type Metadata struct {
	Icon  string `json:"icon"`
	Label string `json:"label"`
}

// Entry pairs a crease with its identity; it is the unit stored in the
// ordered sequence.
type Entry struct {
	ID     ID
	Crease Crease
}
