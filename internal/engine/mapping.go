// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package engine applies structural edits to documents with position mapping.
package engine

// =============================================================================
// POSITION MAPPING
// =============================================================================

// MapEntry records one applied operation's effect on positions: the span of
// OldSize tokens starting at Pos was replaced by NewSize tokens.
type MapEntry struct {
	Pos     int
	OldSize int
	NewSize int
}

// Delta returns the size change the entry introduced.
func (e MapEntry) Delta() int { return e.NewSize - e.OldSize }

// Mapping accumulates the entries of a batch in application order. Mapping a
// position adjusts it for every earlier operation: positions past a changed
// span shift by its delta, positions inside a replaced span clamp to the end
// of the replacement.
type Mapping struct {
	entries []MapEntry
}

// Append records an applied operation's effect.
func (m *Mapping) Append(e MapEntry) {
	m.entries = append(m.entries, e)
}

// Map adjusts a position computed before the batch so it lands correctly in
// the document produced so far.
func (m *Mapping) Map(pos int) int {
	for _, e := range m.entries {
		switch {
		case pos <= e.Pos:
			// Before the changed span: unaffected.
		case pos >= e.Pos+e.OldSize:
			pos += e.Delta()
		default:
			// Inside the replaced span: clamp to the end of the replacement.
			pos = e.Pos + e.NewSize
		}
	}
	return pos
}

// Len returns the number of recorded entries.
func (m *Mapping) Len() int { return len(m.entries) }

// Entries returns a copy of the recorded entries.
func (m *Mapping) Entries() []MapEntry {
	return append([]MapEntry(nil), m.entries...)
}
