// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package engine applies structural edits to documents with position mapping.
package engine

import (
	"errors"

	"github.com/jeranaias/cadence-tui/internal/doc"
)

// =============================================================================
// BATCH APPLICATION
// =============================================================================

// Policy controls how a batch reacts to a failing operation.
type Policy int

const (
	// AllOrNothing aborts the whole batch on the first failing operation.
	// Used for single logical edits (a slash-command commit is one delete
	// plus one insert; neither may apply without the other).
	AllOrNothing Policy = iota

	// SkipStale skips operations whose target went stale or whose position
	// no longer validates, and continues with the rest. Used for independent
	// placeholder replacements found by one scan.
	SkipStale
)

// ApplyBatch applies the operations in order against a clone of d and
// returns the new document plus the accumulated position mapping. The input
// document is never mutated: either every surviving operation applies and
// the new state is returned, or the error identifies the first failure and
// the prior state stands.
//
// Operation positions are taken to be snapshot positions (computed against d
// before the batch) and are mapped forward through all earlier-applied
// operations before use. Callers that fabricate operations in reverse
// document order get identity mappings, which is why simple sequential
// deletes need no mapping at all.
func ApplyBatch(d *doc.Node, ops []Op, policy Policy) (*doc.Node, *Mapping, error) {
	work := d.Clone()
	mapping := &Mapping{}

	for i, op := range ops {
		mapped := op
		mapped.From = mapping.Map(op.From)
		if op.Kind == KindDeleteRange || op.Kind == KindReplaceRange {
			mapped.To = mapping.Map(op.To)
		}

		// Re-validate node identity immediately before destructive edits
		// whose target was found by an earlier scan.
		if mapped.ExpectType != "" {
			target := doc.NodeStartingAt(work, mapped.From)
			if target == nil || target.Type != mapped.ExpectType {
				if policy == SkipStale {
					continue
				}
				return nil, nil, &BatchApplyError{Index: i, Err: ErrStaleTarget}
			}
		}

		entry, err := applyOp(work, mapped)
		if err != nil {
			if policy == SkipStale && errors.Is(err, &InvalidPositionError{}) {
				continue
			}
			return nil, nil, &BatchApplyError{Index: i, Err: err}
		}
		mapping.Append(entry)
	}

	if err := doc.Validate(work); err != nil {
		return nil, nil, &BatchApplyError{Index: len(ops), Err: err}
	}
	return work, mapping, nil
}

// Apply is the single-operation convenience form of ApplyBatch.
func Apply(d *doc.Node, op Op) (*doc.Node, MapEntry, error) {
	next, mapping, err := ApplyBatch(d, []Op{op}, AllOrNothing)
	if err != nil {
		return nil, MapEntry{}, err
	}
	entries := mapping.Entries()
	if len(entries) == 0 {
		return next, MapEntry{Pos: op.From}, nil
	}
	return next, entries[0], nil
}
