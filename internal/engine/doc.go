// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package engine applies structural edits to documents with position mapping.
//
// All document mutation goes through this package. An edit batch is an
// ordered list of operations whose positions were computed against the
// document as it stood before the batch; the engine maps each later
// operation's positions forward through the size changes introduced by
// earlier operations, so multiple structural edits found by one tree scan
// land correctly without re-scanning.
//
// # Key Types
//
//   - Op: one edit operation (insert, insert-text, delete, replace, set-block-type)
//   - Mapping: the (position, size-delta) records accumulated by a batch
//   - Policy: AllOrNothing or SkipStale commit behavior
//
// # Usage
//
// Replace every placeholder found by a single scan:
//
//	var ops []engine.Op
//	for _, f := range doc.FindPlaceholders(d, doc.PlaceholderMarker) {
//	    ops = append(ops,
//	        engine.ReplaceRange(f.Pos, f.Pos+f.Node.Size(), block).Expecting(doc.TypeParagraph))
//	}
//	next, _, err := engine.ApplyBatch(d, ops, engine.SkipStale)
//
// Batches commit atomically: the input document is never mutated; either the
// new state is returned or the error identifies the first failing operation.
package engine
