// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package doc implements the document model for conversation notes.
//
// A document is an ordered tree of typed nodes. Block nodes (paragraph,
// heading, bulletList, blockquote, aiBlock) structure the document; inline
// nodes (text, image, taskChip) make up the content of text blocks. Two node
// types are application-aware: taskChip references a task or goal record in
// the application store by id, and aiBlock holds AI-suggested content pending
// approval or rejection.
//
// # Positions
//
// Document positions are flat integers counting token boundaries from the
// start of the document: entering or leaving a container costs 1, every text
// rune costs 1, and atomic inline nodes (taskChip, image) cost 1. Position 0
// is before the first block. All structural edits address the document
// through these positions; see the engine package for mutation.
//
// # Key Types
//
//   - Node: a document tree node with type, attributes and content
//   - Attrs: tagged-union attribute shapes, one concrete type per node type
//   - Schema placement rules: Validate, CanContain
//   - Serialization: MarshalJSON/UnmarshalJSON round-trip all node types
//
// # Usage
//
// Build and serialize a document:
//
//	d := doc.NewDocument(
//	    doc.NewHeading(1, doc.NewText("Notes")),
//	    doc.NewParagraph(doc.NewText("Discussed roadmap.")),
//	)
//	data, err := doc.Serialize(d)
//
// Load persisted content, falling back to the default template:
//
//	d, err := doc.Deserialize(data)
//	if err != nil {
//	    d = doc.DefaultTemplate()
//	}
package doc
