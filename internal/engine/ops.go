// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package engine applies structural edits to documents with position mapping.
package engine

import (
	"github.com/jeranaias/cadence-tui/internal/doc"
)

// =============================================================================
// OPERATIONS
// =============================================================================

// OpKind identifies the kind of edit an Op performs.
type OpKind int

const (
	// KindInsertNode inserts a single node at a position.
	KindInsertNode OpKind = iota
	// KindInsertText inserts text into inline content.
	KindInsertText
	// KindDeleteRange deletes the span [From, To).
	KindDeleteRange
	// KindReplaceRange replaces complete sibling nodes spanning [From, To).
	KindReplaceRange
	// KindSetBlockType changes the type of the text block containing From.
	KindSetBlockType
)

// Op is one edit operation. Positions refer to the document as it stood when
// the operation was built; ApplyBatch maps them forward through earlier
// operations in the same batch.
type Op struct {
	Kind OpKind
	From int
	To   int

	// Node is the payload for KindInsertNode.
	Node *doc.Node

	// Nodes is the payload for KindReplaceRange.
	Nodes []*doc.Node

	// Text is the payload for KindInsertText.
	Text string

	// BlockType and BlockAttrs are the payload for KindSetBlockType.
	BlockType  doc.NodeType
	BlockAttrs doc.Attrs

	// ExpectType, when set, re-validates node identity (by position and
	// type) immediately before a delete or replace applies. A mismatch is a
	// stale target.
	ExpectType doc.NodeType
}

// InsertNode builds an operation inserting node at pos.
func InsertNode(pos int, node *doc.Node) Op {
	return Op{Kind: KindInsertNode, From: pos, Node: node}
}

// InsertNodes builds an operation inserting several sibling nodes at pos in
// order. All nodes must share the same inline/block class.
func InsertNodes(pos int, nodes ...*doc.Node) Op {
	return Op{Kind: KindInsertNode, From: pos, Nodes: nodes}
}

// InsertText builds an operation inserting text into inline content at pos.
func InsertText(pos int, text string) Op {
	return Op{Kind: KindInsertText, From: pos, Text: text}
}

// DeleteRange builds an operation deleting the span [from, to).
func DeleteRange(from, to int) Op {
	return Op{Kind: KindDeleteRange, From: from, To: to}
}

// ReplaceRange builds an operation replacing the complete sibling nodes
// spanning [from, to) with the given nodes.
func ReplaceRange(from, to int, nodes ...*doc.Node) Op {
	return Op{Kind: KindReplaceRange, From: from, To: to, Nodes: nodes}
}

// SetBlockType builds an operation converting the text block containing pos
// to the given type. Heading and paragraph conversions mutate in place;
// bulletList and blockquote wrap the block.
func SetBlockType(pos int, t doc.NodeType, attrs doc.Attrs) Op {
	return Op{Kind: KindSetBlockType, From: pos, BlockType: t, BlockAttrs: attrs}
}

// Expecting returns a copy of the operation that re-validates its target
// starts at From with the given node type before applying.
func (o Op) Expecting(t doc.NodeType) Op {
	o.ExpectType = t
	return o
}
