// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package engine applies structural edits to documents with position mapping.
package engine

import (
	"unicode/utf8"

	"github.com/jeranaias/cadence-tui/internal/doc"
)

// =============================================================================
// SINGLE OPERATION APPLICATION
// =============================================================================

// applyOp mutates work in place and returns the position-mapping entry the
// operation introduced. Positions in op must already be mapped into work's
// coordinate space.
func applyOp(work *doc.Node, op Op) (MapEntry, error) {
	switch op.Kind {
	case KindInsertNode:
		return applyInsertNode(work, op)
	case KindInsertText:
		return applyInsertText(work, op)
	case KindDeleteRange:
		return applyDeleteRange(work, op)
	case KindReplaceRange:
		return applyReplaceRange(work, op)
	case KindSetBlockType:
		return applySetBlockType(work, op)
	default:
		return MapEntry{}, invalidPos(op.From, "unknown operation kind %d", op.Kind)
	}
}

// -----------------------------------------------------------------------------
// Insert node
// -----------------------------------------------------------------------------

func applyInsertNode(work *doc.Node, op Op) (MapEntry, error) {
	nodes := op.Nodes
	if nodes == nil && op.Node != nil {
		nodes = []*doc.Node{op.Node}
	}
	if len(nodes) == 0 {
		return MapEntry{}, invalidPos(op.From, "insert requires at least one node")
	}
	inline := nodes[0].IsInline()
	for _, n := range nodes {
		if n.IsInline() != inline {
			return MapEntry{}, invalidPos(op.From, "insert payload mixes inline and block nodes")
		}
	}

	r, err := doc.Resolve(work, op.From)
	if err != nil {
		return MapEntry{}, invalidPos(op.From, "%v", err)
	}

	if inline {
		if !r.InInline() {
			return MapEntry{}, invalidPos(op.From, "inline %s node requires inline context, parent is %s", nodes[0].Type, r.Parent.Type)
		}
		insertInline(r, nodes)
	} else {
		if r.InText || r.InInline() {
			return MapEntry{}, invalidPos(op.From, "block %s node may not be inserted into inline content", nodes[0].Type)
		}
		for _, n := range nodes {
			if !doc.CanContain(r.Parent.Type, n.Type) {
				return MapEntry{}, invalidPos(op.From, "%s may not contain %s", r.Parent.Type, n.Type)
			}
		}
		spliceChildren(r.Parent, r.Index, r.Index, nodes...)
	}

	size := 0
	for _, n := range nodes {
		size += n.Size()
	}
	return MapEntry{Pos: op.From, OldSize: 0, NewSize: size}, nil
}

// insertInline places inline nodes at a resolved inline position, splitting
// the text node under the position when needed.
func insertInline(r doc.Resolved, nodes []*doc.Node) {
	parent := r.Parent
	if r.InText {
		t := parent.Content[r.Index]
		runes := []rune(t.Text)
		before, after := string(runes[:r.TextOffset]), string(runes[r.TextOffset:])
		repl := append([]*doc.Node{doc.NewText(before)}, nodes...)
		repl = append(repl, doc.NewText(after))
		spliceChildren(parent, r.Index, r.Index+1, repl...)
	} else {
		spliceChildren(parent, r.Index, r.Index, nodes...)
	}
	normalizeInline(parent)
}

// -----------------------------------------------------------------------------
// Insert text
// -----------------------------------------------------------------------------

func applyInsertText(work *doc.Node, op Op) (MapEntry, error) {
	if op.Text == "" {
		return MapEntry{Pos: op.From}, nil
	}
	r, err := doc.Resolve(work, op.From)
	if err != nil {
		return MapEntry{}, invalidPos(op.From, "%v", err)
	}
	if !r.InInline() {
		return MapEntry{}, invalidPos(op.From, "text requires inline context, parent is %s", r.Parent.Type)
	}

	if r.InText {
		t := r.Parent.Content[r.Index]
		runes := []rune(t.Text)
		t.Text = string(runes[:r.TextOffset]) + op.Text + string(runes[r.TextOffset:])
	} else {
		spliceChildren(r.Parent, r.Index, r.Index, doc.NewText(op.Text))
		normalizeInline(r.Parent)
	}

	return MapEntry{Pos: op.From, OldSize: 0, NewSize: utf8.RuneCountInString(op.Text)}, nil
}

// -----------------------------------------------------------------------------
// Delete range
// -----------------------------------------------------------------------------

func applyDeleteRange(work *doc.Node, op Op) (MapEntry, error) {
	if op.To < op.From {
		return MapEntry{}, invalidPos(op.From, "range end %d precedes start", op.To)
	}
	if op.To == op.From {
		return MapEntry{Pos: op.From}, nil
	}
	rf, err := doc.Resolve(work, op.From)
	if err != nil {
		return MapEntry{}, invalidPos(op.From, "%v", err)
	}
	rt, err := doc.Resolve(work, op.To)
	if err != nil {
		return MapEntry{}, invalidPos(op.To, "%v", err)
	}
	if rf.Parent != rt.Parent {
		return MapEntry{}, invalidPos(op.From, "range must stay within a single parent node")
	}

	if rf.InInline() {
		deleteInlineSpan(rf.Parent, rf.ContentStart, op.From, op.To)
		return MapEntry{Pos: op.From, OldSize: op.To - op.From, NewSize: 0}, nil
	}

	// Block-level delete: the range must cover complete sibling nodes.
	if rf.InText || rt.InText {
		return MapEntry{}, invalidPos(op.From, "range must span complete sibling nodes")
	}
	spliceChildren(rf.Parent, rf.Index, rt.Index)
	return MapEntry{Pos: op.From, OldSize: op.To - op.From, NewSize: 0}, nil
}

// deleteInlineSpan removes the absolute span [from, to) from a text block's
// inline content. base is the absolute position of the content start.
func deleteInlineSpan(parent *doc.Node, base, from, to int) {
	var kept []*doc.Node
	cur := base
	for _, c := range parent.Content {
		start, end := cur, cur+c.Size()
		cur = end
		switch {
		case end <= from || start >= to:
			kept = append(kept, c)
		case c.IsText():
			runes := []rune(c.Text)
			cutFrom, cutTo := max(from-start, 0), min(to-start, len(runes))
			rest := string(runes[:cutFrom]) + string(runes[cutTo:])
			if rest != "" {
				kept = append(kept, doc.NewText(rest))
			}
		default:
			// Atomic node fully inside the span: dropped.
		}
	}
	parent.Content = kept
	normalizeInline(parent)
}

// -----------------------------------------------------------------------------
// Replace range
// -----------------------------------------------------------------------------

func applyReplaceRange(work *doc.Node, op Op) (MapEntry, error) {
	if op.To <= op.From {
		return MapEntry{}, invalidPos(op.From, "replace range must not be empty")
	}
	rf, err := doc.Resolve(work, op.From)
	if err != nil {
		return MapEntry{}, invalidPos(op.From, "%v", err)
	}
	rt, err := doc.Resolve(work, op.To)
	if err != nil {
		return MapEntry{}, invalidPos(op.To, "%v", err)
	}
	if rf.Parent != rt.Parent || rf.InText || rt.InText || rf.InInline() {
		// Partial node splits are not supported; this operation exists for
		// whole-sibling container replacement.
		return MapEntry{}, invalidPos(op.From, "range must span complete sibling nodes")
	}
	for _, n := range op.Nodes {
		if !doc.CanContain(rf.Parent.Type, n.Type) {
			return MapEntry{}, invalidPos(op.From, "%s may not contain %s", rf.Parent.Type, n.Type)
		}
	}

	spliceChildren(rf.Parent, rf.Index, rt.Index, op.Nodes...)

	newSize := 0
	for _, n := range op.Nodes {
		newSize += n.Size()
	}
	return MapEntry{Pos: op.From, OldSize: op.To - op.From, NewSize: newSize}, nil
}

// -----------------------------------------------------------------------------
// Set block type
// -----------------------------------------------------------------------------

func applySetBlockType(work *doc.Node, op Op) (MapEntry, error) {
	r, err := doc.Resolve(work, op.From)
	if err != nil {
		return MapEntry{}, invalidPos(op.From, "%v", err)
	}

	var block *doc.Node
	switch {
	case r.InInline():
		block = r.Parent
	case r.Index < r.Parent.ChildCount():
		block = r.Parent.Content[r.Index]
	}
	if block == nil || (block.Type != doc.TypeParagraph && block.Type != doc.TypeHeading) {
		return MapEntry{}, invalidPos(op.From, "no convertible text block at position")
	}

	parent, idx, blockPos, ok := locate(work, block)
	if !ok {
		return MapEntry{}, invalidPos(op.From, "block not reachable from root")
	}
	oldSize := block.Size()

	switch op.BlockType {
	case doc.TypeParagraph:
		block.Type = doc.TypeParagraph
		block.Attrs = nil
	case doc.TypeHeading:
		attrs := op.BlockAttrs
		if attrs == nil {
			attrs = &doc.HeadingAttrs{Level: 1}
		}
		block.Type = doc.TypeHeading
		block.Attrs = attrs
	case doc.TypeBulletList:
		if !doc.CanContain(parent.Type, doc.TypeBulletList) {
			return MapEntry{}, invalidPos(op.From, "%s may not contain bulletList", parent.Type)
		}
		block.Type = doc.TypeParagraph
		block.Attrs = nil
		parent.Content[idx] = doc.NewBulletList(doc.NewListItem(block))
	case doc.TypeBlockquote:
		if !doc.CanContain(parent.Type, doc.TypeBlockquote) {
			return MapEntry{}, invalidPos(op.From, "%s may not contain blockquote", parent.Type)
		}
		parent.Content[idx] = doc.NewBlockquote(block)
	default:
		return MapEntry{}, invalidPos(op.From, "cannot convert block to %s", op.BlockType)
	}

	return MapEntry{Pos: blockPos, OldSize: oldSize, NewSize: parent.Content[idx].Size()}, nil
}

// =============================================================================
// TREE HELPERS
// =============================================================================

// spliceChildren replaces parent.Content[from:to] with repl.
func spliceChildren(parent *doc.Node, from, to int, repl ...*doc.Node) {
	out := make([]*doc.Node, 0, len(parent.Content)-(to-from)+len(repl))
	out = append(out, parent.Content[:from]...)
	out = append(out, repl...)
	out = append(out, parent.Content[to:]...)
	parent.Content = out
}

// normalizeInline merges adjacent text nodes and drops empty ones so inline
// content stays in canonical form after edits.
func normalizeInline(parent *doc.Node) {
	var out []*doc.Node
	for _, c := range parent.Content {
		if c.IsText() {
			if c.Text == "" {
				continue
			}
			if len(out) > 0 && out[len(out)-1].IsText() {
				out[len(out)-1] = doc.NewText(out[len(out)-1].Text + c.Text)
				continue
			}
		}
		out = append(out, c)
	}
	parent.Content = out
}

// locate finds a node's parent, child index and absolute start position.
func locate(root, target *doc.Node) (parent *doc.Node, idx int, pos int, ok bool) {
	root.Walk(func(n *doc.Node, p int, par *doc.Node) bool {
		if n == target {
			parent, pos = par, p
			ok = par != nil
			return false
		}
		return true
	})
	if !ok {
		return nil, 0, 0, false
	}
	for i, c := range parent.Content {
		if c == target {
			idx = i
			return parent, idx, pos, true
		}
	}
	return nil, 0, 0, false
}
