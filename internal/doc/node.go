// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package doc implements the document model for conversation notes.
package doc

import (
	"strings"
	"unicode/utf8"
)

// =============================================================================
// NODE TYPES
// =============================================================================

// NodeType identifies a node's type within the schema.
type NodeType string

const (
	// TypeDoc is the document root. Block content only.
	TypeDoc NodeType = "doc"

	// TypeParagraph is a plain text block. Inline content.
	TypeParagraph NodeType = "paragraph"

	// TypeHeading is a heading block with a level attribute. Inline content.
	TypeHeading NodeType = "heading"

	// TypeBulletList is an unordered list. Contains listItem children.
	TypeBulletList NodeType = "bulletList"

	// TypeListItem is a single list entry. Block content.
	TypeListItem NodeType = "listItem"

	// TypeBlockquote is a quoted region. Block content.
	TypeBlockquote NodeType = "blockquote"

	// TypeText is a run of text. Leaf.
	TypeText NodeType = "text"

	// TypeImage is an atomic inline image reference.
	TypeImage NodeType = "image"

	// TypeTaskChip is an atomic inline reference to a task or goal record.
	TypeTaskChip NodeType = "taskChip"

	// TypeAIBlock is a block-level container holding AI-suggested content
	// pending approval or rejection.
	TypeAIBlock NodeType = "aiBlock"
)

// =============================================================================
// NODE
// =============================================================================

// Node is a single node in the document tree.
//
// Exactly one of Text and Content is meaningful depending on the type: text
// nodes carry Text, container nodes carry Content, and atomic nodes carry
// neither. Attrs is nil for types without attributes.
type Node struct {
	Type    NodeType
	Attrs   Attrs
	Text    string
	Content []*Node
}

// NewDocument creates a document root with the given block children.
func NewDocument(blocks ...*Node) *Node {
	return &Node{Type: TypeDoc, Content: blocks}
}

// NewParagraph creates a paragraph with the given inline content.
func NewParagraph(inline ...*Node) *Node {
	return &Node{Type: TypeParagraph, Content: inline}
}

// NewHeading creates a heading of the given level (clamped to 1..3).
func NewHeading(level int, inline ...*Node) *Node {
	if level < 1 {
		level = 1
	}
	if level > 3 {
		level = 3
	}
	return &Node{Type: TypeHeading, Attrs: &HeadingAttrs{Level: level}, Content: inline}
}

// NewBulletList creates a bulletList with the given listItem children.
func NewBulletList(items ...*Node) *Node {
	return &Node{Type: TypeBulletList, Content: items}
}

// NewListItem creates a listItem with the given block children.
func NewListItem(blocks ...*Node) *Node {
	return &Node{Type: TypeListItem, Content: blocks}
}

// NewBlockquote creates a blockquote with the given block children.
func NewBlockquote(blocks ...*Node) *Node {
	return &Node{Type: TypeBlockquote, Content: blocks}
}

// NewText creates a text node. Empty text nodes are not valid in a document;
// callers must not insert them.
func NewText(text string) *Node {
	return &Node{Type: TypeText, Text: text}
}

// NewImage creates an atomic inline image node.
func NewImage(src, alt string) *Node {
	return &Node{Type: TypeImage, Attrs: &ImageAttrs{Src: src, Alt: alt}}
}

// NewTaskChip creates an atomic inline chip referencing a store record.
func NewTaskChip(attrs ChipAttrs) *Node {
	a := attrs
	return &Node{Type: TypeTaskChip, Attrs: &a}
}

// NewAIBlock creates an aiBlock container with the given attributes.
func NewAIBlock(attrs AIBlockAttrs) *Node {
	a := attrs
	return &Node{Type: TypeAIBlock, Attrs: &a}
}

// =============================================================================
// SIZE AND POSITION ACCOUNTING
// =============================================================================

// Size returns the node's size in position tokens.
//
// Text nodes count one token per rune. Atomic inline nodes count one token.
// Container nodes count an open and a close token around their content. The
// document root has no open/close tokens of its own; its size is the sum of
// its children.
func (n *Node) Size() int {
	switch n.Type {
	case TypeText:
		return utf8.RuneCountInString(n.Text)
	case TypeTaskChip, TypeImage:
		return 1
	case TypeDoc:
		return n.ContentSize()
	default:
		return 2 + n.ContentSize()
	}
}

// ContentSize returns the combined size of the node's children.
func (n *Node) ContentSize() int {
	total := 0
	for _, c := range n.Content {
		total += c.Size()
	}
	return total
}

// IsText reports whether the node is a text node.
func (n *Node) IsText() bool { return n.Type == TypeText }

// IsAtomic reports whether the node is an indivisible leaf that occupies a
// single position token.
func (n *Node) IsAtomic() bool { return n.Type == TypeTaskChip || n.Type == TypeImage }

// IsInline reports whether the node lives in inline content.
func (n *Node) IsInline() bool {
	return n.Type == TypeText || n.Type == TypeTaskChip || n.Type == TypeImage
}

// IsBlock reports whether the node is a block-level node.
func (n *Node) IsBlock() bool { return !n.IsInline() && n.Type != TypeDoc }

// =============================================================================
// TREE OPERATIONS
// =============================================================================

// Clone returns a deep copy of the node. Attribute values are copied so that
// mutating the clone never aliases the original.
func (n *Node) Clone() *Node {
	cp := &Node{Type: n.Type, Text: n.Text}
	if n.Attrs != nil {
		cp.Attrs = n.Attrs.clone()
	}
	if n.Content != nil {
		cp.Content = make([]*Node, len(n.Content))
		for i, c := range n.Content {
			cp.Content[i] = c.Clone()
		}
	}
	return cp
}

// TextContent returns the concatenated text of the node and its descendants.
// Atomic nodes contribute nothing.
func (n *Node) TextContent() string {
	if n.IsText() {
		return n.Text
	}
	var sb strings.Builder
	for _, c := range n.Content {
		sb.WriteString(c.TextContent())
	}
	return sb.String()
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int { return len(n.Content) }

// Child returns the i-th child, or nil if out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Content) {
		return nil
	}
	return n.Content[i]
}

// Walk calls fn for every node in the tree in document order, passing each
// node's absolute start position and its parent (nil for the root). Returning
// false from fn stops the walk.
func (n *Node) Walk(fn func(node *Node, pos int, parent *Node) bool) {
	n.walk(0, nil, fn)
}

func (n *Node) walk(pos int, parent *Node, fn func(*Node, int, *Node) bool) bool {
	if !fn(n, pos, parent) {
		return false
	}
	cur := pos
	if n.Type != TypeDoc {
		cur++ // open token
	}
	for _, c := range n.Content {
		if !c.walk(cur, n, fn) {
			return false
		}
		cur += c.Size()
	}
	return true
}
