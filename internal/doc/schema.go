// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package doc implements the document model for conversation notes.
package doc

import (
	"fmt"
)

// =============================================================================
// SCHEMA
// =============================================================================

// ContentKind describes what a node type may contain.
type ContentKind int

const (
	// ContentNone marks leaf and atomic nodes.
	ContentNone ContentKind = iota
	// ContentInline marks text blocks (text, taskChip, image children).
	ContentInline
	// ContentBlock marks containers of block nodes.
	ContentBlock
	// ContentListItems marks bulletList (listItem children only).
	ContentListItems
)

// typeSpec is the schema entry for one node type.
type typeSpec struct {
	content  ContentKind
	hasAttrs bool
}

// schema is the fixed node vocabulary. There is a single schema for the
// application, so it lives here as package state rather than being threaded
// through every call.
var schema = map[NodeType]typeSpec{
	TypeDoc:        {content: ContentBlock},
	TypeParagraph:  {content: ContentInline},
	TypeHeading:    {content: ContentInline, hasAttrs: true},
	TypeBulletList: {content: ContentListItems},
	TypeListItem:   {content: ContentBlock},
	TypeBlockquote: {content: ContentBlock},
	TypeAIBlock:    {content: ContentBlock, hasAttrs: true},
	TypeText:       {content: ContentNone},
	TypeImage:      {content: ContentNone, hasAttrs: true},
	TypeTaskChip:   {content: ContentNone, hasAttrs: true},
}

// KnownType reports whether t is part of the schema.
func KnownType(t NodeType) bool {
	_, ok := schema[t]
	return ok
}

// ContentKindOf returns what the given node type may contain.
func ContentKindOf(t NodeType) ContentKind {
	return schema[t].content
}

// CanContain reports whether a node of type parent may directly contain a
// node of type child.
func CanContain(parent, child NodeType) bool {
	ps, ok := schema[parent]
	if !ok || !KnownType(child) {
		return false
	}
	switch ps.content {
	case ContentInline:
		return child == TypeText || child == TypeTaskChip || child == TypeImage
	case ContentBlock:
		// aiBlock may not nest inside another aiBlock.
		if parent == TypeAIBlock && child == TypeAIBlock {
			return false
		}
		switch child {
		case TypeParagraph, TypeHeading, TypeBulletList, TypeBlockquote:
			return true
		case TypeAIBlock:
			// aiBlock is a top-level construct only.
			return parent == TypeDoc
		default:
			return false
		}
	case ContentListItems:
		return child == TypeListItem
	default:
		return false
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the whole tree against the schema: known types, legal
// parent/child pairings, attribute shapes, and non-empty text nodes. The tree
// must always validate after every supported operation.
func Validate(root *Node) error {
	if root == nil {
		return fmt.Errorf("document is nil")
	}
	if root.Type != TypeDoc {
		return fmt.Errorf("root node must be %q, got %q", TypeDoc, root.Type)
	}
	return validateNode(root)
}

func validateNode(n *Node) error {
	spec, ok := schema[n.Type]
	if !ok {
		return fmt.Errorf("unknown node type %q", n.Type)
	}

	if spec.hasAttrs {
		if n.Attrs == nil {
			return fmt.Errorf("%s node is missing attributes", n.Type)
		}
		if err := n.Attrs.Validate(); err != nil {
			return fmt.Errorf("%s attributes: %w", n.Type, err)
		}
	}

	if n.Type == TypeText {
		if n.Text == "" {
			return fmt.Errorf("text node must not be empty")
		}
		if len(n.Content) > 0 {
			return fmt.Errorf("text node must not have children")
		}
		return nil
	}

	if spec.content == ContentNone {
		if len(n.Content) > 0 {
			return fmt.Errorf("%s node must not have children", n.Type)
		}
		return nil
	}

	for _, c := range n.Content {
		if !CanContain(n.Type, c.Type) {
			return fmt.Errorf("%s node may not contain %s", n.Type, c.Type)
		}
		if err := validateNode(c); err != nil {
			return err
		}
	}
	return nil
}
