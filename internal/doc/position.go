// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package doc implements the document model for conversation notes.
package doc

import (
	"fmt"
)

// =============================================================================
// POSITION RESOLUTION
// =============================================================================

// Resolved describes where a flat document position falls in the tree.
//
// A position is either a boundary between the children of a container
// (InText false; the position sits before Parent.Content[Index], or at the
// end of the content when Index == len(Parent.Content)), or strictly inside
// a text node (InText true; TextOffset runes into Parent.Content[Index]).
type Resolved struct {
	// Pos is the original flat position.
	Pos int

	// Parent is the deepest container holding the position.
	Parent *Node

	// Index is the child index within Parent at or containing the position.
	Index int

	// InText is true when the position falls strictly inside a text node.
	InText bool

	// TextOffset is the rune offset into the text node when InText is set.
	TextOffset int

	// ContentStart is the absolute position of the start of Parent's content.
	ContentStart int
}

// Resolve maps a flat position to a location in the tree. Positions outside
// [0, root.Size()] or falling on no legal token boundary are an error.
func Resolve(root *Node, pos int) (Resolved, error) {
	if root == nil || root.Type != TypeDoc {
		return Resolved{}, fmt.Errorf("resolve: not a document root")
	}
	if pos < 0 || pos > root.Size() {
		return Resolved{}, fmt.Errorf("resolve: position %d outside document of size %d", pos, root.Size())
	}
	r, err := resolveIn(root, pos, 0)
	if err != nil {
		return Resolved{}, err
	}
	r.Pos = pos
	return r, nil
}

// resolveIn resolves rel within parent's content, where base is the absolute
// position of the start of that content.
func resolveIn(parent *Node, rel, base int) (Resolved, error) {
	cur := 0
	for i, c := range parent.Content {
		if rel == cur {
			return Resolved{Parent: parent, Index: i, ContentStart: base}, nil
		}
		sz := c.Size()
		if rel < cur+sz {
			if c.IsText() {
				return Resolved{
					Parent:       parent,
					Index:        i,
					InText:       true,
					TextOffset:   rel - cur,
					ContentStart: base,
				}, nil
			}
			// Descend past the container's open token.
			return resolveIn(c, rel-cur-1, base+cur+1)
		}
		cur += sz
	}
	if rel == cur {
		return Resolved{Parent: parent, Index: len(parent.Content), ContentStart: base}, nil
	}
	return Resolved{}, fmt.Errorf("resolve: position does not fall on a token boundary")
}

// AbsIndexPos returns the absolute position of the boundary before child
// index i in the resolved parent's content.
func (r Resolved) AbsIndexPos(i int) int {
	pos := r.ContentStart
	for j := 0; j < i && j < len(r.Parent.Content); j++ {
		pos += r.Parent.Content[j].Size()
	}
	return pos
}

// InInline reports whether the position sits in inline content.
func (r Resolved) InInline() bool {
	return ContentKindOf(r.Parent.Type) == ContentInline
}

// =============================================================================
// BLOCK LOOKUP
// =============================================================================

// BlockAt returns the text block whose inline content contains pos, along
// with the block's absolute start position (its open token). Positions at
// block-level boundaries have no containing text block.
func BlockAt(root *Node, pos int) (*Node, int, error) {
	r, err := Resolve(root, pos)
	if err != nil {
		return nil, 0, err
	}
	if !r.InInline() {
		return nil, 0, fmt.Errorf("position %d is not inside a text block", pos)
	}
	return r.Parent, r.ContentStart - 1, nil
}

// =============================================================================
// CURSOR-ADJACENT TEXT
// =============================================================================

// TextBefore returns the text immediately before pos within the current text
// block, up to max runes. Accumulation stops at the block start or at the
// first atomic inline node. Positions outside inline content yield "".
func TextBefore(root *Node, pos, max int) string {
	r, err := Resolve(root, pos)
	if err != nil || !r.InInline() {
		return ""
	}

	var runes []rune
	idx, off := r.Index, 0
	if r.InText {
		off = r.TextOffset
	}

	// Partial text node under the cursor.
	if r.InText {
		t := []rune(r.Parent.Content[idx].Text)
		runes = append(runes, t[:off]...)
		idx--
	} else {
		idx--
	}

	// Whole preceding siblings while they are text.
	for idx >= 0 {
		c := r.Parent.Content[idx]
		if !c.IsText() {
			break
		}
		runes = append([]rune(c.Text), runes...)
		idx--
	}

	if len(runes) > max {
		runes = runes[len(runes)-max:]
	}
	return string(runes)
}
