// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package doc implements the document model for conversation notes.
package doc

import (
	"strings"
)

// =============================================================================
// TREE SCANNING
// =============================================================================

// Found pairs a node with its absolute start position at scan time. Positions
// go stale after any edit; see engine.Mapping for adjusting them.
type Found struct {
	Node *Node
	Pos  int
}

// FindPlaceholders returns every top-level paragraph whose text contains the
// given marker, in document order. These paragraphs serve as insertion
// targets for generated content.
func FindPlaceholders(root *Node, marker string) []Found {
	var out []Found
	if marker == "" {
		return out
	}
	root.Walk(func(n *Node, pos int, parent *Node) bool {
		if n.Type == TypeParagraph && parent != nil && parent.Type == TypeDoc {
			if strings.Contains(n.TextContent(), marker) {
				out = append(out, Found{Node: n, Pos: pos})
			}
		}
		return true
	})
	return out
}

// FindAIBlocks returns every aiBlock node in document order.
func FindAIBlocks(root *Node) []Found {
	var out []Found
	root.Walk(func(n *Node, pos int, parent *Node) bool {
		if n.Type == TypeAIBlock {
			out = append(out, Found{Node: n, Pos: pos})
		}
		return true
	})
	return out
}

// FindAIBlock locates the aiBlock with the given blockId, or nil.
func FindAIBlock(root *Node, blockID string) *Found {
	var found *Found
	root.Walk(func(n *Node, pos int, parent *Node) bool {
		if n.Type == TypeAIBlock {
			if a, ok := n.Attrs.(*AIBlockAttrs); ok && a.BlockID == blockID {
				found = &Found{Node: n, Pos: pos}
				return false
			}
		}
		return true
	})
	return found
}

// FindChips returns every taskChip node in document order.
func FindChips(root *Node) []Found {
	var out []Found
	root.Walk(func(n *Node, pos int, parent *Node) bool {
		if n.Type == TypeTaskChip {
			out = append(out, Found{Node: n, Pos: pos})
		}
		return true
	})
	return out
}

// NodeStartingAt returns the node whose open token (or first rune, for text)
// sits exactly at pos, or nil. Used to re-validate a scanned target by
// position and type immediately before replacing it.
func NodeStartingAt(root *Node, pos int) *Node {
	var found *Node
	root.Walk(func(n *Node, p int, parent *Node) bool {
		if p == pos && n != root {
			found = n
			return false
		}
		// No node can start past pos once we have walked beyond it.
		return p <= pos
	})
	return found
}
