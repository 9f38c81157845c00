// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package doc

import (
	"testing"
)

// positionDoc builds the fixture used across resolution tests:
//
//	heading "AB"      tokens [0,4)  text at 1..2
//	paragraph "cd"    tokens [4,8)  text at 5..6
func positionDoc() *Node {
	return NewDocument(
		NewHeading(1, NewText("AB")),
		NewParagraph(NewText("cd")),
	)
}

// =============================================================================
// RESOLVE TESTS
// =============================================================================

func TestResolveBoundaries(t *testing.T) {
	d := positionDoc()

	tests := []struct {
		name       string
		pos        int
		parentType NodeType
		index      int
		inText     bool
		textOffset int
	}{
		{"document start", 0, TypeDoc, 0, false, 0},
		{"heading content start", 1, TypeHeading, 0, false, 0},
		{"inside heading text", 2, TypeHeading, 0, true, 1},
		{"heading content end", 3, TypeHeading, 1, false, 0},
		{"between blocks", 4, TypeDoc, 1, false, 0},
		{"paragraph content start", 5, TypeParagraph, 0, false, 0},
		{"document end", 8, TypeDoc, 2, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Resolve(d, tt.pos)
			if err != nil {
				t.Fatalf("Resolve(%d) failed: %v", tt.pos, err)
			}
			if r.Parent.Type != tt.parentType {
				t.Errorf("parent = %s, want %s", r.Parent.Type, tt.parentType)
			}
			if r.Index != tt.index {
				t.Errorf("index = %d, want %d", r.Index, tt.index)
			}
			if r.InText != tt.inText || r.TextOffset != tt.textOffset {
				t.Errorf("inText/offset = %v/%d, want %v/%d", r.InText, r.TextOffset, tt.inText, tt.textOffset)
			}
			if r.Pos != tt.pos {
				t.Errorf("Pos = %d, want %d", r.Pos, tt.pos)
			}
		})
	}
}

func TestResolveErrors(t *testing.T) {
	d := positionDoc()

	if _, err := Resolve(d, -1); err == nil {
		t.Error("negative position should fail")
	}
	if _, err := Resolve(d, d.Size()+1); err == nil {
		t.Error("position past the end should fail")
	}
	if _, err := Resolve(NewParagraph(), 0); err == nil {
		t.Error("resolving against a non-root node should fail")
	}
	if _, err := Resolve(nil, 0); err == nil {
		t.Error("nil root should fail")
	}
}

func TestResolveAtomicNode(t *testing.T) {
	chip := NewTaskChip(ChipAttrs{TaskID: "t1", Title: "x", ChipType: ChipTask})
	d := NewDocument(NewParagraph(NewText("a"), chip, NewText("b")))

	// Position 2 is the boundary before the chip, not inside it.
	r, err := Resolve(d, 2)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if r.InText || r.Index != 1 {
		t.Errorf("resolved = index %d inText %v, want boundary before chip", r.Index, r.InText)
	}
}

func TestResolvedHelpers(t *testing.T) {
	d := positionDoc()

	r, err := Resolve(d, 5)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !r.InInline() {
		t.Error("paragraph content position should be inline")
	}
	if r.ContentStart != 5 {
		t.Errorf("ContentStart = %d, want 5", r.ContentStart)
	}
	if got := r.AbsIndexPos(1); got != 7 {
		t.Errorf("AbsIndexPos(1) = %d, want 7", got)
	}

	r, err = Resolve(d, 4)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if r.InInline() {
		t.Error("document-level boundary should not be inline")
	}
}

// =============================================================================
// BLOCK LOOKUP TESTS
// =============================================================================

func TestBlockAt(t *testing.T) {
	d := positionDoc()

	block, pos, err := BlockAt(d, 5)
	if err != nil {
		t.Fatalf("BlockAt failed: %v", err)
	}
	if block.Type != TypeParagraph || pos != 4 {
		t.Errorf("BlockAt(5) = %s at %d, want paragraph at 4", block.Type, pos)
	}

	block, pos, err = BlockAt(d, 2)
	if err != nil {
		t.Fatalf("BlockAt failed: %v", err)
	}
	if block.Type != TypeHeading || pos != 0 {
		t.Errorf("BlockAt(2) = %s at %d, want heading at 0", block.Type, pos)
	}

	if _, _, err := BlockAt(d, 4); err == nil {
		t.Error("document-level boundary has no containing text block")
	}
}

// =============================================================================
// TEXT BEFORE TESTS
// =============================================================================

func TestTextBefore(t *testing.T) {
	chip := NewTaskChip(ChipAttrs{TaskID: "t1", Title: "x", ChipType: ChipTask})
	d := NewDocument(NewParagraph(NewText("hello "), chip, NewText("wor")))

	tests := []struct {
		name string
		pos  int
		max  int
		want string
	}{
		{"mid text", 4, 20, "hel"},
		{"capped to max runes", 4, 2, "el"},
		{"content start", 1, 20, ""},
		{"stops at atomic node", 11, 20, "wor"},
		{"block boundary yields empty", 0, 20, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TextBefore(d, tt.pos, tt.max); got != tt.want {
				t.Errorf("TextBefore(%d, %d) = %q, want %q", tt.pos, tt.max, got, tt.want)
			}
		})
	}
}

func TestTextBeforeSpansTextSiblings(t *testing.T) {
	// Adjacent text nodes accumulate across the sibling boundary.
	d := NewDocument(&Node{Type: TypeParagraph, Content: []*Node{
		NewText("ab"), NewText("cd"),
	}})

	if got := TextBefore(d, 5, 20); got != "abcd" {
		t.Errorf("TextBefore = %q, want abcd", got)
	}
}
