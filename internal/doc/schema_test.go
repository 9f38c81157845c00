// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package doc

import (
	"testing"
)

// =============================================================================
// PLACEMENT RULE TESTS
// =============================================================================

func TestCanContain(t *testing.T) {
	tests := []struct {
		parent NodeType
		child  NodeType
		want   bool
	}{
		{TypeDoc, TypeParagraph, true},
		{TypeDoc, TypeHeading, true},
		{TypeDoc, TypeBulletList, true},
		{TypeDoc, TypeBlockquote, true},
		{TypeDoc, TypeAIBlock, true},
		{TypeDoc, TypeListItem, false},
		{TypeDoc, TypeText, false},
		{TypeParagraph, TypeText, true},
		{TypeParagraph, TypeTaskChip, true},
		{TypeParagraph, TypeImage, true},
		{TypeParagraph, TypeParagraph, false},
		{TypeBulletList, TypeListItem, true},
		{TypeBulletList, TypeParagraph, false},
		{TypeListItem, TypeParagraph, true},
		{TypeListItem, TypeBulletList, true},
		{TypeBlockquote, TypeParagraph, true},
		// aiBlock stays top-level and never nests.
		{TypeBlockquote, TypeAIBlock, false},
		{TypeAIBlock, TypeAIBlock, false},
		{TypeAIBlock, TypeParagraph, true},
		{TypeText, TypeText, false},
		{"bogus", TypeText, false},
		{TypeDoc, "bogus", false},
	}
	for _, tt := range tests {
		if got := CanContain(tt.parent, tt.child); got != tt.want {
			t.Errorf("CanContain(%s, %s) = %v, want %v", tt.parent, tt.child, got, tt.want)
		}
	}
}

func TestKnownType(t *testing.T) {
	if !KnownType(TypeTaskChip) {
		t.Error("taskChip should be known")
	}
	if KnownType("carousel") {
		t.Error("unknown type should not be known")
	}
}

// =============================================================================
// VALIDATE TESTS
// =============================================================================

func TestValidateAcceptsFullDocument(t *testing.T) {
	d := NewDocument(
		NewHeading(2, NewText("Agenda")),
		NewParagraph(
			NewText("see "),
			NewTaskChip(ChipAttrs{TaskID: "t1", Title: "Ship", ChipType: ChipTask}),
		),
		NewBulletList(NewListItem(NewParagraph(NewText("point")))),
		NewBlockquote(NewParagraph(NewText("quoted"))),
		NewAIBlock(AIBlockAttrs{BlockID: "b1", Status: BlockPending}),
	)
	if err := Validate(d); err != nil {
		t.Errorf("Validate failed on a legal document: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name string
		root *Node
	}{
		{"nil document", nil},
		{"non-doc root", NewParagraph(NewText("x"))},
		{"empty text node", NewDocument(NewParagraph(NewText("")))},
		{"unknown type", NewDocument(&Node{Type: "carousel"})},
		{"text at document level", NewDocument(NewText("loose"))},
		{"listItem outside a list", NewDocument(NewListItem(NewParagraph()))},
		{"heading without attrs", NewDocument(&Node{Type: TypeHeading})},
		{"chip with children", NewDocument(NewParagraph(&Node{
			Type:    TypeTaskChip,
			Attrs:   &ChipAttrs{TaskID: "t", Title: "x", ChipType: ChipTask},
			Content: []*Node{NewText("no")},
		}))},
		{"chip missing record id", NewDocument(NewParagraph(
			NewTaskChip(ChipAttrs{Title: "x", ChipType: ChipTask}),
		))},
		{"nested aiBlock", NewDocument(&Node{
			Type:    TypeAIBlock,
			Attrs:   &AIBlockAttrs{BlockID: "outer", Status: BlockPending},
			Content: []*Node{NewAIBlock(AIBlockAttrs{BlockID: "inner", Status: BlockPending})},
		})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate(tt.root); err == nil {
				t.Error("Validate should reject this tree")
			}
		})
	}
}

// =============================================================================
// ATTRIBUTE VALIDATION TESTS
// =============================================================================

func TestHeadingAttrsValidate(t *testing.T) {
	for _, level := range []int{1, 2, 3} {
		if err := (&HeadingAttrs{Level: level}).Validate(); err != nil {
			t.Errorf("level %d should validate: %v", level, err)
		}
	}
	for _, level := range []int{0, 4, -1} {
		if err := (&HeadingAttrs{Level: level}).Validate(); err == nil {
			t.Errorf("level %d should be rejected", level)
		}
	}
}

func TestChipAttrsValidate(t *testing.T) {
	good := ChipAttrs{TaskID: "t1", Title: "x", ChipType: ChipGoal}
	if err := good.Validate(); err != nil {
		t.Errorf("valid chip attrs rejected: %v", err)
	}
	if err := (&ChipAttrs{Title: "x", ChipType: ChipTask}).Validate(); err == nil {
		t.Error("empty taskId should be rejected")
	}
	if err := (&ChipAttrs{TaskID: "t1", ChipType: "reminder"}).Validate(); err == nil {
		t.Error("unknown chip type should be rejected")
	}
}

func TestImageAttrsValidate(t *testing.T) {
	if err := (&ImageAttrs{Src: "a.png"}).Validate(); err != nil {
		t.Errorf("valid image attrs rejected: %v", err)
	}
	if err := (&ImageAttrs{}).Validate(); err == nil {
		t.Error("empty src should be rejected")
	}
}

func TestAIBlockAttrsValidate(t *testing.T) {
	good := AIBlockAttrs{
		BlockID: "b1",
		Status:  BlockPending,
		Goals:   []SuggestedGoal{{ID: "g1", Title: "Grow"}},
		Tasks:   []SuggestedTask{{ID: "t1", Title: "Ship"}},
	}
	if err := good.Validate(); err != nil {
		t.Errorf("valid aiBlock attrs rejected: %v", err)
	}

	tests := []struct {
		name  string
		attrs AIBlockAttrs
	}{
		{"missing block id", AIBlockAttrs{Status: BlockPending}},
		{"bad status", AIBlockAttrs{BlockID: "b1", Status: "maybe"}},
		{"goal without title", AIBlockAttrs{BlockID: "b1", Status: BlockPending, Goals: []SuggestedGoal{{ID: "g1"}}}},
		{"task without title", AIBlockAttrs{BlockID: "b1", Status: BlockPending, Tasks: []SuggestedTask{{ID: "t1"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.attrs.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
