// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"errors"
	"testing"

	"github.com/jeranaias/cadence-tui/internal/doc"
)

// =============================================================================
// MAPPING TESTS
// =============================================================================

func TestMappingMap(t *testing.T) {
	m := &Mapping{}
	m.Append(MapEntry{Pos: 5, OldSize: 2, NewSize: 4})

	tests := []struct {
		name string
		pos  int
		want int
	}{
		{"before span", 4, 4},
		{"at span start", 5, 5},
		{"inside span clamps to replacement end", 6, 9},
		{"at span end", 7, 9},
		{"after span", 10, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Map(tt.pos); got != tt.want {
				t.Errorf("Map(%d) = %d, want %d", tt.pos, got, tt.want)
			}
		})
	}
}

func TestMappingChained(t *testing.T) {
	// Two insertions, each shifting later positions.
	m := &Mapping{}
	m.Append(MapEntry{Pos: 2, OldSize: 0, NewSize: 3})
	m.Append(MapEntry{Pos: 10, OldSize: 0, NewSize: 1})

	if got := m.Map(2); got != 2 {
		t.Errorf("Map(2) = %d, want 2 (insertion point unaffected)", got)
	}
	if got := m.Map(6); got != 9 {
		t.Errorf("Map(6) = %d, want 9", got)
	}
	// Past both insertions: shifted by both deltas. Note the second entry's
	// Pos is already in post-first-op coordinates.
	if got := m.Map(12); got != 16 {
		t.Errorf("Map(12) = %d, want 16", got)
	}
}

func TestMappingEntriesCopy(t *testing.T) {
	m := &Mapping{}
	m.Append(MapEntry{Pos: 1, OldSize: 0, NewSize: 2})

	entries := m.Entries()
	entries[0].Pos = 99

	if m.Entries()[0].Pos != 1 {
		t.Error("Entries should return a copy, not the backing slice")
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}
}

func TestMapEntryDelta(t *testing.T) {
	e := MapEntry{Pos: 0, OldSize: 3, NewSize: 7}
	if e.Delta() != 4 {
		t.Errorf("Delta = %d, want 4", e.Delta())
	}
}

// =============================================================================
// INSERT TEXT TESTS
// =============================================================================

func TestInsertTextMidWord(t *testing.T) {
	d := doc.NewDocument(doc.NewParagraph(doc.NewText("hello")))

	next, entry, err := Apply(d, InsertText(3, "XY"))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got := next.TextContent(); got != "heXYllo" {
		t.Errorf("TextContent = %q, want %q", got, "heXYllo")
	}
	if entry.NewSize != 2 || entry.Pos != 3 {
		t.Errorf("entry = %+v, want Pos 3 NewSize 2", entry)
	}
	// Input document must not be mutated.
	if d.TextContent() != "hello" {
		t.Errorf("input document mutated to %q", d.TextContent())
	}
}

func TestInsertTextUnicode(t *testing.T) {
	d := doc.NewDocument(doc.NewParagraph(doc.NewText("日本")))

	next, entry, err := Apply(d, InsertText(2, "語"))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got := next.TextContent(); got != "日語本" {
		t.Errorf("TextContent = %q, want %q", got, "日語本")
	}
	if entry.NewSize != 1 {
		t.Errorf("NewSize = %d, want 1 (rune count, not bytes)", entry.NewSize)
	}
}

func TestInsertTextEmptyIsNoOp(t *testing.T) {
	d := doc.NewDocument(doc.NewParagraph(doc.NewText("ab")))

	next, entry, err := Apply(d, InsertText(1, ""))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if next.TextContent() != "ab" {
		t.Errorf("TextContent = %q, want unchanged", next.TextContent())
	}
	if entry.NewSize != 0 {
		t.Errorf("NewSize = %d, want 0", entry.NewSize)
	}
}

func TestInsertTextIntoEmptyParagraph(t *testing.T) {
	d := doc.NewDocument(doc.NewParagraph())

	next, _, err := Apply(d, InsertText(1, "first"))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if next.TextContent() != "first" {
		t.Errorf("TextContent = %q, want %q", next.TextContent(), "first")
	}
}

func TestInsertTextAtBlockBoundaryFails(t *testing.T) {
	d := doc.NewDocument(doc.NewParagraph(doc.NewText("ab")))

	// Position 0 is the boundary before the paragraph, not inline content.
	_, _, err := Apply(d, InsertText(0, "x"))
	if err == nil {
		t.Fatal("expected error inserting text at block boundary")
	}
	var ipe *InvalidPositionError
	if !errors.As(err, &ipe) {
		t.Errorf("error = %v, want InvalidPositionError", err)
	}
}

func TestInsertTextOutOfRange(t *testing.T) {
	d := doc.NewDocument(doc.NewParagraph(doc.NewText("ab")))

	_, _, err := Apply(d, InsertText(99, "x"))
	if err == nil {
		t.Fatal("expected error for out-of-range position")
	}
	var bae *BatchApplyError
	if !errors.As(err, &bae) {
		t.Errorf("error = %v, want BatchApplyError", err)
	}
}

// =============================================================================
// INSERT NODE TESTS
// =============================================================================

func TestInsertChipSplitsText(t *testing.T) {
	d := doc.NewDocument(doc.NewParagraph(doc.NewText("ab")))
	chip := doc.NewTaskChip(doc.ChipAttrs{TaskID: "t1", Title: "Ship it", ChipType: doc.ChipTask})

	// Position 2 is between 'a' and 'b', inside the text node.
	next, entry, err := Apply(d, InsertNode(2, chip))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if entry.NewSize != 1 {
		t.Errorf("NewSize = %d, want 1 (atomic node)", entry.NewSize)
	}

	para := next.Child(0)
	if para.ChildCount() != 3 {
		t.Fatalf("paragraph has %d children, want 3 (text, chip, text)", para.ChildCount())
	}
	if para.Child(0).Text != "a" || para.Child(2).Text != "b" {
		t.Errorf("text split = %q / %q, want a / b", para.Child(0).Text, para.Child(2).Text)
	}
	if para.Child(1).Type != doc.TypeTaskChip {
		t.Errorf("middle child = %s, want taskChip", para.Child(1).Type)
	}

	found := doc.FindChips(next)
	if len(found) != 1 || found[0].Pos != 2 {
		t.Errorf("FindChips = %+v, want one chip at pos 2", found)
	}
}

func TestInsertBlockAtDocumentEnd(t *testing.T) {
	d := doc.NewDocument(doc.NewParagraph(doc.NewText("ab")))

	next, _, err := Apply(d, InsertNode(d.Size(), doc.NewParagraph(doc.NewText("cd"))))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if next.ChildCount() != 2 {
		t.Fatalf("document has %d blocks, want 2", next.ChildCount())
	}
	if next.Child(1).TextContent() != "cd" {
		t.Errorf("second block = %q, want cd", next.Child(1).TextContent())
	}
}

func TestInsertBlockInsideTextFails(t *testing.T) {
	d := doc.NewDocument(doc.NewParagraph(doc.NewText("ab")))

	_, _, err := Apply(d, InsertNode(2, doc.NewParagraph(doc.NewText("x"))))
	if err == nil {
		t.Fatal("expected error inserting block into inline content")
	}
}

func TestInsertNodesMixedClassFails(t *testing.T) {
	d := doc.NewDocument(doc.NewParagraph(doc.NewText("ab")))

	op := InsertNodes(0, doc.NewParagraph(), doc.NewText("x"))
	_, _, err := Apply(d, op)
	if err == nil {
		t.Fatal("expected error for mixed inline/block payload")
	}
}

func TestInsertListItemIntoDocFails(t *testing.T) {
	d := doc.NewDocument(doc.NewParagraph(doc.NewText("ab")))

	// listItem is only legal inside bulletList.
	_, _, err := Apply(d, InsertNode(4, doc.NewListItem(doc.NewParagraph(doc.NewText("x")))))
	if err == nil {
		t.Fatal("expected schema error inserting listItem at document level")
	}
}

// =============================================================================
// DELETE RANGE TESTS
// =============================================================================

func TestDeleteInlineSpan(t *testing.T) {
	d := doc.NewDocument(doc.NewParagraph(doc.NewText("hello")))

	next, entry, err := Apply(d, DeleteRange(2, 4))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if next.TextContent() != "hlo" {
		t.Errorf("TextContent = %q, want hlo", next.TextContent())
	}
	if entry.OldSize != 2 || entry.NewSize != 0 {
		t.Errorf("entry = %+v, want OldSize 2 NewSize 0", entry)
	}
}

func TestDeleteSpanDropsAtomicNode(t *testing.T) {
	chip := doc.NewTaskChip(doc.ChipAttrs{TaskID: "t1", Title: "x", ChipType: doc.ChipTask})
	d := doc.NewDocument(doc.NewParagraph(doc.NewText("ab"), chip, doc.NewText("cd")))

	// Span covers 'b', the chip, and 'c'.
	next, _, err := Apply(d, DeleteRange(2, 5))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if next.TextContent() != "ad" {
		t.Errorf("TextContent = %q, want ad", next.TextContent())
	}
	if len(doc.FindChips(next)) != 0 {
		t.Error("chip inside deleted span should be dropped")
	}
	// Remaining text must be merged into a single node.
	if next.Child(0).ChildCount() != 1 {
		t.Errorf("paragraph has %d children, want 1 merged text node", next.Child(0).ChildCount())
	}
}

func TestDeleteWholeBlock(t *testing.T) {
	d := doc.NewDocument(
		doc.NewParagraph(doc.NewText("abc")),
		doc.NewParagraph(doc.NewText("def")),
	)

	next, _, err := Apply(d, DeleteRange(0, 5))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if next.ChildCount() != 1 || next.TextContent() != "def" {
		t.Errorf("remaining document = %q with %d blocks, want def with 1", next.TextContent(), next.ChildCount())
	}
}

func TestDeleteRangeAcrossParentsFails(t *testing.T) {
	d := doc.NewDocument(
		doc.NewParagraph(doc.NewText("abc")),
		doc.NewParagraph(doc.NewText("def")),
	)

	// From inside the first paragraph to a document-level boundary.
	_, _, err := Apply(d, DeleteRange(2, 5))
	if err == nil {
		t.Fatal("expected error for range crossing parents")
	}
}

func TestDeleteEmptyRangeIsNoOp(t *testing.T) {
	d := doc.NewDocument(doc.NewParagraph(doc.NewText("ab")))

	next, entry, err := Apply(d, DeleteRange(2, 2))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if next.TextContent() != "ab" || entry.OldSize != 0 {
		t.Errorf("empty delete changed document: %q, entry %+v", next.TextContent(), entry)
	}
}

func TestDeleteInvertedRangeFails(t *testing.T) {
	d := doc.NewDocument(doc.NewParagraph(doc.NewText("ab")))

	if _, _, err := Apply(d, DeleteRange(3, 1)); err == nil {
		t.Fatal("expected error for inverted range")
	}
}

// =============================================================================
// REPLACE RANGE TESTS
// =============================================================================

func TestReplaceBlock(t *testing.T) {
	d := doc.NewDocument(
		doc.NewParagraph(doc.NewText("abc")),
		doc.NewParagraph(doc.NewText("def")),
	)

	h := doc.NewHeading(2, doc.NewText("Title"))
	next, entry, err := Apply(d, ReplaceRange(0, 5, h))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if next.Child(0).Type != doc.TypeHeading {
		t.Errorf("first block = %s, want heading", next.Child(0).Type)
	}
	if entry.OldSize != 5 || entry.NewSize != 7 {
		t.Errorf("entry = %+v, want OldSize 5 NewSize 7", entry)
	}
	if next.TextContent() != "Titledef" {
		t.Errorf("TextContent = %q, want Titledef", next.TextContent())
	}
}

func TestReplacePartialSpanFails(t *testing.T) {
	d := doc.NewDocument(doc.NewParagraph(doc.NewText("abc")))

	_, _, err := Apply(d, ReplaceRange(1, 3, doc.NewParagraph(doc.NewText("x"))))
	if err == nil {
		t.Fatal("expected error replacing a partial node span")
	}
}

func TestReplaceWithIllegalChildFails(t *testing.T) {
	d := doc.NewDocument(doc.NewParagraph(doc.NewText("abc")))

	_, _, err := Apply(d, ReplaceRange(0, 5, doc.NewListItem(doc.NewParagraph())))
	if err == nil {
		t.Fatal("expected schema error for listItem at document level")
	}
}

// =============================================================================
// SET BLOCK TYPE TESTS
// =============================================================================

func TestSetBlockTypeToHeading(t *testing.T) {
	d := doc.NewDocument(doc.NewParagraph(doc.NewText("title")))

	next, _, err := Apply(d, SetBlockType(2, doc.TypeHeading, &doc.HeadingAttrs{Level: 2}))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	block := next.Child(0)
	if block.Type != doc.TypeHeading {
		t.Fatalf("block = %s, want heading", block.Type)
	}
	if attrs, ok := block.Attrs.(*doc.HeadingAttrs); !ok || attrs.Level != 2 {
		t.Errorf("heading attrs = %+v, want level 2", block.Attrs)
	}
	if block.TextContent() != "title" {
		t.Errorf("content = %q, want preserved", block.TextContent())
	}
}

func TestSetBlockTypeHeadingBackToParagraph(t *testing.T) {
	d := doc.NewDocument(doc.NewHeading(1, doc.NewText("t")))

	next, _, err := Apply(d, SetBlockType(1, doc.TypeParagraph, nil))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	block := next.Child(0)
	if block.Type != doc.TypeParagraph || block.Attrs != nil {
		t.Errorf("block = %s attrs %+v, want plain paragraph", block.Type, block.Attrs)
	}
}

func TestSetBlockTypeWrapsInBulletList(t *testing.T) {
	d := doc.NewDocument(doc.NewParagraph(doc.NewText("item")))

	next, _, err := Apply(d, SetBlockType(1, doc.TypeBulletList, nil))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	list := next.Child(0)
	if list.Type != doc.TypeBulletList {
		t.Fatalf("block = %s, want bulletList", list.Type)
	}
	item := list.Child(0)
	if item == nil || item.Type != doc.TypeListItem {
		t.Fatalf("list child = %v, want listItem", item)
	}
	if item.Child(0).Type != doc.TypeParagraph || item.TextContent() != "item" {
		t.Errorf("wrapped block lost content: %q", item.TextContent())
	}
}

func TestSetBlockTypeWrapsInBlockquote(t *testing.T) {
	d := doc.NewDocument(doc.NewParagraph(doc.NewText("q")))

	next, _, err := Apply(d, SetBlockType(1, doc.TypeBlockquote, nil))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	bq := next.Child(0)
	if bq.Type != doc.TypeBlockquote {
		t.Fatalf("block = %s, want blockquote", bq.Type)
	}
	if bq.Child(0).Type != doc.TypeParagraph {
		t.Errorf("blockquote child = %s, want the original paragraph", bq.Child(0).Type)
	}
}

func TestSetBlockTypeNoConvertibleBlock(t *testing.T) {
	d := doc.NewDocument(doc.NewBulletList(doc.NewListItem(doc.NewParagraph(doc.NewText("x")))))

	// Position 0 is the boundary before the bulletList; lists do not convert.
	_, _, err := Apply(d, SetBlockType(0, doc.TypeHeading, nil))
	if err == nil {
		t.Fatal("expected error converting a non-text block")
	}
}

// =============================================================================
// BATCH TESTS
// =============================================================================

func TestBatchMapsLaterPositions(t *testing.T) {
	d := doc.NewDocument(doc.NewParagraph(doc.NewText("abcd")))

	// Both positions computed against the snapshot. The second must be
	// shifted past the first insertion.
	next, mapping, err := ApplyBatch(d, []Op{
		InsertText(2, "X"),
		InsertText(4, "Y"),
	}, AllOrNothing)
	if err != nil {
		t.Fatalf("ApplyBatch failed: %v", err)
	}
	if next.TextContent() != "aXbcYd" {
		t.Errorf("TextContent = %q, want aXbcYd", next.TextContent())
	}
	if mapping.Len() != 2 {
		t.Errorf("mapping.Len = %d, want 2", mapping.Len())
	}
}

func TestBatchAllOrNothingAborts(t *testing.T) {
	d := doc.NewDocument(doc.NewParagraph(doc.NewText("ab")))

	_, _, err := ApplyBatch(d, []Op{
		InsertText(1, "x"),
		InsertText(0, "boom"), // block boundary, invalid
	}, AllOrNothing)
	if err == nil {
		t.Fatal("expected batch failure")
	}
	var bae *BatchApplyError
	if !errors.As(err, &bae) {
		t.Fatalf("error = %v, want BatchApplyError", err)
	}
	if bae.Index != 1 {
		t.Errorf("failing index = %d, want 1", bae.Index)
	}
	if d.TextContent() != "ab" {
		t.Errorf("input mutated to %q after failed batch", d.TextContent())
	}
}

func TestBatchSkipStaleContinues(t *testing.T) {
	d := doc.NewDocument(doc.NewParagraph(doc.NewText("ab")))

	next, mapping, err := ApplyBatch(d, []Op{
		InsertText(0, "boom"), // invalid position, skipped
		InsertText(1, "x"),
	}, SkipStale)
	if err != nil {
		t.Fatalf("ApplyBatch failed: %v", err)
	}
	if next.TextContent() != "xab" {
		t.Errorf("TextContent = %q, want xab", next.TextContent())
	}
	if mapping.Len() != 1 {
		t.Errorf("mapping.Len = %d, want 1 (skipped op records nothing)", mapping.Len())
	}
}

func TestBatchExpectingDetectsStaleTarget(t *testing.T) {
	d := doc.NewDocument(doc.NewParagraph(doc.NewText("abc")))

	// The scan claimed a heading at position 0; the document has a
	// paragraph there.
	op := ReplaceRange(0, 5, doc.NewParagraph(doc.NewText("x"))).Expecting(doc.TypeHeading)

	_, _, err := ApplyBatch(d, []Op{op}, AllOrNothing)
	if !errors.Is(err, ErrStaleTarget) {
		t.Errorf("error = %v, want ErrStaleTarget", err)
	}

	next, _, err := ApplyBatch(d, []Op{op}, SkipStale)
	if err != nil {
		t.Fatalf("SkipStale batch failed: %v", err)
	}
	if next.TextContent() != "abc" {
		t.Errorf("stale op applied under SkipStale: %q", next.TextContent())
	}
}

func TestBatchExpectingMatchingTarget(t *testing.T) {
	d := doc.NewDocument(doc.NewParagraph(doc.NewText("abc")))

	op := ReplaceRange(0, 5, doc.NewHeading(1, doc.NewText("abc"))).Expecting(doc.TypeParagraph)
	next, _, err := ApplyBatch(d, []Op{op}, AllOrNothing)
	if err != nil {
		t.Fatalf("ApplyBatch failed: %v", err)
	}
	if next.Child(0).Type != doc.TypeHeading {
		t.Errorf("block = %s, want heading", next.Child(0).Type)
	}
}

func TestBatchPlaceholderReplacement(t *testing.T) {
	// Two placeholders found by one scan, replaced in one SkipStale batch
	// without re-scanning between operations.
	d := doc.NewDocument(
		doc.NewParagraph(doc.NewText("[[slot]]")),
		doc.NewParagraph(doc.NewText("keep")),
		doc.NewParagraph(doc.NewText("[[slot]]")),
	)

	var ops []Op
	for _, f := range doc.FindPlaceholders(d, "[[slot]]") {
		ops = append(ops, ReplaceRange(
			f.Pos, f.Pos+f.Node.Size(),
			doc.NewParagraph(doc.NewText("filled")),
		).Expecting(doc.TypeParagraph))
	}
	if len(ops) != 2 {
		t.Fatalf("found %d placeholders, want 2", len(ops))
	}

	next, _, err := ApplyBatch(d, ops, SkipStale)
	if err != nil {
		t.Fatalf("ApplyBatch failed: %v", err)
	}
	if next.TextContent() != "filledkeepfilled" {
		t.Errorf("TextContent = %q, want filledkeepfilled", next.TextContent())
	}
}

// =============================================================================
// ERROR TESTS
// =============================================================================

func TestBatchApplyErrorUnwrap(t *testing.T) {
	inner := &InvalidPositionError{Pos: 3, Reason: "nope"}
	err := &BatchApplyError{Index: 2, Err: inner}

	var ipe *InvalidPositionError
	if !errors.As(err, &ipe) {
		t.Error("BatchApplyError should unwrap to InvalidPositionError")
	}
	if err.Error() == "" || inner.Error() == "" {
		t.Error("error strings should not be empty")
	}
}
