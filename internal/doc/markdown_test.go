// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package doc

import (
	"strings"
	"testing"
)

// =============================================================================
// IMPORT TESTS
// =============================================================================

func TestFromMarkdownBasicBlocks(t *testing.T) {
	src := []byte("# Title\n\nfirst paragraph\n\n- one\n- two\n\n> quoted\n")

	d, err := FromMarkdown(src)
	if err != nil {
		t.Fatalf("FromMarkdown failed: %v", err)
	}
	if err := Validate(d); err != nil {
		t.Fatalf("imported document is invalid: %v", err)
	}
	if d.ChildCount() != 4 {
		t.Fatalf("imported %d blocks, want 4", d.ChildCount())
	}

	h := d.Child(0)
	if h.Type != TypeHeading || h.Attrs.(*HeadingAttrs).Level != 1 || h.TextContent() != "Title" {
		t.Errorf("heading = %s %q", h.Type, h.TextContent())
	}
	if d.Child(1).Type != TypeParagraph || d.Child(1).TextContent() != "first paragraph" {
		t.Errorf("paragraph = %q", d.Child(1).TextContent())
	}

	list := d.Child(2)
	if list.Type != TypeBulletList || list.ChildCount() != 2 {
		t.Fatalf("list = %s with %d items", list.Type, list.ChildCount())
	}
	if list.Child(0).TextContent() != "one" || list.Child(1).TextContent() != "two" {
		t.Errorf("list items = %q / %q", list.Child(0).TextContent(), list.Child(1).TextContent())
	}

	bq := d.Child(3)
	if bq.Type != TypeBlockquote || bq.TextContent() != "quoted" {
		t.Errorf("blockquote = %s %q", bq.Type, bq.TextContent())
	}
}

func TestFromMarkdownOrderedListCollapses(t *testing.T) {
	d, err := FromMarkdown([]byte("1. first\n2. second\n"))
	if err != nil {
		t.Fatalf("FromMarkdown failed: %v", err)
	}
	if d.Child(0).Type != TypeBulletList {
		t.Errorf("ordered list imported as %s, want bulletList", d.Child(0).Type)
	}
}

func TestFromMarkdownImage(t *testing.T) {
	d, err := FromMarkdown([]byte("see ![the chart](chart.png) here\n"))
	if err != nil {
		t.Fatalf("FromMarkdown failed: %v", err)
	}

	para := d.Child(0)
	var img *Node
	for _, c := range para.Content {
		if c.Type == TypeImage {
			img = c
		}
	}
	if img == nil {
		t.Fatal("no image node imported")
	}
	attrs := img.Attrs.(*ImageAttrs)
	if attrs.Src != "chart.png" || attrs.Alt != "the chart" {
		t.Errorf("image attrs = %+v", attrs)
	}
	if para.TextContent() != "see  here" {
		t.Errorf("surrounding text = %q", para.TextContent())
	}
}

func TestFromMarkdownSoftBreakBecomesSpace(t *testing.T) {
	d, err := FromMarkdown([]byte("line one\nline two\n"))
	if err != nil {
		t.Fatalf("FromMarkdown failed: %v", err)
	}
	if got := d.Child(0).TextContent(); got != "line one line two" {
		t.Errorf("TextContent = %q, want soft break flattened to a space", got)
	}
}

func TestFromMarkdownEmphasisFlattens(t *testing.T) {
	d, err := FromMarkdown([]byte("some *emphasized* and **bold** text\n"))
	if err != nil {
		t.Fatalf("FromMarkdown failed: %v", err)
	}
	if got := d.Child(0).TextContent(); got != "some emphasized and bold text" {
		t.Errorf("TextContent = %q, want formatting flattened", got)
	}
}

func TestFromMarkdownEmptySource(t *testing.T) {
	d, err := FromMarkdown(nil)
	if err != nil {
		t.Fatalf("FromMarkdown failed: %v", err)
	}
	if d.ChildCount() != 1 || d.Child(0).Type != TypeParagraph {
		t.Errorf("empty source should yield one empty paragraph, got %d blocks", d.ChildCount())
	}
}

// =============================================================================
// EXPORT TESTS
// =============================================================================

func TestToMarkdownBlocks(t *testing.T) {
	d := NewDocument(
		NewHeading(2, NewText("Agenda")),
		NewParagraph(NewText("plain line")),
		NewBulletList(
			NewListItem(NewParagraph(NewText("first"))),
			NewListItem(
				NewParagraph(NewText("second")),
				NewParagraph(NewText("continued")),
			),
		),
		NewBlockquote(NewParagraph(NewText("quoted"))),
	)

	out := ToMarkdown(d)

	for _, want := range []string{
		"## Agenda\n",
		"plain line\n",
		"- first\n",
		"- second\n",
		"  continued\n",
		"> quoted\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestToMarkdownChip(t *testing.T) {
	d := NewDocument(NewParagraph(
		NewText("next: "),
		NewTaskChip(ChipAttrs{TaskID: "t1", Title: "Ship the report", ChipType: ChipTask}),
	))

	out := ToMarkdown(d)
	if !strings.Contains(out, "`[task: Ship the report]`") {
		t.Errorf("chip not rendered: %s", out)
	}
}

func TestToMarkdownAIBlock(t *testing.T) {
	d := NewDocument(NewAIBlock(AIBlockAttrs{
		BlockID: "b1",
		Title:   "Agenda ideas",
		Content: "Review blockers\nPlan next sprint",
		Status:  BlockPending,
	}))

	out := ToMarkdown(d)
	if !strings.Contains(out, "> **Suggested: Agenda ideas**\n") {
		t.Errorf("aiBlock header missing: %s", out)
	}
	if !strings.Contains(out, "> Review blockers\n") || !strings.Contains(out, "> Plan next sprint\n") {
		t.Errorf("aiBlock content not quoted: %s", out)
	}
}

func TestMarkdownRoundTrip(t *testing.T) {
	src := []byte("# Notes\n\ndiscussed the roadmap\n\n- follow up\n")

	d, err := FromMarkdown(src)
	if err != nil {
		t.Fatalf("FromMarkdown failed: %v", err)
	}
	out := ToMarkdown(d)

	back, err := FromMarkdown([]byte(out))
	if err != nil {
		t.Fatalf("re-import failed: %v", err)
	}
	if back.TextContent() != d.TextContent() {
		t.Errorf("round trip changed text: %q -> %q", d.TextContent(), back.TextContent())
	}
}
