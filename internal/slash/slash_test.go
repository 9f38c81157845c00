// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package slash

import (
	"testing"

	"github.com/jeranaias/cadence-tui/internal/doc"
	"github.com/jeranaias/cadence-tui/internal/editor"
	"github.com/jeranaias/cadence-tui/internal/engine"
)

func docWithText(text string) *doc.Node {
	return doc.NewDocument(doc.NewParagraph(doc.NewText(text)))
}

func fullCatalog() []Command {
	return Catalog(Hooks{
		OpenTaskDialog:      func(string) {},
		OpenGoalDialog:      func(string) {},
		GenerateSuggestions: func() {},
	})
}

// =============================================================================
// DETECTION TESTS
// =============================================================================

func TestDetect(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantActive bool
		wantQuery  string
	}{
		{"trigger at block start", "/", true, ""},
		{"trigger with query", "/hea", true, "hea"},
		{"trigger after space", "note /ta", true, "ta"},
		{"mid-word slash ignored", "a/b", false, ""},
		{"path-like text ignored", "see docs/guide", false, ""},
		{"no trigger", "plain text", false, ""},
		{"second slash cancels", "/he/ad", false, ""},
		{"query with space", "/bullet list", true, "bullet list"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := docWithText(tt.text)
			// Cursor at the end of the text.
			cursor := 1 + len([]rune(tt.text))
			det := Detect(d, cursor)
			if det.Active != tt.wantActive {
				t.Fatalf("Active = %v, want %v", det.Active, tt.wantActive)
			}
			if det.Active && det.Query != tt.wantQuery {
				t.Errorf("Query = %q, want %q", det.Query, tt.wantQuery)
			}
		})
	}
}

func TestDetectTriggerPos(t *testing.T) {
	d := docWithText("note /ta")
	det := Detect(d, 9) // end of text

	if !det.Active {
		t.Fatal("expected active detection")
	}
	// "note " is positions 1..5, the trigger sits at 6.
	if det.TriggerPos != 6 {
		t.Errorf("TriggerPos = %d, want 6", det.TriggerPos)
	}
}

func TestDetectAtBlockBoundary(t *testing.T) {
	d := docWithText("/x")
	if det := Detect(d, 0); det.Active {
		t.Error("block-level positions must not detect a trigger")
	}
}

func TestDetectStopsAtAtomicNode(t *testing.T) {
	// The chip interrupts lookbehind: the slash before it is unreachable.
	d := doc.NewDocument(doc.NewParagraph(
		doc.NewText("/cmd"),
		doc.NewTaskChip(doc.ChipAttrs{TaskID: "t1", Title: "x", ChipType: doc.ChipTask}),
		doc.NewText("tail"),
	))
	if det := Detect(d, 9); det.Active {
		t.Error("detection must not cross an atomic inline node")
	}
}

// =============================================================================
// CATALOG TESTS
// =============================================================================

func TestCatalogHooksGateCommands(t *testing.T) {
	keys := func(cmds []Command) map[string]bool {
		out := map[string]bool{}
		for _, c := range cmds {
			out[c.Key] = true
		}
		return out
	}

	all := keys(fullCatalog())
	for _, want := range []string{"heading1", "heading2", "heading3", "text", "bullets", "quote", "task", "goal", "suggest"} {
		if !all[want] {
			t.Errorf("full catalog missing %q", want)
		}
	}

	bare := keys(Catalog(Hooks{}))
	for _, gone := range []string{"task", "goal", "suggest"} {
		if bare[gone] {
			t.Errorf("unbound hook should drop %q", gone)
		}
	}
	if !bare["heading1"] {
		t.Error("format commands must not depend on hooks")
	}
}

func TestCatalogPrefillFlowsToDialog(t *testing.T) {
	var got string
	cmds := Catalog(Hooks{
		OpenTaskDialog: func(title string) { got = title },
		PrefillTitle:   func() string { return "selected text" },
	})

	for _, c := range cmds {
		if c.Key == "task" {
			c.After()
		}
	}
	if got != "selected text" {
		t.Errorf("prefill = %q, want the captured selection", got)
	}
}

// =============================================================================
// FILTER TESTS
// =============================================================================

func TestFilter(t *testing.T) {
	catalog := fullCatalog()

	if got := Filter(catalog, ""); len(got) != len(catalog) {
		t.Errorf("empty query should return the full catalog, got %d", len(got))
	}

	h := Filter(catalog, "heading")
	if len(h) != 3 {
		t.Fatalf("Filter(heading) = %d commands, want 3", len(h))
	}
	if h[0].Key != "heading1" || h[2].Key != "heading3" {
		t.Error("filter must preserve catalog order")
	}

	// Case-insensitive, matches descriptions too.
	if got := Filter(catalog, "AGENDA"); len(got) != 1 || got[0].Key != "suggest" {
		t.Errorf("Filter(AGENDA) = %+v, want the suggest command", got)
	}

	if got := Filter(catalog, "zzz"); len(got) != 0 {
		t.Errorf("no-match filter returned %d commands", len(got))
	}
}

func TestGroupCommands(t *testing.T) {
	groups := GroupCommands(fullCatalog())

	if len(groups) != 3 {
		t.Fatalf("grouped into %d sections, want 3", len(groups))
	}
	if groups[0].Label != "Format" || groups[1].Label != "Insert" || groups[2].Label != "AI" {
		t.Errorf("group order = %s, %s, %s", groups[0].Label, groups[1].Label, groups[2].Label)
	}
	if len(groups[0].Commands) != 6 {
		t.Errorf("Format group has %d commands, want 6", len(groups[0].Commands))
	}
}

// =============================================================================
// MENU TESTS
// =============================================================================

func TestNewMenuNilOnNoMatch(t *testing.T) {
	if m := NewMenu(fullCatalog(), Detection{Active: true, Query: "zzz"}); m != nil {
		t.Error("menu over zero matches should be nil")
	}
}

func TestMenuNavigationWraps(t *testing.T) {
	m := NewMenu(fullCatalog(), Detection{Active: true, Query: "heading"})
	if m == nil {
		t.Fatal("NewMenu returned nil")
	}
	if m.Len() != 3 || m.HighlightIndex() != 0 {
		t.Fatalf("fresh menu: Len %d highlight %d", m.Len(), m.HighlightIndex())
	}

	m.Next()
	m.Next()
	if m.Highlighted().Key != "heading3" {
		t.Errorf("highlighted = %s, want heading3", m.Highlighted().Key)
	}
	m.Next()
	if m.HighlightIndex() != 0 {
		t.Error("Next past the end should wrap to the top")
	}
	m.Prev()
	if m.Highlighted().Key != "heading3" {
		t.Error("Prev from the top should wrap to the bottom")
	}
}

// =============================================================================
// COMMIT TESTS
// =============================================================================

func TestCommitFormatCommand(t *testing.T) {
	ed := editor.New("c1", docWithText("agenda /hea"))
	ed.Focus()
	ed.SetSelection(editor.Caret(12)) // end of text

	det := Detect(ed.Doc(), 12)
	if !det.Active {
		t.Fatal("expected active detection")
	}
	menu := NewMenu(fullCatalog(), det)
	if menu == nil {
		t.Fatal("NewMenu returned nil")
	}

	if err := Commit(ed, det, menu.Highlighted()); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	block := ed.Doc().Child(0)
	if block.Type != doc.TypeHeading {
		t.Errorf("block = %s, want heading", block.Type)
	}
	if got := block.TextContent(); got != "agenda " {
		t.Errorf("content = %q, trigger span must be deleted", got)
	}

	// One undo reverts both the delete and the block conversion.
	if !ed.Undo() {
		t.Fatal("Undo returned false")
	}
	if ed.Doc().Child(0).Type != doc.TypeParagraph || ed.Doc().TextContent() != "agenda /hea" {
		t.Errorf("undo left %s %q", ed.Doc().Child(0).Type, ed.Doc().TextContent())
	}
}

func TestCommitRunsAfterHook(t *testing.T) {
	var opened []string
	catalog := Catalog(Hooks{
		OpenTaskDialog: func(title string) { opened = append(opened, title) },
	})

	ed := editor.New("c1", docWithText("/task"))
	ed.Focus()
	ed.SetSelection(editor.Caret(6))

	det := Detect(ed.Doc(), 6)
	var taskCmd Command
	for _, c := range catalog {
		if c.Key == "task" {
			taskCmd = c
		}
	}

	if err := Commit(ed, det, taskCmd); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if len(opened) != 1 {
		t.Fatalf("After hook ran %d times, want 1", len(opened))
	}
	if ed.Doc().TextContent() != "" {
		t.Errorf("trigger span survived: %q", ed.Doc().TextContent())
	}
}

func TestCommitInactiveDetection(t *testing.T) {
	ed := editor.New("c1", docWithText("x"))
	if err := Commit(ed, Detection{}, Command{Key: "text"}); err == nil {
		t.Error("commit without an active trigger must fail")
	}
}

func TestCommitIsAtomic(t *testing.T) {
	ed := editor.New("c1", docWithText("/x"))
	ed.Focus()
	ed.SetSelection(editor.Caret(3))
	det := Detect(ed.Doc(), 3)

	// A command whose build produces an illegal operation: the trigger
	// delete must not land either.
	bad := Command{
		Key: "bad",
		Build: func(ctx BuildContext) []engine.Op {
			return []engine.Op{engine.InsertText(99, "x")}
		},
	}
	if err := Commit(ed, det, bad); err == nil {
		t.Fatal("expected commit failure")
	}
	if ed.Doc().TextContent() != "/x" {
		t.Errorf("document = %q, want untouched", ed.Doc().TextContent())
	}
}
