// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chips

import (
	"errors"
	"testing"

	"github.com/jeranaias/cadence-tui/internal/doc"
	"github.com/jeranaias/cadence-tui/internal/editor"
	"github.com/jeranaias/cadence-tui/internal/store"
)

// fakeStore implements Reader and Writer over a plain map.
type fakeStore struct {
	items   map[string]store.Item
	toggled []string
}

func newFakeStore(items ...store.Item) *fakeStore {
	f := &fakeStore{items: make(map[string]store.Item)}
	for _, it := range items {
		f.items[it.ID] = it
	}
	return f
}

func (f *fakeStore) Lookup(id string) (store.Item, bool) {
	it, ok := f.items[id]
	return it, ok
}

func (f *fakeStore) Update(id string, p store.Patch) error {
	if _, ok := f.items[id]; !ok {
		return store.ErrNotFound
	}
	return nil
}

func (f *fakeStore) ToggleTask(id string) error {
	f.toggled = append(f.toggled, id)
	return nil
}

func taskAttrs(id, title string) doc.ChipAttrs {
	return doc.ChipAttrs{TaskID: id, Title: title, ChipType: doc.ChipTask}
}

// =============================================================================
// RESOLVE TESTS
// =============================================================================

func TestResolveLiveRecordWins(t *testing.T) {
	fs := newFakeStore(store.Item{
		ID: "t1", Type: store.ItemTask, Title: "Renamed upstream", Status: store.StatusInProgress,
	})
	m := NewManager(fs, fs)

	r := m.Resolve(taskAttrs("t1", "Stale cached title"))
	if r.Orphaned {
		t.Fatal("record exists, chip must not be orphaned")
	}
	if r.Title != "Renamed upstream" {
		t.Errorf("Title = %q, want the live record title", r.Title)
	}
	if r.Status != store.StatusInProgress {
		t.Errorf("Status = %q, want in_progress", r.Status)
	}
}

func TestResolveOrphaned(t *testing.T) {
	m := NewManager(newFakeStore(), newFakeStore())

	r := m.Resolve(taskAttrs("gone", "Last known title"))
	if !r.Orphaned {
		t.Fatal("missing record should resolve as orphaned")
	}
	if r.Title != "Last known title" {
		t.Errorf("Title = %q, want the cached title", r.Title)
	}
}

// =============================================================================
// INSERT TESTS
// =============================================================================

func TestInsertAtCursor(t *testing.T) {
	fs := newFakeStore()
	m := NewManager(fs, fs)

	ed := editor.New("c1", doc.NewDocument(doc.NewParagraph(doc.NewText("hello"))))
	ed.Focus()
	ed.SetSelection(editor.Caret(3))

	if err := m.Insert(ed, taskAttrs("t1", "Ship it")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	found := doc.FindChips(ed.Doc())
	if len(found) != 1 || found[0].Pos != 3 {
		t.Fatalf("FindChips = %+v, want one chip at pos 3", found)
	}
	// Trailing space keeps the cursor off the atomic node.
	if got := ed.Doc().TextContent(); got != "he llo" {
		t.Errorf("TextContent = %q, want %q", got, "he llo")
	}
}

func TestInsertUnfocusedAppends(t *testing.T) {
	fs := newFakeStore()
	m := NewManager(fs, fs)

	ed := editor.New("c1", doc.NewDocument(doc.NewParagraph(doc.NewText("hello"))))

	if err := m.Insert(ed, taskAttrs("t1", "Ship it")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if ed.Doc().ChildCount() != 2 {
		t.Fatalf("document has %d blocks, want a new trailing paragraph", ed.Doc().ChildCount())
	}
	last := ed.Doc().Child(1)
	if last.Type != doc.TypeParagraph || last.Child(0).Type != doc.TypeTaskChip {
		t.Errorf("trailing block = %s starting with %s", last.Type, last.Child(0).Type)
	}
}

func TestInsertAtBlockBoundaryFallsBack(t *testing.T) {
	fs := newFakeStore()
	m := NewManager(fs, fs)

	ed := editor.New("c1", doc.NewDocument(doc.NewParagraph(doc.NewText("hello"))))
	ed.Focus()
	// Position 0 is a document-level boundary; inline insert cannot apply.
	ed.SetSelection(editor.Caret(0))

	if err := m.Insert(ed, taskAttrs("t1", "Ship it")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if ed.Doc().ChildCount() != 2 {
		t.Errorf("fallback should append a paragraph, got %d blocks", ed.Doc().ChildCount())
	}
}

func TestInsertRejectsInvalidAttrs(t *testing.T) {
	fs := newFakeStore()
	m := NewManager(fs, fs)
	ed := editor.New("c1", doc.NewDocument(doc.NewParagraph()))

	if err := m.Insert(ed, doc.ChipAttrs{Title: "no id", ChipType: doc.ChipTask}); err == nil {
		t.Error("chip without a record id must be rejected")
	}
}

// =============================================================================
// TOGGLE TESTS
// =============================================================================

func TestToggleTask(t *testing.T) {
	fs := newFakeStore(store.Item{ID: "t1", Type: store.ItemTask, Title: "x"})
	m := NewManager(fs, fs)

	r := m.Resolve(taskAttrs("t1", "x"))
	if err := m.Toggle(r); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if len(fs.toggled) != 1 || fs.toggled[0] != "t1" {
		t.Errorf("toggled = %v, want [t1]", fs.toggled)
	}
}

func TestToggleOrphaned(t *testing.T) {
	m := NewManager(newFakeStore(), newFakeStore())

	r := m.Resolve(taskAttrs("gone", "x"))
	if err := m.Toggle(r); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestToggleGoalRejected(t *testing.T) {
	fs := newFakeStore(store.Item{ID: "g1", Type: store.ItemGoal, Title: "Grow"})
	m := NewManager(fs, fs)

	r := m.Resolve(doc.ChipAttrs{TaskID: "g1", Title: "Grow", ChipType: doc.ChipGoal})
	if err := m.Toggle(r); !errors.Is(err, store.ErrNotATask) {
		t.Errorf("error = %v, want ErrNotATask", err)
	}
	if len(fs.toggled) != 0 {
		t.Error("goal toggle must not write through")
	}
}
