// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "records.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// =============================================================================
// CREATE TESTS
// =============================================================================

func TestCreateTask(t *testing.T) {
	s := openTestStore(t)

	id, err := s.Create(Draft{Type: ItemTask, Title: "Follow up", Assignee: "alex"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if id == "" {
		t.Fatal("Create returned an empty id")
	}

	it, ok := s.Lookup(id)
	if !ok {
		t.Fatal("created record not found")
	}
	if it.Status != StatusPending {
		t.Errorf("Status = %q, want the pending default", it.Status)
	}
	if it.CreatedAt.IsZero() || it.UpdatedAt.IsZero() {
		t.Error("timestamps should be stamped")
	}
	if len(it.History) != 0 {
		t.Errorf("tasks should not carry history, got %d entries", len(it.History))
	}
}

func TestCreateGoalSeedsHistory(t *testing.T) {
	s := openTestStore(t)

	id, err := s.Create(Draft{Type: ItemGoal, Title: "Grow the team", Status: StatusInProgress})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	it, _ := s.Lookup(id)
	if len(it.History) != 1 {
		t.Fatalf("goal history has %d entries, want 1", len(it.History))
	}
	if it.History[0].Status != StatusInProgress {
		t.Errorf("seed history status = %q", it.History[0].Status)
	}
}

func TestCreateValidation(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.Create(Draft{Type: ItemTask}); err == nil {
		t.Error("empty title should be rejected")
	}
	if _, err := s.Create(Draft{Type: "milestone", Title: "x"}); err == nil {
		t.Error("unknown type should be rejected")
	}
}

// =============================================================================
// READ TESTS
// =============================================================================

func TestLookupMissing(t *testing.T) {
	s := openTestStore(t)
	if _, ok := s.Lookup("missing"); ok {
		t.Error("Lookup of an unknown id should report false")
	}
}

func TestAllNewestFirst(t *testing.T) {
	s := openTestStore(t)

	older, _ := s.Create(Draft{Type: ItemTask, Title: "older"})
	time.Sleep(10 * time.Millisecond)
	newer, _ := s.Create(Draft{Type: ItemTask, Title: "newer"})

	items := s.All()
	if len(items) != 2 {
		t.Fatalf("All returned %d items, want 2", len(items))
	}
	if items[0].ID != newer || items[1].ID != older {
		t.Errorf("order = %s, %s; want newest first", items[0].Title, items[1].Title)
	}
}

func TestForConversation(t *testing.T) {
	s := openTestStore(t)

	s.Create(Draft{Type: ItemTask, Title: "mine", ConversationID: "conv1"})
	s.Create(Draft{Type: ItemGoal, Title: "also mine", ConversationID: "conv1"})
	s.Create(Draft{Type: ItemTask, Title: "other", ConversationID: "conv2"})

	items := s.ForConversation("conv1")
	if len(items) != 2 {
		t.Fatalf("ForConversation returned %d items, want 2", len(items))
	}
	for _, it := range items {
		if it.ConversationID != "conv1" {
			t.Errorf("leaked record from %q", it.ConversationID)
		}
	}
	if got := s.ForConversation("none"); len(got) != 0 {
		t.Errorf("unknown conversation returned %d items", len(got))
	}
}

// =============================================================================
// UPDATE TESTS
// =============================================================================

func TestUpdatePatchesOnlySetFields(t *testing.T) {
	s := openTestStore(t)
	id, _ := s.Create(Draft{Type: ItemTask, Title: "orig", Description: "keep me", Assignee: "alex"})

	title := "renamed"
	if err := s.Update(id, Patch{Title: &title}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	it, _ := s.Lookup(id)
	if it.Title != "renamed" {
		t.Errorf("Title = %q", it.Title)
	}
	if it.Description != "keep me" || it.Assignee != "alex" {
		t.Error("unset patch fields must be left unchanged")
	}
}

func TestUpdateGoalStatusAppendsHistory(t *testing.T) {
	s := openTestStore(t)
	id, _ := s.Create(Draft{Type: ItemGoal, Title: "Grow"})

	next := StatusInProgress
	if err := s.Update(id, Patch{Status: &next}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	it, _ := s.Lookup(id)
	if len(it.History) != 2 {
		t.Fatalf("history has %d entries, want 2", len(it.History))
	}
	if it.History[1].Status != StatusInProgress {
		t.Errorf("latest history status = %q", it.History[1].Status)
	}

	// Re-setting the same status records nothing.
	if err := s.Update(id, Patch{Status: &next}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	it, _ = s.Lookup(id)
	if len(it.History) != 2 {
		t.Errorf("unchanged status should not append history, got %d entries", len(it.History))
	}
}

func TestUpdateNotFound(t *testing.T) {
	s := openTestStore(t)
	title := "x"
	if err := s.Update("missing", Patch{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

// =============================================================================
// TOGGLE TESTS
// =============================================================================

func TestToggleTask(t *testing.T) {
	s := openTestStore(t)
	id, _ := s.Create(Draft{Type: ItemTask, Title: "flip me", Status: StatusInProgress})

	if err := s.ToggleTask(id); err != nil {
		t.Fatalf("ToggleTask failed: %v", err)
	}
	if it, _ := s.Lookup(id); it.Status != StatusCompleted {
		t.Errorf("Status = %q, want completed (in_progress toggles to completed)", it.Status)
	}

	if err := s.ToggleTask(id); err != nil {
		t.Fatalf("ToggleTask failed: %v", err)
	}
	if it, _ := s.Lookup(id); it.Status != StatusPending {
		t.Errorf("Status = %q, want pending after second toggle", it.Status)
	}
}

func TestToggleGoalRejected(t *testing.T) {
	s := openTestStore(t)
	id, _ := s.Create(Draft{Type: ItemGoal, Title: "Grow"})

	if err := s.ToggleTask(id); !errors.Is(err, ErrNotATask) {
		t.Errorf("error = %v, want ErrNotATask", err)
	}
}

func TestToggleMissing(t *testing.T) {
	s := openTestStore(t)
	if err := s.ToggleTask("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

// =============================================================================
// SUBSCRIPTION TESTS
// =============================================================================

func TestSubscribe(t *testing.T) {
	s := openTestStore(t)

	var notified int
	unsubscribe := s.Subscribe(func() { notified++ })

	id, _ := s.Create(Draft{Type: ItemTask, Title: "x"})
	if notified != 1 {
		t.Errorf("notified %d times after create, want 1", notified)
	}

	s.ToggleTask(id)
	if notified != 2 {
		t.Errorf("notified %d times after toggle, want 2", notified)
	}

	unsubscribe()
	s.ToggleTask(id)
	if notified != 2 {
		t.Errorf("notified %d times after unsubscribe, want still 2", notified)
	}
}

// =============================================================================
// PERSISTENCE TESTS
// =============================================================================

func TestReopenLoadsSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	id, err := s.Create(Draft{
		Type:           ItemGoal,
		Title:          "Grow the team",
		Description:    "Hire two engineers",
		DueDate:        due,
		Assignee:       "alex",
		ConversationID: "conv1",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s2.Close()

	it, ok := s2.Lookup(id)
	if !ok {
		t.Fatal("record lost across reopen")
	}
	if it.Title != "Grow the team" || it.Description != "Hire two engineers" {
		t.Errorf("reloaded record = %+v", it)
	}
	if !it.DueDate.Equal(due) {
		t.Errorf("DueDate = %v, want %v", it.DueDate, due)
	}
	if it.ConversationID != "conv1" || it.Assignee != "alex" {
		t.Errorf("reloaded record = %+v", it)
	}
	if len(it.History) != 1 {
		t.Errorf("history lost across reopen: %d entries", len(it.History))
	}
}

func TestReopenZeroDueDate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.db")

	s, _ := Open(path)
	id, _ := s.Create(Draft{Type: ItemTask, Title: "no due date"})
	s.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s2.Close()

	if it, _ := s2.Lookup(id); !it.DueDate.IsZero() {
		t.Errorf("DueDate = %v, want zero", it.DueDate)
	}
}
