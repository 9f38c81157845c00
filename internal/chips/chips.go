// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chips mediates between taskChip document nodes and the task/goal
// records they reference in the application store.
//
// A chip holds a weak reference: the record is owned by the store, and the
// chip is only removed by an explicit document edit. A record deleted out
// from under a chip leaves an orphaned reference, rendered as a muted
// "removed" indicator, never an error.
package chips

import (
	"fmt"

	"github.com/jeranaias/cadence-tui/internal/doc"
	"github.com/jeranaias/cadence-tui/internal/editor"
	"github.com/jeranaias/cadence-tui/internal/engine"
	"github.com/jeranaias/cadence-tui/internal/store"
)

// =============================================================================
// STORE CAPABILITIES
// =============================================================================

// Reader is the lookup capability chips need at render time. The rendering
// context carries this explicitly rather than reaching into package state.
type Reader interface {
	Lookup(id string) (store.Item, bool)
}

// Writer is the update capability behind the chip's status toggle.
type Writer interface {
	Update(id string, p store.Patch) error
	ToggleTask(id string) error
}

// =============================================================================
// MANAGER
// =============================================================================

// Manager creates, resolves and updates chips against the store.
type Manager struct {
	reader Reader
	writer Writer
}

// NewManager creates a chip manager over the given store capabilities.
func NewManager(r Reader, w Writer) *Manager {
	return &Manager{reader: r, writer: w}
}

// =============================================================================
// RESOLUTION
// =============================================================================

// Resolved is what a chip renders from: the live record state when the
// reference is intact, or Orphaned when the record no longer exists.
type Resolved struct {
	TaskID   string
	Title    string
	ChipType doc.ChipType
	Status   store.Status
	Orphaned bool
}

// Resolve looks up a chip's live record in the store snapshot. Called on
// every chip render; a read, never a write. The live record's title
// overrides the cached attribute title, which may be stale; an absent record
// yields the orphaned sentinel instead of failing.
func (m *Manager) Resolve(attrs doc.ChipAttrs) Resolved {
	it, ok := m.reader.Lookup(attrs.TaskID)
	if !ok {
		return Resolved{
			TaskID:   attrs.TaskID,
			Title:    attrs.Title,
			ChipType: attrs.ChipType,
			Orphaned: true,
		}
	}
	return Resolved{
		TaskID:   attrs.TaskID,
		Title:    it.Title,
		ChipType: attrs.ChipType,
		Status:   it.Status,
	}
}

// =============================================================================
// INSERTION
// =============================================================================

// Insert places a taskChip at the editor's cursor, or appends at document
// end when the editor has no usable selection. The chip is always followed
// by a trailing space so the cursor is never trapped against the atomic
// node. The store record must already exist; this is rendering only.
func (m *Manager) Insert(ed *editor.Editor, attrs doc.ChipAttrs) error {
	if err := attrs.Validate(); err != nil {
		return fmt.Errorf("insert chip: %w", err)
	}

	chip := doc.NewTaskChip(attrs)

	if ed.Focused() {
		head := ed.Selection().Head
		op := engine.InsertNodes(head, chip, doc.NewText(" "))
		if _, err := ed.Apply([]engine.Op{op}, engine.AllOrNothing); err == nil {
			return nil
		}
		// The cursor sat at a block boundary; fall through to append.
	}

	// Append a fresh paragraph holding the chip at document end.
	op := engine.InsertNode(ed.DocEnd(), doc.NewParagraph(chip, doc.NewText(" ")))
	if _, err := ed.Apply([]engine.Op{op}, engine.AllOrNothing); err != nil {
		return fmt.Errorf("insert chip: %w", err)
	}
	return nil
}

// =============================================================================
// STATUS TOGGLE
// =============================================================================

// Toggle flips a task chip's record between completed and pending, writing
// through the store's update action. Goal chips do not toggle from the chip;
// their status changes go through the full edit dialog.
func (m *Manager) Toggle(r Resolved) error {
	if r.Orphaned {
		return store.ErrNotFound
	}
	if r.ChipType != doc.ChipTask {
		return store.ErrNotATask
	}
	return m.writer.ToggleTask(r.TaskID)
}
