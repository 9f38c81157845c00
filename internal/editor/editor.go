// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package editor owns the live editing state of one conversation document.
package editor

import (
	"errors"

	"github.com/jeranaias/cadence-tui/internal/doc"
	"github.com/jeranaias/cadence-tui/internal/engine"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrReadOnly is returned when an edit is attempted on a read-only editor
// (historical or archived conversation view).
var ErrReadOnly = errors.New("editor is read-only")

// =============================================================================
// SELECTION
// =============================================================================

// Selection is the cursor state: Anchor is where the selection started, Head
// is where the cursor is. A caret has Anchor == Head.
type Selection struct {
	Anchor int
	Head   int
}

// Caret builds a collapsed selection at pos.
func Caret(pos int) Selection { return Selection{Anchor: pos, Head: pos} }

// Empty reports whether the selection is a caret.
func (s Selection) Empty() bool { return s.Anchor == s.Head }

// From returns the lower end of the selection.
func (s Selection) From() int {
	if s.Anchor < s.Head {
		return s.Anchor
	}
	return s.Head
}

// To returns the upper end of the selection.
func (s Selection) To() int {
	if s.Anchor > s.Head {
		return s.Anchor
	}
	return s.Head
}

// =============================================================================
// EDITOR
// =============================================================================

// snapshot is one undo/redo history entry.
type snapshot struct {
	d   *doc.Node
	sel Selection
}

// maxUndoDepth bounds the history; beyond it the oldest steps fall off.
const maxUndoDepth = 200

// Editor is the live editing state for one conversation document.
type Editor struct {
	// ConversationID ties the editor to its conversation record.
	ConversationID string

	d        *doc.Node
	sel      Selection
	focused  bool
	readOnly bool

	undo []snapshot
	redo []snapshot

	// onChange receives the document after every committed edit. Used to
	// mark the session dirty for debounced persistence; the in-memory
	// document stays authoritative until an explicit save.
	onChange func(*doc.Node)
}

// Option configures a new Editor.
type Option func(*Editor)

// ReadOnly marks the editor read-only; Apply and Undo become errors.
func ReadOnly() Option {
	return func(e *Editor) { e.readOnly = true }
}

// OnChange sets the committed-edit callback.
func OnChange(fn func(*doc.Node)) Option {
	return func(e *Editor) { e.onChange = fn }
}

// New creates an editor over the given document.
func New(conversationID string, d *doc.Node, opts ...Option) *Editor {
	e := &Editor{ConversationID: conversationID, d: d, sel: Caret(d.Size())}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewFromContent creates an editor from persisted content, falling back to
// the default template when the content does not deserialize.
func NewFromContent(conversationID, content string, opts ...Option) *Editor {
	d, err := doc.Deserialize(content)
	if err != nil {
		d = doc.DefaultTemplate()
	}
	return New(conversationID, d, opts...)
}

// Doc returns the current document. Callers must treat it as immutable; all
// mutation goes through Apply.
func (e *Editor) Doc() *doc.Node { return e.d }

// ReadOnly reports whether the editor rejects edits.
func (e *Editor) ReadOnly() bool { return e.readOnly }

// Focused reports whether the editor has input focus.
func (e *Editor) Focused() bool { return e.focused }

// Focus gives the editor input focus.
func (e *Editor) Focus() { e.focused = true }

// Blur removes input focus, e.g. while a dialog is open.
func (e *Editor) Blur() { e.focused = false }

// DocEnd returns the position at the end of the document.
func (e *Editor) DocEnd() int { return e.d.Size() }

// Selection returns the current selection.
func (e *Editor) Selection() Selection { return e.sel }

// SetSelection moves the selection, clamping both ends into the document.
func (e *Editor) SetSelection(sel Selection) {
	e.sel = e.clamp(sel)
}

func (e *Editor) clamp(sel Selection) Selection {
	size := e.d.Size()
	if sel.Anchor < 0 {
		sel.Anchor = 0
	}
	if sel.Anchor > size {
		sel.Anchor = size
	}
	if sel.Head < 0 {
		sel.Head = 0
	}
	if sel.Head > size {
		sel.Head = size
	}
	return sel
}

// SelectedText returns the plain text under the selection, used to pre-fill
// the task/goal creation dialog.
func (e *Editor) SelectedText() string {
	if e.sel.Empty() {
		return ""
	}
	var out []rune
	from, to := e.sel.From(), e.sel.To()
	e.d.Walk(func(n *doc.Node, pos int, parent *doc.Node) bool {
		if n.IsText() {
			runes := []rune(n.Text)
			start, end := pos, pos+len(runes)
			if end > from && start < to {
				lo, hi := max(from-start, 0), min(to-start, len(runes))
				out = append(out, runes[lo:hi]...)
			}
		}
		return true
	})
	return string(out)
}

// =============================================================================
// EDITS
// =============================================================================

// Apply commits one logical edit: the whole batch lands as a single undoable
// step and the selection is remapped through the batch's position mapping.
func (e *Editor) Apply(ops []engine.Op, policy engine.Policy) (*engine.Mapping, error) {
	if e.readOnly {
		return nil, ErrReadOnly
	}
	if len(ops) == 0 {
		return &engine.Mapping{}, nil
	}

	next, mapping, err := engine.ApplyBatch(e.d, ops, policy)
	if err != nil {
		return nil, err
	}

	e.pushUndo()
	e.redo = nil
	e.d = next
	e.sel = e.clamp(Selection{
		Anchor: mapping.Map(e.sel.Anchor),
		Head:   mapping.Map(e.sel.Head),
	})
	if e.onChange != nil {
		e.onChange(e.d)
	}
	return mapping, nil
}

func (e *Editor) pushUndo() {
	e.undo = append(e.undo, snapshot{d: e.d, sel: e.sel})
	if len(e.undo) > maxUndoDepth {
		e.undo = e.undo[len(e.undo)-maxUndoDepth:]
	}
}

// Undo reverts the most recent logical edit. Returns false when there is
// nothing to undo.
func (e *Editor) Undo() bool {
	if e.readOnly || len(e.undo) == 0 {
		return false
	}
	last := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	e.redo = append(e.redo, snapshot{d: e.d, sel: e.sel})
	e.d, e.sel = last.d, last.sel
	if e.onChange != nil {
		e.onChange(e.d)
	}
	return true
}

// Redo re-applies the most recently undone edit.
func (e *Editor) Redo() bool {
	if e.readOnly || len(e.redo) == 0 {
		return false
	}
	last := e.redo[len(e.redo)-1]
	e.redo = e.redo[:len(e.redo)-1]
	e.undo = append(e.undo, snapshot{d: e.d, sel: e.sel})
	e.d, e.sel = last.d, last.sel
	if e.onChange != nil {
		e.onChange(e.d)
	}
	return true
}

// Serialize renders the current document to its persisted form.
func (e *Editor) Serialize() (string, error) {
	return doc.Serialize(e.d)
}
