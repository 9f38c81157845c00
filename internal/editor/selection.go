// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package editor owns the live editing state of one conversation document.
package editor

// =============================================================================
// SELECTION CAPTURE / RESTORE
// =============================================================================

// Descriptor is an opaque, serializable capture of a selection, taken before
// control transfers away from the editor (e.g. a dialog opens) and restored
// before the returning insertion.
type Descriptor struct {
	Anchor int `json:"anchor"`
	Head   int `json:"head"`
}

// CaptureSelection captures the current selection, or nil when the editor is
// not focused. Callers opening a dialog from a non-editor context simply
// have no descriptor, and insertion falls back to document end.
func (e *Editor) CaptureSelection() *Descriptor {
	if !e.focused {
		return nil
	}
	return &Descriptor{Anchor: e.sel.Anchor, Head: e.sel.Head}
}

// RestoreSelection re-focuses the editor and restores a captured selection.
// A nil descriptor, or positions no longer valid because the document
// shrank, fall back to a caret at document end rather than failing.
func (e *Editor) RestoreSelection(d *Descriptor) {
	e.focused = true
	if d == nil {
		e.sel = Caret(e.d.Size())
		return
	}
	size := e.d.Size()
	if d.Anchor < 0 || d.Anchor > size || d.Head < 0 || d.Head > size {
		e.sel = Caret(size)
		return
	}
	e.sel = Selection{Anchor: d.Anchor, Head: d.Head}
}
