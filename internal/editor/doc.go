// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package editor owns the live editing state of one conversation document.
//
// An Editor pairs a document with a selection and an undo history. Every
// logical edit goes through Apply as one engine batch and lands as exactly
// one undoable step; the selection is remapped through the batch's position
// mapping so edits never corrupt the cursor.
//
// The package also provides:
//
//   - Selection capture/restore across focus loss (dialogs opened mid-edit)
//   - Registry, the explicit active-editor service that lets components
//     outside the editor's own tree (task list rows, dialog buttons) trigger
//     insertions; "no active editor" is a valid, checked state
package editor
