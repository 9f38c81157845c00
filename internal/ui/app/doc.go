// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the top-level bubbletea model for cadence.
//
// The model drives two screens: the conversation list and the editor. The
// editor screen composes the document renderer with the slash command menu,
// the task pane, and modal overlays for record dialogs and in-place
// suggestion edits. All state transitions run through Update; rendering in
// View is pure over the model state.
//
// Store writes are observed through RecordsChangedMsg, which main wires to
// the store's subscription so chips and the task pane re-resolve after every
// committed write, regardless of where the write originated.
package app
