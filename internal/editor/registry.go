// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package editor owns the live editing state of one conversation document.
package editor

import (
	"sync"
)

// =============================================================================
// ACTIVE EDITOR REGISTRY
// =============================================================================

// Registry tracks the active editor so components outside the editor's own
// tree can trigger insertions. Read-only editors never register; callers
// must treat a missing active editor as a normal state, not an error.
type Registry struct {
	mu     sync.Mutex
	active *Editor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register sets the active editor. Read-only editors are ignored.
func (r *Registry) Register(e *Editor) {
	if e == nil || e.ReadOnly() {
		return
	}
	r.mu.Lock()
	r.active = e
	r.mu.Unlock()
}

// Unregister clears the active editor if it is the given one.
func (r *Registry) Unregister(e *Editor) {
	r.mu.Lock()
	if r.active == e {
		r.active = nil
	}
	r.mu.Unlock()
}

// Active returns the active editor, or false when none is registered.
func (r *Registry) Active() (*Editor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active, r.active != nil
}
