// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session provides editing-session state with dirty tracking and
// periodic auto-save.
//
// # Key Types
//
//   - Manager: Session manager with dirty tracking and auto-save scheduling
//   - TickMsg: Bubble Tea message driving periodic checks
//   - AutoSaveMsg: Bubble Tea message signalling a save is due
//
// # Usage
//
// Create a session manager and wire in a save function:
//
//	mgr := session.NewManager(session.DefaultConfig())
//	mgr.SetAutoSaveCallback(saveDocument)
//
// Mark the session dirty whenever the document changes:
//
//	mgr.MarkDirty()
//
// Drive it from the Bubble Tea update loop:
//
//	case session.TickMsg:
//	    return m, m.session.HandleTick()
//
// A save only runs when the session is dirty and the configured interval has
// elapsed since the last save; a failed save leaves the session dirty so the
// next tick retries.
package session
