// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store is the application store for task and goal records.
//
// Records are owned here, not by the document: a taskChip in a conversation
// document references a record by id and never the other way around. Every
// write goes through the designated actions (Create, Update, Toggle) so that
// reads are never torn mid-update; lookups are served from an in-memory
// snapshot and are cheap enough to call on every chip render.
//
// Persistence is a SQLite database (modernc.org/sqlite, pure Go driver); the
// snapshot is loaded once at Open and kept in sync by the write actions.
//
// # Usage
//
//	s, err := store.Open(filepath.Join(dataDir, "cadence.db"))
//	id, err := s.Create(store.Draft{Type: store.ItemTask, Title: "Follow up"})
//	item, ok := s.Lookup(id)
package store
