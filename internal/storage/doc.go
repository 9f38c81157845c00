// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides conversation persistence for cadence.
//
// This package handles saving and loading conversations to/from disk,
// with support for search, listing, and Markdown export.
//
// # Key Types
//
//   - Store: file-backed store, one JSON file per conversation
//   - Conversation: a 1:1 conversation with its serialized document
//   - Meta: lightweight metadata for listing without loading documents
//
// # Usage
//
// Create a store and save a conversation:
//
//	store, err := storage.NewStoreWithDir(dir)
//	id, err := store.Save(&storage.Conversation{Participant: "Alex"})
//
// List and load conversations:
//
//	metas, err := store.List()
//	conv, err := store.Load(metas[0].ID)
//
// Search titles and participants, or full document text:
//
//	results, err := store.Search("alex")
//	results, err = store.SearchDocuments("quarterly goals")
//
// # Storage Location
//
// Conversations are stored under <data dir>/conversations/ as JSON
// files named by ID. Writes are atomic with fsync.
package storage
