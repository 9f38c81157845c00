// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// stores.go - shared store bootstrap for the non-interactive commands.
package cli

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/jeranaias/cadence-tui/internal/config"
	"github.com/jeranaias/cadence-tui/internal/storage"
	"github.com/jeranaias/cadence-tui/internal/store"
)

// ResolveDataDir returns the data directory for this invocation.
// A --data-dir flag wins over the configured (or default) directory.
func ResolveDataDir(args Args) (string, error) {
	if args.DataDir != "" {
		return args.DataDir, nil
	}
	cfg, err := config.Load()
	if err != nil && cfg == nil {
		return "", err
	}
	return cfg.ResolveDataDir()
}

// OpenConversations opens the conversation store under the data directory.
func OpenConversations(args Args) (*storage.Store, error) {
	dataDir, err := ResolveDataDir(args)
	if err != nil {
		return nil, err
	}
	return storage.NewStoreWithDir(filepath.Join(dataDir, "conversations"))
}

// OpenRecords opens the task/goal database under the data directory.
// Callers own the returned store and must Close it.
func OpenRecords(args Args) (*store.Store, error) {
	dataDir, err := ResolveDataDir(args)
	if err != nil {
		return nil, err
	}
	return store.Open(filepath.Join(dataDir, "records.db"))
}

// findConversation resolves a query to a conversation: a list index
// first, then an exact ID, then a title/participant search.
func findConversation(conversations *storage.Store, query string) (*storage.Conversation, error) {
	if query == "" {
		return nil, fmt.Errorf("missing conversation: pass an index from 'cadence list' or an ID")
	}

	if idx, err := strconv.Atoi(query); err == nil {
		return conversations.LoadByIndex(idx)
	}

	if conv, err := conversations.Load(query); err == nil {
		return conv, nil
	}

	metas, err := conversations.Search(query)
	if err != nil {
		return nil, err
	}
	switch len(metas) {
	case 0:
		return nil, fmt.Errorf("no conversation matches %q", query)
	case 1:
		return conversations.Load(metas[0].ID)
	default:
		return nil, fmt.Errorf("%d conversations match %q; use an index or ID", len(metas), query)
	}
}
