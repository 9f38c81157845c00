// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides conversation persistence for cadence TUI.
package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/cadence-tui/internal/doc"
	"github.com/jeranaias/cadence-tui/internal/util"
)

// =============================================================================
// STORED CONVERSATION TYPE
// =============================================================================

// Conversation represents a persisted 1:1 conversation record.
type Conversation struct {
	// Identity
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Participant string    `json:"participant"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Document holds the serialized notes document. Empty means the
	// conversation has never been edited; the editor falls back to the
	// default template on load.
	Document string `json:"document,omitempty"`
}

// Meta contains metadata for listing conversations without loading their
// documents.
type Meta struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Participant string    `json:"participant"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Preview     string    `json:"preview"` // First document text truncated
}

// =============================================================================
// CONVERSATION STORE
// =============================================================================

// Store handles conversation persistence. Each conversation is one JSON file
// under BaseDir, named by its ID.
type Store struct {
	// BaseDir is the directory for storing conversations
	// Default: ~/.cadence/conversations/
	BaseDir string
}

// NewStore creates a conversation store under the user's home directory.
func NewStore() (*Store, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewStoreWithDir(filepath.Join(homeDir, ".cadence", "conversations"))
}

// NewStoreWithDir creates a store with a custom directory.
func NewStoreWithDir(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return &Store{BaseDir: baseDir}, nil
}

// =============================================================================
// SAVE OPERATIONS
// =============================================================================

// Save persists a conversation and returns its ID.
func (s *Store) Save(conv *Conversation) (string, error) {
	if conv.ID == "" {
		conv.ID = uuid.NewString()
	}
	if conv.Title == "" {
		conv.Title = defaultTitle(conv.Participant)
	}

	conv.UpdatedAt = time.Now()
	if conv.CreatedAt.IsZero() {
		conv.CreatedAt = conv.UpdatedAt
	}

	data, err := json.MarshalIndent(conv, "", "  ")
	if err != nil {
		return "", err
	}

	// RELIABILITY: Atomic write with fsync prevents data loss on crash
	if err := util.AtomicWriteFile(s.filePath(conv.ID), data, 0644); err != nil {
		return "", err
	}
	return conv.ID, nil
}

// SaveDocument updates only the document content of an existing conversation.
func (s *Store) SaveDocument(id, document string) error {
	conv, err := s.Load(id)
	if err != nil {
		return err
	}
	conv.Document = document
	_, err = s.Save(conv)
	return err
}

// defaultTitle derives a title when the caller left it blank.
func defaultTitle(participant string) string {
	if participant == "" {
		return "New 1:1"
	}
	return "1:1 with " + participant
}

// =============================================================================
// LOAD OPERATIONS
// =============================================================================

// Load retrieves a conversation by ID.
func (s *Store) Load(id string) (*Conversation, error) {
	data, err := os.ReadFile(s.filePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}

	var conv Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// LoadByIndex loads a conversation by its index in the list (0 = most recent).
func (s *Store) LoadByIndex(index int) (*Conversation, error) {
	metas, err := s.List()
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(metas) {
		return nil, ErrConversationNotFound
	}
	return s.Load(metas[index].ID)
}

// =============================================================================
// LIST OPERATIONS
// =============================================================================

// List returns all saved conversations (most recent first).
func (s *Store) List() ([]Meta, error) {
	entries, err := os.ReadDir(s.BaseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Meta{}, nil
		}
		return nil, err
	}

	var metas []Meta

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), ".json")
		conv, err := s.Load(id)
		if err != nil {
			continue // Skip corrupted files
		}

		metas = append(metas, Meta{
			ID:          conv.ID,
			Title:       conv.Title,
			Participant: conv.Participant,
			CreatedAt:   conv.CreatedAt,
			UpdatedAt:   conv.UpdatedAt,
			Preview:     conv.Preview(),
		})
	}

	// Sort by updated time (most recent first)
	sort.Slice(metas, func(i, j int) bool {
		return metas[i].UpdatedAt.After(metas[j].UpdatedAt)
	})

	return metas, nil
}

// Search finds conversations whose title, participant, or preview matches the
// query string (case-insensitive).
func (s *Store) Search(query string) ([]Meta, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	if query == "" {
		return all, nil
	}

	query = strings.ToLower(query)
	var results []Meta

	for _, meta := range all {
		if strings.Contains(strings.ToLower(meta.Title), query) ||
			strings.Contains(strings.ToLower(meta.Participant), query) ||
			strings.Contains(strings.ToLower(meta.Preview), query) {
			results = append(results, meta)
		}
	}
	return results, nil
}

// SearchDocuments searches conversations by document text content. Returns
// conversations whose notes contain the query string (case-insensitive).
func (s *Store) SearchDocuments(query string) ([]Meta, error) {
	if query == "" {
		return s.List()
	}

	query = strings.ToLower(query)
	all, err := s.List()
	if err != nil {
		return nil, err
	}

	var results []Meta

	for _, meta := range all {
		conv, err := s.Load(meta.ID)
		if err != nil {
			continue
		}
		d, err := conv.ParseDocument()
		if err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(d.TextContent()), query) {
			results = append(results, meta)
		}
	}
	return results, nil
}

// =============================================================================
// DELETE OPERATIONS
// =============================================================================

// Delete removes a conversation by ID.
func (s *Store) Delete(id string) error {
	if err := os.Remove(s.filePath(id)); err != nil {
		if os.IsNotExist(err) {
			return ErrConversationNotFound
		}
		return err
	}
	return nil
}

// Clear removes all saved conversations.
func (s *Store) Clear() error {
	entries, err := os.ReadDir(s.BaseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			os.Remove(filepath.Join(s.BaseDir, entry.Name()))
		}
	}
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// filePath returns the file path for a conversation ID.
func (s *Store) filePath(id string) string {
	return filepath.Join(s.BaseDir, id+".json")
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrConversationNotFound is returned when a conversation doesn't exist.
// Use errors.Is(err, ErrConversationNotFound) to check for this error.
var ErrConversationNotFound = errors.New("conversation not found")

// =============================================================================
// DOCUMENT ACCESS
// =============================================================================

// ParseDocument deserializes the conversation's notes document. An empty
// document yields the default template.
func (c *Conversation) ParseDocument() (*doc.Node, error) {
	if c.Document == "" {
		return doc.DefaultTemplate(), nil
	}
	return doc.Deserialize(c.Document)
}

// Preview returns the first line of document text, truncated for list views.
func (c *Conversation) Preview() string {
	d, err := c.ParseDocument()
	if err != nil {
		return ""
	}
	text := d.TextContent()
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	return util.TruncateRunes(strings.TrimSpace(text), 80)
}

// ExportMarkdown exports the conversation's notes as a Markdown document with
// a metadata header.
func (c *Conversation) ExportMarkdown() (string, error) {
	d, err := c.ParseDocument()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("# " + c.Title + "\n\n")
	if c.Participant != "" {
		sb.WriteString("Participant: " + c.Participant + "\n\n")
	}
	sb.WriteString("Created: " + c.CreatedAt.Format(time.RFC3339) + "\n\n")
	sb.WriteString("---\n\n")
	sb.WriteString(doc.ToMarkdown(d))
	return sb.String(), nil
}
