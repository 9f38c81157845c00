// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store is the application store for task and goal records.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNotFound is returned when no record exists for an id.
	ErrNotFound = errors.New("record not found")

	// ErrNotATask is returned when a task-only action targets a goal.
	ErrNotATask = errors.New("record is not a task")
)

// =============================================================================
// RECORD TYPES
// =============================================================================

// ItemType distinguishes tasks from goals.
type ItemType string

const (
	// ItemTask is an actionable task record.
	ItemTask ItemType = "task"
	// ItemGoal is a longer-horizon goal record.
	ItemGoal ItemType = "goal"
)

// Status is a record's progress status.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// StatusChange is one entry of a goal's status history.
type StatusChange struct {
	Status Status    `json:"status"`
	At     time.Time `json:"at"`
	Note   string    `json:"note,omitempty"`
}

// Item is a task or goal record.
type Item struct {
	ID             string
	Type           ItemType
	Title          string
	Description    string
	Status         Status
	DueDate        time.Time
	Assignee       string
	ConversationID string

	// History tracks status transitions; populated for goals.
	History []StatusChange

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Draft is the payload for creating a record.
type Draft struct {
	Type           ItemType
	Title          string
	Description    string
	Status         Status
	DueDate        time.Time
	Assignee       string
	ConversationID string
}

// Patch is a partial update; nil fields are left unchanged.
type Patch struct {
	Title       *string
	Description *string
	Status      *Status
	DueDate     *time.Time
	Assignee    *string
}

// =============================================================================
// STORE
// =============================================================================

// Store holds all task and goal records. Reads come from the in-memory
// snapshot; writes go to SQLite first and then update the snapshot and
// notify subscribers.
type Store struct {
	db *sql.DB

	mu    sync.RWMutex
	items map[string]*Item

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// Open opens (creating if needed) the store database at path and loads the
// record snapshot.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	// Single writer; the app is event-driven on one goroutine.
	db.SetMaxOpenConns(1)

	s := &Store{
		db:    db,
		items: make(map[string]*Item),
		subs:  make(map[int]func()),
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	if err := s.loadSnapshot(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS items (
			id              TEXT PRIMARY KEY,
			type            TEXT NOT NULL,
			title           TEXT NOT NULL,
			description     TEXT NOT NULL DEFAULT '',
			status          TEXT NOT NULL,
			due_date        INTEGER NOT NULL DEFAULT 0,
			assignee        TEXT NOT NULL DEFAULT '',
			conversation_id TEXT NOT NULL DEFAULT '',
			history         TEXT NOT NULL DEFAULT '[]',
			created_at      INTEGER NOT NULL,
			updated_at      INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_items_conversation ON items(conversation_id);
	`)
	if err != nil {
		return fmt.Errorf("migrate store: %w", err)
	}
	return nil
}

func (s *Store) loadSnapshot() error {
	rows, err := s.db.Query(`
		SELECT id, type, title, description, status, due_date, assignee,
		       conversation_id, history, created_at, updated_at
		FROM items`)
	if err != nil {
		return fmt.Errorf("load store snapshot: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			it               Item
			due, created, up int64
			history          string
		)
		if err := rows.Scan(&it.ID, &it.Type, &it.Title, &it.Description, &it.Status,
			&due, &it.Assignee, &it.ConversationID, &history, &created, &up); err != nil {
			return fmt.Errorf("load store snapshot: %w", err)
		}
		if due != 0 {
			it.DueDate = time.Unix(due, 0).UTC()
		}
		it.CreatedAt = time.Unix(created, 0).UTC()
		it.UpdatedAt = time.Unix(up, 0).UTC()
		if err := json.Unmarshal([]byte(history), &it.History); err != nil {
			// A corrupt history blob should not take the whole store down.
			it.History = nil
		}
		s.items[it.ID] = &it
	}
	return rows.Err()
}

// =============================================================================
// READ ACTIONS
// =============================================================================

// Lookup returns the record with the given id from the snapshot. This is the
// synchronous read used for chip resolution; it never touches the database.
func (s *Store) Lookup(id string) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.items[id]
	if !ok {
		return Item{}, false
	}
	return *it, true
}

// ForConversation returns every record tied to a conversation, newest first.
func (s *Store) ForConversation(conversationID string) []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Item
	for _, it := range s.items {
		if it.ConversationID == conversationID {
			out = append(out, *it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// All returns every record, newest first.
func (s *Store) All() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, *it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// =============================================================================
// WRITE ACTIONS
// =============================================================================

// Create persists a new record and returns its id for chip binding.
func (s *Store) Create(d Draft) (string, error) {
	if d.Title == "" {
		return "", fmt.Errorf("create record: title must not be empty")
	}
	if d.Type != ItemTask && d.Type != ItemGoal {
		return "", fmt.Errorf("create record: unknown type %q", d.Type)
	}
	status := d.Status
	if status == "" {
		status = StatusPending
	}

	now := time.Now().UTC()
	it := &Item{
		ID:             uuid.NewString(),
		Type:           d.Type,
		Title:          d.Title,
		Description:    d.Description,
		Status:         status,
		DueDate:        d.DueDate,
		Assignee:       d.Assignee,
		ConversationID: d.ConversationID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if d.Type == ItemGoal {
		it.History = []StatusChange{{Status: status, At: now}}
	}

	if err := s.persist(it); err != nil {
		return "", err
	}

	s.mu.Lock()
	s.items[it.ID] = it
	s.mu.Unlock()
	s.notify()
	return it.ID, nil
}

// Update merges the patch into an existing record.
func (s *Store) Update(id string, p Patch) error {
	s.mu.Lock()
	it, ok := s.items[id]
	if !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	cp := *it
	if p.Title != nil {
		cp.Title = *p.Title
	}
	if p.Description != nil {
		cp.Description = *p.Description
	}
	if p.Status != nil && *p.Status != cp.Status {
		cp.Status = *p.Status
		if cp.Type == ItemGoal {
			cp.History = append(append([]StatusChange(nil), cp.History...),
				StatusChange{Status: *p.Status, At: time.Now().UTC()})
		}
	}
	if p.DueDate != nil {
		cp.DueDate = *p.DueDate
	}
	if p.Assignee != nil {
		cp.Assignee = *p.Assignee
	}
	cp.UpdatedAt = time.Now().UTC()
	s.mu.Unlock()

	if err := s.persist(&cp); err != nil {
		return err
	}

	s.mu.Lock()
	s.items[id] = &cp
	s.mu.Unlock()
	s.notify()
	return nil
}

// ToggleTask flips a task between completed and pending. It never produces
// in_progress: completed becomes pending, anything else becomes completed.
// Goals are rejected; their status changes go through the full edit dialog.
func (s *Store) ToggleTask(id string) error {
	it, ok := s.Lookup(id)
	if !ok {
		return ErrNotFound
	}
	if it.Type != ItemTask {
		return ErrNotATask
	}
	next := StatusCompleted
	if it.Status == StatusCompleted {
		next = StatusPending
	}
	return s.Update(id, Patch{Status: &next})
}

// persist writes a record row.
func (s *Store) persist(it *Item) error {
	history, err := json.Marshal(it.History)
	if err != nil {
		return fmt.Errorf("persist record: %w", err)
	}
	var due int64
	if !it.DueDate.IsZero() {
		due = it.DueDate.Unix()
	}
	_, err = s.db.Exec(`
		INSERT INTO items (id, type, title, description, status, due_date,
		                   assignee, conversation_id, history, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			status = excluded.status,
			due_date = excluded.due_date,
			assignee = excluded.assignee,
			history = excluded.history,
			updated_at = excluded.updated_at`,
		it.ID, it.Type, it.Title, it.Description, it.Status, due,
		it.Assignee, it.ConversationID, string(history),
		it.CreatedAt.Unix(), it.UpdatedAt.Unix())
	if err != nil {
		return fmt.Errorf("persist record: %w", err)
	}
	return nil
}

// =============================================================================
// SUBSCRIPTIONS
// =============================================================================

// Subscribe registers a callback invoked after every committed write, so the
// UI can re-render chips when a record changes elsewhere. The returned
// function unsubscribes.
func (s *Store) Subscribe(fn func()) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
