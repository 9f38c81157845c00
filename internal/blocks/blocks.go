// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package blocks manages the lifecycle of aiBlock document nodes.
//
// An aiBlock starts pending and leaves the document on either transition:
// approval creates store records for its suggestions and splices the block's
// content plus one chip per created record into its place as a single
// undoable edit; rejection removes the node and creates nothing. A local
// edit buffer supports in-place content editing while the block stays
// pending.
package blocks

import (
	"fmt"
	"log"

	"github.com/jeranaias/cadence-tui/internal/doc"
	"github.com/jeranaias/cadence-tui/internal/editor"
	"github.com/jeranaias/cadence-tui/internal/engine"
	"github.com/jeranaias/cadence-tui/internal/store"
)

// =============================================================================
// STORE CAPABILITY
// =============================================================================

// Creator is the record-creation capability approval writes through.
type Creator interface {
	Create(d store.Draft) (string, error)
}

// =============================================================================
// MANAGER
// =============================================================================

// Manager drives aiBlock transitions and holds in-place edit buffers.
type Manager struct {
	creator Creator

	// buffers maps blockId to the text being edited in place. The buffer
	// replaces the block's content attribute on save and is discarded on
	// cancel; the block's document status stays pending throughout.
	buffers map[string]string
}

// NewManager creates a block manager writing through the given creator.
func NewManager(c Creator) *Manager {
	return &Manager{creator: c, buffers: make(map[string]string)}
}

// =============================================================================
// APPROVE
// =============================================================================

// ApproveResult reports what an approval did.
type ApproveResult struct {
	// CreatedIDs are the store record ids created from the block's
	// suggestions, goals first.
	CreatedIDs []string

	// Spliced is false when the document replacement was skipped (editor
	// unavailable or the block already gone).
	Spliced bool
}

// Approve transitions a pending block to approved: every suggested goal and
// task becomes a store record tied to the conversation, and the block node
// is replaced in the document by its title, its content as plain nodes, and
// one chip per created record — all as one undoable edit.
//
// When ed is nil or the block is no longer in the document, record creation
// still proceeds and the splice is skipped.
func (m *Manager) Approve(ed *editor.Editor, conversationID string, attrs doc.AIBlockAttrs) (ApproveResult, error) {
	var res ApproveResult

	chips := make([]*doc.Node, 0, len(attrs.Goals)+len(attrs.Tasks))
	for _, g := range attrs.Goals {
		id, err := m.creator.Create(store.Draft{
			Type:           store.ItemGoal,
			Title:          g.Title,
			Description:    g.Description,
			ConversationID: conversationID,
		})
		if err != nil {
			return res, fmt.Errorf("approve block: create goal: %w", err)
		}
		res.CreatedIDs = append(res.CreatedIDs, id)
		chips = append(chips, doc.NewTaskChip(doc.ChipAttrs{TaskID: id, Title: g.Title, ChipType: doc.ChipGoal}))
	}
	for _, t := range attrs.Tasks {
		id, err := m.creator.Create(store.Draft{
			Type:           store.ItemTask,
			Title:          t.Title,
			Assignee:       t.Assignee,
			ConversationID: conversationID,
		})
		if err != nil {
			return res, fmt.Errorf("approve block: create task: %w", err)
		}
		res.CreatedIDs = append(res.CreatedIDs, id)
		chips = append(chips, doc.NewTaskChip(doc.ChipAttrs{TaskID: id, Title: t.Title, ChipType: doc.ChipTask}))
	}

	if ed == nil {
		log.Printf("approve block %s: no editor, records created without splice", attrs.BlockID)
		return res, nil
	}

	found := doc.FindAIBlock(ed.Doc(), attrs.BlockID)
	if found == nil {
		log.Printf("approve block %s: block not in document, splice skipped", attrs.BlockID)
		return res, nil
	}

	op := engine.ReplaceRange(
		found.Pos, found.Pos+found.Node.Size(),
		buildReplacement(attrs, chips)...,
	).Expecting(doc.TypeAIBlock)

	if _, err := ed.Apply([]engine.Op{op}, engine.AllOrNothing); err != nil {
		return res, fmt.Errorf("approve block: %w", err)
	}
	res.Spliced = true
	delete(m.buffers, attrs.BlockID)
	return res, nil
}

// ApproveAll approves every pending block in one pass. Replacement
// operations are computed from a single pre-batch scan and applied as one
// batch, so later replacements are position-mapped through earlier ones; a
// block whose target was invalidated mid-batch is skipped, not fatal.
func (m *Manager) ApproveAll(ed *editor.Editor, conversationID string) (int, error) {
	if ed == nil {
		return 0, fmt.Errorf("approve all: no editor")
	}

	var ops []engine.Op
	count := 0
	for _, f := range doc.FindAIBlocks(ed.Doc()) {
		attrs, ok := f.Node.Attrs.(*doc.AIBlockAttrs)
		if !ok || attrs.Status != doc.BlockPending {
			continue
		}

		res, err := m.Approve(nil, conversationID, *attrs) // records only
		if err != nil {
			return count, err
		}

		chips := make([]*doc.Node, 0, len(res.CreatedIDs))
		ids := res.CreatedIDs
		for i, g := range attrs.Goals {
			chips = append(chips, doc.NewTaskChip(doc.ChipAttrs{TaskID: ids[i], Title: g.Title, ChipType: doc.ChipGoal}))
		}
		for i, t := range attrs.Tasks {
			chips = append(chips, doc.NewTaskChip(doc.ChipAttrs{TaskID: ids[len(attrs.Goals)+i], Title: t.Title, ChipType: doc.ChipTask}))
		}

		ops = append(ops, engine.ReplaceRange(
			f.Pos, f.Pos+f.Node.Size(),
			buildReplacement(*attrs, chips)...,
		).Expecting(doc.TypeAIBlock))
		count++
	}
	if len(ops) == 0 {
		return 0, nil
	}

	if _, err := ed.Apply(ops, engine.SkipStale); err != nil {
		return 0, fmt.Errorf("approve all: %w", err)
	}
	return count, nil
}

// buildReplacement assembles the nodes spliced in for an approved block: an
// optional heading from the title, the content as plain blocks, then one
// paragraph of chips each followed by spacing.
func buildReplacement(attrs doc.AIBlockAttrs, chips []*doc.Node) []*doc.Node {
	var out []*doc.Node
	if attrs.Title != "" {
		out = append(out, doc.NewHeading(2, doc.NewText(attrs.Title)))
	}
	if attrs.Content != "" {
		if parsed, err := doc.FromMarkdown([]byte(attrs.Content)); err == nil {
			out = append(out, parsed.Content...)
		} else {
			out = append(out, doc.NewParagraph(doc.NewText(attrs.Content)))
		}
	}
	if len(chips) > 0 {
		var inline []*doc.Node
		for _, c := range chips {
			inline = append(inline, c, doc.NewText(" "))
		}
		out = append(out, doc.NewParagraph(inline...))
	}
	if len(out) == 0 {
		out = append(out, doc.NewParagraph())
	}
	return out
}

// =============================================================================
// REJECT
// =============================================================================

// Reject removes a pending block from the document. No records are created.
func (m *Manager) Reject(ed *editor.Editor, blockID string) error {
	if ed == nil {
		return fmt.Errorf("reject block: no editor")
	}
	found := doc.FindAIBlock(ed.Doc(), blockID)
	if found == nil {
		return nil // already gone
	}
	op := engine.DeleteRange(found.Pos, found.Pos+found.Node.Size()).Expecting(doc.TypeAIBlock)
	if _, err := ed.Apply([]engine.Op{op}, engine.AllOrNothing); err != nil {
		return fmt.Errorf("reject block: %w", err)
	}
	delete(m.buffers, blockID)
	return nil
}

// =============================================================================
// EDIT IN PLACE
// =============================================================================

// StartEdit opens an edit buffer seeded with the block's content and returns
// its current value.
func (m *Manager) StartEdit(attrs doc.AIBlockAttrs) string {
	if _, ok := m.buffers[attrs.BlockID]; !ok {
		m.buffers[attrs.BlockID] = attrs.Content
	}
	return m.buffers[attrs.BlockID]
}

// Editing returns the live buffer for a block, if one is open.
func (m *Manager) Editing(blockID string) (string, bool) {
	text, ok := m.buffers[blockID]
	return text, ok
}

// UpdateBuffer replaces the live buffer text.
func (m *Manager) UpdateBuffer(blockID, text string) {
	if _, ok := m.buffers[blockID]; ok {
		m.buffers[blockID] = text
	}
}

// CancelEdit discards the buffer; the block keeps its prior content.
func (m *Manager) CancelEdit(blockID string) {
	delete(m.buffers, blockID)
}

// SaveEdit writes the buffer into the block's content attribute and closes
// the buffer. The block stays pending.
func (m *Manager) SaveEdit(ed *editor.Editor, blockID string) error {
	text, ok := m.buffers[blockID]
	if !ok {
		return nil
	}
	if ed == nil {
		return fmt.Errorf("save block edit: no editor")
	}
	found := doc.FindAIBlock(ed.Doc(), blockID)
	if found == nil {
		delete(m.buffers, blockID)
		return nil
	}
	attrs := *found.Node.Attrs.(*doc.AIBlockAttrs)
	attrs.Content = text

	op := engine.ReplaceRange(
		found.Pos, found.Pos+found.Node.Size(),
		doc.NewAIBlock(attrs),
	).Expecting(doc.TypeAIBlock)
	if _, err := ed.Apply([]engine.Op{op}, engine.AllOrNothing); err != nil {
		return fmt.Errorf("save block edit: %w", err)
	}
	delete(m.buffers, blockID)
	return nil
}
