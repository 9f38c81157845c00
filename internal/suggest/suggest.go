// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package suggest produces pending aiBlock nodes for a conversation
// document.
//
// The real suggestion source is an external process; this generator is its
// local stand-in. It runs the two-phase algorithm the block pipeline relies
// on: one tree scan collects every placeholder paragraph, then a single
// batch replaces each with a pending block, positions mapped through the
// earlier replacements in the batch. With no placeholders present, one block
// is appended at document end.
package suggest

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/jeranaias/cadence-tui/internal/doc"
	"github.com/jeranaias/cadence-tui/internal/editor"
	"github.com/jeranaias/cadence-tui/internal/engine"
)

// ErrRateLimited is returned when generation runs are requested faster than
// the configured rate.
var ErrRateLimited = fmt.Errorf("suggestion generation rate limited")

// =============================================================================
// GENERATOR
// =============================================================================

// Generator creates pending suggestion blocks.
type Generator struct {
	limiter *rate.Limiter
	newID   func() string
}

// NewGenerator creates a generator allowing runsPerMinute generation runs
// with a small burst.
func NewGenerator(runsPerMinute int) *Generator {
	if runsPerMinute <= 0 {
		runsPerMinute = 6
	}
	return &Generator{
		limiter: rate.NewLimiter(rate.Limit(float64(runsPerMinute)/60.0), 2),
		newID:   uuid.NewString,
	}
}

// Run replaces every placeholder paragraph in the editor's document with a
// pending aiBlock, or appends one block at document end when no placeholder
// exists. Returns the number of blocks inserted.
func (g *Generator) Run(ed *editor.Editor, conversationTitle string) (int, error) {
	if ed == nil {
		return 0, fmt.Errorf("generate suggestions: no editor")
	}
	if !g.limiter.Allow() {
		return 0, ErrRateLimited
	}

	d := ed.Doc()
	placeholders := doc.FindPlaceholders(d, doc.PlaceholderMarker)

	if len(placeholders) == 0 {
		block := g.candidateBlock(conversationTitle, 0)
		op := engine.InsertNode(ed.DocEnd(), block)
		if _, err := ed.Apply([]engine.Op{op}, engine.AllOrNothing); err != nil {
			return 0, fmt.Errorf("generate suggestions: %w", err)
		}
		return 1, nil
	}

	// Positions come from one pre-edit scan; the engine maps each later
	// replacement through the earlier ones.
	var ops []engine.Op
	for i, f := range placeholders {
		ops = append(ops, engine.ReplaceRange(
			f.Pos, f.Pos+f.Node.Size(),
			g.candidateBlock(conversationTitle, i),
		).Expecting(doc.TypeParagraph))
	}
	if _, err := ed.Apply(ops, engine.SkipStale); err != nil {
		return 0, fmt.Errorf("generate suggestions: %w", err)
	}
	return len(ops), nil
}

// candidateBlock fabricates one pending suggestion block. Content and
// suggestions are canned; a production generator would derive them from the
// conversation history.
func (g *Generator) candidateBlock(conversationTitle string, ordinal int) *doc.Node {
	title := "Suggested agenda"
	if conversationTitle != "" {
		title = "Suggested agenda for " + conversationTitle
	}
	if ordinal > 0 {
		title = fmt.Sprintf("%s (%d)", title, ordinal+1)
	}

	content := strings.Join([]string{
		"Review the action items from the previous 1:1.",
		"",
		"Walk through current workload and flag anything blocked.",
	}, "\n")

	return doc.NewAIBlock(doc.AIBlockAttrs{
		BlockID: g.newID(),
		Title:   title,
		Content: content,
		Goals: []doc.SuggestedGoal{
			{ID: g.newID(), Title: "Agree on one growth area for this quarter"},
		},
		Tasks: []doc.SuggestedTask{
			{ID: g.newID(), Title: "Write up blockers before next session"},
		},
		Status: doc.BlockPending,
	})
}
