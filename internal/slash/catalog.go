// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package slash implements the slash command system for the editor.
package slash

import (
	"github.com/jeranaias/cadence-tui/internal/doc"
	"github.com/jeranaias/cadence-tui/internal/engine"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// BuildContext is what a command's Build gets to compute its edit against.
// Pos is the trigger position; operations built here join the same batch as
// the trigger-span delete, with positions taken against the pre-commit
// document snapshot.
type BuildContext struct {
	Doc *doc.Node
	Pos int
}

// Command is one catalog entry.
type Command struct {
	// Key is the stable identifier (e.g. "heading1").
	Key string

	// Title and Description feed the menu filter and display.
	Title       string
	Description string

	// Icon is a short glyph shown in the menu.
	Icon string

	// Group labels the menu section the command renders under.
	Group string

	// Build returns the edit operations the command performs, or nil for
	// commands that only run a side effect.
	Build func(ctx BuildContext) []engine.Op

	// After runs once the commit batch has applied; used by commands that
	// hand control to a dialog or an external flow.
	After func()
}

// Hooks bind catalog entries that leave the editor to their external
// collaborators. Nil hooks drop the corresponding commands from the catalog.
type Hooks struct {
	// OpenTaskDialog opens the task creation dialog, optionally pre-filled.
	OpenTaskDialog func(prefillTitle string)

	// OpenGoalDialog opens the goal creation dialog.
	OpenGoalDialog func(prefillTitle string)

	// GenerateSuggestions asks for AI suggestion blocks for this document.
	GenerateSuggestions func()

	// PrefillTitle supplies the selected text captured before commit.
	PrefillTitle func() string
}

// =============================================================================
// CATALOG
// =============================================================================

// Catalog builds the command list. It is static apart from the bound hooks
// and is rebuilt per render; order here is display order within each group.
func Catalog(hooks Hooks) []Command {
	prefill := func() string {
		if hooks.PrefillTitle != nil {
			return hooks.PrefillTitle()
		}
		return ""
	}

	cmds := []Command{
		{
			Key: "heading1", Title: "Heading 1", Description: "Large section heading",
			Icon: "H1", Group: "Format",
			Build: setBlockType(doc.TypeHeading, &doc.HeadingAttrs{Level: 1}),
		},
		{
			Key: "heading2", Title: "Heading 2", Description: "Medium section heading",
			Icon: "H2", Group: "Format",
			Build: setBlockType(doc.TypeHeading, &doc.HeadingAttrs{Level: 2}),
		},
		{
			Key: "heading3", Title: "Heading 3", Description: "Small section heading",
			Icon: "H3", Group: "Format",
			Build: setBlockType(doc.TypeHeading, &doc.HeadingAttrs{Level: 3}),
		},
		{
			Key: "text", Title: "Text", Description: "Plain paragraph",
			Icon: "¶", Group: "Format",
			Build: setBlockType(doc.TypeParagraph, nil),
		},
		{
			Key: "bullets", Title: "Bullet List", Description: "Turn the block into a list",
			Icon: "•", Group: "Format",
			Build: setBlockType(doc.TypeBulletList, nil),
		},
		{
			Key: "quote", Title: "Quote", Description: "Quote the current block",
			Icon: "❝", Group: "Format",
			Build: setBlockType(doc.TypeBlockquote, nil),
		},
	}

	if hooks.OpenTaskDialog != nil {
		cmds = append(cmds, Command{
			Key: "task", Title: "Task", Description: "Create a task and insert its chip",
			Icon: "☐", Group: "Insert",
			After: func() { hooks.OpenTaskDialog(prefill()) },
		})
	}
	if hooks.OpenGoalDialog != nil {
		cmds = append(cmds, Command{
			Key: "goal", Title: "Goal", Description: "Create a goal and insert its chip",
			Icon: "◎", Group: "Insert",
			After: func() { hooks.OpenGoalDialog(prefill()) },
		})
	}
	if hooks.GenerateSuggestions != nil {
		cmds = append(cmds, Command{
			Key: "suggest", Title: "AI Suggestions", Description: "Generate agenda suggestions",
			Icon: "✦", Group: "AI",
			After: hooks.GenerateSuggestions,
		})
	}

	return cmds
}

func setBlockType(t doc.NodeType, attrs doc.Attrs) func(BuildContext) []engine.Op {
	return func(ctx BuildContext) []engine.Op {
		return []engine.Op{engine.SetBlockType(ctx.Pos, t, attrs)}
	}
}
