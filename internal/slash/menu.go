// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package slash implements the slash command system for the editor.
package slash

import (
	"fmt"
	"strings"

	"github.com/jeranaias/cadence-tui/internal/editor"
	"github.com/jeranaias/cadence-tui/internal/engine"
)

// =============================================================================
// FILTERING
// =============================================================================

// Filter returns the catalog entries whose title or description contains the
// query, case-insensitively, preserving catalog order.
func Filter(catalog []Command, query string) []Command {
	if query == "" {
		return catalog
	}
	q := strings.ToLower(query)
	var out []Command
	for _, c := range catalog {
		if strings.Contains(strings.ToLower(c.Title), q) ||
			strings.Contains(strings.ToLower(c.Description), q) {
			out = append(out, c)
		}
	}
	return out
}

// Group is one labeled menu section.
type Group struct {
	Label    string
	Commands []Command
}

// GroupCommands groups filtered commands by their group label, preserving
// catalog order both across groups and within each group.
func GroupCommands(cmds []Command) []Group {
	var groups []Group
	index := map[string]int{}
	for _, c := range cmds {
		i, ok := index[c.Group]
		if !ok {
			i = len(groups)
			index[c.Group] = i
			groups = append(groups, Group{Label: c.Group})
		}
		groups[i].Commands = append(groups[i].Commands, c)
	}
	return groups
}

// =============================================================================
// MENU STATE
// =============================================================================

// Menu is the open slash menu: the current detection, the filtered and
// grouped commands, and the highlighted index over the flattened list.
type Menu struct {
	Detection Detection
	Groups    []Group

	flat      []Command
	highlight int
}

// NewMenu filters the catalog with the detection's query and opens a menu.
// Returns nil when nothing matches.
func NewMenu(catalog []Command, det Detection) *Menu {
	flat := Filter(catalog, det.Query)
	if len(flat) == 0 {
		return nil
	}
	return &Menu{
		Detection: det,
		Groups:    GroupCommands(flat),
		flat:      flat,
	}
}

// Len returns the number of visible commands.
func (m *Menu) Len() int { return len(m.flat) }

// HighlightIndex returns the highlighted position in the flattened list.
func (m *Menu) HighlightIndex() int { return m.highlight }

// Highlighted returns the highlighted command.
func (m *Menu) Highlighted() Command { return m.flat[m.highlight] }

// Next moves the highlight down, wrapping at the end.
func (m *Menu) Next() {
	m.highlight = (m.highlight + 1) % len(m.flat)
}

// Prev moves the highlight up, wrapping at the start.
func (m *Menu) Prev() {
	m.highlight--
	if m.highlight < 0 {
		m.highlight = len(m.flat) - 1
	}
}

// =============================================================================
// COMMIT
// =============================================================================

// Commit executes a command: the span from the trigger character to the
// cursor is deleted and the command's edit applies in the same batch, so the
// whole commit is a single undoable step. The command's After hook runs once
// the batch has applied.
func Commit(ed *editor.Editor, det Detection, cmd Command) error {
	if !det.Active {
		return fmt.Errorf("slash commit: no active trigger")
	}
	cursor := ed.Selection().Head

	ops := []engine.Op{engine.DeleteRange(det.TriggerPos, cursor)}
	if cmd.Build != nil {
		ops = append(ops, cmd.Build(BuildContext{Doc: ed.Doc(), Pos: det.TriggerPos})...)
	}
	if _, err := ed.Apply(ops, engine.AllOrNothing); err != nil {
		return fmt.Errorf("slash commit %s: %w", cmd.Key, err)
	}
	if cmd.After != nil {
		cmd.After()
	}
	return nil
}
