// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package slash implements the slash command system for the editor.
//
// A "/" typed at a word boundary opens a contextual menu over a static
// command catalog. The detector re-evaluates on every document change by
// inspecting the text immediately before the cursor; the menu filters live
// as the user types; committing a command deletes the trigger and query span
// and executes the command's edit in the same logical operation, so undo
// removes both as a unit.
package slash

import (
	"strings"
	"unicode"

	"github.com/jeranaias/cadence-tui/internal/doc"
)

// =============================================================================
// TRIGGER DETECTION
// =============================================================================

// Trigger is the character that begins a slash command.
const Trigger = '/'

// maxLookbehind bounds how much text before the cursor is inspected.
const maxLookbehind = 64

// Detection is the result of inspecting the text before the cursor.
type Detection struct {
	// Active is true when an in-progress command token sits before the
	// cursor.
	Active bool

	// TriggerPos is the absolute document position of the trigger character.
	TriggerPos int

	// Query is the text between the trigger (exclusive) and the cursor.
	Query string
}

// Detect inspects the text immediately before cursor in its text block. A
// trigger only counts at a word boundary: start of block, or preceded by a
// space; a "/" appearing mid-word never opens the menu.
func Detect(d *doc.Node, cursor int) Detection {
	text := doc.TextBefore(d, cursor, maxLookbehind)
	runes := []rune(text)

	idx := -1
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == Trigger {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Detection{}
	}
	if idx > 0 && !unicode.IsSpace(runes[idx-1]) {
		return Detection{}
	}

	query := string(runes[idx+1:])
	if strings.ContainsRune(query, Trigger) {
		return Detection{}
	}

	return Detection{
		Active:     true,
		TriggerPos: cursor - (len(runes) - idx),
		Query:      query,
	}
}
