// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for cadence TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/cadence-tui/internal/slash"
	"github.com/jeranaias/cadence-tui/internal/ui/styles"
	"github.com/jeranaias/cadence-tui/internal/util"
)

// =============================================================================
// SLASH MENU POPUP COMPONENT
// =============================================================================

// SlashMenuPopup renders an open slash menu as a popup anchored near the
// cursor. Selection state lives in slash.Menu; this component only draws.
type SlashMenuPopup struct {
	maxVisible int
	width      int
	theme      *styles.Theme
}

// NewSlashMenuPopup creates a new slash menu popup.
func NewSlashMenuPopup(theme *styles.Theme) *SlashMenuPopup {
	return &SlashMenuPopup{
		maxVisible: 8, // Show up to 8 commands at once
		width:      46,
		theme:      theme,
	}
}

// SetWidth sets the popup width.
func (p *SlashMenuPopup) SetWidth(width int) {
	if width < 24 {
		width = 24
	}
	p.width = width
}

// SetMaxVisible sets the maximum number of visible commands.
func (p *SlashMenuPopup) SetMaxVisible(max int) {
	p.maxVisible = max
}

// View renders the popup for the given menu. Returns "" when the menu is nil
// or empty.
func (p *SlashMenuPopup) View(menu *slash.Menu) string {
	if menu == nil || menu.Len() == 0 {
		return ""
	}

	// Flatten groups to displayable rows: group labels interleaved with
	// commands. Track the flat command index so the highlight lines up.
	type row struct {
		label string // non-empty for group header rows
		cmd   slash.Command
		index int
	}

	var rows []row
	flatIdx := 0
	for _, g := range menu.Groups {
		rows = append(rows, row{label: g.Label})
		for _, c := range g.Commands {
			rows = append(rows, row{cmd: c, index: flatIdx})
			flatIdx++
		}
	}

	// Scrolling window over rows, keeping the highlighted command visible.
	start, end := 0, len(rows)
	if len(rows) > p.maxVisible {
		highlightRow := 0
		for i, r := range rows {
			if r.label == "" && r.index == menu.HighlightIndex() {
				highlightRow = i
				break
			}
		}
		start = highlightRow - p.maxVisible/2
		if start < 0 {
			start = 0
		}
		end = start + p.maxVisible
		if end > len(rows) {
			end = len(rows)
			start = end - p.maxVisible
			if start < 0 {
				start = 0
			}
		}
	}

	var lines []string
	for i := start; i < end; i++ {
		r := rows[i]
		if r.label != "" {
			lines = append(lines, p.theme.MenuGroup.Render(r.label))
			continue
		}
		lines = append(lines, p.renderCommand(r.cmd, r.index == menu.HighlightIndex()))
	}

	boxStyle := p.theme.MenuPopup.
		Width(p.width).
		MaxWidth(p.width)

	return boxStyle.Render(strings.Join(lines, "\n"))
}

// renderCommand renders a single command row.
func (p *SlashMenuPopup) renderCommand(cmd slash.Command, selected bool) string {
	titleStyle := lipgloss.NewStyle().
		Width(16).
		Foreground(styles.TextPrimary)
	descStyle := lipgloss.NewStyle().
		Width(p.width - 24).
		Foreground(styles.TextSecondary)

	if selected {
		titleStyle = titleStyle.
			Background(styles.Purple).
			Foreground(styles.TextInverse).
			Bold(true)
		descStyle = descStyle.
			Foreground(styles.TextPrimary)
	}

	title := util.TruncateRunes(cmd.Title, 16)
	desc := util.TruncateRunes(cmd.Description, p.width-24)

	indicator := " "
	if selected {
		indicator = ">"
	}
	indicatorStyle := lipgloss.NewStyle().
		Width(2).
		Foreground(styles.Cyan)

	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		indicatorStyle.Render(indicator),
		p.theme.MenuIcon.Render(cmd.Icon),
		titleStyle.Render(title),
		descStyle.Render(desc),
	)
}

// ViewCompact renders a compact single-line menu indicator for narrow layouts.
func (p *SlashMenuPopup) ViewCompact(menu *slash.Menu) string {
	if menu == nil || menu.Len() == 0 {
		return ""
	}

	style := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)

	cmd := menu.Highlighted()
	return style.Render(cmd.Title + " (" + util.IntToString(menu.HighlightIndex()+1) +
		"/" + util.IntToString(menu.Len()) + ")")
}
