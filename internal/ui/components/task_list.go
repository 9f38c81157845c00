// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/cadence-tui/internal/store"
	"github.com/jeranaias/cadence-tui/internal/ui/styles"
)

// =============================================================================
// TASK PANE COMPONENT
// =============================================================================

// TaskPane renders the task and goal records of a conversation as a side
// pane, with a selectable list and a detail view.
type TaskPane struct {
	theme  *styles.Theme
	width  int
	height int

	items    []store.Item
	selected int

	// Filter options
	showCompleted bool
	showGoals     bool
}

// NewTaskPane creates a new task pane component.
func NewTaskPane(theme *styles.Theme) *TaskPane {
	return &TaskPane{
		theme:         theme,
		showCompleted: true,
		showGoals:     true,
	}
}

// =============================================================================
// CONFIGURATION
// =============================================================================

// SetSize sets the component dimensions.
func (tp *TaskPane) SetSize(width, height int) {
	tp.width = width
	tp.height = height
}

// SetItems replaces the displayed records, clamping the selection.
func (tp *TaskPane) SetItems(items []store.Item) {
	tp.items = items
	if tp.selected >= len(tp.filtered()) {
		tp.selected = len(tp.filtered()) - 1
	}
	if tp.selected < 0 {
		tp.selected = 0
	}
}

// SetShowCompleted sets whether completed records are shown.
func (tp *TaskPane) SetShowCompleted(show bool) {
	tp.showCompleted = show
}

// SetShowGoals sets whether goal records are shown.
func (tp *TaskPane) SetShowGoals(show bool) {
	tp.showGoals = show
}

// =============================================================================
// SELECTION
// =============================================================================

// Next moves the selection down.
func (tp *TaskPane) Next() {
	n := len(tp.filtered())
	if n == 0 {
		return
	}
	tp.selected = (tp.selected + 1) % n
}

// Prev moves the selection up.
func (tp *TaskPane) Prev() {
	n := len(tp.filtered())
	if n == 0 {
		return
	}
	tp.selected = (tp.selected - 1 + n) % n
}

// Selected returns the currently selected record, if any.
func (tp *TaskPane) Selected() (store.Item, bool) {
	visible := tp.filtered()
	if tp.selected < 0 || tp.selected >= len(visible) {
		return store.Item{}, false
	}
	return visible[tp.selected], true
}

// filtered returns the records passing the current filters.
func (tp *TaskPane) filtered() []store.Item {
	var out []store.Item
	for _, it := range tp.items {
		if !tp.showCompleted && it.Status == store.StatusCompleted {
			continue
		}
		if !tp.showGoals && it.Type == store.ItemGoal {
			continue
		}
		out = append(out, it)
	}
	return out
}

// =============================================================================
// RENDERING
// =============================================================================

// View renders the task pane.
func (tp *TaskPane) View() string {
	visible := tp.filtered()
	if len(visible) == 0 {
		return tp.renderEmpty()
	}
	return tp.renderItems(visible)
}

// renderEmpty renders the empty state.
func (tp *TaskPane) renderEmpty() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true).
		Padding(2).
		Width(tp.width).
		Align(lipgloss.Center)

	return tp.theme.TaskPane.Render(
		tp.renderHeader() + "\n\n" + emptyStyle.Render("No tasks or goals yet"))
}

// renderItems renders the record list.
func (tp *TaskPane) renderItems(items []store.Item) string {
	var b strings.Builder

	b.WriteString(tp.renderHeader())
	b.WriteString("\n\n")

	for i, it := range items {
		b.WriteString(tp.renderItem(it, i == tp.selected))
		if i < len(items)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n\n")
	b.WriteString(tp.renderFooter(items))

	return tp.theme.TaskPane.Render(b.String())
}

// renderHeader renders the pane header.
func (tp *TaskPane) renderHeader() string {
	return tp.theme.TaskPaneTitle.Width(tp.width - 4).Render("Tasks & Goals")
}

// renderItem renders a single record row.
func (tp *TaskPane) renderItem(it store.Item, selected bool) string {
	icon, color := tp.statusIcon(it)

	title := it.Title
	style := tp.theme.TaskItem
	if selected {
		style = tp.theme.TaskSelected
	}
	if it.Status == store.StatusCompleted {
		style = tp.theme.TaskDone
		if selected {
			style = style.Background(styles.SelectionBg)
		}
	}

	meta := ""
	if !it.DueDate.IsZero() {
		meta = " due " + it.DueDate.Format("Jan 2")
	}
	if it.Assignee != "" {
		meta += " @" + it.Assignee
	}

	row := fmt.Sprintf("%s %s%s",
		lipgloss.NewStyle().Foreground(color).Render(icon),
		style.Render(title),
		tp.theme.TaskMeta.Render(meta),
	)

	rowStyle := lipgloss.NewStyle().
		Padding(0, 1).
		MaxWidth(tp.width - 2)

	return rowStyle.Render(row)
}

// statusIcon returns the icon and color for a record (ASCII-compatible).
func (tp *TaskPane) statusIcon(it store.Item) (string, lipgloss.AdaptiveColor) {
	if it.Type == store.ItemGoal {
		switch it.Status {
		case store.StatusCompleted:
			return "(OK)", styles.Emerald
		case store.StatusInProgress:
			return "(>)", styles.Cyan
		default:
			return "( )", styles.Amber
		}
	}
	switch it.Status {
	case store.StatusCompleted:
		return "[x]", styles.Emerald
	case store.StatusInProgress:
		return "[>]", styles.Cyan
	default:
		return "[ ]", styles.TextSecondary
	}
}

// renderFooter renders the footer with a record summary.
func (tp *TaskPane) renderFooter(items []store.Item) string {
	var tasks, goals, done int
	for _, it := range items {
		if it.Type == store.ItemGoal {
			goals++
		} else {
			tasks++
		}
		if it.Status == store.StatusCompleted {
			done++
		}
	}

	summary := fmt.Sprintf("%d tasks, %d goals, %d done", tasks, goals, done)

	footerStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(styles.Overlay).
		Width(tp.width - 4).
		Padding(0, 1)

	return footerStyle.Render(summary)
}

// =============================================================================
// RECORD DETAIL VIEW
// =============================================================================

// ViewDetail renders detailed information about a record, including a goal's
// status history.
func (tp *TaskPane) ViewDetail(it store.Item) string {
	var b strings.Builder

	icon, color := tp.statusIcon(it)
	header := fmt.Sprintf("%s  %s",
		lipgloss.NewStyle().Foreground(color).Render(icon),
		it.Title,
	)
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.Cyan).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(styles.Overlay).
		Width(tp.width - 4).
		Padding(0, 1)
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n\n")

	labelStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Bold(true)
	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	b.WriteString(labelStyle.Render("Type: "))
	b.WriteString(valueStyle.Render(string(it.Type)))
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Status: "))
	b.WriteString(valueStyle.Render(string(it.Status)))
	b.WriteString("\n")

	if it.Description != "" {
		b.WriteString(labelStyle.Render("Notes: "))
		b.WriteString(valueStyle.Render(it.Description))
		b.WriteString("\n")
	}

	if !it.DueDate.IsZero() {
		b.WriteString(labelStyle.Render("Due: "))
		b.WriteString(valueStyle.Render(it.DueDate.Format("2006-01-02")))
		b.WriteString("\n")
	}

	if it.Assignee != "" {
		b.WriteString(labelStyle.Render("Assignee: "))
		b.WriteString(valueStyle.Render(it.Assignee))
		b.WriteString("\n")
	}

	b.WriteString(labelStyle.Render("Created: "))
	b.WriteString(valueStyle.Render(formatRecordAge(it.CreatedAt)))
	b.WriteString("\n")

	if len(it.History) > 0 {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("History"))
		b.WriteString("\n")
		for _, h := range it.History {
			line := fmt.Sprintf("  %s  %s", h.At.Format("Jan 2 15:04"), h.Status)
			if h.Note != "" {
				line += "  " + h.Note
			}
			b.WriteString(tp.theme.TaskMeta.Render(line))
			b.WriteString("\n")
		}
	}

	return tp.theme.TaskPane.Render(b.String())
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// formatRecordAge formats a timestamp as a relative age for display.
func formatRecordAge(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}
