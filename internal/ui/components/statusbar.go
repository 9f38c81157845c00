// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/cadence-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT - Bottom status bar
// =============================================================================

// Status represents the current application status.
type Status int

const (
	StatusReady Status = iota
	StatusSaving
	StatusSaved
	StatusError
	StatusReadOnly
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusSaving:
		return "Saving..."
	case StatusSaved:
		return "Saved"
	case StatusError:
		return "Error"
	case StatusReadOnly:
		return "Read-only"
	default:
		return "Unknown"
	}
}

// Icon returns an icon for the status.
// ACCESSIBILITY: Uses distinct shapes alongside colors for colorblind users
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusSaving:
		return styles.StatusIndicators.Pending
	case StatusSaved:
		return styles.StatusIndicators.Success
	case StatusError:
		return styles.StatusIndicators.Error
	case StatusReadOnly:
		return styles.StatusIndicators.Info
	default:
		return "?"
	}
}

// StatusBar represents the bottom status bar.
type StatusBar struct {
	Status        Status
	Dirty         bool      // Unsaved document changes
	LastSaved     time.Time // Zero when never saved this session
	TaskCount     int       // Open tasks in the conversation
	GoalCount     int       // Open goals in the conversation
	Width         int
	ShowShortcuts bool
	theme         *styles.Theme
}

// NewStatusBar creates a new StatusBar component.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Status:        StatusReady,
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetStatus updates the current status.
func (s *StatusBar) SetStatus(status Status) {
	s.Status = status
}

// SetDirty updates the unsaved-changes indicator.
func (s *StatusBar) SetDirty(dirty bool) {
	s.Dirty = dirty
}

// SetLastSaved records when the document was last persisted.
func (s *StatusBar) SetLastSaved(t time.Time) {
	s.LastSaved = t
}

// SetCounts updates the open task and goal counts.
func (s *StatusBar) SetCounts(tasks, goals int) {
	s.TaskCount = tasks
	s.GoalCount = goals
}

// View renders the status bar.
func (s *StatusBar) View() string {
	if s.Width < 60 {
		return s.viewNarrow()
	}
	if s.Width < 100 {
		return s.viewMedium()
	}
	return s.viewWide()
}

// viewNarrow renders a compact status bar for narrow terminals.
// Format: [*] icon tasks
func (s *StatusBar) viewNarrow() string {
	parts := []string{}

	parts = append(parts, s.renderDirtyBadge())

	statusStyle := s.getStatusStyle()
	parts = append(parts, statusStyle.Render(s.Status.Icon()))

	if s.TaskCount > 0 {
		countStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
		parts = append(parts, countStyle.Render(fmtNumber(s.TaskCount)+"t"))
	}

	result := strings.Join(parts, " ")

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Width(s.Width).
		Render(result)
}

// viewMedium renders a medium-width status bar.
// Format: [Unsaved] | Saved 2m ago | 3 tasks, 1 goal | Status
func (s *StatusBar) viewMedium() string {
	separator := lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Render(" | ")

	parts := []string{}

	parts = append(parts, s.renderDirtyBadge())

	if saved := s.renderSaveAge(); saved != "" {
		parts = append(parts, saved)
	}

	parts = append(parts, s.renderCounts())

	statusStyle := s.getStatusStyle()
	parts = append(parts, statusStyle.Render(s.Status.String()))

	result := strings.Join(parts, separator)

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Padding(0, 1).
		Width(s.Width).
		Render(result)
}

// viewWide renders a full-featured status bar for wide terminals.
// Format: [Unsaved] | Saved 2m ago | 3 tasks, 1 goal ... Status  shortcuts
func (s *StatusBar) viewWide() string {
	leftSep := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")

	leftParts := []string{s.renderDirtyBadge()}
	if saved := s.renderSaveAge(); saved != "" {
		leftParts = append(leftParts, saved)
	}
	leftParts = append(leftParts, s.renderCounts())
	leftSection := strings.Join(leftParts, leftSep)

	// Right section: status and shortcuts
	rightParts := []string{}
	statusStyle := s.getStatusStyle()
	rightParts = append(rightParts, statusStyle.Render(s.Status.Icon()+" "+s.Status.String()))
	if s.ShowShortcuts {
		rightParts = append(rightParts, s.renderShortcuts())
	}
	rightSection := strings.Join(rightParts, "  ")

	leftWidth := lipgloss.Width(leftSection)
	rightWidth := lipgloss.Width(rightSection)

	spacing := s.Width - leftWidth - rightWidth - 4
	if spacing < 2 {
		spacing = 2
	}

	result := leftSection + strings.Repeat(" ", spacing) + rightSection

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(styles.Overlay).
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Padding(0, 1).
		Width(s.Width).
		Render(result)
}

// ==========================================================================
// HELPER RENDER METHODS
// ==========================================================================

// renderDirtyBadge renders the saved/unsaved indicator.
// ACCESSIBILITY: Uses shape (asterisk vs checkmark) alongside color
func (s *StatusBar) renderDirtyBadge() string {
	if s.Dirty {
		return s.theme.StatusDirty.Render("[* Unsaved]")
	}
	return s.theme.StatusSaved.Render("[" + styles.StatusIndicators.Success + " Saved]")
}

// renderSaveAge renders how long ago the document was last saved.
func (s *StatusBar) renderSaveAge() string {
	if s.LastSaved.IsZero() {
		return ""
	}
	age := time.Since(s.LastSaved)
	var text string
	switch {
	case age < 5*time.Second:
		text = "just now"
	case age < time.Minute:
		text = fmtNumber(int(age.Seconds())) + "s ago"
	case age < time.Hour:
		text = fmtNumber(int(age.Minutes())) + "m ago"
	default:
		text = s.LastSaved.Format("15:04")
	}
	return lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Render("saved " + text)
}

// renderCounts renders the open task and goal counts.
func (s *StatusBar) renderCounts() string {
	countStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)

	tasks := fmtNumber(s.TaskCount) + " task"
	if s.TaskCount != 1 {
		tasks += "s"
	}
	goals := fmtNumber(s.GoalCount) + " goal"
	if s.GoalCount != 1 {
		goals += "s"
	}
	return countStyle.Render(tasks + ", " + goals)
}

// renderShortcuts renders keyboard shortcut hints.
func (s *StatusBar) renderShortcuts() string {
	keyStyle := s.theme.ShortcutKey
	descStyle := s.theme.ShortcutDesc

	shortcuts := []string{
		keyStyle.Render("/") + descStyle.Render("cmds"),
		keyStyle.Render("^S") + descStyle.Render("save"),
		keyStyle.Render("^T") + descStyle.Render("tasks"),
		keyStyle.Render("^Z") + descStyle.Render("undo"),
	}

	return strings.Join(shortcuts, " ")
}

// getStatusStyle returns the style for the current status.
// ACCESSIBILITY: Uses high contrast colors with bold for colorblind users
func (s *StatusBar) getStatusStyle() lipgloss.Style {
	switch s.Status {
	case StatusReady, StatusSaved:
		return lipgloss.NewStyle().Foreground(styles.SuccessHighContrast).Bold(true)
	case StatusSaving:
		return lipgloss.NewStyle().Foreground(styles.WarningHighContrast).Bold(true)
	case StatusError:
		return lipgloss.NewStyle().Foreground(styles.ErrorHighContrast).Bold(true)
	case StatusReadOnly:
		return lipgloss.NewStyle().Foreground(styles.InfoHighContrast).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(styles.TextMuted)
	}
}
