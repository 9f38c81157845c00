// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/cadence-tui/internal/ui/styles"
)

// =============================================================================
// HEADER COMPONENT - Title bar with cadence branding
// =============================================================================

// EditorMode represents the editing mode shown in the header.
type EditorMode int

const (
	ModeEdit EditorMode = iota
	ModeReadOnly
)

// String returns the display string for the mode.
func (m EditorMode) String() string {
	switch m {
	case ModeEdit:
		return "EDIT"
	case ModeReadOnly:
		return "READ"
	default:
		return "UNKNOWN"
	}
}

// Header represents the title bar component.
type Header struct {
	Title       string // App title (default: "cadence")
	ConvTitle   string // Current conversation title
	Participant string // Other participant of the 1:1
	Mode        EditorMode
	Width       int
	theme       *styles.Theme
}

// NewHeader creates a new Header component with default values.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title: "cadence",
		Mode:  ModeEdit,
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetConversation updates the displayed conversation title and participant.
func (h *Header) SetConversation(title, participant string) {
	h.ConvTitle = title
	h.Participant = participant
}

// SetMode updates the editing mode.
func (h *Header) SetMode(mode EditorMode) {
	h.Mode = mode
}

// View renders the header component.
func (h *Header) View() string {
	width := h.Width
	if width < 40 {
		width = 40
	}
	innerWidth := width - 6

	brandStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.Cyan)
	accentStyle := lipgloss.NewStyle().
		Foreground(styles.Purple)

	brand := accentStyle.Render("< ") +
		brandStyle.Render(h.Title) +
		accentStyle.Render(" >")

	subtitleParts := []string{}

	if h.ConvTitle != "" {
		convStyle := lipgloss.NewStyle().
			Foreground(styles.TextSecondary)
		subtitleParts = append(subtitleParts, convStyle.Render(h.ConvTitle))
	}
	if h.Participant != "" {
		partStyle := lipgloss.NewStyle().
			Foreground(styles.TextMuted)
		subtitleParts = append(subtitleParts, partStyle.Render("with "+h.Participant))
	}

	modeIndicator := h.getModeStyle().Render("[" + h.Mode.String() + "]")
	subtitleParts = append(subtitleParts, modeIndicator)

	subtitle := strings.Join(subtitleParts, " ")

	brandLine := lipgloss.NewStyle().
		Width(innerWidth).
		Align(lipgloss.Center).
		Render(brand)
	subtitleLine := lipgloss.NewStyle().
		Width(innerWidth).
		Align(lipgloss.Center).
		Foreground(styles.TextMuted).
		Render(subtitle)

	content := lipgloss.JoinVertical(lipgloss.Center, brandLine, subtitleLine)

	headerBox := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Purple).
		Background(styles.SurfaceDim).
		Padding(0, 2).
		Width(width)

	return headerBox.Render(content)
}

// ViewCompact renders a compact single-line header for narrow terminals.
func (h *Header) ViewCompact() string {
	// Compact format: <cadence> | conversation | [MODE]
	brandStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.Cyan)
	accentStyle := lipgloss.NewStyle().
		Foreground(styles.Purple)

	brand := accentStyle.Render("<") +
		brandStyle.Render(h.Title) +
		accentStyle.Render(">")

	parts := []string{brand}

	if h.ConvTitle != "" {
		convStyle := lipgloss.NewStyle().
			Foreground(styles.TextMuted)
		parts = append(parts, convStyle.Render(h.ConvTitle))
	}

	parts = append(parts, h.getModeStyle().Render("["+h.Mode.String()+"]"))

	separator := lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Render(" | ")

	return strings.Join(parts, separator)
}

// getModeStyle returns the style for the current mode badge.
func (h *Header) getModeStyle() lipgloss.Style {
	switch h.Mode {
	case ModeEdit:
		return lipgloss.NewStyle().
			Foreground(styles.Emerald).
			Bold(true)
	case ModeReadOnly:
		return lipgloss.NewStyle().
			Foreground(styles.Amber).
			Bold(true)
	default:
		return lipgloss.NewStyle().
			Foreground(styles.TextMuted)
	}
}
