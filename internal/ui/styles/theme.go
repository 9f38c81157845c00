// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for cadence TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style
	HeaderBrand    lipgloss.Style

	// ==========================================================================
	// DOCUMENT STYLES
	// ==========================================================================

	Heading1   lipgloss.Style
	Heading2   lipgloss.Style
	Heading3   lipgloss.Style
	Paragraph  lipgloss.Style
	Bullet     lipgloss.Style
	Blockquote lipgloss.Style
	Selection  lipgloss.Style
	Cursor     lipgloss.Style

	// ==========================================================================
	// CHIP STYLES
	// ==========================================================================

	ChipTask     lipgloss.Style
	ChipGoal     lipgloss.Style
	ChipDone     lipgloss.Style
	ChipOrphaned lipgloss.Style
	ChipFocused  lipgloss.Style

	// ==========================================================================
	// SUGGESTION BLOCK STYLES
	// ==========================================================================

	BlockPending     lipgloss.Style
	BlockTitle       lipgloss.Style
	BlockBadge       lipgloss.Style
	BlockItem        lipgloss.Style
	BlockActionsHint lipgloss.Style

	// ==========================================================================
	// SLASH MENU STYLES
	// ==========================================================================

	MenuPopup    lipgloss.Style
	MenuGroup    lipgloss.Style
	MenuItem     lipgloss.Style
	MenuSelected lipgloss.Style
	MenuIcon     lipgloss.Style
	MenuDesc     lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	StatusDirty  lipgloss.Style
	StatusSaved  lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// DIALOG STYLES
	// ==========================================================================

	DialogBox          lipgloss.Style
	DialogTitle        lipgloss.Style
	DialogLabel        lipgloss.Style
	DialogButton       lipgloss.Style
	DialogButtonActive lipgloss.Style

	// ==========================================================================
	// CONVERSATION LIST STYLES
	// ==========================================================================

	ConvList         lipgloss.Style
	ConvItem         lipgloss.Style
	ConvItemSelected lipgloss.Style
	ConvTitle        lipgloss.Style
	ConvMeta         lipgloss.Style

	// ==========================================================================
	// TASK PANE STYLES
	// ==========================================================================

	TaskPane      lipgloss.Style
	TaskPaneTitle lipgloss.Style
	TaskItem      lipgloss.Style
	TaskSelected  lipgloss.Style
	TaskDone      lipgloss.Style
	TaskMeta      lipgloss.Style

	// ==========================================================================
	// ERROR BOX STYLES
	// ==========================================================================

	ErrorBox     lipgloss.Style
	ErrorTitle   lipgloss.Style
	ErrorMessage lipgloss.Style

	// ==========================================================================
	// ACCESSIBILITY: Status indicator styles with shapes and high contrast
	// ==========================================================================

	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	InfoStyle    lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	// Detect terminal capabilities
	colorProfile := termenv.ColorProfile()
	hasTrueColor := colorProfile == termenv.TrueColor
	isDark := termenv.HasDarkBackground()

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: hasTrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.HeaderBrand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	// Document rendering
	t.Heading1 = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.Heading2 = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.Heading3 = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.Paragraph = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.Bullet = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.Blockquote = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(Overlay).
		PaddingLeft(1)

	t.Selection = lipgloss.NewStyle().
		Background(SelectionBg)

	t.Cursor = lipgloss.NewStyle().
		Reverse(true)

	// Chips
	t.ChipTask = lipgloss.NewStyle().
		Foreground(ChipTaskFg).
		Background(ChipTaskBg).
		Padding(0, 1)

	t.ChipGoal = lipgloss.NewStyle().
		Foreground(ChipGoalFg).
		Background(ChipGoalBg).
		Padding(0, 1)

	t.ChipDone = lipgloss.NewStyle().
		Foreground(ChipDoneFg).
		Background(ChipDoneBg).
		Strikethrough(true).
		Padding(0, 1)

	t.ChipOrphaned = lipgloss.NewStyle().
		Foreground(ChipOrphanFg).
		Background(ChipOrphanBg).
		Padding(0, 1)

	t.ChipFocused = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Cyan).
		Bold(true).
		Padding(0, 1)

	// Suggestion blocks
	t.BlockPending = lipgloss.NewStyle().
		Background(BlockPendingBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(BlockPendingBorder).
		Padding(0, 2)

	t.BlockTitle = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.BlockBadge = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Amber).
		Padding(0, 1).
		Bold(true)

	t.BlockItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		PaddingLeft(2)

	t.BlockActionsHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Slash menu popup
	t.MenuPopup = lipgloss.NewStyle().
		Background(Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.MenuGroup = lipgloss.NewStyle().
		Foreground(TextMuted).
		Bold(true)

	t.MenuItem = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.MenuSelected = lipgloss.NewStyle().
		Background(Purple).
		Foreground(TextInverse).
		Bold(true)

	t.MenuIcon = lipgloss.NewStyle().
		Foreground(Cyan).
		Width(3)

	t.MenuDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.StatusDirty = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.StatusSaved = lipgloss.NewStyle().
		Foreground(Emerald)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Dialogs
	t.DialogBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Background(Surface).
		Padding(1, 2)

	t.DialogTitle = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)

	t.DialogLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.DialogButton = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Overlay).
		Padding(0, 2).
		MarginRight(1)

	t.DialogButtonActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Bold(true).
		Padding(0, 2).
		MarginRight(1)

	// Conversation list
	t.ConvList = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(1, 2)

	t.ConvItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.ConvItemSelected = lipgloss.NewStyle().
		Background(Purple).
		Foreground(TextInverse).
		Bold(true).
		Padding(0, 1)

	t.ConvTitle = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ConvMeta = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Task pane
	t.TaskPane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.TaskPaneTitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.TaskItem = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.TaskSelected = lipgloss.NewStyle().
		Background(SelectionBg).
		Bold(true)

	t.TaskDone = lipgloss.NewStyle().
		Foreground(TextMuted).
		Strikethrough(true)

	t.TaskMeta = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Error boxes
	t.ErrorBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Rose).
		Padding(1, 2)

	t.ErrorTitle = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.ErrorMessage = lipgloss.NewStyle().
		Foreground(TextPrimary)

	// ==========================================================================
	// ACCESSIBILITY: Status indicator styles with shapes and high contrast
	// ==========================================================================

	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(SuccessHighContrast).
		Bold(true)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(ErrorHighContrast).
		Bold(true)

	t.WarningStyle = lipgloss.NewStyle().
		Foreground(WarningHighContrast).
		Bold(true)

	t.InfoStyle = lipgloss.NewStyle().
		Foreground(InfoHighContrast).
		Bold(true)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
