// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the cadence TUI application.

This package defines the complete color palette and component styles used
throughout the application. All colors use Lip Gloss AdaptiveColor for
automatic light/dark terminal detection.

# Color System (colors.go)

## Primary Accent Colors

  - Purple - Primary accent for headings and selections
  - Cyan - Brand color for info, commands, and task chips
  - Emerald - Success states and completed tasks
  - Amber - Warnings and pending suggestion blocks
  - Rose - Errors and orphaned chips

## Semantic Colors

Chips and suggestion blocks use semantic color tokens:

	ChipTaskBg     - Background for task chips
	ChipGoalBg     - Background for goal chips
	ChipOrphanBg   - Background for chips whose record is gone
	BlockPendingBg - Background for pending suggestion blocks

## Surface Colors

Layered surface system for depth:

	Surface    - Main background
	SurfaceDim - Subtle backgrounds (headers, status bars)
	Overlay    - Borders and popups

## Text Colors

Hierarchical text color system:

	TextPrimary   - Main content text
	TextSecondary - Supporting text
	TextMuted     - De-emphasized text
	TextInverse   - Text on colored backgrounds

# Theme System (theme.go)

The Theme struct provides runtime color adaptation:

	theme := styles.NewTheme()
	if theme.IsDark {
		// Dark terminal detected
	}
	if theme.HasTrueColor {
		// Terminal supports 16M colors
	}

# Status Indicators

ASCII indicators for various states, used alongside color so status reads
correctly for colorblind users:

	StatusIndicators.Success - [OK]
	StatusIndicators.Error   - [X]
	StatusIndicators.Warning - [!]
	StatusIndicators.Info    - [i]

# Usage Example

	import "github.com/jeranaias/cadence-tui/internal/ui/styles"

	// Use adaptive colors
	headerStyle := lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextPrimary)

	// Use theme styles directly
	theme := styles.NewTheme()
	chip := theme.ChipTask.Render("[task] Write report")
*/
package styles
