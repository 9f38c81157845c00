// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the cadence TUI.

This package contains styled components built on top of the Bubble Tea
and Lip Gloss libraries. Components hold no application state beyond
display settings; the app model owns the data and hands it to them at
render time.

# Components

Header (header.go) - Title bar with branding, conversation, and mode badge.
StatusBar (statusbar.go) - Bottom bar with save state, record counts, and shortcuts.
TaskPane (task_list.go) - Side pane listing a conversation's tasks and goals.
RecordDialog (dialog.go) - Modal create/edit form for task and goal records.
SlashMenuPopup (slashmenu.go) - Popup rendering for the open slash menu.

# Theme Integration

All components accept a *styles.Theme for consistent styling:

	theme := styles.NewTheme()
	header := components.NewHeader(theme)
	header.SetWidth(80)
	header.SetConversation("Weekly sync", "Alex")
	view := header.View()

# Helper Functions

The package includes shared helper functions in helpers.go:
  - toStr() - Integer to string conversion without fmt
  - fmtNumber() - Thousands-separated number formatting
*/
package components
