// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/cadence-tui/internal/storage"
	"github.com/jeranaias/cadence-tui/internal/ui/styles"
	"github.com/jeranaias/cadence-tui/internal/util"
)

// =============================================================================
// CONVERSATION LIST SCREEN
// =============================================================================

// confirmingDelete reports whether the list screen awaits delete confirmation.
func (m *Model) confirmingDelete() bool {
	return m.overlay == overlayConfirmDelete
}

// updateList handles key presses on the conversation list screen.
func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errText = ""

	if m.confirmingDelete() {
		switch msg.String() {
		case "y", "Y":
			if m.listSel < len(m.metas) {
				if err := m.conversations.Delete(m.metas[m.listSel].ID); err != nil {
					m.errText = err.Error()
				}
				m.reloadList(strings.TrimSpace(m.search.Value()))
			}
		}
		m.overlay = overlayNone
		return m, nil
	}

	if m.creating {
		switch msg.String() {
		case "esc":
			m.creating = false
			m.newPart.Blur()
			m.newPart.Reset()
			return m, nil
		case "enter":
			participant := strings.TrimSpace(m.newPart.Value())
			m.creating = false
			m.newPart.Blur()
			m.newPart.Reset()
			if participant == "" {
				return m, nil
			}
			id, err := m.conversations.Save(&storage.Conversation{Participant: participant})
			if err != nil {
				m.errText = err.Error()
				return m, nil
			}
			m.openConversation(id)
			return m, nil
		}
		var cmd tea.Cmd
		m.newPart, cmd = m.newPart.Update(msg)
		return m, cmd
	}

	if m.searching {
		switch msg.String() {
		case "esc":
			m.searching = false
			m.search.Blur()
			m.search.Reset()
			m.reloadList("")
			return m, nil
		case "enter", "down":
			m.searching = false
			m.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.reloadList(strings.TrimSpace(m.search.Value()))
		return m, cmd
	}

	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "down", "j":
		if m.listSel < len(m.metas)-1 {
			m.listSel++
		}
		return m, nil
	case "up", "k":
		if m.listSel > 0 {
			m.listSel--
		}
		return m, nil
	case "enter":
		if m.listSel < len(m.metas) {
			m.openConversation(m.metas[m.listSel].ID)
		}
		return m, nil
	case "n":
		m.creating = true
		m.newPart.Focus()
		return m, nil
	case "d":
		if m.listSel < len(m.metas) {
			m.overlay = overlayConfirmDelete
		}
		return m, nil
	case "/":
		m.searching = true
		m.search.Focus()
		return m, nil
	}
	return m, nil
}

// viewList renders the conversation list screen.
func (m *Model) viewList() string {
	var b strings.Builder

	m.header.SetConversation("", "")
	b.WriteString(m.header.View())
	b.WriteString("\n\n")

	if m.searching || m.search.Value() != "" {
		b.WriteString("  " + m.search.View())
		b.WriteString("\n\n")
	}

	if m.creating {
		box := m.theme.DialogBox.Width(min(m.width-10, 50))
		form := m.theme.DialogTitle.Render("New 1:1 conversation") + "\n\n" +
			m.theme.DialogLabel.Render("With") + " " + m.newPart.View() + "\n\n" +
			lipgloss.NewStyle().Foreground(styles.TextMuted).Render("enter: create  esc: cancel")
		b.WriteString(box.Render(form))
		b.WriteString("\n\n")
	}

	if len(m.metas) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true).
			Padding(1, 2)
		b.WriteString(empty.Render("No conversations yet. Press n to start one."))
	} else {
		b.WriteString(m.theme.ConvList.Render(m.renderMetas()))
	}

	if m.confirmingDelete() && m.listSel < len(m.metas) {
		b.WriteString("\n")
		b.WriteString(styles.RenderWarning("Delete \"" + m.metas[m.listSel].Title + "\"? (y/n)"))
	}

	if m.errText != "" {
		b.WriteString("\n")
		b.WriteString(styles.RenderError(m.errText))
	}

	b.WriteString("\n\n")
	hint := lipgloss.NewStyle().Foreground(styles.TextMuted)
	b.WriteString(hint.Render("  enter: open  n: new  d: delete  /: search  q: quit"))

	return b.String()
}

// renderMetas renders the conversation rows.
func (m *Model) renderMetas() string {
	var rows []string
	maxTitle := m.width - 30
	if maxTitle < 20 {
		maxTitle = 20
	}
	for i, meta := range m.metas {
		title := util.TruncateRunes(meta.Title, maxTitle)
		when := meta.UpdatedAt.Format("Jan 2 15:04")

		var row string
		if i == m.listSel {
			row = m.theme.ConvItemSelected.Render(
				m.theme.ConvTitle.Render(title) + "  " +
					m.theme.ConvMeta.Render(when))
		} else {
			row = m.theme.ConvItem.Render(
				title + "  " + m.theme.ConvMeta.Render(when))
		}
		rows = append(rows, row)

		if meta.Preview != "" {
			preview := util.TruncateRunes(meta.Preview, maxTitle)
			rows = append(rows, m.theme.ConvMeta.Render("    "+preview))
		}
	}
	return strings.Join(rows, "\n")
}
