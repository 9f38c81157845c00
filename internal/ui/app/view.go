// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/cadence-tui/internal/doc"
	"github.com/jeranaias/cadence-tui/internal/ui/components"
	"github.com/jeranaias/cadence-tui/internal/ui/styles"
)

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m *Model) View() string {
	if m.screen == screenList {
		return m.viewList()
	}
	return m.viewEditor()
}

// viewEditor renders the editor screen.
func (m *Model) viewEditor() string {
	var b strings.Builder

	if m.theme.GetLayoutMode() == styles.LayoutNarrow {
		b.WriteString(m.header.ViewCompact())
	} else {
		b.WriteString(m.header.View())
	}
	b.WriteString("\n")

	body := m.viewBody()

	switch m.overlay {
	case overlayDialog:
		body = m.overlayCenter(body, m.dialog.View())
	case overlayBlockEdit:
		body = m.overlayCenter(body, m.viewBlockEdit())
	case overlayHelp:
		body = m.overlayCenter(body, m.viewHelp())
	}

	b.WriteString(body)
	b.WriteString("\n")

	if m.menu != nil {
		if m.theme.GetLayoutMode() == styles.LayoutNarrow {
			b.WriteString(m.slashPopup.ViewCompact(m.menu))
		} else {
			b.WriteString(m.slashPopup.View(m.menu))
		}
		b.WriteString("\n")
	}

	if line := m.viewMessageLine(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}

	m.status.SetDirty(m.sess.IsDirty())
	b.WriteString(m.status.View())

	return b.String()
}

// viewBody renders the document column, joined with the task pane when shown.
func (m *Model) viewBody() string {
	var docView string
	if m.preview {
		docView = m.viewPreview()
	} else {
		docView = m.renderDocument()
	}
	docView = m.theme.Container.Width(m.docWidth()).Render(docView)

	if !m.showPane || m.paneWidth() == 0 {
		return docView
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, docView, m.pane.View())
}

// viewPreview renders the document as glamour-formatted markdown.
func (m *Model) viewPreview() string {
	if m.glam == nil {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(m.docWidth()),
		)
		if err != nil {
			return m.renderDocument()
		}
		m.glam = r
	}
	out, err := m.glam.Render(doc.ToMarkdown(m.ed.Doc()))
	if err != nil {
		return m.renderDocument()
	}
	return out
}

// togglePreview switches between editing and the rendered preview.
func (m *Model) togglePreview() {
	m.preview = !m.preview
	m.menu = nil
	if m.preview {
		m.ed.Blur()
		m.header.SetMode(components.ModeReadOnly)
		return
	}
	m.ed.Focus()
	if m.ed.ReadOnly() {
		m.header.SetMode(components.ModeReadOnly)
	} else {
		m.header.SetMode(components.ModeEdit)
	}
}

// viewBlockEdit renders the suggestion edit overlay.
func (m *Model) viewBlockEdit() string {
	content := m.theme.DialogTitle.Render("Edit suggestion") + "\n\n" +
		m.blockEdit.View() + "\n\n" +
		lipgloss.NewStyle().Foreground(styles.TextMuted).
			Render("enter: save  esc: cancel")
	return m.theme.DialogBox.Width(min(m.width-10, 70)).Render(content)
}

// viewHelp renders the key reference overlay.
func (m *Model) viewHelp() string {
	rows := []struct{ key, desc string }{
		{"/", "open the command menu"},
		{"ctrl+s", "save now"},
		{"ctrl+z / ctrl+y", "undo / redo"},
		{"ctrl+d / ctrl+g", "new task / goal from selection"},
		{"ctrl+t", "toggle task pane"},
		{"ctrl+o", "focus task pane"},
		{"ctrl+r", "toggle markdown preview"},
		{"alt+c", "cycle chip focus, enter toggles"},
		{"alt+a / alt+x", "approve / reject suggestion"},
		{"alt+e", "edit suggestion in place"},
		{"alt+s", "generate AI suggestions"},
		{"esc", "back"},
	}

	var b strings.Builder
	b.WriteString(m.theme.DialogTitle.Render("Keys"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(m.theme.ShortcutKey.Width(18).Render(r.key))
		b.WriteString(m.theme.ShortcutDesc.Render(r.desc))
		b.WriteString("\n")
	}
	return m.theme.DialogBox.Width(min(m.width-10, 56)).Render(b.String())
}

// viewMessageLine renders the transient notice or error line.
func (m *Model) viewMessageLine() string {
	if m.errText != "" {
		return styles.RenderError(m.errText)
	}
	if m.notice != "" {
		return styles.RenderInfo(m.notice)
	}
	return ""
}

// overlayCenter places an overlay box on its own centered band; the body is
// dimmed out rather than composited under it.
func (m *Model) overlayCenter(body, overlay string) string {
	_ = body
	return lipgloss.Place(m.width, lipgloss.Height(overlay)+4,
		lipgloss.Center, lipgloss.Center, overlay)
}
