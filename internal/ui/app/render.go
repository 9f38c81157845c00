// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"

	"github.com/jeranaias/cadence-tui/internal/doc"
	"github.com/jeranaias/cadence-tui/internal/store"
	"github.com/jeranaias/cadence-tui/internal/ui/styles"
	"github.com/jeranaias/cadence-tui/internal/util"
)

// =============================================================================
// DOCUMENT RENDERING
// =============================================================================

// renderCtx carries per-render state through the block walk.
type renderCtx struct {
	selFrom, selTo int
	head           int
	showCursor     bool

	// chipIndex counts chips in document order to match the focus index.
	chipIndex int
	chipFocus int

	width int
}

// renderDocument renders the editor's document with cursor, selection, chips
// and pending suggestion blocks.
func (m *Model) renderDocument() string {
	d := m.ed.Doc()
	sel := m.ed.Selection()

	ctx := &renderCtx{
		selFrom:    sel.From(),
		selTo:      sel.To(),
		head:       sel.Head,
		showCursor: m.ed.Focused() && !m.ed.ReadOnly(),
		chipFocus:  m.chipFocus,
		width:      m.docWidth(),
	}

	var blocks []string
	pos := 0
	for _, c := range d.Content {
		blocks = append(blocks, m.renderBlock(c, pos, ctx))
		pos += c.Size()
	}
	return strings.Join(blocks, "\n")
}

// renderBlock renders one block node starting at pos.
func (m *Model) renderBlock(n *doc.Node, pos int, ctx *renderCtx) string {
	switch n.Type {
	case doc.TypeParagraph:
		return m.theme.Paragraph.Width(ctx.width).Render(m.renderInline(n, pos, ctx))

	case doc.TypeHeading:
		level := 1
		if a, ok := n.Attrs.(*doc.HeadingAttrs); ok {
			level = a.Level
		}
		style := m.theme.Heading1
		switch level {
		case 2:
			style = m.theme.Heading2
		case 3:
			style = m.theme.Heading3
		}
		return style.Width(ctx.width).Render(m.renderInline(n, pos, ctx))

	case doc.TypeBulletList:
		var items []string
		cur := pos + 1
		for _, item := range n.Content {
			items = append(items, m.renderListItem(item, cur, ctx))
			cur += item.Size()
		}
		return strings.Join(items, "\n")

	case doc.TypeBlockquote:
		var inner []string
		cur := pos + 1
		for _, c := range n.Content {
			inner = append(inner, m.renderBlock(c, cur, ctx))
			cur += c.Size()
		}
		return m.theme.Blockquote.Width(ctx.width).Render(strings.Join(inner, "\n"))

	case doc.TypeAIBlock:
		return m.renderAIBlock(n, ctx)

	default:
		return m.theme.Paragraph.Render(n.TextContent())
	}
}

// renderListItem renders a listItem's blocks behind a bullet.
func (m *Model) renderListItem(item *doc.Node, pos int, ctx *renderCtx) string {
	var inner []string
	cur := pos + 1
	for _, c := range item.Content {
		inner = append(inner, m.renderBlock(c, cur, ctx))
		cur += c.Size()
	}
	return m.theme.Bullet.Render("- ") + strings.Join(inner, "\n  ")
}

// =============================================================================
// INLINE RENDERING
// =============================================================================

// renderInline renders a text block's inline content, inserting the cursor
// and applying selection highlight by absolute position.
func (m *Model) renderInline(block *doc.Node, blockPos int, ctx *renderCtx) string {
	var b strings.Builder
	cur := blockPos + 1

	for _, c := range block.Content {
		switch {
		case c.IsText():
			b.WriteString(m.renderTextRun(c.Text, cur, ctx))
		case c.Type == doc.TypeTaskChip:
			if ctx.showCursor && ctx.head == cur {
				b.WriteString(m.theme.Cursor.Render(" "))
			}
			b.WriteString(m.renderChip(c, ctx))
		case c.Type == doc.TypeImage:
			if a, ok := c.Attrs.(*doc.ImageAttrs); ok {
				alt := a.Alt
				if alt == "" {
					alt = a.Src
				}
				b.WriteString(m.theme.ConvMeta.Render("[img: " + alt + "]"))
			}
		}
		cur += c.Size()
	}

	// Caret at the very end of the block content.
	if ctx.showCursor && ctx.head == cur {
		b.WriteString(m.theme.Cursor.Render(" "))
	}
	if b.Len() == 0 {
		// An empty block still needs a visible line.
		return " "
	}
	return b.String()
}

// renderTextRun renders one text node, splitting it around the selection and
// the caret.
func (m *Model) renderTextRun(text string, start int, ctx *renderCtx) string {
	runes := []rune(text)

	var b strings.Builder
	for i, r := range runes {
		pos := start + i
		if ctx.showCursor && ctx.head == pos {
			b.WriteString(m.theme.Cursor.Render(" "))
		}
		if pos >= ctx.selFrom && pos < ctx.selTo && ctx.selFrom != ctx.selTo {
			b.WriteString(m.theme.Selection.Render(string(r)))
		} else {
			b.WriteString(string(r))
		}
	}
	// A caret at the run's end is drawn by the next sibling or the caller.
	return b.String()
}

// =============================================================================
// CHIPS
// =============================================================================

// renderChip renders a taskChip from its live record state.
func (m *Model) renderChip(n *doc.Node, ctx *renderCtx) string {
	idx := ctx.chipIndex
	ctx.chipIndex++

	attrs, ok := n.Attrs.(*doc.ChipAttrs)
	if !ok {
		return ""
	}
	r := m.chipMgr.Resolve(*attrs)

	title := util.TruncateRunes(r.Title, 40)
	var rendered string
	switch {
	case r.Orphaned:
		rendered = m.theme.ChipOrphaned.Render("[!] " + title + " (removed)")
	case r.ChipType == doc.ChipGoal:
		icon := "(*)"
		if r.Status == store.StatusCompleted {
			icon = "(OK)"
		}
		rendered = m.theme.ChipGoal.Render(icon + " " + title)
	case r.Status == store.StatusCompleted:
		rendered = m.theme.ChipDone.Render("[x] " + title)
	default:
		rendered = m.theme.ChipTask.Render("[ ] " + title)
	}

	if idx == ctx.chipFocus {
		return m.theme.ChipFocused.Render(rendered)
	}
	return rendered
}

// =============================================================================
// AI BLOCKS
// =============================================================================

// renderAIBlock renders a pending suggestion block panel.
func (m *Model) renderAIBlock(n *doc.Node, ctx *renderCtx) string {
	attrs, ok := n.Attrs.(*doc.AIBlockAttrs)
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.BlockBadge.Render("AI SUGGESTION"))
	b.WriteString(" ")
	b.WriteString(m.theme.ConvMeta.Render(string(attrs.Status)))
	b.WriteString("\n")

	if attrs.Title != "" {
		b.WriteString(m.theme.BlockTitle.Render(attrs.Title))
		b.WriteString("\n")
	}

	content := attrs.Content
	if buf, editing := m.blockMgr.Editing(attrs.BlockID); editing {
		content = buf
	}
	if content != "" {
		b.WriteString(content)
		b.WriteString("\n")
	}

	for _, g := range attrs.Goals {
		b.WriteString(m.theme.BlockItem.Render("(*) " + g.Title))
		b.WriteString("\n")
	}
	for _, t := range attrs.Tasks {
		line := "[ ] " + t.Title
		if t.Assignee != "" {
			line += " @" + t.Assignee
		}
		b.WriteString(m.theme.BlockItem.Render(line))
		b.WriteString("\n")
	}

	b.WriteString(m.theme.BlockActionsHint.Render("alt+a approve  alt+x reject  alt+e edit"))

	width := ctx.width
	if width > 8 {
		width -= 2
	}
	return m.theme.BlockPending.Width(width).Render(b.String())
}

// =============================================================================
// LAYOUT HELPERS
// =============================================================================

// docWidth returns the width available to the document column.
func (m *Model) docWidth() int {
	w := m.width - 4
	if m.showPane {
		w -= m.paneWidth()
	}
	if w < 30 {
		w = 30
	}
	return w
}

// paneWidth returns the task pane width for the current layout.
func (m *Model) paneWidth() int {
	switch m.theme.GetLayoutMode() {
	case styles.LayoutWide:
		return 40
	case styles.LayoutMedium:
		return 32
	default:
		return 0
	}
}
