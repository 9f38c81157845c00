// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/cadence-tui/internal/doc"
	"github.com/jeranaias/cadence-tui/internal/editor"
	"github.com/jeranaias/cadence-tui/internal/engine"
)

// =============================================================================
// EDIT KEY HANDLING
// =============================================================================

// handleEditKey applies document edits and caret movement for a key press.
func (m *Model) handleEditKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyRunes:
		m.insertText(string(msg.Runes))
		return
	case tea.KeySpace:
		m.insertText(" ")
		return
	}

	switch msg.String() {
	case "backspace":
		m.deleteBackward()
	case "delete":
		m.deleteForward()
	case "enter":
		m.splitBlock()
	case "left":
		m.moveCaret(-1)
	case "right":
		m.moveCaret(1)
	case "shift+left":
		m.extendSelection(-1)
	case "shift+right":
		m.extendSelection(1)
	case "up":
		m.moveToBlock(-1)
	case "down":
		m.moveToBlock(1)
	case "home":
		m.moveLineBoundary(true)
	case "end":
		m.moveLineBoundary(false)
	}
}

// apply runs one batch with surfaced errors.
func (m *Model) apply(ops ...engine.Op) bool {
	if _, err := m.ed.Apply(ops, engine.AllOrNothing); err != nil {
		m.errText = err.Error()
		return false
	}
	m.afterEdit()
	return true
}

// =============================================================================
// TEXT INSERTION
// =============================================================================

// insertText types text at the caret, replacing any active selection as part
// of the same undoable step.
func (m *Model) insertText(text string) {
	sel := m.ed.Selection()
	at := sel.Head
	var ops []engine.Op
	if !sel.Empty() {
		at = sel.From()
		ops = append(ops, engine.DeleteRange(sel.From(), sel.To()))
	}
	ops = append(ops, engine.InsertText(at, text))

	if _, err := m.ed.Apply(ops, engine.AllOrNothing); err != nil {
		// The caret sat at a block boundary; wrap the text in a paragraph.
		op := engine.InsertNode(at, doc.NewParagraph(doc.NewText(text)))
		if _, err := m.ed.Apply([]engine.Op{op}, engine.AllOrNothing); err != nil {
			m.errText = err.Error()
			return
		}
		m.ed.SetSelection(editor.Caret(at + 1 + utf8.RuneCountInString(text)))
		m.afterEdit()
		return
	}
	m.ed.SetSelection(editor.Caret(at + utf8.RuneCountInString(text)))
	m.afterEdit()
}

// =============================================================================
// DELETION
// =============================================================================

// deleteBackward removes the selection, or the token before the caret. At a
// block start it merges the block into its previous sibling instead.
func (m *Model) deleteBackward() {
	sel := m.ed.Selection()
	if !sel.Empty() {
		m.apply(engine.DeleteRange(sel.From(), sel.To()))
		return
	}
	head := sel.Head
	if head == 0 {
		return
	}
	if _, err := m.ed.Apply([]engine.Op{engine.DeleteRange(head - 1, head)}, engine.AllOrNothing); err == nil {
		m.afterEdit()
		return
	}
	m.mergeWithPrevious(head)
}

// deleteForward removes the selection, or the token after the caret.
func (m *Model) deleteForward() {
	sel := m.ed.Selection()
	if !sel.Empty() {
		m.apply(engine.DeleteRange(sel.From(), sel.To()))
		return
	}
	head := sel.Head
	if head >= m.ed.DocEnd() {
		return
	}
	if _, err := m.ed.Apply([]engine.Op{engine.DeleteRange(head, head+1)}, engine.AllOrNothing); err == nil {
		m.afterEdit()
	}
	// A block boundary under the caret is left alone.
}

// mergeWithPrevious joins the text block at the caret with its previous
// sibling. Only paragraph and heading siblings merge; anything else (a list,
// an aiBlock) keeps the boundary.
func (m *Model) mergeWithPrevious(head int) {
	d := m.ed.Doc()
	block, blockPos, err := doc.BlockAt(d, head)
	if err != nil || head != blockPos+1 {
		return
	}

	r, err := doc.Resolve(d, blockPos)
	if err != nil || r.Index == 0 {
		return
	}
	prev := r.Parent.Child(r.Index - 1)
	if prev == nil || (prev.Type != doc.TypeParagraph && prev.Type != doc.TypeHeading) {
		return
	}

	merged := &doc.Node{Type: prev.Type, Attrs: cloneAttrs(prev)}
	for _, c := range prev.Content {
		merged.Content = append(merged.Content, c.Clone())
	}
	for _, c := range block.Content {
		merged.Content = append(merged.Content, c.Clone())
	}

	prevStart := blockPos - prev.Size()
	caret := prevStart + 1 + prev.ContentSize()
	op := engine.ReplaceRange(prevStart, blockPos+block.Size(), merged)
	if m.apply(op) {
		m.ed.SetSelection(editor.Caret(caret))
	}
}

// cloneAttrs copies a node's attributes via a full clone.
func cloneAttrs(n *doc.Node) doc.Attrs {
	return n.Clone().Attrs
}

// =============================================================================
// BLOCK SPLIT
// =============================================================================

// splitBlock breaks the block at the caret in two; the trailing half is
// always a paragraph. At block-level boundaries a fresh paragraph is inserted
// instead.
func (m *Model) splitBlock() {
	sel := m.ed.Selection()
	if !sel.Empty() {
		if !m.apply(engine.DeleteRange(sel.From(), sel.To())) {
			return
		}
		sel = m.ed.Selection()
	}
	head := sel.Head
	d := m.ed.Doc()

	block, blockPos, err := doc.BlockAt(d, head)
	if err != nil {
		op := engine.InsertNode(head, doc.NewParagraph())
		if m.apply(op) {
			m.ed.SetSelection(editor.Caret(head + 1))
		}
		return
	}

	before, after := splitInline(block.Content, head-(blockPos+1))
	first := &doc.Node{Type: block.Type, Attrs: cloneAttrs(block), Content: before}
	second := doc.NewParagraph(after...)

	op := engine.ReplaceRange(blockPos, blockPos+block.Size(), first, second)
	if m.apply(op) {
		m.ed.SetSelection(editor.Caret(blockPos + first.Size() + 1))
	}
}

// splitInline partitions inline nodes at a rune-accurate offset, cloning
// everything so neither half aliases the original tree.
func splitInline(content []*doc.Node, offset int) (before, after []*doc.Node) {
	cur := 0
	for _, c := range content {
		sz := c.Size()
		switch {
		case cur+sz <= offset:
			before = append(before, c.Clone())
		case cur >= offset:
			after = append(after, c.Clone())
		default:
			// Splitting inside a text node.
			runes := []rune(c.Text)
			cut := offset - cur
			if cut > 0 {
				before = append(before, doc.NewText(string(runes[:cut])))
			}
			if cut < len(runes) {
				after = append(after, doc.NewText(string(runes[cut:])))
			}
		}
		cur += sz
	}
	return before, after
}

// =============================================================================
// CARET MOVEMENT
// =============================================================================

// moveCaret shifts the caret by delta positions, collapsing any selection.
func (m *Model) moveCaret(delta int) {
	sel := m.ed.Selection()
	pos := sel.Head + delta
	if !sel.Empty() {
		// Collapse to the edge in the direction of travel.
		if delta < 0 {
			pos = sel.From()
		} else {
			pos = sel.To()
		}
	}
	m.ed.SetSelection(editor.Caret(pos))
	m.chipFocus = -1
	m.reDetect()
}

// extendSelection grows the selection head by delta.
func (m *Model) extendSelection(delta int) {
	sel := m.ed.Selection()
	m.ed.SetSelection(editor.Selection{Anchor: sel.Anchor, Head: sel.Head + delta})
	m.chipFocus = -1
}

// moveToBlock moves the caret to the start of the previous or next top-level
// block.
func (m *Model) moveToBlock(dir int) {
	d := m.ed.Doc()
	head := m.ed.Selection().Head

	// Locate the top-level block containing or preceding the caret.
	idx, pos := 0, 0
	for i, c := range d.Content {
		if head < pos+c.Size() {
			idx = i
			break
		}
		pos += c.Size()
		idx = i
	}

	target := idx + dir
	if target < 0 || target >= len(d.Content) {
		return
	}
	tPos := 0
	for i := 0; i < target; i++ {
		tPos += d.Content[i].Size()
	}
	m.ed.SetSelection(editor.Caret(tPos + 1))
	m.chipFocus = -1
	m.reDetect()
}

// moveLineBoundary jumps to the start or end of the current block's content.
func (m *Model) moveLineBoundary(start bool) {
	d := m.ed.Doc()
	head := m.ed.Selection().Head
	block, blockPos, err := doc.BlockAt(d, head)
	if err != nil {
		if start {
			m.ed.SetSelection(editor.Caret(0))
		} else {
			m.ed.SetSelection(editor.Caret(m.ed.DocEnd()))
		}
		return
	}
	if start {
		m.ed.SetSelection(editor.Caret(blockPos + 1))
	} else {
		m.ed.SetSelection(editor.Caret(blockPos + block.Size() - 1))
	}
	m.reDetect()
}
