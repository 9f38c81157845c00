// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/cadence-tui/internal/config"
	"github.com/jeranaias/cadence-tui/internal/doc"
	"github.com/jeranaias/cadence-tui/internal/session"
	"github.com/jeranaias/cadence-tui/internal/slash"
	"github.com/jeranaias/cadence-tui/internal/store"
	"github.com/jeranaias/cadence-tui/internal/suggest"
	"github.com/jeranaias/cadence-tui/internal/ui/components"
	"github.com/jeranaias/cadence-tui/internal/util"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.header.SetWidth(msg.Width)
		m.status.SetWidth(msg.Width)
		m.pane.SetSize(m.paneWidth(), msg.Height-6)
		m.glam = nil // rebuilt at the new wrap width on next preview
		return m, nil

	case session.TickMsg:
		return m, m.sess.HandleTick()

	case session.AutoSaveMsg:
		if m.sess.Check() {
			m.status.SetStatus(components.StatusSaved)
		}
		m.status.SetDirty(m.sess.IsDirty())
		return m, nil

	case RecordsChangedMsg:
		m.refreshPane()
		return m, nil

	case ConfigReloadedMsg:
		m.applyConfig(msg.Config)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// applyConfig adopts a reloaded configuration without restarting.
func (m *Model) applyConfig(cfg *config.Config) {
	m.cfg = cfg
	m.sess.SetAutoSaveEnabled(cfg.Autosave.Enabled)
	m.sess.SetAutoSaveInterval(time.Duration(cfg.Autosave.IntervalSecs) * time.Second)
	runs := cfg.Suggestions.RunsPerMinute
	if !cfg.Suggestions.Enabled {
		runs = 0
	}
	m.generator = suggest.NewGenerator(runs)
}

// =============================================================================
// KEY DISPATCH
// =============================================================================

// handleKey routes a key press by screen and overlay.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit.
	if msg.String() == "ctrl+c" {
		if m.screen == screenEditor {
			m.closeConversation()
		}
		return m, tea.Quit
	}

	if m.screen == screenList {
		return m.updateList(msg)
	}

	switch m.overlay {
	case overlayDialog:
		return m.updateDialog(msg)
	case overlayBlockEdit:
		return m.updateBlockEdit(msg)
	case overlayHelp:
		m.overlay = overlayNone
		return m, nil
	}

	if m.paneFocus {
		return m.updatePane(msg)
	}
	return m.updateEditor(msg)
}

// =============================================================================
// EDITOR KEYS
// =============================================================================

func (m *Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errText = ""

	// An open slash menu captures its navigation keys before anything else.
	if m.menu != nil {
		switch msg.String() {
		case "down", "ctrl+n":
			m.menu.Next()
			return m, nil
		case "up", "ctrl+p":
			m.menu.Prev()
			return m, nil
		case "enter", "tab":
			m.commitSlash()
			return m, nil
		case "esc":
			m.menu = nil
			return m, nil
		}
	}

	switch msg.String() {
	case "esc":
		if m.chipFocus >= 0 {
			m.chipFocus = -1
			return m, nil
		}
		m.closeConversation()
		return m, nil

	case "ctrl+s":
		m.status.SetStatus(components.StatusSaving)
		if err := m.saveDocument(); err != nil {
			m.errText = err.Error()
			m.status.SetStatus(components.StatusError)
		} else {
			m.sess.MarkClean()
			m.status.SetStatus(components.StatusSaved)
		}
		m.status.SetDirty(m.sess.IsDirty())
		return m, nil

	case "ctrl+z":
		if m.ed.Undo() {
			m.afterEdit()
		}
		return m, nil

	case "ctrl+y":
		if m.ed.Redo() {
			m.afterEdit()
		}
		return m, nil

	case "ctrl+t":
		m.showPane = !m.showPane
		if !m.showPane {
			m.paneFocus = false
		}
		return m, nil

	case "ctrl+o":
		if m.showPane {
			m.paneFocus = true
			m.ed.Blur()
		}
		return m, nil

	case "ctrl+r":
		m.togglePreview()
		return m, nil

	case "ctrl+d":
		// New task pre-filled from the selection.
		m.openRecordDialog(store.ItemTask, m.ed.SelectedText())
		return m, nil

	case "ctrl+g":
		m.openRecordDialog(store.ItemGoal, m.ed.SelectedText())
		return m, nil

	case "alt+c":
		m.cycleChipFocus()
		return m, nil

	case "alt+a":
		m.approveFirstPending()
		return m, nil

	case "alt+A":
		m.approveAllPending()
		return m, nil

	case "alt+x":
		m.rejectFirstPending()
		return m, nil

	case "alt+e":
		m.editFirstPending()
		return m, nil

	case "alt+s":
		m.runSuggestions()
		return m, nil

	case "ctrl+h":
		m.overlay = overlayHelp
		return m, nil
	}

	if m.preview {
		// Read-only preview swallows editing keys.
		return m, nil
	}

	// Focused chip: enter toggles, arrows fall through and clear focus.
	if m.chipFocus >= 0 && msg.String() == "enter" {
		m.toggleFocusedChip()
		return m, nil
	}

	m.handleEditKey(msg)
	return m, nil
}

// commitSlash executes the highlighted slash command.
func (m *Model) commitSlash() {
	menu := m.menu
	m.menu = nil
	if menu == nil {
		return
	}
	if err := slash.Commit(m.ed, menu.Detection, menu.Highlighted()); err != nil {
		m.errText = err.Error()
		return
	}
	m.afterEdit()
}

// afterEdit runs after any committed edit: chip focus resets and the slash
// detector re-evaluates at the new cursor.
func (m *Model) afterEdit() {
	m.chipFocus = -1
	m.status.SetDirty(m.sess.IsDirty())
	m.reDetect()
}

// reDetect re-runs slash detection at the cursor and opens or closes the menu.
func (m *Model) reDetect() {
	if m.ed == nil || m.ed.ReadOnly() {
		m.menu = nil
		return
	}
	det := slash.Detect(m.ed.Doc(), m.ed.Selection().Head)
	if !det.Active {
		m.menu = nil
		return
	}
	m.menu = slash.NewMenu(m.catalog(), det)
}

// catalog binds the slash catalog hooks to this model.
func (m *Model) catalog() []slash.Command {
	hooks := slash.Hooks{
		OpenTaskDialog: func(prefill string) {
			m.openRecordDialog(store.ItemTask, prefill)
		},
		OpenGoalDialog: func(prefill string) {
			m.openRecordDialog(store.ItemGoal, prefill)
		},
		PrefillTitle: func() string { return m.ed.SelectedText() },
	}
	if m.SuggestionsEnabled() {
		hooks.GenerateSuggestions = m.runSuggestions
	}
	return slash.Catalog(hooks)
}

// =============================================================================
// CHIP ACTIONS
// =============================================================================

// cycleChipFocus advances focus through the document's chips.
func (m *Model) cycleChipFocus() {
	found := doc.FindChips(m.ed.Doc())
	if len(found) == 0 {
		m.chipFocus = -1
		return
	}
	m.chipFocus = (m.chipFocus + 1) % len(found)
}

// toggleFocusedChip flips the focused chip's record status.
func (m *Model) toggleFocusedChip() {
	found := doc.FindChips(m.ed.Doc())
	if m.chipFocus < 0 || m.chipFocus >= len(found) {
		return
	}
	attrs, ok := found[m.chipFocus].Node.Attrs.(*doc.ChipAttrs)
	if !ok {
		return
	}
	resolved := m.chipMgr.Resolve(*attrs)
	if err := m.chipMgr.Toggle(resolved); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			m.notice = "Record was removed; chip is orphaned"
		case errors.Is(err, store.ErrNotATask):
			m.notice = "Goals change status through the edit dialog"
		default:
			m.errText = err.Error()
		}
		return
	}
	m.refreshPane()
}

// =============================================================================
// BLOCK ACTIONS
// =============================================================================

// firstPendingBlock returns the first pending aiBlock's attributes.
func (m *Model) firstPendingBlock() (doc.AIBlockAttrs, bool) {
	for _, f := range doc.FindAIBlocks(m.ed.Doc()) {
		if attrs, ok := f.Node.Attrs.(*doc.AIBlockAttrs); ok && attrs.Status == doc.BlockPending {
			return *attrs, true
		}
	}
	return doc.AIBlockAttrs{}, false
}

func (m *Model) approveFirstPending() {
	attrs, ok := m.firstPendingBlock()
	if !ok {
		m.notice = "No pending suggestions"
		return
	}
	res, err := m.blockMgr.Approve(m.ed, m.conv.ID, attrs)
	if err != nil {
		m.errText = err.Error()
		return
	}
	m.notice = "Approved: " + countNoun(len(res.CreatedIDs), "record") + " created"
	m.refreshPane()
	m.afterEdit()
}

func (m *Model) approveAllPending() {
	n, err := m.blockMgr.ApproveAll(m.ed, m.conv.ID)
	if err != nil {
		m.errText = err.Error()
		return
	}
	if n == 0 {
		m.notice = "No pending suggestions"
		return
	}
	m.notice = "Approved " + countNoun(n, "suggestion block")
	m.refreshPane()
	m.afterEdit()
}

func (m *Model) rejectFirstPending() {
	attrs, ok := m.firstPendingBlock()
	if !ok {
		m.notice = "No pending suggestions"
		return
	}
	if err := m.blockMgr.Reject(m.ed, attrs.BlockID); err != nil {
		m.errText = err.Error()
		return
	}
	m.notice = "Suggestion rejected"
	m.afterEdit()
}

func (m *Model) editFirstPending() {
	attrs, ok := m.firstPendingBlock()
	if !ok {
		m.notice = "No pending suggestions"
		return
	}
	m.blockEditID = attrs.BlockID
	m.blockEdit.SetValue(m.blockMgr.StartEdit(attrs))
	m.blockEdit.Width = m.width - 20
	m.blockEdit.Focus()
	m.ed.Blur()
	m.overlay = overlayBlockEdit
}

// updateBlockEdit drives the in-place suggestion edit overlay.
func (m *Model) updateBlockEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.blockMgr.CancelEdit(m.blockEditID)
		m.closeBlockEdit()
		return m, nil
	case "enter":
		m.blockMgr.UpdateBuffer(m.blockEditID, m.blockEdit.Value())
		if err := m.blockMgr.SaveEdit(m.ed, m.blockEditID); err != nil {
			m.errText = err.Error()
		}
		m.closeBlockEdit()
		return m, nil
	}
	var cmd tea.Cmd
	m.blockEdit, cmd = m.blockEdit.Update(msg)
	m.blockMgr.UpdateBuffer(m.blockEditID, m.blockEdit.Value())
	return m, cmd
}

func (m *Model) closeBlockEdit() {
	m.overlay = overlayNone
	m.blockEditID = ""
	m.blockEdit.Blur()
	m.blockEdit.Reset()
	m.ed.Focus()
}

// =============================================================================
// SUGGESTIONS
// =============================================================================

// runSuggestions generates suggestion blocks into the document.
func (m *Model) runSuggestions() {
	if !m.SuggestionsEnabled() {
		m.notice = "Suggestions are disabled in config"
		return
	}
	n, err := m.generator.Run(m.ed, m.conv.Title)
	if err != nil {
		if errors.Is(err, suggest.ErrRateLimited) {
			m.notice = "Suggestion rate limit reached; try again shortly"
			return
		}
		m.errText = err.Error()
		return
	}
	m.notice = "Inserted " + countNoun(n, "suggestion block")
	m.afterEdit()
}

// =============================================================================
// DIALOG
// =============================================================================

// openRecordDialog captures the selection and opens the create dialog.
func (m *Model) openRecordDialog(t store.ItemType, prefill string) {
	m.dialogSel = m.ed.CaptureSelection()
	m.ed.Blur()
	m.menu = nil

	m.dialog = components.NewRecordDialog(m.theme, t)
	m.dialog.SetWidth(min(m.width-10, 70))
	if prefill != "" {
		m.prefillDialogTitle(prefill)
	}
	m.overlay = overlayDialog
}

// openEditDialog opens the dialog pre-filled from an existing record.
func (m *Model) openEditDialog(it store.Item) {
	m.dialogSel = nil
	if m.ed != nil {
		m.ed.Blur()
	}
	m.dialog = components.NewEditDialog(m.theme, it)
	m.dialog.SetWidth(min(m.width-10, 70))
	m.overlay = overlayDialog
}

// prefillDialogTitle feeds the captured selection text into the title field.
func (m *Model) prefillDialogTitle(title string) {
	for _, r := range title {
		m.dialog.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// updateDialog drives the record create/edit dialog.
func (m *Model) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	result, done, cmd := m.dialog.Update(msg)
	if !done {
		return m, cmd
	}

	m.overlay = overlayNone
	dialogSel := m.dialogSel
	m.dialogSel = nil

	if result == nil { // cancelled
		if m.ed != nil {
			m.ed.RestoreSelection(dialogSel)
		}
		m.dialog = nil
		return m, nil
	}

	if result.EditID != "" {
		err := m.records.Update(result.EditID, store.Patch{
			Title:       &result.Draft.Title,
			Description: &result.Draft.Description,
			Status:      &result.Draft.Status,
			DueDate:     &result.Draft.DueDate,
			Assignee:    &result.Draft.Assignee,
		})
		if err != nil {
			m.errText = err.Error()
		}
		m.dialog = nil
		m.refreshPane()
		if m.ed != nil {
			m.ed.RestoreSelection(dialogSel)
		}
		return m, nil
	}

	draft := result.Draft
	draft.ConversationID = m.conv.ID
	id, err := m.records.Create(draft)
	if err != nil {
		m.errText = err.Error()
		m.dialog = nil
		return m, nil
	}

	chipType := doc.ChipTask
	if draft.Type == store.ItemGoal {
		chipType = doc.ChipGoal
	}

	// Restore the captured selection so the chip lands where the user was.
	m.ed.RestoreSelection(dialogSel)
	if err := m.chipMgr.Insert(m.ed, doc.ChipAttrs{
		TaskID:   id,
		Title:    draft.Title,
		ChipType: chipType,
	}); err != nil {
		m.errText = err.Error()
	}

	m.dialog = nil
	m.refreshPane()
	m.afterEdit()
	return m, nil
}

// =============================================================================
// TASK PANE KEYS
// =============================================================================

func (m *Model) updatePane(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+o":
		m.paneFocus = false
		m.ed.Focus()
		return m, nil
	case "down", "j":
		m.pane.Next()
		return m, nil
	case "up", "k":
		m.pane.Prev()
		return m, nil
	case " ", "enter":
		if it, ok := m.pane.Selected(); ok {
			if err := m.records.ToggleTask(it.ID); err != nil {
				if errors.Is(err, store.ErrNotATask) {
					m.notice = "Goals change status through the edit dialog"
				} else {
					m.errText = err.Error()
				}
				return m, nil
			}
			m.refreshPane()
		}
		return m, nil
	case "e":
		if it, ok := m.pane.Selected(); ok {
			m.openEditDialog(it)
		}
		return m, nil
	case "n":
		m.openRecordDialog(store.ItemTask, "")
		return m, nil
	case "g":
		m.openRecordDialog(store.ItemGoal, "")
		return m, nil
	case "c":
		m.pane.SetShowCompleted(false)
		return m, nil
	case "C":
		m.pane.SetShowCompleted(true)
		return m, nil
	}
	return m, nil
}

// =============================================================================
// HELPERS
// =============================================================================

// countNoun formats "N noun(s)".
func countNoun(n int, noun string) string {
	s := noun
	if n != 1 {
		s += "s"
	}
	return util.IntToString(n) + " " + s
}
