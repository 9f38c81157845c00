// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/cadence-tui/internal/store"
	"github.com/jeranaias/cadence-tui/internal/ui/styles"
)

// =============================================================================
// RECORD DIALOG COMPONENT - Create/edit form for tasks and goals
// =============================================================================

// DialogResult is emitted when the dialog is submitted.
type DialogResult struct {
	Draft  store.Draft
	EditID string // Non-empty when editing an existing record
}

// dialogField indexes the focusable form fields.
type dialogField int

const (
	fieldTitle dialogField = iota
	fieldDescription
	fieldDueDate
	fieldAssignee
	fieldStatus
	fieldCount
)

// RecordDialog is a modal form for creating or editing a task or goal record.
type RecordDialog struct {
	theme *styles.Theme
	width int

	recordType store.ItemType
	editID     string
	status     store.Status

	title       textinput.Model
	description textinput.Model
	dueDate     textinput.Model
	assignee    textinput.Model

	focus   dialogField
	errText string
}

// NewRecordDialog creates a dialog for a new record of the given type.
func NewRecordDialog(theme *styles.Theme, recordType store.ItemType) *RecordDialog {
	d := &RecordDialog{
		theme:      theme,
		width:      60,
		recordType: recordType,
		status:     store.StatusPending,
	}
	d.title = d.newField("Title", 120)
	d.description = d.newField("Notes (optional)", 500)
	d.dueDate = d.newField("Due date YYYY-MM-DD (optional)", 10)
	d.assignee = d.newField("Assignee (optional)", 60)
	d.title.Focus()
	return d
}

// NewEditDialog creates a dialog pre-filled from an existing record.
func NewEditDialog(theme *styles.Theme, it store.Item) *RecordDialog {
	d := NewRecordDialog(theme, it.Type)
	d.editID = it.ID
	d.status = it.Status
	d.title.SetValue(it.Title)
	d.description.SetValue(it.Description)
	if !it.DueDate.IsZero() {
		d.dueDate.SetValue(it.DueDate.Format("2006-01-02"))
	}
	d.assignee.SetValue(it.Assignee)
	return d
}

// newField builds a styled textinput.
func (d *RecordDialog) newField(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = d.width - 16
	ti.Prompt = ""

	ti.TextStyle = lipgloss.NewStyle().
		Foreground(styles.TextPrimary)
	ti.PlaceholderStyle = lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)
	ti.Cursor.Style = lipgloss.NewStyle().
		Foreground(styles.Cyan)

	return ti
}

// SetWidth sets the dialog width.
func (d *RecordDialog) SetWidth(width int) {
	if width < 40 {
		width = 40
	}
	d.width = width
	inner := width - 16
	d.title.Width = inner
	d.description.Width = inner
	d.dueDate.Width = inner
	d.assignee.Width = inner
}

// EditID returns the id being edited, or "" for a create dialog.
func (d *RecordDialog) EditID() string {
	return d.editID
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles a key message. It returns the submitted result when Enter
// is pressed on a valid form, done=true on submit or cancel.
func (d *RecordDialog) Update(msg tea.KeyMsg) (result *DialogResult, done bool, cmd tea.Cmd) {
	switch msg.String() {
	case "esc":
		return nil, true, nil

	case "tab", "down":
		d.setFocus((d.focus + 1) % fieldCount)
		return nil, false, nil

	case "shift+tab", "up":
		d.setFocus((d.focus - 1 + fieldCount) % fieldCount)
		return nil, false, nil

	case "enter":
		if d.focus == fieldStatus {
			d.cycleStatus()
			return nil, false, nil
		}
		res, ok := d.submit()
		if !ok {
			return nil, false, nil
		}
		return res, true, nil

	case "left", "right":
		if d.focus == fieldStatus {
			d.cycleStatus()
			return nil, false, nil
		}
	}

	// Route typing to the focused field.
	switch d.focus {
	case fieldTitle:
		d.title, cmd = d.title.Update(msg)
	case fieldDescription:
		d.description, cmd = d.description.Update(msg)
	case fieldDueDate:
		d.dueDate, cmd = d.dueDate.Update(msg)
	case fieldAssignee:
		d.assignee, cmd = d.assignee.Update(msg)
	}
	return nil, false, cmd
}

// setFocus moves focus to the given field.
func (d *RecordDialog) setFocus(f dialogField) {
	d.focus = f
	d.title.Blur()
	d.description.Blur()
	d.dueDate.Blur()
	d.assignee.Blur()
	switch f {
	case fieldTitle:
		d.title.Focus()
	case fieldDescription:
		d.description.Focus()
	case fieldDueDate:
		d.dueDate.Focus()
	case fieldAssignee:
		d.assignee.Focus()
	}
}

// cycleStatus advances the status selector.
func (d *RecordDialog) cycleStatus() {
	switch d.status {
	case store.StatusPending:
		d.status = store.StatusInProgress
	case store.StatusInProgress:
		d.status = store.StatusCompleted
	default:
		d.status = store.StatusPending
	}
}

// submit validates the form and builds the result.
func (d *RecordDialog) submit() (*DialogResult, bool) {
	title := strings.TrimSpace(d.title.Value())
	if title == "" {
		d.errText = "Title is required"
		d.setFocus(fieldTitle)
		return nil, false
	}

	var due time.Time
	if raw := strings.TrimSpace(d.dueDate.Value()); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			d.errText = "Due date must be YYYY-MM-DD"
			d.setFocus(fieldDueDate)
			return nil, false
		}
		due = parsed
	}

	d.errText = ""
	return &DialogResult{
		Draft: store.Draft{
			Type:        d.recordType,
			Title:       title,
			Description: strings.TrimSpace(d.description.Value()),
			Status:      d.status,
			DueDate:     due,
			Assignee:    strings.TrimSpace(d.assignee.Value()),
		},
		EditID: d.editID,
	}, true
}

// =============================================================================
// RENDERING
// =============================================================================

// View renders the dialog.
func (d *RecordDialog) View() string {
	var b strings.Builder

	title := "New Task"
	if d.recordType == store.ItemGoal {
		title = "New Goal"
	}
	if d.editID != "" {
		title = "Edit Task"
		if d.recordType == store.ItemGoal {
			title = "Edit Goal"
		}
	}
	b.WriteString(d.theme.DialogTitle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(d.renderField("Title", d.title.View(), d.focus == fieldTitle))
	b.WriteString(d.renderField("Notes", d.description.View(), d.focus == fieldDescription))
	b.WriteString(d.renderField("Due", d.dueDate.View(), d.focus == fieldDueDate))
	b.WriteString(d.renderField("Assignee", d.assignee.View(), d.focus == fieldAssignee))
	b.WriteString(d.renderStatusField())

	if d.errText != "" {
		b.WriteString("\n")
		b.WriteString(styles.RenderError(d.errText))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	hintStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	b.WriteString(hintStyle.Render("tab: next field  enter: save  esc: cancel"))

	return d.theme.DialogBox.Width(d.width).Render(b.String())
}

// renderField renders one labeled form row.
func (d *RecordDialog) renderField(label, input string, focused bool) string {
	labelStyle := d.theme.DialogLabel.Width(10)
	if focused {
		labelStyle = labelStyle.Foreground(styles.FocusRing).Bold(true)
	}
	return labelStyle.Render(label) + " " + input + "\n"
}

// renderStatusField renders the status cycle selector.
func (d *RecordDialog) renderStatusField() string {
	labelStyle := d.theme.DialogLabel.Width(10)
	valueStyle := lipgloss.NewStyle().Foreground(styles.TextPrimary)
	if d.focus == fieldStatus {
		labelStyle = labelStyle.Foreground(styles.FocusRing).Bold(true)
		valueStyle = valueStyle.
			Background(styles.SelectionBg).
			Bold(true)
	}
	return labelStyle.Render("Status") + " " +
		valueStyle.Render("< "+string(d.status)+" >") + "\n"
}
