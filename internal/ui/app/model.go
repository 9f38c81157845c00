// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/cadence-tui/internal/blocks"
	"github.com/jeranaias/cadence-tui/internal/chips"
	"github.com/jeranaias/cadence-tui/internal/config"
	"github.com/jeranaias/cadence-tui/internal/doc"
	"github.com/jeranaias/cadence-tui/internal/editor"
	"github.com/jeranaias/cadence-tui/internal/session"
	"github.com/jeranaias/cadence-tui/internal/slash"
	"github.com/jeranaias/cadence-tui/internal/storage"
	"github.com/jeranaias/cadence-tui/internal/store"
	"github.com/jeranaias/cadence-tui/internal/suggest"
	"github.com/jeranaias/cadence-tui/internal/ui/components"
	"github.com/jeranaias/cadence-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// RecordsChangedMsg is sent when a store write committed, so chips and the
// task pane re-resolve against live record state.
type RecordsChangedMsg struct{}

// ConfigReloadedMsg is sent when the config file changed on disk.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// =============================================================================
// MODEL
// =============================================================================

// screen selects the visible top-level screen.
type screen int

const (
	screenList screen = iota
	screenEditor
)

// overlay selects the modal layer drawn over the editor.
type overlay int

const (
	overlayNone overlay = iota
	overlayDialog
	overlayBlockEdit
	overlayHelp
	overlayConfirmDelete
)

// Model is the application model.
type Model struct {
	cfg   *config.Config
	theme *styles.Theme

	width  int
	height int

	conversations *storage.Store
	records       *store.Store
	sess          *session.Manager
	registry      *editor.Registry
	chipMgr       *chips.Manager
	blockMgr      *blocks.Manager
	generator     *suggest.Generator

	screen screen

	// Conversation list screen state.
	metas     []storage.Meta
	listSel   int
	search    textinput.Model
	searching bool
	newPart   textinput.Model
	creating  bool

	// Editor screen state.
	conv      *storage.Conversation
	ed        *editor.Editor
	menu      *slash.Menu
	chipFocus int // index into the document's chips, -1 when none focused
	preview   bool
	glam      *glamour.TermRenderer

	overlay     overlay
	dialog      *components.RecordDialog
	dialogSel   *editor.Descriptor
	blockEdit   textinput.Model
	blockEditID string

	header     *components.Header
	status     *components.StatusBar
	pane       *components.TaskPane
	slashPopup *components.SlashMenuPopup
	showPane   bool
	paneFocus  bool

	lastSaved time.Time
	errText   string
	notice    string
}

// New assembles the application model.
func New(cfg *config.Config, conversations *storage.Store, records *store.Store) *Model {
	theme := styles.NewTheme()

	runs := cfg.Suggestions.RunsPerMinute
	if !cfg.Suggestions.Enabled {
		runs = 0
	}

	search := textinput.New()
	search.Placeholder = "Search conversations..."
	search.Prompt = "/ "
	search.CharLimit = 120

	newPart := textinput.New()
	newPart.Placeholder = "Participant name"
	newPart.Prompt = "> "
	newPart.CharLimit = 60

	blockEdit := textinput.New()
	blockEdit.Placeholder = "Suggestion content"
	blockEdit.Prompt = ""
	blockEdit.CharLimit = 500

	m := &Model{
		cfg:           cfg,
		theme:         theme,
		width:         80,
		height:        24,
		conversations: conversations,
		records:       records,
		sess: session.NewManager(session.Config{
			AutoSaveEnabled:  cfg.Autosave.Enabled,
			AutoSaveInterval: time.Duration(cfg.Autosave.IntervalSecs) * time.Second,
		}),
		registry:   editor.NewRegistry(),
		chipMgr:    chips.NewManager(records, records),
		blockMgr:   blocks.NewManager(records),
		generator:  suggest.NewGenerator(runs),
		screen:     screenList,
		search:     search,
		newPart:    newPart,
		blockEdit:  blockEdit,
		chipFocus:  -1,
		header:     components.NewHeader(theme),
		status:     components.NewStatusBar(theme),
		pane:       components.NewTaskPane(theme),
		slashPopup: components.NewSlashMenuPopup(theme),
	}
	m.reloadList("")
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return session.TickCmd()
}

// SuggestionsEnabled reports whether the AI suggestion flow is available.
func (m *Model) SuggestionsEnabled() bool {
	return m.cfg.Suggestions.Enabled
}

// =============================================================================
// CONVERSATION LIST DATA
// =============================================================================

// reloadList refreshes the conversation list, optionally filtered.
func (m *Model) reloadList(query string) {
	var (
		metas []storage.Meta
		err   error
	)
	if query == "" {
		metas, err = m.conversations.List()
	} else {
		metas, err = m.conversations.Search(query)
	}
	if err != nil {
		m.errText = err.Error()
		return
	}
	m.metas = metas
	if m.listSel >= len(metas) {
		m.listSel = len(metas) - 1
	}
	if m.listSel < 0 {
		m.listSel = 0
	}
}

// =============================================================================
// EDITOR LIFECYCLE
// =============================================================================

// openConversation loads a conversation into the editor screen.
func (m *Model) openConversation(id string) {
	conv, err := m.conversations.Load(id)
	if err != nil {
		m.errText = err.Error()
		return
	}
	m.conv = conv

	var edOpts []editor.Option
	if m.cfg.UI.ReadOnly {
		edOpts = append(edOpts, editor.ReadOnly())
	}
	edOpts = append(edOpts, editor.OnChange(func(_ *doc.Node) {
		m.sess.MarkDirty()
	}))

	m.ed = editor.NewFromContent(conv.ID, conv.Document, edOpts...)
	m.ed.Focus()
	m.registry.Register(m.ed)

	m.sess.SetAutoSaveCallback(m.saveDocument)
	m.sess.MarkClean()

	m.screen = screenEditor
	m.menu = nil
	m.chipFocus = -1
	m.overlay = overlayNone
	m.preview = false
	m.errText = ""
	m.notice = ""

	mode := components.ModeEdit
	if m.ed.ReadOnly() {
		mode = components.ModeReadOnly
	}
	m.header.SetConversation(conv.Title, conv.Participant)
	m.header.SetMode(mode)
	m.status.SetStatus(components.StatusReady)
	if m.ed.ReadOnly() {
		m.status.SetStatus(components.StatusReadOnly)
	}
	m.refreshPane()
}

// closeConversation saves and returns to the list screen.
func (m *Model) closeConversation() {
	if m.ed != nil {
		if m.sess.IsDirty() {
			if err := m.saveDocument(); err == nil {
				m.sess.MarkClean()
			}
		}
		m.registry.Unregister(m.ed)
	}
	m.ed = nil
	m.conv = nil
	m.menu = nil
	m.screen = screenList
	m.reloadList("")
}

// saveDocument persists the editor's current document.
func (m *Model) saveDocument() error {
	if m.ed == nil || m.conv == nil {
		return nil
	}
	content, err := m.ed.Serialize()
	if err != nil {
		return err
	}
	if err := m.conversations.SaveDocument(m.conv.ID, content); err != nil {
		return err
	}
	m.lastSaved = time.Now()
	m.status.SetLastSaved(m.lastSaved)
	return nil
}

// refreshPane reloads the task pane and status counts from the store.
func (m *Model) refreshPane() {
	if m.conv == nil {
		return
	}
	items := m.records.ForConversation(m.conv.ID)
	m.pane.SetItems(items)

	var openTasks, openGoals int
	for _, it := range items {
		if it.Status == store.StatusCompleted {
			continue
		}
		if it.Type == store.ItemGoal {
			openGoals++
		} else {
			openTasks++
		}
	}
	m.status.SetCounts(openTasks, openGoals)
}
