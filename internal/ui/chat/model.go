// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/missionchat/internal/logger"
	"github.com/jeranaias/missionchat/internal/session"
	"github.com/jeranaias/missionchat/internal/ui/components"
	"github.com/jeranaias/missionchat/internal/ui/styles"
)

// Screen text.
const (
	TitleText        = "Mission AI Chatbot PoC"
	ChatHeader       = "Chat with AI Bot"
	AnalyzeHeader    = "Overall Analyze"
	LogHeader        = "User message log"
	InputPlaceholder = "Enter your message here..."
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat screen.
type Model struct {
	sess  *session.Session
	theme *styles.Theme

	keyMap KeyMap
	help   help.Model

	input    textinput.Model
	viewport viewport.Model

	chart  *components.LabelChart
	table  *components.LogTable
	status *components.StatusBar

	width  int
	height int

	// noticeID identifies the notice a NoticeClearMsg may remove
	noticeID int
}

// New creates the chat model for a session. tailSize is the number of
// log rows shown.
func New(sess *session.Session, theme *styles.Theme, tailSize int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = InputPlaceholder
	ti.CharLimit = 4096
	ti.Focus()

	vp := viewport.New(80, 10)

	h := help.New()
	h.ShortSeparator = "  "

	m := Model{
		sess:     sess,
		theme:    theme,
		keyMap:   DefaultKeyMap(),
		help:     h,
		input:    ti,
		viewport: vp,
		chart:    components.NewLabelChart(theme),
		table:    components.NewLogTable(theme, tailSize),
		status:   components.NewStatusBar(theme),
		width:    80,
		height:   24,
	}
	m.status.SessionID = sess.ID()
	m.status.Location = sess.Location()
	if err := sess.LoadError(); err != nil {
		m.status.SetWarning("could not read log: " + err.Error())
	}
	m.refresh()
	return m
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case NoticeClearMsg:
		if msg.ID == m.noticeID {
			m.status.SetNotice("")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Submit):
		return m.submit()

	case key.Matches(msg, m.keyMap.Copy):
		return m.copyLastResponse()

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.ViewDown()
		return m, nil

	case key.Matches(msg, m.keyMap.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs the session cycle for the current input. Only a completely
// empty input is ignored; whitespace is a message like any other.
func (m Model) submit() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	if text == "" {
		return m, nil
	}

	m.sess.Submit(text)
	m.input.Reset()

	if err := m.sess.LastPersistError(); err != nil {
		m.status.SetWarning("not saved: " + err.Error())
	} else {
		m.status.SetWarning("")
	}

	m.refresh()
	m.viewport.GotoBottom()

	entries := m.sess.Len()
	return m, func() tea.Msg { return SubmittedMsg{Entries: entries} }
}

// copyLastResponse copies the latest bot reply to the clipboard.
func (m Model) copyLastResponse() (tea.Model, tea.Cmd) {
	last, ok := m.sess.LastExchange()
	if !ok {
		return m.notice("No reply to copy")
	}
	if err := copyToClipboard(last.Result.Response); err != nil {
		logger.WithComponent("tui").Warn("CLIPBOARD_FAILED", "error", err)
		return m.notice("Copy failed: " + err.Error())
	}
	return m.notice("Copied reply to clipboard")
}

func (m Model) notice(text string) (tea.Model, tea.Cmd) {
	m.noticeID++
	m.status.SetNotice(text)
	return m, clearNoticeCmd(m.noticeID)
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Session returns the session driven by the model.
func (m Model) Session() *session.Session {
	return m.sess
}

// InputValue returns the current input text.
func (m Model) InputValue() string {
	return m.input.Value()
}

// Notice returns the status notice currently shown.
func (m Model) Notice() string {
	return m.status.Notice
}

// Warning returns the persist warning currently shown.
func (m Model) Warning() string {
	return m.status.Warning
}
