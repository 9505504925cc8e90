// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/missionchat/internal/model"
	"github.com/jeranaias/missionchat/internal/ui/styles"
)

// emptyTranscriptText fills the chat area before the first message.
const emptyTranscriptText = "Type a message and press Enter."

const (
	minViewportHeight = 3
	// title + input box (3) + help + status bar
	chromeLines = 6
	// section header plus its margin
	headerLines = 2
)

// =============================================================================
// LAYOUT
// =============================================================================

// columns returns the widths of the chat column and the side column. The
// side width is 0 when sections are stacked.
func (m Model) columns() (chatWidth, sideWidth int) {
	m.theme.SetSize(m.width, m.height)
	if m.theme.GetLayoutMode() == styles.LayoutSplit {
		chatWidth = m.width * 55 / 100
		return chatWidth, m.width - chatWidth
	}
	return m.width, 0
}

// refresh pushes session state into the components and resizes them.
func (m *Model) refresh() {
	chatWidth, sideWidth := m.columns()
	panelWidth := sideWidth
	if panelWidth == 0 {
		panelWidth = m.width
	}
	// Section border and padding take four columns.
	inner := panelWidth - 4

	m.chart.SetWidth(inner)
	m.chart.SetCounts(m.sess.Counts())
	m.table.SetWidth(inner)
	m.table.SetEntries(m.sess.Tail(m.table.TailSize))

	m.status.SetWidth(m.width)
	m.status.Entries = m.sess.Len()

	m.input.Width = chatWidth - 8
	m.help.Width = m.width

	vpHeight := m.height - chromeLines - headerLines - 2
	if sideWidth == 0 {
		// Stacked: the chart and log sit under the chat.
		vpHeight -= lipgloss.Height(m.analyzeSection()) + lipgloss.Height(m.logSection())
	}
	if m.help.ShowAll {
		vpHeight -= 3
	}
	if vpHeight < minViewportHeight {
		vpHeight = minViewportHeight
	}

	m.viewport.Width = chatWidth - 4
	m.viewport.Height = vpHeight
	m.viewport.SetContent(m.renderTranscript(chatWidth - 4))
}

// =============================================================================
// RENDERING
// =============================================================================

// View renders the screen.
func (m Model) View() string {
	chatWidth, sideWidth := m.columns()

	title := m.theme.Title.Render(TitleText)

	chat := m.theme.Section.Width(chatWidth - 2).Render(
		m.theme.SectionTitle.Render(ChatHeader) + "\n" +
			m.viewport.View())
	input := m.theme.InputContainer.Width(chatWidth - 2).Render(m.input.View())

	var body string
	if sideWidth == 0 {
		body = lipgloss.JoinVertical(lipgloss.Left,
			chat,
			input,
			m.section(m.width, m.analyzeSection()),
			m.section(m.width, m.logSection()),
		)
	} else {
		left := lipgloss.JoinVertical(lipgloss.Left, chat, input)
		right := lipgloss.JoinVertical(lipgloss.Left,
			m.section(sideWidth, m.analyzeSection()),
			m.section(sideWidth, m.logSection()),
		)
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		body,
		m.help.View(m.keyMap),
		m.status.View(),
	)
}

func (m Model) section(width int, content string) string {
	return m.theme.Section.Width(width - 2).Render(content)
}

func (m Model) analyzeSection() string {
	return m.theme.SectionTitle.Render(AnalyzeHeader) + "\n" + m.chart.View()
}

func (m Model) logSection() string {
	return m.theme.SectionTitle.Render(LogHeader) + "\n" + m.table.View()
}

// renderTranscript draws each turn as a user bubble followed by a bot
// bubble.
func (m Model) renderTranscript(width int) string {
	turns := m.sess.Transcript()
	if len(turns) == 0 {
		return m.theme.EmptyState.Render(emptyTranscriptText)
	}

	bubbleWidth := width * 3 / 4
	if bubbleWidth < 20 {
		bubbleWidth = width
	}

	var b strings.Builder
	for i, ex := range turns {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderExchange(ex, width, bubbleWidth))
	}
	return b.String()
}

func (m Model) renderExchange(ex model.Exchange, width, bubbleWidth int) string {
	user := lipgloss.JoinVertical(lipgloss.Right,
		m.theme.RoleLabel.Render("You"),
		m.theme.UserBubble.MaxWidth(bubbleWidth).Width(bubbleWidth-4).Render(ex.Message),
	)
	user = lipgloss.PlaceHorizontal(width, lipgloss.Right, user)

	meta := styles.LabelStyle(ex.Result.Label).Render(styles.LabelIndicator(ex.Result.Label)+" "+string(ex.Result.Label)) +
		m.theme.RoleLabel.Render("  "+ex.Result.Analysis)
	bot := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.RoleLabel.Render("Bot"),
		m.theme.BotBubble.MaxWidth(bubbleWidth).Width(bubbleWidth-4).Render(ex.Result.Response),
		meta,
	)
	return user + "\n" + bot
}
