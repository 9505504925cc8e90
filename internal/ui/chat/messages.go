// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// noticeTimeout is how long a status notice stays visible.
const noticeTimeout = 3 * time.Second

// SubmittedMsg reports that a message went through the submit cycle.
// It is returned as a command so a parent model can react to new entries.
type SubmittedMsg struct {
	Entries int
}

// NoticeClearMsg removes a status notice if it is still the one shown.
type NoticeClearMsg struct {
	ID int
}

func clearNoticeCmd(id int) tea.Cmd {
	return tea.Tick(noticeTimeout, func(time.Time) tea.Msg {
		return NoticeClearMsg{ID: id}
	})
}
