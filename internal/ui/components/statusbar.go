// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/missionchat/internal/ui/styles"
	"github.com/jeranaias/missionchat/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// StatusBar is the bottom line of the TUI: session, entry count, store
// location and the last persist warning, with key hints on wide terminals.
type StatusBar struct {
	SessionID string
	Entries   int
	Location  string
	Warning   string
	Notice    string
	Width     int

	ShowShortcuts bool
	theme         *styles.Theme
}

// NewStatusBar creates a new StatusBar component
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth updates the status bar width
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetWarning sets or clears (with "") the persist warning.
func (s *StatusBar) SetWarning(msg string) {
	s.Warning = msg
}

// SetNotice sets a short transient message such as "Copied".
func (s *StatusBar) SetNotice(msg string) {
	s.Notice = msg
}

// shortID keeps the first UUID group.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// View renders the status bar
func (s *StatusBar) View() string {
	sep := " | "
	parts := []string{
		s.kv("session", shortID(s.SessionID)),
		s.kv("entries", fmtNumber(s.Entries)),
	}
	if s.Location != "" {
		parts = append(parts, s.kv("store", s.Location))
	}

	switch {
	case s.Warning != "":
		parts = append(parts, s.warn(styles.StatusIndicators.Warning+" "+s.Warning))
	case s.Notice != "":
		parts = append(parts, s.value(s.Notice))
	}

	if s.ShowShortcuts && s.Width >= 100 {
		parts = append(parts, s.shortcut("enter", "send")+" "+
			s.shortcut("ctrl+y", "copy")+" "+
			s.shortcut("esc", "quit"))
	}

	line := strings.Join(parts, sep)
	width := s.Width
	if width <= 0 {
		width = 80
	}
	if lipgloss.Width(line) > width {
		// Drop styling and cut to fit.
		line = util.TruncateWidth(s.plain(), width-2)
	}
	if s.theme == nil {
		return line
	}
	return s.theme.StatusBar.Width(width).Render(line)
}

// plain renders the bar without styles or shortcuts.
func (s *StatusBar) plain() string {
	parts := []string{"session " + shortID(s.SessionID), "entries " + fmtNumber(s.Entries)}
	if s.Location != "" {
		parts = append(parts, "store "+s.Location)
	}
	if s.Warning != "" {
		parts = append(parts, styles.StatusIndicators.Warning+" "+s.Warning)
	} else if s.Notice != "" {
		parts = append(parts, s.Notice)
	}
	return strings.Join(parts, " | ")
}

func (s *StatusBar) kv(key, value string) string {
	if s.theme == nil {
		return key + " " + value
	}
	return s.theme.StatusKey.Render(key) + " " + s.theme.StatusValue.Render(value)
}

func (s *StatusBar) value(v string) string {
	if s.theme == nil {
		return v
	}
	return s.theme.StatusValue.Render(v)
}

func (s *StatusBar) warn(v string) string {
	if s.theme == nil {
		return v
	}
	return s.theme.StatusWarn.Render(v)
}

func (s *StatusBar) shortcut(key, desc string) string {
	if s.theme == nil {
		return key + " " + desc
	}
	return s.theme.ShortcutKey.Render(key) + " " + s.theme.ShortcutDesc.Render(desc)
}
