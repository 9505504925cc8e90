// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared styling for CLI output.
//
// Colors come from the TUI palette so both surfaces agree. The lipgloss
// color profile is set from terminal detection, so piped output is plain.

package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/missionchat/internal/classify"
	"github.com/jeranaias/missionchat/internal/ui/styles"
)

func init() {
	// Respects NO_COLOR, FORCE_COLOR and TTY detection
	lipgloss.SetColorProfile(GetColorProfile())
}

// =============================================================================
// SHARED STYLES
// =============================================================================

var (
	// TitleStyle is used for command titles and headers
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Purple)

	// FieldStyle is used for field names in key/value output
	FieldStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Width(10)

	// PromptStyle is the chat prompt
	PromptStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	// ErrorStyle is used for error messages and failures
	ErrorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose).
			Bold(true)

	// WarningStyle is used for warnings and cautions
	WarningStyle = lipgloss.NewStyle().
			Foreground(styles.Amber)

	// DimStyle is used for secondary information and hints
	DimStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)

	// CommandStyle highlights chat commands in help text
	CommandStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald)

	// SeparatorStyle is used for visual separators
	SeparatorStyle = lipgloss.NewStyle().
			Foreground(styles.Overlay)
)

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// RenderSeparator renders a horizontal separator line. The default width
// is 70 characters.
func RenderSeparator(width ...int) string {
	w := 70
	if len(width) > 0 && width[0] > 0 {
		w = width[0]
	}
	return SeparatorStyle.Render(strings.Repeat("-", w))
}

// RenderField renders a field name padded to a fixed width.
func RenderField(name string) string {
	return FieldStyle.Render(name + ":")
}

// RenderLabel renders a classification label in its color.
func RenderLabel(l classify.Label) string {
	return RenderConditional(styles.LabelStyle(l), l.String())
}

// RenderConditional renders text with style if colors are enabled,
// otherwise returns the text unmodified.
func RenderConditional(style lipgloss.Style, text string) string {
	if !ColorsEnabled() {
		return text
	}
	return style.Render(text)
}

// chartTheme returns the theme for CLI charts, or nil for plain output.
func chartTheme() *styles.Theme {
	if !ColorsEnabled() {
		return nil
	}
	return styles.NewTheme("auto")
}
