// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	Name         string
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Title        lipgloss.Style
	SectionTitle lipgloss.Style
	Section      lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble lipgloss.Style
	BotBubble  lipgloss.Style
	RoleLabel  lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// CHART AND TABLE STYLES
	// ==========================================================================

	BarEmpty     lipgloss.Style
	Percent      lipgloss.Style
	EmptyState   lipgloss.Style
	TableHeader  lipgloss.Style
	TableCell    lipgloss.Style
	TableBorder  lipgloss.Color
	TableSurface lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	StatusKey    lipgloss.Style
	StatusValue  lipgloss.Style
	StatusWarn   lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
}

// NewTheme creates a theme. name is "auto", "dark" or "light"; anything
// else is treated as "auto".
func NewTheme(name string) *Theme {
	colorProfile := termenv.ColorProfile()

	name = strings.ToLower(strings.TrimSpace(name))
	var isDark bool
	switch name {
	case "dark":
		isDark = true
		lipgloss.SetHasDarkBackground(true)
	case "light":
		isDark = false
		lipgloss.SetHasDarkBackground(false)
	default:
		name = "auto"
		isDark = termenv.HasDarkBackground()
	}

	t := &Theme{
		Name:         name,
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Headers
	t.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple).
		Background(SurfaceDim).
		Padding(0, 2)

	t.SectionTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		MarginBottom(1)

	t.Section = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 1).
		MarginLeft(2)

	t.BotBubble = lipgloss.NewStyle().
		Foreground(BotBubbleFg).
		Background(BotBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(BotBubbleBorder).
		Padding(0, 1).
		MarginRight(2)

	t.RoleLabel = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderBottom(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Chart and table
	t.BarEmpty = lipgloss.NewStyle().
		Foreground(Overlay)

	t.Percent = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.EmptyState = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.TableHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple).
		Padding(0, 1)

	t.TableCell = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.TableBorder = lipgloss.Color("240")

	t.TableSurface = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.TableBorder)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.StatusKey = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.StatusValue = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.StatusWarn = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 100 {
		return LayoutStacked
	}
	return LayoutSplit
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutStacked LayoutMode = iota // < 100 columns: chat above chart and log
	LayoutSplit                     // chat on the left, chart and log on the right
)
