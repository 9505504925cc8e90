// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/missionchat/internal/classify"
)

// =============================================================================
// PRIMARY ACCENT COLORS
// =============================================================================

// Purple - Primary accent, bot messages, titles
var Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// Cyan - Brand color, neutral label, key hints
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// Emerald - Success states, positive label
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Rose - Errors, negative label
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - Warnings, persist failures
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// SurfaceDim - Headers and status bar background
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}

// Overlay - Borders, separators, empty bar cells
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextSecondary - Labels, less prominent text
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}

// TextMuted - Hints, timestamps, placeholders
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// TextInverse - Text on colored backgrounds
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// =============================================================================
// MESSAGE BUBBLE COLORS
// =============================================================================

// User message bubble - Blue tones
var UserBubbleBg = lipgloss.AdaptiveColor{Light: "#DBEAFE", Dark: "#1D4ED8"}
var UserBubbleFg = lipgloss.AdaptiveColor{Light: "#1E40AF", Dark: "#E0F2FE"}
var UserBubbleBorder = lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#3B82F6"}

// Bot message bubble - Muted violet
var BotBubbleBg = lipgloss.AdaptiveColor{Light: "#F5F3FF", Dark: "#3B3655"}
var BotBubbleFg = lipgloss.AdaptiveColor{Light: "#5B4B8A", Dark: "#E9E4F5"}
var BotBubbleBorder = lipgloss.AdaptiveColor{Light: "#C4B5FD", Dark: "#A78BFA"}

// =============================================================================
// LABEL COLORS
// =============================================================================

// LabelColor returns the color used for a classification label.
func LabelColor(l classify.Label) lipgloss.AdaptiveColor {
	switch l {
	case classify.Neutral:
		return Cyan
	case classify.Positive:
		return Emerald
	case classify.Negative:
		return Rose
	default:
		return TextSecondary
	}
}

// LabelStyle returns a bold style in the label's color.
func LabelStyle(l classify.Label) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(LabelColor(l)).Bold(true)
}

// =============================================================================
// ACCESSIBILITY: Shapes alongside colors
// =============================================================================

// StatusIndicators are ASCII markers shown next to colored status text so
// the meaning survives without color.
var StatusIndicators = struct {
	Success string
	Error   string
	Warning string
	Info    string
}{
	Success: "[OK]",
	Error:   "[X]",
	Warning: "[!]",
	Info:    "[i]",
}

// LabelIndicator returns a one-character marker for a label.
func LabelIndicator(l classify.Label) string {
	switch l {
	case classify.Positive:
		return "+"
	case classify.Negative:
		return "-"
	default:
		return "="
	}
}

// RenderWarning renders a warning with its indicator in amber.
func RenderWarning(message string) string {
	return lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true).
		Render(StatusIndicators.Warning + " " + message)
}

// RenderSuccess renders a success message with its indicator in emerald.
func RenderSuccess(message string) string {
	return lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true).
		Render(StatusIndicators.Success + " " + message)
}
