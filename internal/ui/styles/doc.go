// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling for the missionchat TUI.

# Colors (colors.go)

All colors are Lip Gloss AdaptiveColor values so the palette follows a light
or dark terminal background. Each classification label has its own color:

  - Neutral  - Cyan
  - Positive - Emerald
  - Negative - Rose

Labels outside the three known values fall back to TextSecondary.

# Theme (theme.go)

Theme detects terminal capabilities through termenv and builds every
lipgloss.Style used by the chat view, the chart and the log table.

	theme := styles.NewTheme("auto")
	theme.SetSize(msg.Width, msg.Height)
	header := theme.SectionTitle.Render("Overall Analyze")

A theme name of "dark" or "light" skips background detection.
*/
package styles
