// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/missionchat/internal/model"
	"github.com/jeranaias/missionchat/internal/ui/styles"
	"github.com/jeranaias/missionchat/internal/util"
)

// ChartEmptyText is shown when no message has been logged.
const ChartEmptyText = "No data to display in the pie chart yet."

const (
	chartLabelWidth = 10
	chartMinBar     = 10
	chartMaxBar     = 40
)

// =============================================================================
// LABEL CHART COMPONENT
// =============================================================================

// LabelChart renders the share of each label as horizontal bars, one row per
// label present, largest first:
//
//	= Neutral   ████████████░░░░░░  66.7% (2)
//	- Negative  ██████░░░░░░░░░░░░  33.3% (1)
type LabelChart struct {
	Counts model.Counts
	Width  int
	theme  *styles.Theme
}

// NewLabelChart creates a chart. A nil theme renders without styles.
func NewLabelChart(theme *styles.Theme) *LabelChart {
	return &LabelChart{Width: 60, theme: theme}
}

// SetCounts replaces the counts shown.
func (c *LabelChart) SetCounts(counts model.Counts) {
	c.Counts = counts
}

// SetWidth updates the available width.
func (c *LabelChart) SetWidth(width int) {
	c.Width = width
}

// barWidth is what is left of the row after the label and the numbers.
func (c *LabelChart) barWidth() int {
	w := c.Width - chartLabelWidth - 2 - 16
	if w < chartMinBar {
		return chartMinBar
	}
	if w > chartMaxBar {
		return chartMaxBar
	}
	return w
}

// View renders the chart.
func (c *LabelChart) View() string {
	rows := c.Counts.Sorted()
	if len(rows) == 0 {
		return c.style(func(t *styles.Theme) lipgloss.Style { return t.EmptyState }).Render(ChartEmptyText)
	}

	width := c.barWidth()
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		filled := int(row.Percent*float64(width)/100 + 0.5)
		if filled > width {
			filled = width
		}
		if filled == 0 && row.Count > 0 {
			filled = 1
		}

		name := util.PadWidth(styles.LabelIndicator(row.Label)+" "+string(row.Label), chartLabelWidth)
		labelStyle := lipgloss.NewStyle()
		if c.theme != nil {
			labelStyle = styles.LabelStyle(row.Label)
		}
		bar := labelStyle.Render(strings.Repeat("█", filled)) +
			c.style(func(t *styles.Theme) lipgloss.Style { return t.BarEmpty }).Render(strings.Repeat("░", width-filled))
		pct := c.style(func(t *styles.Theme) lipgloss.Style { return t.Percent }).
			Render(padLeft(model.FormatPercent(row.Percent), 6))

		lines = append(lines, labelStyle.Render(name)+"  "+bar+" "+pct+" ("+fmtNumber(row.Count)+")")
	}
	return strings.Join(lines, "\n")
}

func (c *LabelChart) style(pick func(*styles.Theme) lipgloss.Style) lipgloss.Style {
	if c.theme == nil {
		return lipgloss.NewStyle()
	}
	return pick(c.theme)
}
