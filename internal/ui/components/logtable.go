// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/missionchat/internal/model"
	"github.com/jeranaias/missionchat/internal/ui/styles"
	"github.com/jeranaias/missionchat/internal/util"
)

// LogEmptyText is shown when the log has no entries.
const LogEmptyText = "No messages logged yet."

// DefaultTailSize is how many recent entries the table shows.
const DefaultTailSize = 10

// Relative column weights for message, response, label, analyze, connect.
var logColumnWeights = []int{6, 8, 3, 7, 2}

// Minimum widths so headers stay readable.
var logColumnMin = []int{7, 8, 5, 7, 7}

// =============================================================================
// LOG TABLE COMPONENT
// =============================================================================

// LogTable shows the most recent log entries in a read-only table.
type LogTable struct {
	table    table.Model
	entries  []model.Entry
	Width    int
	TailSize int
	theme    *styles.Theme
}

// NewLogTable creates an empty table showing up to tailSize rows.
func NewLogTable(theme *styles.Theme, tailSize int) *LogTable {
	if tailSize <= 0 {
		tailSize = DefaultTailSize
	}
	lt := &LogTable{
		Width:    80,
		TailSize: tailSize,
		theme:    theme,
	}
	lt.table = table.New(
		table.WithColumns(LogColumns(lt.Width)),
		table.WithFocused(false),
		table.WithHeight(tailSize+1),
	)
	lt.applyStyles()
	return lt
}

func (lt *LogTable) applyStyles() {
	s := table.DefaultStyles()
	if lt.theme != nil {
		s.Header = lt.theme.TableHeader.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lt.theme.TableBorder).
			BorderBottom(true)
		s.Cell = lt.theme.TableCell
	}
	// Nothing is selectable, so the selected row looks like any other.
	s.Selected = lipgloss.NewStyle()
	lt.table.SetStyles(s)
}

// LogColumns splits width across the five log columns.
func LogColumns(width int) []table.Column {
	// Two columns of cell padding per column.
	avail := width - 2*len(model.Columns)
	total := 0
	for _, w := range logColumnWeights {
		total += w
	}

	cols := make([]table.Column, len(model.Columns))
	for i, name := range model.Columns {
		w := logColumnMin[i]
		if avail > 0 {
			if share := avail * logColumnWeights[i] / total; share > w {
				w = share
			}
		}
		cols[i] = table.Column{Title: name, Width: w}
	}
	return cols
}

// LogRows converts entries to single-line rows fitted to columns.
func LogRows(entries []model.Entry, cols []table.Column) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rec := e.Record()
		row := make(table.Row, len(rec))
		for j, v := range rec {
			row[j] = util.TruncateWidth(util.SingleLine(v), cols[j].Width)
		}
		rows[i] = row
	}
	return rows
}

// SetEntries shows the last TailSize of entries.
func (lt *LogTable) SetEntries(entries []model.Entry) {
	if len(entries) > lt.TailSize {
		entries = entries[len(entries)-lt.TailSize:]
	}
	lt.entries = entries
	lt.refresh()
}

// SetWidth updates the table width and recomputes the columns.
func (lt *LogTable) SetWidth(width int) {
	lt.Width = width
	lt.refresh()
}

// Len returns the number of rows shown.
func (lt *LogTable) Len() int {
	return len(lt.entries)
}

func (lt *LogTable) refresh() {
	cols := LogColumns(lt.Width)
	// Rows must be cleared before shrinking the column set.
	lt.table.SetRows(nil)
	lt.table.SetColumns(cols)
	lt.table.SetRows(LogRows(lt.entries, cols))
	lt.table.SetWidth(lt.Width)
	lt.table.SetHeight(len(lt.entries) + lt.headerLines())
}

// headerLines is the header row plus its bottom border when themed.
func (lt *LogTable) headerLines() int {
	if lt.theme != nil {
		return 2
	}
	return 1
}

// View renders the table, or the empty-state text.
func (lt *LogTable) View() string {
	if len(lt.entries) == 0 {
		if lt.theme != nil {
			return lt.theme.EmptyState.Render(LogEmptyText)
		}
		return LogEmptyText
	}
	return lt.table.View()
}
