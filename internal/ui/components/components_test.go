// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/missionchat/internal/classify"
	"github.com/jeranaias/missionchat/internal/model"
	"github.com/jeranaias/missionchat/internal/ui/styles"
	"github.com/jeranaias/missionchat/internal/util"
)

func entries(texts ...string) []model.Entry {
	out := make([]model.Entry, len(texts))
	for i, text := range texts {
		out[i] = model.NewEntry(text, classify.Classify(text))
	}
	return out
}

// =============================================================================
// HELPER FUNCTION TESTS
// =============================================================================

func TestFmtNumber(t *testing.T) {
	tests := []struct {
		input int
		want  string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{12345, "12,345"},
		{1234567, "1,234,567"},
		{-1500, "-1,500"},
		{-9223372036854775808, "-9,223,372,036,854,775,808"},
	}
	for _, tc := range tests {
		if got := fmtNumber(tc.input); got != tc.want {
			t.Errorf("fmtNumber(%d) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestPadLeft(t *testing.T) {
	if got := padLeft("5.0%", 6); got != "  5.0%" {
		t.Errorf("padLeft = %q", got)
	}
	if got := padLeft("100.0%", 4); got != "100.0%" {
		t.Errorf("padLeft should not cut: %q", got)
	}
}

// =============================================================================
// LABEL CHART TESTS
// =============================================================================

func TestLabelChart_Empty(t *testing.T) {
	for _, theme := range []*styles.Theme{nil, styles.NewTheme("dark")} {
		c := NewLabelChart(theme)
		if got := c.View(); !strings.Contains(got, ChartEmptyText) {
			t.Errorf("empty chart = %q, want %q", got, ChartEmptyText)
		}
	}
}

func TestLabelChart_Rows(t *testing.T) {
	c := NewLabelChart(nil)
	c.SetWidth(80)
	c.SetCounts(model.CountEntries(entries("a", "b", "you idiot")))

	lines := strings.Split(c.View(), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d rows, want 2:\n%s", len(lines), c.View())
	}
	if !strings.Contains(lines[0], "Neutral") || !strings.Contains(lines[0], "66.7%") || !strings.Contains(lines[0], "(2)") {
		t.Errorf("first row = %q, want Neutral 66.7%% (2)", lines[0])
	}
	if !strings.Contains(lines[1], "Negative") || !strings.Contains(lines[1], "33.3%") {
		t.Errorf("second row = %q, want Negative 33.3%%", lines[1])
	}
	if strings.Contains(c.View(), "Positive") {
		t.Error("labels with no entries should not be drawn")
	}
}

func TestLabelChart_BarLengths(t *testing.T) {
	c := NewLabelChart(nil)
	c.SetWidth(200) // bar capped at chartMaxBar
	c.SetCounts(model.Counts{classify.Positive: 3, classify.Negative: 1})

	lines := strings.Split(c.View(), "\n")
	full := strings.Count(lines[0], "█")
	small := strings.Count(lines[1], "█")
	if full != 30 || small != 10 {
		t.Errorf("bar cells = %d and %d, want 30 and 10", full, small)
	}
	for _, line := range lines {
		if cells := strings.Count(line, "█") + strings.Count(line, "░"); cells != chartMaxBar {
			t.Errorf("bar width = %d, want %d", cells, chartMaxBar)
		}
	}
}

func TestLabelChart_TinyShareStillVisible(t *testing.T) {
	c := NewLabelChart(nil)
	c.SetWidth(40)
	c.SetCounts(model.Counts{classify.Neutral: 999, classify.Negative: 1})

	lines := strings.Split(c.View(), "\n")
	if got := strings.Count(lines[1], "█"); got != 1 {
		t.Errorf("tiny share drew %d cells, want 1", got)
	}
	if !strings.Contains(lines[1], "0.1%") {
		t.Errorf("row = %q, want 0.1%%", lines[1])
	}
}

// =============================================================================
// LOG TABLE TESTS
// =============================================================================

func TestLogTable_Empty(t *testing.T) {
	lt := NewLogTable(nil, 10)
	if got := lt.View(); got != LogEmptyText {
		t.Errorf("empty table = %q, want %q", got, LogEmptyText)
	}
}

func TestLogTable_TailOnly(t *testing.T) {
	texts := make([]string, 15)
	for i := range texts {
		texts[i] = "message " + toStr(i)
	}

	lt := NewLogTable(nil, 10)
	lt.SetWidth(120)
	lt.SetEntries(entries(texts...))

	if lt.Len() != 10 {
		t.Fatalf("Len() = %d, want 10", lt.Len())
	}
	view := lt.View()
	if strings.Contains(view, "message 4 ") || !strings.Contains(view, "message 5") || !strings.Contains(view, "message 14") {
		t.Errorf("table should show messages 5..14:\n%s", view)
	}
	for _, col := range model.Columns {
		if !strings.Contains(view, col) {
			t.Errorf("header %q missing", col)
		}
	}
}

func TestLogTable_DefaultTail(t *testing.T) {
	if lt := NewLogTable(nil, 0); lt.TailSize != DefaultTailSize {
		t.Errorf("TailSize = %d, want %d", lt.TailSize, DefaultTailSize)
	}
}

func TestLogColumns(t *testing.T) {
	for _, width := range []int{0, 40, 80, 160} {
		cols := LogColumns(width)
		if len(cols) != len(model.Columns) {
			t.Fatalf("width %d: %d columns", width, len(cols))
		}
		for i, col := range cols {
			if col.Title != model.Columns[i] {
				t.Errorf("column %d = %q, want %q", i, col.Title, model.Columns[i])
			}
			if col.Width < logColumnMin[i] {
				t.Errorf("width %d: column %s = %d, below minimum", width, col.Title, col.Width)
			}
		}
	}
}

func TestLogRows_FitColumns(t *testing.T) {
	cols := LogColumns(60)
	rows := LogRows(entries("line one\nline two", "今日はとても良い天気ですね、神に感謝します"), cols)

	for _, row := range rows {
		for j, cell := range row {
			if strings.Contains(cell, "\n") {
				t.Errorf("cell %q spans lines", cell)
			}
			if w := util.StringWidth(cell); w > cols[j].Width {
				t.Errorf("cell %q is %d wide, column is %d", cell, w, cols[j].Width)
			}
		}
	}
}

// =============================================================================
// STATUS BAR TESTS
// =============================================================================

func TestStatusBar_View(t *testing.T) {
	sb := NewStatusBar(nil)
	sb.SessionID = "0b5e3c2a-1111-2222-3333-444455556666"
	sb.Entries = 1234
	sb.Location = "user_messages.csv"
	sb.SetWidth(90)

	got := sb.View()
	for _, want := range []string{"session 0b5e3c2a", "entries 1,234", "store user_messages.csv"} {
		if !strings.Contains(got, want) {
			t.Errorf("status bar %q missing %q", got, want)
		}
	}
	if strings.Contains(got, "1111") {
		t.Error("session id should be shortened")
	}
}

func TestStatusBar_WarningBeatsNotice(t *testing.T) {
	sb := NewStatusBar(nil)
	sb.SetWidth(120)
	sb.SetNotice("Copied")
	if !strings.Contains(sb.View(), "Copied") {
		t.Error("notice should be shown")
	}

	sb.SetWarning("save failed")
	got := sb.View()
	if !strings.Contains(got, "[!] save failed") || strings.Contains(got, "Copied") {
		t.Errorf("warning should replace notice: %q", got)
	}
}

func TestStatusBar_FitsWidth(t *testing.T) {
	sb := NewStatusBar(styles.NewTheme("dark"))
	sb.SessionID = "abc"
	sb.Location = strings.Repeat("very/long/path/", 20) + "user_messages.csv"
	sb.SetWidth(50)

	if w := lipgloss.Width(sb.View()); w > 50 {
		t.Errorf("status bar width = %d, want <= 50", w)
	}
}
