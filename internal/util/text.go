// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// UNICODE: Widths are terminal columns, not bytes or runes. CJK and
// full-width characters take two columns.

// StringWidth returns the display width of s.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateWidth shortens s to at most maxWidth columns, ending with "..."
// when anything was cut. Strings that already fit are returned unchanged.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// PadWidth truncates or right-pads s to exactly width columns.
func PadWidth(s string, width int) string {
	return runewidth.FillRight(TruncateWidth(s, width), width)
}

// SingleLine replaces line breaks and tabs with spaces so a value fits on
// one table row.
func SingleLine(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(s)
}
