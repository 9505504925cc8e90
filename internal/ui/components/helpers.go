// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import "strings"

// =============================================================================
// SHARED HELPER FUNCTIONS
// =============================================================================

// toStr converts an integer to a string without using fmt package.
func toStr(n int) string {
	if n == 0 {
		return "0"
	}

	if n == -9223372036854775808 { // math.MinInt64
		return "-9223372036854775808"
	}

	negative := n < 0
	if negative {
		n = -n
	}

	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}

	if negative {
		return "-" + string(digits)
	}
	return string(digits)
}

// fmtNumber formats a count with thousand separators.
func fmtNumber(n int) string {
	if n == -9223372036854775808 {
		return "-9,223,372,036,854,775,808"
	}
	if n < 0 {
		return "-" + fmtNumber(-n)
	}
	s := toStr(n)
	if n < 1000 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// padLeft right-aligns s in width bytes. Only used for ASCII numbers.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
