// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package classify

import (
	"fmt"
	"strings"
)

// =============================================================================
// LABEL
// =============================================================================

// Label is the sentiment bucket assigned to a message.
// The string value is what gets written to the message log.
type Label string

const (
	Neutral  Label = "Neutral"
	Positive Label = "Positive"
	Negative Label = "Negative"
)

// Labels lists every label in display order.
var Labels = []Label{Neutral, Positive, Negative}

// String returns the label name.
func (l Label) String() string {
	return string(l)
}

// Valid reports whether l is one of the known labels.
func (l Label) Valid() bool {
	switch l {
	case Neutral, Positive, Negative:
		return true
	}
	return false
}

// Order returns the display position of the label. Unknown labels sort last.
func (l Label) Order() int {
	for i, known := range Labels {
		if l == known {
			return i
		}
	}
	return len(Labels)
}

// ParseLabel converts a case-insensitive label name into a Label.
func ParseLabel(s string) (Label, error) {
	for _, l := range Labels {
		if strings.EqualFold(strings.TrimSpace(s), string(l)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown label %q", s)
}

// =============================================================================
// BREAKDOWN
// =============================================================================

// Share is one label's percentage in an analysis breakdown.
type Share struct {
	Label   Label
	Percent int
}

// Breakdown is the ordered percentage split behind an analysis summary.
type Breakdown []Share

// BreakdownFor returns the fixed breakdown for a label: 100% to the label
// itself followed by 0% for the others.
//
// Neutral lists Positive before Negative; Negative and Positive list Neutral
// next. The order is part of the logged text and must stay stable.
func BreakdownFor(l Label) Breakdown {
	switch l {
	case Negative:
		return Breakdown{{Negative, 100}, {Neutral, 0}, {Positive, 0}}
	case Positive:
		return Breakdown{{Positive, 100}, {Neutral, 0}, {Negative, 0}}
	default:
		return Breakdown{{Neutral, 100}, {Positive, 0}, {Negative, 0}}
	}
}

// Total returns the sum of all percentages.
func (b Breakdown) Total() int {
	total := 0
	for _, s := range b {
		total += s.Percent
	}
	return total
}

// Dominant returns the label holding 100%, or false if none does.
func (b Breakdown) Dominant() (Label, bool) {
	for _, s := range b {
		if s.Percent == 100 {
			return s.Label, true
		}
	}
	return "", false
}

// String renders the breakdown as "Label N%, Label N%, Label N%".
func (b Breakdown) String() string {
	parts := make([]string, len(b))
	for i, s := range b {
		parts[i] = fmt.Sprintf("%s %d%%", s.Label, s.Percent)
	}
	return strings.Join(parts, ", ")
}
