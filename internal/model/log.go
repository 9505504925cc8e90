// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"fmt"
	"sort"

	"github.com/jeranaias/missionchat/internal/classify"
)

// =============================================================================
// LOG
// =============================================================================

// Log is an ordered, append-only sequence of entries. Entries are never
// removed or reordered, so Len never decreases.
//
// Log is not safe for concurrent use; it is owned by a single session.
type Log struct {
	entries []Entry
}

// NewLog creates a log seeded with existing entries (oldest first).
func NewLog(entries []Entry) *Log {
	return &Log{entries: copyEntries(entries)}
}

// Append adds an entry to the end of the log.
func (l *Log) Append(e Entry) {
	l.entries = append(l.entries, e)
}

// Len returns the number of entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Entries returns a copy of every entry, oldest first.
func (l *Log) Entries() []Entry {
	return copyEntries(l.entries)
}

// Tail returns the most recent n entries, oldest first.
// n <= 0 returns nothing; n larger than the log returns everything.
func (l *Log) Tail(n int) []Entry {
	if n <= 0 {
		return []Entry{}
	}
	start := len(l.entries) - n
	if start < 0 {
		start = 0
	}
	return copyEntries(l.entries[start:])
}

func copyEntries(src []Entry) []Entry {
	out := make([]Entry, len(src))
	copy(out, src)
	return out
}

// CountByLabel counts entries per label over the whole log.
func (l *Log) CountByLabel() Counts {
	return CountEntries(l.entries)
}

// =============================================================================
// COUNTS
// =============================================================================

// Counts maps each label to its number of entries.
type Counts map[classify.Label]int

// LabelCount is one label and its count.
type LabelCount struct {
	Label   classify.Label `json:"label"`
	Count   int            `json:"count"`
	Percent float64        `json:"percent"`
}

// CountEntries counts entries per label.
func CountEntries(entries []Entry) Counts {
	c := make(Counts)
	for _, e := range entries {
		c[e.Label]++
	}
	return c
}

// Total returns the sum of all counts.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Percent returns the label's share of the total, 0-100.
func (c Counts) Percent(label classify.Label) float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}
	return float64(c[label]) * 100 / float64(total)
}

// Sorted returns the labels with a non-zero count, largest first.
// Ties keep display order (Neutral, Positive, Negative, then others by name).
func (c Counts) Sorted() []LabelCount {
	out := make([]LabelCount, 0, len(c))
	for label, n := range c {
		if n == 0 {
			continue
		}
		out = append(out, LabelCount{Label: label, Count: n, Percent: c.Percent(label)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		oi, oj := out[i].Label.Order(), out[j].Label.Order()
		if oi != oj {
			return oi < oj
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// FormatPercent renders a share as "%1.1f%%", e.g. "66.7%".
func FormatPercent(p float64) string {
	return fmt.Sprintf("%1.1f%%", p)
}
