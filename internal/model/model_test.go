// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"fmt"
	"testing"

	"github.com/jeranaias/missionchat/internal/classify"
)

func entryWithLabel(i int, label classify.Label) Entry {
	return Entry{
		Message:  fmt.Sprintf("message %d", i),
		Response: "r",
		Label:    label,
		Analyze:  classify.BreakdownFor(label).String(),
		Connect:  FormatConnect(label == classify.Positive),
	}
}

func makeEntries(n int) []Entry {
	entries := make([]Entry, n)
	for i := range entries {
		entries[i] = entryWithLabel(i, classify.Neutral)
	}
	return entries
}

func TestNewEntry(t *testing.T) {
	e := NewEntry("I have Faith", classify.Classify("I have Faith"))

	if e.Message != "I have Faith" {
		t.Errorf("Message = %q, original casing must be kept", e.Message)
	}
	if e.Label != classify.Positive {
		t.Errorf("Label = %v, want Positive", e.Label)
	}
	if e.Connect != "True" {
		t.Errorf("Connect = %q, want True", e.Connect)
	}
	if e.Analyze != "Positive 100%, Neutral 0%, Negative 0%" {
		t.Errorf("Analyze = %q", e.Analyze)
	}

	e = NewEntry("hi", classify.Classify("hi"))
	if e.Connect != "False" {
		t.Errorf("Connect = %q, want False", e.Connect)
	}
}

func TestParseConnect(t *testing.T) {
	tests := map[string]bool{
		"True": true, "true": true, " TRUE ": true,
		"False": false, "": false, "yes": false,
	}
	for in, want := range tests {
		if got := ParseConnect(in); got != want {
			t.Errorf("ParseConnect(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestEntryFromRecord(t *testing.T) {
	// Pandas writes a leading unnamed index column; columns map by name.
	header := []string{"", "message", "response", "label", "analyze", "connect"}
	record := []string{"0", "hello", "Hello, what can I help you?", "Neutral", "Neutral 100%, Positive 0%, Negative 0%", "False"}

	e := EntryFromRecord(header, record)
	if e.Message != "hello" || e.Label != classify.Neutral || e.Connect != "False" {
		t.Errorf("unexpected entry: %+v", e)
	}

	// Reordered and missing columns.
	e = EntryFromRecord([]string{"label", "message"}, []string{"Positive", "amen"})
	if e.Message != "amen" || e.Response != "" {
		t.Errorf("unexpected entry: %+v", e)
	}
	if e.Connect != "True" {
		t.Errorf("Connect = %q, want derived True", e.Connect)
	}

	// Short record.
	e = EntryFromRecord(Columns, []string{"only message"})
	if e.Message != "only message" || e.Label != "" || e.Connect != "" {
		t.Errorf("unexpected entry: %+v", e)
	}
}

func TestEntryRecordRoundTrip(t *testing.T) {
	e := NewEntry("you are stupid", classify.Classify("you are stupid"))
	got := EntryFromRecord(Columns, e.Record())
	if got != e {
		t.Errorf("round trip = %+v, want %+v", got, e)
	}
}

func TestLog_AppendMonotonic(t *testing.T) {
	log := NewLog(makeEntries(2))
	prev := log.Len()
	for i := 0; i < 5; i++ {
		log.Append(entryWithLabel(i, classify.Negative))
		if log.Len() != prev+1 {
			t.Fatalf("Len = %d after append, want %d", log.Len(), prev+1)
		}
		prev = log.Len()
	}
	if log.Len() != 7 {
		t.Errorf("Len = %d, want 7", log.Len())
	}
}

func TestLog_Tail(t *testing.T) {
	tests := []struct {
		name      string
		size      int
		n         int
		wantLen   int
		wantFirst string
	}{
		{"three_entries", 3, 10, 3, "message 0"},
		{"fifteen_entries", 15, 10, 10, "message 5"},
		{"exact", 10, 10, 10, "message 0"},
		{"zero", 5, 0, 0, ""},
		{"negative", 5, -1, 0, ""},
		{"empty_log", 0, 10, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := NewLog(makeEntries(tt.size))
			got := log.Tail(tt.n)
			if len(got) != tt.wantLen {
				t.Fatalf("Tail(%d) returned %d entries, want %d", tt.n, len(got), tt.wantLen)
			}
			if got == nil {
				t.Error("Tail returned nil slice")
			}
			if tt.wantLen == 0 {
				return
			}
			if got[0].Message != tt.wantFirst {
				t.Errorf("first = %q, want %q", got[0].Message, tt.wantFirst)
			}
			// Oldest first.
			last := fmt.Sprintf("message %d", tt.size-1)
			if got[len(got)-1].Message != last {
				t.Errorf("last = %q, want %q", got[len(got)-1].Message, last)
			}
		})
	}
}

func TestLog_CopiesAreIndependent(t *testing.T) {
	seed := makeEntries(2)
	log := NewLog(seed)
	seed[0].Message = "changed"

	entries := log.Entries()
	entries[1].Message = "changed"

	got := log.Entries()
	if got[0].Message != "message 0" || got[1].Message != "message 1" {
		t.Errorf("log was mutated through a copy: %+v", got)
	}
}

func TestLog_CountByLabel(t *testing.T) {
	log := NewLog(nil)
	for i, label := range []classify.Label{classify.Positive, classify.Negative, classify.Neutral, classify.Positive} {
		log.Append(entryWithLabel(i, label))
	}

	counts := log.CountByLabel()
	want := Counts{classify.Positive: 2, classify.Negative: 1, classify.Neutral: 1}
	if len(counts) != len(want) {
		t.Fatalf("counts = %v, want %v", counts, want)
	}
	for label, n := range want {
		if counts[label] != n {
			t.Errorf("counts[%v] = %d, want %d", label, counts[label], n)
		}
	}
	if counts.Total() != 4 {
		t.Errorf("Total = %d, want 4", counts.Total())
	}
}

func TestCounts_Sorted(t *testing.T) {
	counts := Counts{classify.Negative: 1, classify.Neutral: 1, classify.Positive: 2, classify.Label("Odd"): 1}
	sorted := counts.Sorted()

	wantOrder := []classify.Label{classify.Positive, classify.Neutral, classify.Negative, "Odd"}
	if len(sorted) != len(wantOrder) {
		t.Fatalf("Sorted returned %d items, want %d", len(sorted), len(wantOrder))
	}
	for i, label := range wantOrder {
		if sorted[i].Label != label {
			t.Errorf("sorted[%d] = %v, want %v", i, sorted[i].Label, label)
		}
	}
	if FormatPercent(sorted[0].Percent) != "40.0%" {
		t.Errorf("Positive percent = %s, want 40.0%%", FormatPercent(sorted[0].Percent))
	}
}

func TestCounts_Empty(t *testing.T) {
	counts := NewLog(nil).CountByLabel()
	if counts.Total() != 0 {
		t.Errorf("Total = %d, want 0", counts.Total())
	}
	if counts.Percent(classify.Neutral) != 0 {
		t.Error("Percent of empty counts should be 0")
	}
	if len(counts.Sorted()) != 0 {
		t.Error("Sorted of empty counts should be empty")
	}
}

func TestFormatPercent(t *testing.T) {
	tests := map[float64]string{
		100:            "100.0%",
		0:              "0.0%",
		200.0 / 3.0:    "66.7%",
		100.0 / 3.0:    "33.3%",
	}
	for in, want := range tests {
		if got := FormatPercent(in); got != want {
			t.Errorf("FormatPercent(%v) = %q, want %q", in, got, want)
		}
	}
}
