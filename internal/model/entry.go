// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"time"

	"github.com/jeranaias/missionchat/internal/classify"
)

// Literal values used for the connect column.
const (
	ConnectTrue  = "True"
	ConnectFalse = "False"
)

// Columns is the header of the tabular log, in storage order.
var Columns = []string{"message", "response", "label", "analyze", "connect"}

// =============================================================================
// ENTRY
// =============================================================================

// Entry is one row of the message log.
// All fields are text so a loaded file round-trips unchanged.
type Entry struct {
	Message  string         `json:"message"`
	Response string         `json:"response"`
	Label    classify.Label `json:"label"`
	Analyze  string         `json:"analyze"`
	Connect  string         `json:"connect"`
}

// NewEntry builds a log entry from a message and its classification.
func NewEntry(message string, res classify.Result) Entry {
	return Entry{
		Message:  message,
		Response: res.Response,
		Label:    res.Label,
		Analyze:  res.Analysis,
		Connect:  FormatConnect(res.Connect),
	}
}

// FormatConnect renders the connect flag as "True" or "False".
func FormatConnect(connect bool) string {
	if connect {
		return ConnectTrue
	}
	return ConnectFalse
}

// ParseConnect reads a connect value. Anything other than a
// case-insensitive "true" is false.
func ParseConnect(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), ConnectTrue)
}

// Connected reports the entry's connect flag.
func (e Entry) Connected() bool {
	return ParseConnect(e.Connect)
}

// Record returns the entry's fields in Columns order.
func (e Entry) Record() []string {
	return []string{e.Message, e.Response, string(e.Label), e.Analyze, e.Connect}
}

// EntryFromRecord builds an entry from a row whose columns are named by
// header. Missing columns are left empty. A blank connect value is derived
// from the label.
func EntryFromRecord(header, record []string) Entry {
	var e Entry
	for i, name := range header {
		if i >= len(record) {
			break
		}
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "message":
			e.Message = record[i]
		case "response":
			e.Response = record[i]
		case "label":
			e.Label = classify.Label(record[i])
		case "analyze":
			e.Analyze = record[i]
		case "connect":
			e.Connect = record[i]
		}
	}
	if e.Connect == "" && e.Label != "" {
		e.Connect = FormatConnect(e.Label == classify.Positive)
	}
	return e
}

// =============================================================================
// EXCHANGE
// =============================================================================

// Exchange is one turn of the chat transcript. The transcript lives only
// for the current session and is never written to the log file.
type Exchange struct {
	Message   string          `json:"message"`
	Result    classify.Result `json:"result"`
	Timestamp time.Time       `json:"timestamp"`
}
