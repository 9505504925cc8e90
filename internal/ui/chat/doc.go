// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the full-screen Bubble Tea interface.
//
// The screen has three sections around one session.Session:
//
//   - Chat with AI Bot: the session transcript and the input box
//   - Overall Analyze: label proportions over the whole log
//   - User message log: the last entries of the log
//
// Pressing Enter on a non-empty input runs the session's submit cycle and
// refreshes all three sections. Wide terminals show the chat on the left
// and the chart and log on the right; narrow ones stack everything.
package chat
