// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual building blocks of the missionchat
// TUI: the label chart, the message log table and the status bar.
//
// Each component keeps its own width and renders with View. A nil theme
// renders plain text, which the CLI uses for non-interactive output.
package components
