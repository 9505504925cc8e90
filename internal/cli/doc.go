// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the missionchat command line.
//
// Parse turns os.Args into a Command and Args. Each command has a HandleX
// function that prints errors and exits with a code from GetExitCode, and a
// HandleXCommand function that returns the error instead.
//
// Commands:
//
//	missionchat                 Start the TUI (default)
//	missionchat chat            Line-mode chat with input history
//	missionchat ask "message"   Classify one message and log it
//	missionchat log             Show recent log entries
//	missionchat stats           Show label counts and percentages
//	missionchat config          Show, locate or create the config file
//	missionchat export          Write the log as Markdown, JSON or HTML
//	missionchat version
//	missionchat help
//
// Commands that support --json write a JSONResponse to stdout and keep
// human-readable messages on stderr.
package cli
