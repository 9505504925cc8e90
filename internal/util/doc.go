// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small file and text helpers shared by the storage,
// CLI and UI packages.
//
// # Key Functions
//
//   - AtomicWriteFile: crash-safe whole-file replacement
//   - TruncateWidth, PadWidth, StringWidth: display-width aware text fitting
//   - SingleLine: collapse a multi-line value for a table cell
package util
