// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes the message log to shareable report formats.
//
// # Key Types
//
//   - Document: A snapshot of the log plus its label counts
//   - Exporter: Renders a Document to bytes
//   - Options: Output location and rendering switches
//
// # Supported Formats
//
//   - Markdown: YAML frontmatter, a label summary and the entry table
//   - JSON: Machine-readable entries and counts
//   - HTML: Standalone page with embedded CSS
//
// # Usage
//
//	doc := export.NewDocument(store.Location(), entries)
//	exp, err := export.ForFormat("md", nil)
//	path, err := export.ExportToFile(doc, exp, opts)
package export
