// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jeranaias/missionchat/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports the log as a Markdown report.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// frontmatter is the YAML header of a Markdown export.
type frontmatter struct {
	Title     string         `yaml:"title"`
	Source    string         `yaml:"source"`
	Entries   int            `yaml:"entries"`
	Labels    map[string]int `yaml:"labels"`
	Exported  string         `yaml:"exported"`
	Generator string         `yaml:"generator"`
}

// Export renders the document as Markdown.
func (e *MarkdownExporter) Export(doc *Document) ([]byte, error) {
	if err := doc.validate(); err != nil {
		return nil, err
	}

	var sb strings.Builder

	if e.options.IncludeMetadata {
		fm := frontmatter{
			Title:     doc.Title,
			Source:    doc.Source,
			Entries:   len(doc.Entries),
			Labels:    make(map[string]int, len(doc.Counts)),
			Exported:  doc.CreatedAt.Format(time.RFC3339),
			Generator: "missionchat",
		}
		for label, n := range doc.Counts {
			fm.Labels[string(label)] = n
		}
		header, err := yaml.Marshal(fm)
		if err != nil {
			return nil, fmt.Errorf("encode frontmatter: %w", err)
		}
		sb.WriteString("---\n")
		sb.Write(header)
		sb.WriteString("---\n\n")
	}

	sb.WriteString(fmt.Sprintf("# %s\n\n", escapeMarkdown(doc.Title)))

	if e.options.IncludeMetadata {
		sb.WriteString("## Summary\n\n")
		sb.WriteString(fmt.Sprintf("- **Source**: `%s`\n", doc.Source))
		sb.WriteString(fmt.Sprintf("- **Entries**: %d\n", len(doc.Entries)))
		sb.WriteString(fmt.Sprintf("- **Exported**: %s\n\n", formatTimestamp(doc.CreatedAt)))

		sb.WriteString("| Label | Count | Share |\n")
		sb.WriteString("|-------|------:|------:|\n")
		for _, lc := range doc.Counts.Sorted() {
			sb.WriteString(fmt.Sprintf("| %s | %d | %s |\n",
				tableCell(string(lc.Label)), lc.Count, model.FormatPercent(lc.Percent)))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Messages\n\n")
	sb.WriteString("| # | " + strings.Join(model.Columns, " | ") + " |\n")
	sb.WriteString("|--:|" + strings.Repeat("---|", len(model.Columns)) + "\n")
	for i, entry := range doc.Entries {
		cells := entry.Record()
		for j := range cells {
			cells[j] = tableCell(cells[j])
		}
		sb.WriteString(fmt.Sprintf("| %d | %s |\n", i+1, strings.Join(cells, " | ")))
	}

	sb.WriteString("\n---\n\n")
	sb.WriteString(fmt.Sprintf("*Exported from missionchat on %s*\n",
		doc.CreatedAt.Format("January 2, 2006 at 3:04 PM")))

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// =============================================================================
// FORMATTING HELPERS
// =============================================================================

// escapeMarkdown escapes characters that start Markdown markup.
func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
		"#", "\\#",
		"[", "\\[",
		"]", "\\]",
	)
	return replacer.Replace(s)
}

// tableCell makes s safe inside a single Markdown table cell.
func tableCell(s string) string {
	s = escapeMarkdown(s)
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\r\n", "<br>")
	s = strings.ReplaceAll(s, "\n", "<br>")
	if strings.TrimSpace(s) == "" {
		return " "
	}
	return s
}
