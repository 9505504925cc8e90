// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/jeranaias/missionchat/internal/classify"
	"github.com/jeranaias/missionchat/internal/model"
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter exports the log as a standalone HTML page with embedded CSS.
type HTMLExporter struct {
	options *Options
}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter(opts *Options) *HTMLExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &HTMLExporter{options: opts}
}

// Export renders the document as HTML.
func (e *HTMLExporter) Export(doc *Document) ([]byte, error) {
	if err := doc.validate(); err != nil {
		return nil, err
	}

	theme := e.options.Theme
	if theme != "light" {
		theme = "dark"
	}

	var sb strings.Builder

	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html lang=\"en\">\n")
	sb.WriteString("<head>\n")
	sb.WriteString("    <meta charset=\"UTF-8\">\n")
	sb.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", html.EscapeString(doc.Title)))
	sb.WriteString("    <meta name=\"generator\" content=\"missionchat\">\n")
	sb.WriteString(css)
	sb.WriteString("</head>\n")
	sb.WriteString(fmt.Sprintf("<body class=\"%s-theme\">\n", theme))
	sb.WriteString("    <div class=\"container\">\n")

	if e.options.IncludeMetadata {
		sb.WriteString(e.renderHeader(doc))
	}

	sb.WriteString("        <main>\n")
	sb.WriteString("            <table class=\"log\">\n")
	sb.WriteString("                <thead><tr><th>#</th>")
	for _, col := range model.Columns {
		sb.WriteString("<th>" + html.EscapeString(col) + "</th>")
	}
	sb.WriteString("</tr></thead>\n")
	sb.WriteString("                <tbody>\n")
	for i, entry := range doc.Entries {
		sb.WriteString(e.renderEntry(i+1, entry))
	}
	sb.WriteString("                </tbody>\n")
	sb.WriteString("            </table>\n")
	sb.WriteString("        </main>\n")

	sb.WriteString("        <footer class=\"footer\">\n")
	sb.WriteString(fmt.Sprintf("            <p>Exported from <strong>missionchat</strong> on %s</p>\n",
		doc.CreatedAt.Format("January 2, 2006 at 3:04 PM")))
	sb.WriteString("        </footer>\n")
	sb.WriteString("    </div>\n")
	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for HTML.
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}

// MimeType returns the MIME type for HTML.
func (e *HTMLExporter) MimeType() string {
	return "text/html"
}

// =============================================================================
// RENDERING FUNCTIONS
// =============================================================================

func (e *HTMLExporter) renderHeader(doc *Document) string {
	var sb strings.Builder

	sb.WriteString("        <header class=\"header\">\n")
	sb.WriteString(fmt.Sprintf("            <h1>%s</h1>\n", html.EscapeString(doc.Title)))
	sb.WriteString("            <div class=\"metadata\">\n")
	sb.WriteString(fmt.Sprintf("                <span class=\"meta-item\"><strong>Source:</strong> %s</span>\n", html.EscapeString(doc.Source)))
	sb.WriteString(fmt.Sprintf("                <span class=\"meta-item\"><strong>Entries:</strong> %d</span>\n", len(doc.Entries)))
	sb.WriteString(fmt.Sprintf("                <span class=\"meta-item\"><strong>Exported:</strong> %s</span>\n", formatTimestamp(doc.CreatedAt)))
	sb.WriteString("            </div>\n")
	sb.WriteString("            <ul class=\"labels\">\n")
	for _, lc := range doc.Counts.Sorted() {
		sb.WriteString(fmt.Sprintf("                <li class=\"%s\">%s <span>%d (%s)</span></li>\n",
			labelClass(lc.Label), html.EscapeString(string(lc.Label)), lc.Count, model.FormatPercent(lc.Percent)))
	}
	sb.WriteString("            </ul>\n")
	sb.WriteString("        </header>\n")

	return sb.String()
}

func (e *HTMLExporter) renderEntry(n int, entry model.Entry) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("                    <tr class=\"%s\"><td>%d</td>", labelClass(entry.Label), n))
	for _, cell := range entry.Record() {
		sb.WriteString("<td>" + formatCell(cell) + "</td>")
	}
	sb.WriteString("</tr>\n")

	return sb.String()
}

// formatCell escapes a value and keeps its line breaks.
func formatCell(s string) string {
	s = html.EscapeString(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "<br>")
}

// labelClass maps a label to its CSS class.
func labelClass(l classify.Label) string {
	switch l {
	case classify.Positive:
		return "label-positive"
	case classify.Negative:
		return "label-negative"
	case classify.Neutral:
		return "label-neutral"
	default:
		return "label-other"
	}
}

// =============================================================================
// EMBEDDED CSS
// =============================================================================

const css = `    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }

        :root {
            --font-sans: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
        }

        .dark-theme {
            --bg-primary: #1a1b26;
            --bg-secondary: #24283b;
            --bg-tertiary: #414868;
            --text-primary: #c0caf5;
            --text-muted: #565f89;
            --border-color: #414868;
            --accent-blue: #7aa2f7;
            --accent-green: #9ece6a;
            --accent-red: #f7768e;
        }

        .light-theme {
            --bg-primary: #ffffff;
            --bg-secondary: #f7f8fa;
            --bg-tertiary: #e1e4e8;
            --text-primary: #24292e;
            --text-muted: #6a737d;
            --border-color: #e1e4e8;
            --accent-blue: #0366d6;
            --accent-green: #22863a;
            --accent-red: #d73a49;
        }

        body {
            font-family: var(--font-sans);
            font-size: 15px;
            line-height: 1.5;
            color: var(--text-primary);
            background: var(--bg-primary);
            padding: 20px;
        }

        .container {
            max-width: 1100px;
            margin: 0 auto;
            background: var(--bg-secondary);
            border-radius: 12px;
            overflow: hidden;
        }

        .header {
            padding: 24px 32px;
            background: var(--bg-tertiary);
            border-bottom: 2px solid var(--border-color);
        }

        .header h1 { font-size: 26px; margin-bottom: 12px; }

        .metadata { display: flex; flex-wrap: wrap; gap: 16px; font-size: 14px; }

        .labels { list-style: none; display: flex; gap: 12px; margin-top: 12px; }
        .labels li { padding: 4px 10px; border-radius: 6px; background: var(--bg-secondary); }
        .labels span { color: var(--text-muted); }

        main { padding: 16px 32px; overflow-x: auto; }

        table.log { width: 100%; border-collapse: collapse; }
        table.log th, table.log td {
            text-align: left;
            vertical-align: top;
            padding: 6px 8px;
            border-bottom: 1px solid var(--border-color);
        }
        table.log th { color: var(--text-muted); font-weight: 600; }

        .label-positive td:nth-child(4), li.label-positive { color: var(--accent-green); }
        .label-negative td:nth-child(4), li.label-negative { color: var(--accent-red); }
        .label-neutral td:nth-child(4), li.label-neutral { color: var(--accent-blue); }

        .footer {
            padding: 16px 32px;
            font-size: 13px;
            color: var(--text-muted);
            border-top: 1px solid var(--border-color);
        }
    </style>
`
