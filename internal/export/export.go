// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/jeranaias/missionchat/internal/model"
)

// ErrNoEntries is returned when there is nothing to export.
var ErrNoEntries = errors.New("message log has no entries")

// ErrUnknownFormat is returned by ForFormat for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown export format")

// Formats lists the accepted format names.
var Formats = []string{"md", "json", "html"}

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter defines the interface for log exporters.
type Exporter interface {
	// Export renders the document in the target format.
	Export(doc *Document) ([]byte, error)

	// FileExtension returns the file extension, e.g. ".md".
	FileExtension() string

	// MimeType returns the MIME type of the output.
	MimeType() string
}

// =============================================================================
// DOCUMENT
// =============================================================================

// Document is a snapshot of the message log ready for export.
type Document struct {
	Title     string
	Source    string
	Entries   []model.Entry
	Counts    model.Counts
	CreatedAt time.Time
}

// NewDocument snapshots entries read from source.
func NewDocument(source string, entries []model.Entry) *Document {
	copied := make([]model.Entry, len(entries))
	copy(copied, entries)
	return &Document{
		Title:     "Mission Chat Message Log",
		Source:    source,
		Entries:   copied,
		Counts:    model.CountEntries(copied),
		CreatedAt: time.Now(),
	}
}

func (d *Document) validate() error {
	if d == nil {
		return fmt.Errorf("document is nil")
	}
	if len(d.Entries) == 0 {
		return ErrNoEntries
	}
	return nil
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir receives generated file names. Default: "."
	OutputDir string

	// Output is an explicit file path; it overrides OutputDir.
	Output string

	// OpenAfterExport opens the file in the default application.
	OpenAfterExport bool

	// IncludeMetadata adds the frontmatter and label summary.
	IncludeMetadata bool

	// Theme for HTML export ("light" or "dark").
	Theme string
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:       ".",
		IncludeMetadata: true,
		Theme:           "dark",
	}
}

// ForFormat returns the exporter for a format name.
func ForFormat(name string, opts *Options) (Exporter, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), ".")) {
	case "md", "markdown":
		return NewMarkdownExporter(opts), nil
	case "json":
		return NewJSONExporter(opts), nil
	case "html", "htm":
		return NewHTMLExporter(opts), nil
	default:
		return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownFormat, name, strings.Join(Formats, ", "))
	}
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ExportToFile renders doc and writes it to disk. It returns the path written.
func ExportToFile(doc *Document, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	content, err := exporter.Export(doc)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	outputPath := opts.Output
	if outputPath == "" {
		dir := opts.OutputDir
		if dir == "" {
			dir = "."
		}
		filename := fmt.Sprintf("messages_%s_%s%s",
			sanitizeFilename(strings.TrimSuffix(filepath.Base(doc.Source), filepath.Ext(doc.Source))),
			doc.CreatedAt.Format("20060102_150405"),
			exporter.FileExtension(),
		)
		outputPath = filepath.Join(dir, filename)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	if opts.OpenAfterExport {
		if err := openFile(outputPath); err != nil {
			// Non-fatal, the file was written
			return outputPath, fmt.Errorf("open %s: %w", outputPath, errOpenFailed{err})
		}
	}

	return outputPath, nil
}

// errOpenFailed marks an error from launching a viewer after a successful write.
type errOpenFailed struct{ err error }

func (e errOpenFailed) Error() string { return e.err.Error() }
func (e errOpenFailed) Unwrap() error { return e.err }

// IsOpenError reports whether err only failed to open an exported file.
func IsOpenError(err error) bool {
	var oe errOpenFailed
	return errors.As(err, &oe)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// sanitizeFilename removes or replaces characters that are invalid in filenames.
func sanitizeFilename(s string) string {
	const maxLen = 50
	runes := []rune(s)
	if len(runes) > maxLen {
		runes = runes[:maxLen]
	}

	result := make([]rune, 0, len(runes))
	for _, r := range runes {
		switch {
		case strings.ContainsRune(`/\:*?"<>|`, r):
			result = append(result, '-')
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			result = append(result, '_')
		case r < 32 || r == 127:
			result = append(result, '-')
		default:
			result = append(result, r)
		}
	}

	if len(result) == 0 {
		return "log"
	}
	return string(result)
}

// openFile opens a file in the default application for the OS.
func openFile(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", `""`, path)
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}

// formatTimestamp formats a timestamp for display.
func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
