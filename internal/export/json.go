// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"time"

	"github.com/jeranaias/missionchat/internal/model"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter exports the log as JSON. Options do not filter the output;
// every entry and count is always written.
type JSONExporter struct {
	options *Options
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

type jsonDocument struct {
	Title    string             `json:"title"`
	Source   string             `json:"source"`
	Exported time.Time          `json:"exported"`
	Total    int                `json:"total"`
	Labels   []model.LabelCount `json:"labels"`
	Entries  []model.Entry      `json:"entries"`
}

// Export renders the document as indented JSON.
func (e *JSONExporter) Export(doc *Document) ([]byte, error) {
	if err := doc.validate(); err != nil {
		return nil, err
	}

	return json.MarshalIndent(jsonDocument{
		Title:    doc.Title,
		Source:   doc.Source,
		Exported: doc.CreatedAt,
		Total:    len(doc.Entries),
		Labels:   doc.Counts.Sorted(),
		Entries:  doc.Entries,
	}, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}
