// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// json_output.go - JSON output for scripting.
//
// Every command that supports --json writes one JSONResponse to stdout.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jeranaias/missionchat/internal/classify"
	"github.com/jeranaias/missionchat/internal/config"
	"github.com/jeranaias/missionchat/internal/model"
)

// JSONResponse is the response envelope for all CLI commands.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data interface{} `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// Timestamp is the RFC3339 time the response was generated
	Timestamp string `json:"timestamp"`

	// Command is the command that was executed
	Command string `json:"command,omitempty"`
}

// NewJSONResponse creates a new successful JSON response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Error:     nil,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates a new error JSON response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	errStr := err.Error()
	return &JSONResponse{
		Success:   false,
		Data:      nil,
		Error:     &errStr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Write encodes the response to w with indentation.
func (r *JSONResponse) Write(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// Print outputs the JSON response to stdout.
func (r *JSONResponse) Print() error {
	return r.Write(os.Stdout)
}

// String returns the JSON response as a string.
func (r *JSONResponse) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"success":false,"error":"failed to marshal response: %s","timestamp":"%s"}`,
			err.Error(), time.Now().UTC().Format(time.RFC3339))
	}
	return string(data)
}

// StderrPrint prints a message to stderr (for human-readable output in JSON mode).
func StderrPrint(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
}

// =============================================================================
// COMMAND-SPECIFIC DATA STRUCTURES
// =============================================================================

// VersionData represents the data returned by the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version,omitempty"`
}

// AskData represents the data returned by the ask command.
type AskData struct {
	Message  string         `json:"message"`
	Response string         `json:"response"`
	Label    classify.Label `json:"label"`
	Analyze  string         `json:"analyze"`
	Connect  bool           `json:"connect"`
	Rule     classify.Rule  `json:"rule"`
	Token    string         `json:"token,omitempty"`
	Logged   bool           `json:"logged"`
	Entries  int            `json:"entries"`
	Store    string         `json:"store,omitempty"`
}

// LogData represents the data returned by the log command.
type LogData struct {
	Store   string        `json:"store"`
	Total   int           `json:"total"`
	Entries []model.Entry `json:"entries"`
}

// StatsData represents the data returned by the stats command.
type StatsData struct {
	Store  string             `json:"store"`
	Total  int                `json:"total"`
	Labels []model.LabelCount `json:"labels"`
}

// ConfigData represents the data returned by the config command.
type ConfigData struct {
	Path   string         `json:"config_path"`
	Exists bool           `json:"exists"`
	Config *config.Config `json:"config,omitempty"`
}

// ExportData represents the data returned by the export command.
type ExportData struct {
	Store   string `json:"store"`
	Path    string `json:"path"`
	Format  string `json:"format"`
	Entries int    `json:"entries"`
	Opened  bool   `json:"opened"`
}
