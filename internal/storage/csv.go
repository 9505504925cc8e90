// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jeranaias/missionchat/internal/model"
	"github.com/jeranaias/missionchat/internal/util"
)

// =============================================================================
// CSV STORE
// =============================================================================

// CSVStore keeps the log in a flat CSV file with the header
// message,response,label,analyze,connect.
type CSVStore struct {
	// Path of the CSV file
	Path string
}

// NewCSVStore creates a store for the file at path. The file is not touched
// until Load or Save.
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{Path: path}
}

// Location returns the CSV path.
func (s *CSVStore) Location() string {
	return s.Path
}

// Load reads every row. Columns are matched by header name, so extra
// columns (such as a leading index) are ignored and order does not matter.
func (s *CSVStore) Load(ctx context.Context) ([]model.Entry, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Entry{}, nil
		}
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	return readCSV(ctx, f)
}

func readCSV(ctx context.Context, r io.Reader) ([]model.Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(protectQuotedCR(data)))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return []model.Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read log header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	if !hasColumn(header, "message") {
		return nil, ErrMalformedHeader
	}

	entries := []model.Entry{}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read log row %d: %w", len(entries)+1, err)
		}
		entries = append(entries, model.EntryFromRecord(header, record))
	}
	return entries, nil
}

// protectQuotedCR doubles each CR that precedes an LF inside a quoted
// field. csv.Reader drops one CR before every LF, so quoted text keeps its
// CRLF line breaks while record terminators are unchanged.
func protectQuotedCR(data []byte) []byte {
	if !bytes.Contains(data, []byte("\r\n")) {
		return data
	}

	out := make([]byte, 0, len(data)+64)
	inQuotes := false
	for i, b := range data {
		switch {
		case b == '"':
			inQuotes = !inQuotes
		case b == '\r' && inQuotes && i+1 < len(data) && data[i+1] == '\n':
			out = append(out, '\r')
		}
		out = append(out, b)
	}
	return out
}

func hasColumn(header []string, name string) bool {
	for _, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return true
		}
	}
	return false
}

// Save rewrites the whole file atomically.
func (s *CSVStore) Save(ctx context.Context, entries []model.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := EncodeCSV(entries)
	if err != nil {
		return err
	}
	if err := util.AtomicWriteFile(s.Path, data, 0644); err != nil {
		return fmt.Errorf("failed to write log file: %w", err)
	}
	return nil
}

// EncodeCSV renders entries with the standard header.
func EncodeCSV(entries []model.Entry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(model.Columns); err != nil {
		return nil, fmt.Errorf("failed to encode header: %w", err)
	}
	for _, e := range entries {
		if err := w.Write(e.Record()); err != nil {
			return nil, fmt.Errorf("failed to encode entry: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to encode log: %w", err)
	}
	return buf.Bytes(), nil
}

// Close is a no-op for CSV files.
func (s *CSVStore) Close() error {
	return nil
}
