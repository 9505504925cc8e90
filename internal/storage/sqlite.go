// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/jeranaias/missionchat/internal/classify"
	"github.com/jeranaias/missionchat/internal/model"
)

// =============================================================================
// SQLITE STORE
// =============================================================================

const schema = `
CREATE TABLE IF NOT EXISTS messages (
	seq      INTEGER PRIMARY KEY,
	message  TEXT NOT NULL,
	response TEXT NOT NULL,
	label    TEXT NOT NULL,
	"analyze" TEXT NOT NULL,
	connect  TEXT NOT NULL
);
`

// SQLiteStore keeps the log in a single SQLite table. Row order is the
// seq column.
//
// Opening is lazy: the file is created, and pragmas and schema applied,
// on the first Save. Load never creates the file.
type SQLiteStore struct {
	db       *sql.DB
	path     string
	readOnly bool
	ready    bool
}

// OpenSQLite prepares a read-write store for the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	return openSQLite(path, path, false)
}

// OpenSQLiteReadOnly prepares a store that can only Load. It never creates
// the file and never changes its journal mode.
func OpenSQLiteReadOnly(path string) (*SQLiteStore, error) {
	return openSQLite(path, "file:"+escapeURIPath(path)+"?mode=ro", true)
}

func openSQLite(path, dsn string, readOnly bool) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	return &SQLiteStore{db: db, path: path, readOnly: readOnly}, nil
}

// ensure creates the database file and schema before the first write.
func (s *SQLiteStore) ensure(ctx context.Context) error {
	if s.ready {
		return nil
	}
	if s.readOnly {
		return ErrReadOnly
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := s.db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	s.ready = true
	return nil
}

// escapeURIPath escapes the characters that end or alter a URI filename.
func escapeURIPath(path string) string {
	return strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23").Replace(filepath.ToSlash(path))
}

// Location returns the database path.
func (s *SQLiteStore) Location() string {
	return s.path
}

// Load returns every row in seq order. A missing file or a database
// without the messages table is an empty log.
func (s *SQLiteStore) Load(ctx context.Context) ([]model.Entry, error) {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return []model.Entry{}, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT message, response, label, "analyze", connect FROM messages ORDER BY seq`)
	if err != nil {
		if strings.Contains(err.Error(), "no such table") {
			return []model.Entry{}, nil
		}
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	entries := []model.Entry{}
	for rows.Next() {
		var e model.Entry
		var label string
		if err := rows.Scan(&e.Message, &e.Response, &label, &e.Analyze, &e.Connect); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		e.Label = classify.Label(label)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}
	return entries, nil
}

// Save replaces every row inside one transaction.
func (s *SQLiteStore) Save(ctx context.Context, entries []model.Entry) (err error) {
	if len(entries) == 0 {
		return nil
	}
	if err := s.ensure(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM messages`); err != nil {
		return fmt.Errorf("failed to clear messages: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO messages (seq, message, response, label, "analyze", connect) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err = stmt.ExecContext(ctx, i, e.Message, e.Response, string(e.Label), e.Analyze, e.Connect); err != nil {
			return fmt.Errorf("failed to insert message %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit messages: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
