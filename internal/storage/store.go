// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jeranaias/missionchat/internal/model"
)

// =============================================================================
// STORE INTERFACE
// =============================================================================

var (
	// ErrUnknownBackend is returned by Open for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown storage backend")

	// ErrMalformedHeader is returned when a CSV file has no message column.
	ErrMalformedHeader = errors.New("log file header has no message column")

	// ErrReadOnly is returned by Save on a store opened for reading.
	ErrReadOnly = errors.New("store is read-only")
)

// Store loads and saves the full message log.
//
// Save replaces everything previously stored with entries. There is no
// incremental append on disk: every save is a full snapshot, and with
// several writers the last one wins.
type Store interface {
	// Load returns all stored entries, oldest first. A store that does not
	// exist yet yields an empty slice and no error.
	Load(ctx context.Context) ([]model.Entry, error)

	// Save overwrites the store with entries. Saving an empty slice is a
	// no-op, so an unused session never creates the file.
	Save(ctx context.Context, entries []model.Entry) error

	// Location is the file backing the store.
	Location() string

	// Close releases any held resources.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// Open creates the store for a backend name.
func Open(backend, location string) (Store, error) {
	switch backend {
	case BackendCSV, "":
		return NewCSVStore(location), nil
	case BackendSQLite:
		return OpenSQLite(location)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// OpenReadOnly creates a store for commands that only display the log.
// Loading through it never creates or modifies files.
func OpenReadOnly(backend, location string) (Store, error) {
	switch backend {
	case BackendCSV, "":
		return NewCSVStore(location), nil
	case BackendSQLite:
		return OpenSQLiteReadOnly(location)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// Unavailable returns a store whose Load and Save fail with err. It lets a
// session run in memory when its real store could not be opened.
func Unavailable(location string, err error) Store {
	return unavailableStore{location: location, err: err}
}

type unavailableStore struct {
	location string
	err      error
}

func (u unavailableStore) Load(context.Context) ([]model.Entry, error) { return nil, u.err }
func (u unavailableStore) Save(context.Context, []model.Entry) error   { return u.err }
func (u unavailableStore) Location() string                            { return u.location }
func (u unavailableStore) Close() error                                { return nil }
