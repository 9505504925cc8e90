// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists the message log.
//
// # Key Types
//
//   - Store: load/save interface, full-snapshot semantics
//   - CSVStore: flat file with header message,response,label,analyze,connect
//   - SQLiteStore: single-table SQLite database
//   - Watcher: change notifications for a store written by another process
//
// # Usage
//
//	store, err := storage.Open("csv", "user_messages.csv")
//	entries, err := store.Load(ctx)
//	entries = append(entries, entry)
//	err = store.Save(ctx, entries)
package storage
