// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the message log and the
// chat transcript.
//
// # Key Types
//
//   - Entry: one logged message with its reply and classification
//   - Log: ordered, append-only sequence of entries (oldest first)
//   - Counts: number of entries per label, with percentage helpers
//   - Exchange: one transcript turn (user text and bot result)
//
// # Usage
//
//	log := model.NewLog(loaded)
//	log.Append(model.NewEntry(text, classify.Classify(text)))
//	recent := log.Tail(10)
//	counts := log.CountByLabel()
package model
