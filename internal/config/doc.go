// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management.
//
// # Key Types
//
//   - Config: storage, classifier, UI and log settings
//   - ValidationError / ValidateErrors: aggregated validation failures
//
// # Usage
//
//	cfg := config.Global()
//	store, err := storage.Open(cfg.Storage.Backend, cfg.StoreLocation())
//	classifier, err := cfg.Classifier.NewClassifier()
//
// Example config.toml:
//
//	[storage]
//	backend = "csv"
//	path = "user_messages.csv"
//
//	[classifier]
//	unicode_fold = false
//
//	[ui]
//	tail_size = 10
package config
