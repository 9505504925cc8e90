// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/missionchat/internal/config"
	"github.com/jeranaias/missionchat/internal/logger"
	"github.com/jeranaias/missionchat/internal/model"
	"github.com/jeranaias/missionchat/internal/session"
	"github.com/jeranaias/missionchat/internal/storage"
)

// ApplyArgs returns a copy of base with the global flag overrides applied
// and validated. base is not modified.
func ApplyArgs(base *config.Config, args Args) (*config.Config, error) {
	cfg := base.Clone()

	if args.Backend != "" {
		cfg.Storage.Backend = strings.ToLower(args.Backend)
	}
	if args.Store != "" {
		if cfg.Storage.Backend == config.BackendSQLite {
			cfg.Storage.SQLitePath = args.Store
		} else {
			cfg.Storage.Path = args.Store
		}
	}
	if args.Debug {
		cfg.Log.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// OpenSession builds the classifier and store from cfg and starts a
// session over them. The caller closes the session.
//
// A store that cannot be opened leaves the session with an empty log and
// every save failing; only an unknown backend is an error.
func OpenSession(ctx context.Context, cfg *config.Config) (*session.Session, error) {
	classifier, err := cfg.Classifier.NewClassifier()
	if err != nil {
		return nil, NewCommandError("session", "open", "invalid classifier config", err)
	}

	store, err := storage.Open(cfg.Storage.Backend, cfg.StoreLocation())
	if errors.Is(err, storage.ErrUnknownBackend) {
		return nil, NewCommandError("session", "open", "could not open message store", err)
	}
	if err != nil {
		logger.WithComponent("cli").Warn("STORE_UNAVAILABLE", "location", cfg.StoreLocation(), "error", err)
		store = storage.Unavailable(cfg.StoreLocation(), err)
	}

	return session.Open(ctx, store, classifier), nil
}

// requireLog fails with a NotFoundError when --store names a log file that
// does not exist. The configured default log may be missing; it reads as
// empty.
func requireLog(args Args, cfg *config.Config) error {
	if args.Store == "" {
		return nil
	}
	if _, err := os.Stat(cfg.StoreLocation()); errors.Is(err, os.ErrNotExist) {
		return NewNotFoundError("message log", cfg.StoreLocation())
	}
	return nil
}

// loadEntries reads the whole message log without starting a session.
// The store is opened read-only so that reading never creates or
// modifies the log.
func loadEntries(ctx context.Context, cfg *config.Config) ([]model.Entry, error) {
	store, err := storage.OpenReadOnly(cfg.Storage.Backend, cfg.StoreLocation())
	if err != nil {
		return nil, err
	}
	defer store.Close()

	entries, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", store.Location(), err)
	}
	return entries, nil
}
