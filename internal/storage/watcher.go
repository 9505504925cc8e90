// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/jeranaias/missionchat/internal/logger"
)

// =============================================================================
// FILE WATCHER
// =============================================================================

// DefaultWatchInterval is the minimum time between change notifications.
const DefaultWatchInterval = 250 * time.Millisecond

// Watcher reports changes to a store file written by another process.
//
// It watches the parent directory rather than the file: saves replace the
// file by rename, which would silently end a watch on the old inode. The
// store file and writes to its SQLite -wal file count; everything else in
// the directory is ignored.
type Watcher struct {
	path    string
	limiter *rate.Limiter
	log     *slog.Logger
}

// NewWatcher creates a watcher for path. Bursts of events closer together
// than interval are reported once.
func NewWatcher(path string, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	return &Watcher{
		path:    path,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		log:     logger.WithComponent("watcher"),
	}
}

// Run blocks until ctx is done, calling onChange after each burst of
// changes. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	absPath, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", w.path, err)
	}
	dir, base := filepath.Dir(absPath), filepath.Base(absPath)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.log.Debug("WATCH_START", "dir", dir, "file", base)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !relevant(event, base) {
				continue
			}
			if err := w.limiter.Wait(ctx); err != nil {
				return nil
			}
			drain(fw.Events)
			w.log.Debug("WATCH_CHANGE", "event", event.Op.String(), "name", event.Name)
			onChange()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("WATCH_ERROR", "error", err)
		}
	}
}

// relevant reports whether event changes the log's content. SQLite readers
// create and remove the -wal and -shm files without writing data, so only
// writes to the -wal file count.
func relevant(event fsnotify.Event, base string) bool {
	switch filepath.Base(event.Name) {
	case base:
		return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0
	case base + "-wal":
		return event.Has(fsnotify.Write)
	default:
		return false
	}
}

// drain discards events already queued so one burst yields one callback.
func drain(events <-chan fsnotify.Event) {
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}
