// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logger provides the process-wide structured diagnostic log.
//
// The TUI owns the terminal, so records go to a file rather than stderr.
// Until Init is called every logger discards its output, which keeps tests
// and one-shot commands from creating files.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

var (
	root     *slog.Logger
	levelVar = new(slog.LevelVar)
	logFile  *os.File
	logPath  string
	mu       sync.Mutex
)

// DefaultLogPath returns ~/.missionchat/logs/missionchat.log.
func DefaultLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".missionchat", "logs", "missionchat.log"), nil
}

// SetDebug enables or disables debug level logging.
func SetDebug(enabled bool) {
	if enabled {
		levelVar.Set(slog.LevelDebug)
	} else {
		levelVar.Set(slog.LevelInfo)
	}
}

// Init opens path for appending and routes all loggers to it. An empty path
// uses DefaultLogPath. Calling Init again switches to the new file.
func Init(path string) error {
	if path == "" {
		p, err := DefaultLogPath()
		if err != nil {
			return err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory %s: %w", filepath.Dir(path), err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	mu.Lock()
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	logPath = path
	root = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar}))
	mu.Unlock()

	Get().Debug("LOGGER_INIT", "path", path)
	return nil
}

// InitWriter routes all loggers to w. Used by tests.
func InitWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	root = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelVar}))
}

// Path returns the file passed to Init, or "" if logging to a writer or
// not initialized.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// Get returns the root logger.
func Get() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if root == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return root
}

// WithSession returns a logger with the session ID attached.
//
//	log := logger.WithSession(sess.ID())
//	log.Info("MESSAGE_CLASSIFIED", "label", res.Label)
//	// level=INFO msg=MESSAGE_CLASSIFIED session=4f1c... label=Negative
func WithSession(sessionID string) *slog.Logger {
	return Get().With("session", sessionID)
}

// WithComponent returns a logger with the component name attached.
func WithComponent(component string) *slog.Logger {
	return Get().With("component", component)
}

// Close closes the log file. Later records are discarded until Init is
// called again.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	logPath = ""
	root = nil
}

// Reset closes the log and restores the default level. For tests.
func Reset() {
	Close()
	levelVar.Set(slog.LevelInfo)
}
