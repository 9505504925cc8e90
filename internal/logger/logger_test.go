// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupTestLogger(t *testing.T) string {
	t.Helper()
	Reset()
	t.Cleanup(Reset)

	path := filepath.Join(t.TempDir(), "logs", "test.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return path
}

func TestInit_CreatesFile(t *testing.T) {
	path := setupTestLogger(t)

	Get().Info("PERSIST_FAILED", "path", "user_messages.csv")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	if !strings.Contains(string(data), "msg=PERSIST_FAILED") {
		t.Errorf("log missing message: %s", data)
	}
	if Path() != path {
		t.Errorf("Path = %q, want %q", Path(), path)
	}
}

func TestWithSession(t *testing.T) {
	var buf bytes.Buffer
	Reset()
	t.Cleanup(Reset)
	InitWriter(&buf)

	WithSession("abc-123").Info("SESSION_START", "entries", 3)

	out := buf.String()
	if !strings.Contains(out, "session=abc-123") || !strings.Contains(out, "entries=3") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	Reset()
	t.Cleanup(Reset)
	InitWriter(&buf)

	WithComponent("storage").Warn("LOAD_FAILED")
	if !strings.Contains(buf.String(), "component=storage") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestSetDebug(t *testing.T) {
	var buf bytes.Buffer
	Reset()
	t.Cleanup(Reset)
	InitWriter(&buf)

	Get().Debug("hidden")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("debug record written at info level")
	}

	SetDebug(true)
	Get().Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Error("debug record missing at debug level")
	}
}

func TestUninitializedDiscards(t *testing.T) {
	Reset()
	// Must not panic or create files.
	Get().Info("nothing")
	WithSession("x").Warn("nothing")
	if Path() != "" {
		t.Errorf("Path = %q, want empty", Path())
	}
}
