// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/missionchat/internal/config"
	"github.com/jeranaias/missionchat/internal/logger"
	"github.com/jeranaias/missionchat/internal/storage"
)

func TestMain(m *testing.M) {
	ForceColorsEnabled(false)
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

// =============================================================================
// ARG PARSER TESTS (args.go)
// =============================================================================

func TestArgParser_BasicParsing(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantSub  string
		validate func(*testing.T, *ArgParser)
	}{
		{
			name:    "simple subcommand",
			args:    []string{"show"},
			wantSub: "show",
		},
		{
			name:    "subcommand with flag",
			args:    []string{"show", "--lines", "50"},
			wantSub: "show",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("lines") != "50" {
					t.Errorf("Flag(lines) = %q, want %q", p.Flag("lines"), "50")
				}
				if p.Flag("--lines") != "50" {
					t.Errorf("Flag(--lines) = %q, want %q", p.Flag("--lines"), "50")
				}
			},
		},
		{
			name:    "flag with equals",
			args:    []string{"init", "--theme=dark"},
			wantSub: "init",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("theme") != "dark" {
					t.Errorf("Flag(theme) = %q, want %q", p.Flag("theme"), "dark")
				}
			},
		},
		{
			name:    "boolean flag",
			args:    []string{"init", "--force"},
			wantSub: "init",
			validate: func(t *testing.T, p *ArgParser) {
				if !p.BoolFlag("force") {
					t.Error("BoolFlag(force) should be true")
				}
				if !p.HasFlag("--force") {
					t.Error("HasFlag(--force) should be true")
				}
			},
		},
		{
			name:    "explicit false",
			args:    []string{"--force=false"},
			wantSub: "",
			validate: func(t *testing.T, p *ArgParser) {
				if p.BoolFlag("force") {
					t.Error("BoolFlag(force) should be false")
				}
				if !p.HasFlag("force") {
					t.Error("HasFlag(force) should be true")
				}
			},
		},
		{
			name:    "positionals",
			args:    []string{"one", "two", "three"},
			wantSub: "one",
			validate: func(t *testing.T, p *ArgParser) {
				if p.HasFlag("two") {
					t.Error("a positional was parsed as a flag")
				}
			},
		},
		{
			name:    "empty",
			args:    nil,
			wantSub: "",
			validate: func(t *testing.T, p *ArgParser) {
				if got := p.FlagOrDefault("lines", "10"); got != "10" {
					t.Errorf("FlagOrDefault() = %q", got)
				}
				if p.HasFlag("lines") {
					t.Error("HasFlag on a missing flag should be false")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewArgParser(tt.args)
			if p.Subcommand() != tt.wantSub {
				t.Errorf("Subcommand() = %q, want %q", p.Subcommand(), tt.wantSub)
			}
			if tt.validate != nil {
				tt.validate(t, p)
			}
		})
	}
}

func TestParseIntWithValidation(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"5", 5, false},
		{"", 0, true},
		{"abc", 0, true},
		{"0", 0, true},
		{"-3", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseIntWithValidation(tt.in, "lines")
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseIntWithValidation(%q) = %d, %v", tt.in, got, err)
		}
	}
}

// =============================================================================
// PARSE TESTS (cli.go)
// =============================================================================

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		argv    []string
		wantCmd Command
		check   func(*testing.T, Args)
	}{
		{
			name:    "no args starts tui",
			argv:    nil,
			wantCmd: CmdTUI,
		},
		{
			name:    "global flags only",
			argv:    []string{"--json", "-q", "--debug"},
			wantCmd: CmdTUI,
			check: func(t *testing.T, a Args) {
				if !a.JSON || !a.Quiet || !a.Debug {
					t.Errorf("globals not set: %+v", a)
				}
			},
		},
		{
			name:    "ask joins words",
			argv:    []string{"ask", "I", "hate", "mondays"},
			wantCmd: CmdAsk,
			check: func(t *testing.T, a Args) {
				if a.Query != "I hate mondays" {
					t.Errorf("Query = %q", a.Query)
				}
			},
		},
		{
			name:    "ask flags",
			argv:    []string{"ask", "--explain", "-n", "hello"},
			wantCmd: CmdAsk,
			check: func(t *testing.T, a Args) {
				if !a.Explain || !a.DryRun || a.Query != "hello" {
					t.Errorf("got %+v", a)
				}
			},
		},
		{
			name:    "ask double dash keeps dashes",
			argv:    []string{"ask", "--", "-q", "--json"},
			wantCmd: CmdAsk,
			check: func(t *testing.T, a Args) {
				if a.Query != "-q --json" || a.Quiet || a.JSON {
					t.Errorf("got %+v", a)
				}
			},
		},
		{
			name:    "ask unknown flag is an error",
			argv:    []string{"ask", "-_-", "hello"},
			wantCmd: CmdAsk,
			check: func(t *testing.T, a Args) {
				var ve *ValidationError
				if !errors.As(a.Err, &ve) || ve.Value != "-_-" {
					t.Fatalf("Err = %v, want ValidationError for -_-", a.Err)
				}
				if GetExitCode(a.Err) != ExitUsageError {
					t.Errorf("exit code = %d", GetExitCode(a.Err))
				}
			},
		},
		{
			name:    "ask double dash allows dash text",
			argv:    []string{"ask", "--", "-_-", "hello"},
			wantCmd: CmdAsk,
			check: func(t *testing.T, a Args) {
				if a.Err != nil || a.Query != "-_- hello" {
					t.Errorf("got %+v", a)
				}
			},
		},
		{
			name:    "ask lone dash is text",
			argv:    []string{"ask", "a", "-", "b"},
			wantCmd: CmdAsk,
			check: func(t *testing.T, a Args) {
				if a.Err != nil || a.Query != "a - b" {
					t.Errorf("got %+v", a)
				}
			},
		},
		{
			name:    "global flag after command",
			argv:    []string{"stats", "--json"},
			wantCmd: CmdStats,
			check: func(t *testing.T, a Args) {
				if !a.JSON {
					t.Error("JSON should be set")
				}
			},
		},
		{
			name:    "store and backend",
			argv:    []string{"--store", "x.db", "--backend=sqlite", "log"},
			wantCmd: CmdLog,
			check: func(t *testing.T, a Args) {
				if a.Store != "x.db" || a.Backend != "sqlite" {
					t.Errorf("got store=%q backend=%q", a.Store, a.Backend)
				}
			},
		},
		{
			name:    "log lines and follow",
			argv:    []string{"log", "--lines", "25", "--follow"},
			wantCmd: CmdLog,
			check: func(t *testing.T, a Args) {
				if a.Lines != 25 || !a.Follow || a.Err != nil {
					t.Errorf("got %+v", a)
				}
			},
		},
		{
			name:    "config defaults to show",
			argv:    []string{"config"},
			wantCmd: CmdConfig,
			check: func(t *testing.T, a Args) {
				if a.Subcommand != "show" {
					t.Errorf("Subcommand = %q", a.Subcommand)
				}
			},
		},
		{
			name:    "config init force",
			argv:    []string{"config", "init", "--force"},
			wantCmd: CmdConfig,
			check: func(t *testing.T, a Args) {
				if a.Subcommand != "init" || !a.Force {
					t.Errorf("got %+v", a)
				}
			},
		},
		{
			name:    "export defaults to markdown",
			argv:    []string{"export"},
			wantCmd: CmdExport,
			check: func(t *testing.T, a Args) {
				if a.Format != "md" || a.Output != "" || a.Open {
					t.Errorf("got %+v", a)
				}
			},
		},
		{
			name:    "export options",
			argv:    []string{"export", "--format", "HTML", "-o", "out.html", "--open"},
			wantCmd: CmdExport,
			check: func(t *testing.T, a Args) {
				if a.Format != "html" || a.Output != "out.html" || !a.Open {
					t.Errorf("got %+v", a)
				}
			},
		},
		{name: "chat", argv: []string{"chat"}, wantCmd: CmdChat},
		{name: "tui", argv: []string{"TUI"}, wantCmd: CmdTUI},
		{name: "version", argv: []string{"--version"}, wantCmd: CmdVersion},
		{name: "help", argv: []string{"-h"}, wantCmd: CmdHelp},
		{
			name:    "unknown command",
			argv:    []string{"lgo"},
			wantCmd: CmdUnknown,
			check: func(t *testing.T, a Args) {
				if GetExitCode(a.Err) != ExitUsageError {
					t.Errorf("Err = %v", a.Err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := ParseArgs(tt.argv)
			if cmd != tt.wantCmd {
				t.Fatalf("command = %v, want %v", cmd, tt.wantCmd)
			}
			if tt.check != nil {
				tt.check(t, args)
			}
		})
	}
}

func TestParseArgs_InvalidLines(t *testing.T) {
	for _, argv := range [][]string{
		{"log", "--lines", "zero"},
		{"log", "--lines=-2"},
		{"log", "--lines"},
	} {
		_, args := ParseArgs(argv)
		var ve *ValidationError
		if !errors.As(args.Err, &ve) {
			t.Errorf("%v: Err = %v, want ValidationError", argv, args.Err)
		}
	}
}

// =============================================================================
// ERROR TESTS (errors.go)
// =============================================================================

func TestExit_ClosesLogger(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "missionchat.log")
	if err := logger.Init(logPath); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(logger.Reset)

	code := -1
	osExit = func(c int) { code = c }
	t.Cleanup(func() { osExit = os.Exit })

	Exit(Args{Quiet: true}, "stats", NewNotFoundError("message log", "gone.csv"))

	if code != ExitNotFoundError {
		t.Errorf("exit code = %d, want %d", code, ExitNotFoundError)
	}
	if logger.Path() != "" {
		t.Error("logger still open after Exit")
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "COMMAND_FAILED") {
		t.Errorf("failure not flushed to log:\n%s", data)
	}
}

func TestExit_NilErrorReturns(t *testing.T) {
	osExit = func(int) { t.Fatal("exit called for nil error") }
	t.Cleanup(func() { osExit = os.Exit })

	Exit(Args{}, "stats", nil)
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"validation", ErrMissingArgument("message", "x"), ExitUsageError},
		{"wrapped validation", fmt.Errorf("outer: %w", ErrMissingArgument("m", "")), ExitUsageError},
		{"unknown backend", fmt.Errorf("open: %w", storage.ErrUnknownBackend), ExitUsageError},
		{"config validation", fmt.Errorf("invalid: %w", config.ValidateErrors{{Field: "ui.theme", Message: "bad"}}), ExitConfigError},
		{"config message", errors.New("failed to load TOML config"), ExitConfigError},
		{"not found", NewNotFoundError("log file", "x.csv"), ExitNotFoundError},
		{"missing file", fmt.Errorf("read: %w", fs.ErrNotExist), ExitNotFoundError},
		{"other", errors.New("boom"), ExitGeneralError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestCommandError(t *testing.T) {
	inner := errors.New("disk full")
	err := NewCommandError("log", "show", "could not read message log", inner)

	if !errors.Is(err, inner) {
		t.Error("CommandError should unwrap to the cause")
	}
	want := "log show failed: could not read message log: disk full"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if got := NewCommandError("config", "init", "exists", nil).Error(); got != "config init failed: exists" {
		t.Errorf("Error() = %q", got)
	}
}

func TestCommandString(t *testing.T) {
	for cmd, want := range map[Command]string{
		CmdTUI: "tui", CmdAsk: "ask", CmdLog: "log", CmdExport: "export", CmdUnknown: "unknown",
	} {
		if cmd.String() != want {
			t.Errorf("%d.String() = %q, want %q", cmd, cmd.String(), want)
		}
	}
}
