// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command handlers for missionchat.
package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/jeranaias/missionchat/internal/logger"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdChat
	CmdAsk
	CmdLog
	CmdStats
	CmdConfig
	CmdExport
	CmdVersion
	CmdHelp
	CmdUnknown
)

// String returns the command name as typed on the command line.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdChat:
		return "chat"
	case CmdAsk:
		return "ask"
	case CmdLog:
		return "log"
	case CmdStats:
		return "stats"
	case CmdConfig:
		return "config"
	case CmdExport:
		return "export"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool   // Output in JSON format
	Debug   bool   // Debug-level diagnostic log
	Store   string // Overrides the configured log file
	Backend string // Overrides the configured storage backend

	// Command-specific
	Query      string
	Subcommand string
	Lines      int    // log: entries to show, 0 uses the configured tail size
	Follow     bool   // log: reprint on change
	Explain    bool   // ask: show the matching rule
	DryRun     bool   // ask: classify without logging
	Force      bool   // config init, export: overwrite an existing file
	Format     string // export: md, json or html
	Output     string // export: file to write
	Open       bool   // export: open the file afterwards

	// Raw args (remaining after flag parsing)
	Raw []string

	// Err is a usage error found while parsing.
	Err error
}

const usageText = `missionchat - keyword chatbot with a persistent message log

Every message is classified as Neutral, Positive or Negative by a fixed
keyword list, answered with a canned reply and appended to the message log
(user_messages.csv by default).

Usage:
  missionchat                       Start the TUI (default)
  missionchat tui                   Start the TUI
  missionchat chat                  Line-mode chat with input history
  missionchat ask "message"         Classify one message and log it
  missionchat log [--lines N]       Show the most recent log entries
  missionchat stats                 Show label counts and percentages
  missionchat config [show|path|init]
  missionchat export [--format F]   Write the log as Markdown, JSON or HTML
  missionchat version               Show version information
  missionchat help                  Show this help

Ask Options:
  -e, --explain     Show the rule and keyword that matched
  -n, --dry-run     Classify without writing to the log
  --                Treat everything after as message text; required
                    when the message starts with -

Log Options:
  --lines N         Number of entries to show (default: ui.tail_size)
  -f, --follow      Reprint the table whenever the log file changes

Export Options:
  --format F        md, json or html (default: md)
  -o, --output PATH File to write (default: messages_<store>_<time>.<ext>)
  --force           Overwrite an existing output file
  --open            Open the file in the default application

Config Subcommands:
  show              Print the effective configuration (default)
  path              Print the config file path
  init [--force]    Write a default config file

Global Options:
  --json            JSON output (ask, log, stats, config, export, version)
  --store PATH      Log file to use instead of the configured one
  --backend NAME    Storage backend: csv or sqlite
  --debug           Debug-level diagnostic logging
  -q, --quiet       Minimal output
  -v, --verbose     Verbose output
  -h, --help        Show this help
  --version         Show version information

Chat Commands:
  /stats            Label counts and percentages
  /log [n]          Last n log entries
  /copy             Copy the last reply to the clipboard
  /help             Show chat commands
  /quit             Leave the chat (also: exit, quit, Ctrl+D)

TUI Keys:
  Enter             Send message
  Ctrl+Y            Copy the last reply
  PgUp / PgDn       Scroll the transcript
  F1                Toggle key help
  Ctrl+C / Esc      Quit

Environment:
  MISSIONCHAT_STORE_PATH    CSV log file
  MISSIONCHAT_BACKEND       csv or sqlite
  MISSIONCHAT_SQLITE_PATH   SQLite database file
  MISSIONCHAT_TAIL_SIZE     Entries shown in the log table
  MISSIONCHAT_LOG_PATH      Diagnostic log file
  MISSIONCHAT_DEBUG         Debug-level diagnostic logging
  MISSIONCHAT_UNICODE_FOLD  NFKC-normalize messages before matching
  NO_COLOR / FORCE_COLOR    Disable or force colored output

Files:
  ~/.missionchat/config.toml        Configuration
  ~/.missionchat/chat_history       Chat input history
  ~/.missionchat/logs/              Diagnostic logs

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("missionchat version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses os.Args and returns the command and args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses argv (without the program name).
func ParseArgs(argv []string) (Command, Args) {
	// Parse global flags first
	remaining, parsedArgs := parseGlobalFlags(argv)

	// If no remaining args, default to TUI
	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "chat", "repl":
		return CmdChat, parsedArgs

	case "ask":
		parseAskArgs(&parsedArgs, remaining)
		return CmdAsk, parsedArgs

	case "log", "logs":
		parseLogArgs(&parsedArgs, remaining)
		return CmdLog, parsedArgs

	case "stats":
		return CmdStats, parsedArgs

	case "config":
		parseConfigArgs(&parsedArgs, remaining)
		return CmdConfig, parsedArgs

	case "export":
		parseExportArgs(&parsedArgs, remaining)
		return CmdExport, parsedArgs

	case "version", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		parsedArgs.Raw = append([]string{cmd}, remaining...)
		parsedArgs.Err = NewValidationErrorWithExample("command", cmd, "unknown command", "missionchat help")
		return CmdUnknown, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
// Everything after "--" is left alone.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "--":
			remaining = append(remaining, args[i:]...)
			return remaining, parsedArgs
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--debug":
			parsedArgs.Debug = true
		case "--store":
			if i+1 < len(args) {
				i++
				parsedArgs.Store = args[i]
			}
		case "--backend":
			if i+1 < len(args) {
				i++
				parsedArgs.Backend = args[i]
			}
		default:
			switch {
			case strings.HasPrefix(arg, "--store="):
				parsedArgs.Store = strings.TrimPrefix(arg, "--store=")
			case strings.HasPrefix(arg, "--backend="):
				parsedArgs.Backend = strings.TrimPrefix(arg, "--backend=")
			default:
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsedArgs
}

// parseAskArgs parses ask command specific arguments.
// An unknown flag is a usage error; "--" makes the rest message text and a
// lone "-" is text.
func parseAskArgs(args *Args, remaining []string) {
	var query []string
	literal := false

	for _, arg := range remaining {
		if literal {
			query = append(query, arg)
			continue
		}
		switch arg {
		case "--":
			literal = true
		case "-e", "--explain":
			args.Explain = true
		case "-n", "--dry-run":
			args.DryRun = true
		default:
			if strings.HasPrefix(arg, "-") && arg != "-" {
				if args.Err == nil {
					args.Err = NewValidationErrorWithExample("flag", arg,
						"unknown ask flag (put -- before message text that starts with -)",
						`missionchat ask -- "`+arg+` ..."`)
				}
				continue
			}
			query = append(query, arg)
		}
	}

	args.Query = strings.Join(query, " ")
}

// parseLogArgs parses log command specific arguments.
func parseLogArgs(args *Args, remaining []string) {
	p := NewArgParser(remaining)
	args.Follow = p.HasFlag("follow") || p.HasFlag("f")

	if p.HasFlag("lines") {
		n, err := ParseIntWithValidation(p.Flag("lines"), "lines")
		if err != nil {
			args.Err = NewValidationErrorWithExample("lines", p.Flag("lines"), err.Error(), "missionchat log --lines 20")
			return
		}
		args.Lines = n
	}
}

// parseConfigArgs parses config command specific arguments.
func parseConfigArgs(args *Args, remaining []string) {
	p := NewArgParser(remaining)
	args.Subcommand = strings.ToLower(p.Subcommand())
	if args.Subcommand == "" {
		args.Subcommand = "show"
	}
	args.Force = p.BoolFlag("force")
}

// parseExportArgs parses export command specific arguments.
func parseExportArgs(args *Args, remaining []string) {
	p := NewArgParser(remaining)
	args.Format = strings.ToLower(p.FlagOrDefault("format", "md"))
	args.Output = p.Flag("output")
	if args.Output == "" {
		args.Output = p.Flag("o")
	}
	args.Force = p.BoolFlag("force")
	args.Open = p.BoolFlag("open")
}

// =============================================================================
// COMMAND HANDLERS
// =============================================================================

// osExit is replaced in tests.
var osExit = os.Exit

// Exit reports err for command and exits with the matching code.
// It returns normally when err is nil. The diagnostic log is closed first
// because deferred calls do not run on exit.
func Exit(args Args, command string, err error) {
	if err == nil {
		return
	}
	logger.Get().Error("COMMAND_FAILED", "command", command, "error", err, "exit_code", GetExitCode(err))
	if args.JSON {
		NewJSONErrorResponse(command, err).Print()
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	logger.Close()
	osExit(GetExitCode(err))
}

// HandleAsk handles the "ask" command.
func HandleAsk(args Args) {
	Exit(args, "ask", HandleAskCommand(args))
}

// HandleChat handles the "chat" command.
func HandleChat(args Args) {
	Exit(args, "chat", HandleChatCommand(args))
}

// HandleLog handles the "log" command.
func HandleLog(args Args) {
	Exit(args, "log", HandleLogCommand(args))
}

// HandleStats handles the "stats" command.
func HandleStats(args Args) {
	Exit(args, "stats", HandleStatsCommand(args))
}

// HandleConfig handles the "config" command.
func HandleConfig(args Args) {
	Exit(args, "config", HandleConfigCommand(args))
}

// HandleExport handles the "export" command.
func HandleExport(args Args) {
	Exit(args, "export", HandleExportCommand(args))
}

// HandleVersion handles the "version" command with JSON output support.
func HandleVersion(args Args) {
	if args.JSON {
		data := VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}
		NewJSONResponse("version", data).Print()
		return
	}
	PrintVersion()
}

// HandleHelp handles the "help" command.
func HandleHelp() {
	PrintUsage()
}

// HandleUnknown reports an unrecognized command.
func HandleUnknown(args Args) {
	Exit(args, "unknown", args.Err)
}
