// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive line-mode chat.
//
// Command: chat
// Short:   Chat in the terminal without the full-screen UI
//
// Each line is classified, logged and answered. Arrow keys walk the input
// history, which is kept in ~/.missionchat/chat_history.
//
// Interactive Commands (during chat):
//
//	/stats, /s      Label counts and percentages
//	/log [n], /l    Last n log entries
//	/copy, /c       Copy the last reply to the clipboard
//	/help, /h       Show available commands
//	/quit, /q       Exit chat
//	Ctrl+C, Ctrl+D  Exit chat
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/peterh/liner"

	"github.com/jeranaias/missionchat/internal/config"
	"github.com/jeranaias/missionchat/internal/model"
	"github.com/jeranaias/missionchat/internal/session"
	"github.com/jeranaias/missionchat/internal/ui/styles"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a new ChatCLI and loads saved history.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		// Fallback to temp directory if config dir unavailable
		configDir = os.TempDir()
	}

	c := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	c.LoadHistory()
	return c
}

// LoadHistory loads input history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}

	return input, nil
}

// SaveHistory writes input history, readable by the owner only.
func (c *ChatCLI) SaveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}

	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	c.line.WriteHistory(f)
}

// Close saves history and restores the terminal.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// CHAT HANDLER
// =============================================================================

// HandleChatCommand handles the "chat" command.
func HandleChatCommand(args Args) error {
	cfg := config.Global()

	sess, err := OpenSession(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	repl := newChatREPL(sess, os.Stdout, cfg.UI.TailSize)
	repl.quiet = args.Quiet
	if !args.Quiet {
		repl.printWelcome()
	}

	input := NewChatCLI()
	defer input.Close()

	for {
		line, err := input.ReadInput("you> ")
		if err != nil {
			// liner.ErrPromptAborted on Ctrl+C, io.EOF on Ctrl+D
			fmt.Fprintln(os.Stdout)
			repl.printSummary()
			return nil
		}
		if !repl.handle(line) {
			repl.printSummary()
			return nil
		}
	}
}

// chatREPL processes chat input lines against a session.
type chatREPL struct {
	sess  *session.Session
	out   io.Writer
	tail  int
	width int
	quiet bool
	copy  func(string) error
}

func newChatREPL(sess *session.Session, out io.Writer, tail int) *chatREPL {
	return &chatREPL{
		sess:  sess,
		out:   out,
		tail:  tail,
		width: GetTerminalWidth(),
		copy:  clipboard.WriteAll,
	}
}

// handle processes one input line and reports whether to keep going.
// Only a completely empty line is skipped; anything else is a message,
// a slash command or an exit word.
func (r *chatREPL) handle(line string) bool {
	trimmed := strings.TrimSpace(line)

	switch {
	case line == "":
		return true
	case strings.HasPrefix(trimmed, "/"):
		return r.command(trimmed)
	case strings.EqualFold(trimmed, "exit") || strings.EqualFold(trimmed, "quit"):
		return false
	}

	r.printExchange(r.sess.Submit(line))
	return true
}

func (r *chatREPL) command(input string) bool {
	fields := strings.Fields(input)

	switch strings.ToLower(fields[0]) {
	case "/quit", "/q", "/exit":
		return false

	case "/help", "/h", "/?":
		r.printHelp()

	case "/stats", "/s":
		writeStats(r.out, r.sess.Counts(), r.width, chartTheme())

	case "/log", "/l":
		n := r.tail
		if len(fields) > 1 {
			v, err := ParseIntWithValidation(fields[1], "count")
			if err != nil {
				fmt.Fprintf(r.out, "%s %v\n", ErrorStyle.Render("[Error]"), err)
				return true
			}
			n = v
		}
		writeLogTable(r.out, r.sess.Tail(n), r.width)

	case "/copy", "/c":
		ex, ok := r.sess.LastExchange()
		if !ok {
			fmt.Fprintln(r.out, DimStyle.Render("Nothing to copy yet."))
			return true
		}
		if err := r.copy(ex.Result.Response); err != nil {
			fmt.Fprintf(r.out, "%s clipboard unavailable: %v\n", ErrorStyle.Render("[Error]"), err)
			return true
		}
		fmt.Fprintln(r.out, styles.RenderSuccess("Copied last reply"))

	default:
		fmt.Fprintf(r.out, "Unknown command %s (try /help)\n", fields[0])
	}
	return true
}

func (r *chatREPL) printExchange(ex model.Exchange) {
	fmt.Fprintf(r.out, "%s %s\n", PromptStyle.Render("bot>"), ex.Result.Response)
	if !r.quiet {
		fmt.Fprintf(r.out, "     %s | %s\n", RenderLabel(ex.Result.Label), DimStyle.Render(ex.Result.Analysis))
	}
	if err := r.sess.LastPersistError(); err != nil {
		fmt.Fprintf(r.out, "%s\n", WarningStyle.Render("Warning: message not saved: "+err.Error()))
	}
}

func (r *chatREPL) printWelcome() {
	fmt.Fprintln(r.out, TitleStyle.Render("Mission AI Chatbot PoC"))
	fmt.Fprintf(r.out, "%s\n", DimStyle.Render(fmt.Sprintf("Logging to %s (%d entries). Type /help for commands.", r.sess.Location(), r.sess.Len())))
	if err := r.sess.LoadError(); err != nil {
		fmt.Fprintln(r.out, WarningStyle.Render("Warning: could not read log, starting empty: "+err.Error()))
	}
	fmt.Fprintln(r.out)
}

func (r *chatREPL) printHelp() {
	cmds := []struct{ name, desc string }{
		{"/stats", "Label counts and percentages"},
		{"/log [n]", fmt.Sprintf("Last n log entries (default %d)", r.tail)},
		{"/copy", "Copy the last reply to the clipboard"},
		{"/help", "Show this help"},
		{"/quit", "Leave the chat"},
	}
	for _, c := range cmds {
		fmt.Fprintf(r.out, "  %s %s\n", CommandStyle.Render(fmt.Sprintf("%-10s", c.name)), c.desc)
	}
}

func (r *chatREPL) printSummary() {
	if r.quiet {
		return
	}
	st := r.sess.GetStatus()
	fmt.Fprintf(r.out, "%s\n", DimStyle.Render(fmt.Sprintf(
		"Session ended: %d messages this session, %d in log, %s.",
		st.Turns, st.Entries, st.Duration.Round(time.Second))))
}
