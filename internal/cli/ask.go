// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot "ask" command.
//
// Command: ask
// Short:   Classify one message, log it and print the reply
//
// Examples:
//
//	missionchat ask "hello"
//	missionchat ask --explain "I hate mondays"
//	missionchat ask --dry-run --json "God bless"
//	echo "hi" | missionchat ask
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/missionchat/internal/config"
	"github.com/jeranaias/missionchat/internal/model"
	"github.com/jeranaias/missionchat/internal/session"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

var (
	markdownRenderer     *glamour.TermRenderer
	markdownRendererOnce sync.Once
)

// renderMarkdown renders content for the terminal. It returns content
// unchanged if no renderer could be built.
func renderMarkdown(content string) string {
	markdownRendererOnce.Do(func() {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err == nil {
			markdownRenderer = r
		}
	})
	if markdownRenderer == nil {
		return content
	}

	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(rendered, "\n")
}

// =============================================================================
// ASK HANDLER
// =============================================================================

// HandleAskCommand handles the "ask" command.
func HandleAskCommand(args Args) error {
	if args.Query == "" && !IsTTY() {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return NewCommandError("ask", "read", "could not read stdin", err)
		}
		args.Query = strings.TrimRight(string(data), "\r\n")
	}
	if args.Query == "" {
		return ErrMissingArgument("message", `missionchat ask "hello"`)
	}

	sess, err := OpenSession(context.Background(), config.Global())
	if err != nil {
		return err
	}
	defer sess.Close()

	return runAsk(os.Stdout, os.Stderr, sess, args, IsStdoutTTY())
}

// runAsk classifies args.Query, logs it unless DryRun, and writes the
// reply to out. Persist failures are warnings on errOut.
func runAsk(out, errOut io.Writer, sess *session.Session, args Args, markdown bool) error {
	match := sess.Classifier().Match(args.Query)

	logged := false
	if !args.DryRun {
		sess.Submit(args.Query)
		if err := sess.LastPersistError(); err != nil {
			fmt.Fprintf(errOut, "Warning: message not saved: %v\n", err)
		} else {
			logged = true
		}
	}

	if args.JSON {
		data := AskData{
			Message:  args.Query,
			Response: match.Response,
			Label:    match.Label,
			Analyze:  match.Analysis,
			Connect:  match.Connect,
			Rule:     match.Rule,
			Token:    match.Token,
			Logged:   logged,
			Entries:  sess.Len(),
			Store:    sess.Location(),
		}
		return NewJSONResponse("ask", data).Write(out)
	}

	reply := match.Response
	if markdown {
		reply = renderMarkdown(reply)
	}
	fmt.Fprintln(out, reply)

	if args.Quiet {
		return nil
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s %s\n", RenderField("Label"), RenderLabel(match.Label))
	fmt.Fprintf(out, "%s %s\n", RenderField("Analyze"), match.Analysis)
	fmt.Fprintf(out, "%s %s\n", RenderField("Connect"), model.FormatConnect(match.Connect))

	if args.Explain {
		how := match.Rule.String()
		if match.Token != "" {
			how += fmt.Sprintf(" (matched %q)", match.Token)
		} else {
			how += " (no keyword matched)"
		}
		fmt.Fprintf(out, "%s %s\n", RenderField("Rule"), how)
	}

	switch {
	case args.DryRun:
		fmt.Fprintln(out, DimStyle.Render("Dry run: not logged"))
	case logged && args.Verbose:
		fmt.Fprintln(out, DimStyle.Render(fmt.Sprintf("Logged as entry %d in %s", sess.Len(), sess.Location())))
	}
	return nil
}
