// missionchat - keyword chatbot with a persistent message log.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/missionchat/internal/cli"
	"github.com/jeranaias/missionchat/internal/config"
	"github.com/jeranaias/missionchat/internal/logger"
	"github.com/jeranaias/missionchat/internal/ui/chat"
	"github.com/jeranaias/missionchat/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	// Commands that need no configuration
	switch cmd {
	case cli.CmdVersion:
		cli.HandleVersion(args)
		return
	case cli.CmdHelp:
		cli.HandleHelp()
		return
	case cli.CmdUnknown:
		cli.HandleUnknown(args)
		return
	}
	cli.Exit(args, cmd.String(), args.Err)

	cfg, err := cli.ApplyArgs(config.Global(), args)
	cli.Exit(args, cmd.String(), err)
	config.SetGlobal(cfg)

	logger.SetDebug(cfg.Log.Debug)
	if err := logger.Init(cfg.Log.Path); err != nil && !args.Quiet {
		fmt.Fprintf(os.Stderr, "Warning: diagnostic log disabled: %v\n", err)
	}
	defer logger.Close()
	logger.Get().Debug("STARTUP", "command", cmd.String(), "version", Version, "store", cfg.StoreLocation())

	switch cmd {
	case cli.CmdAsk:
		cli.HandleAsk(args)
	case cli.CmdChat:
		cli.HandleChat(args)
	case cli.CmdLog:
		cli.HandleLog(args)
	case cli.CmdStats:
		cli.HandleStats(args)
	case cli.CmdConfig:
		cli.HandleConfig(args)
	case cli.CmdExport:
		cli.HandleExport(args)
	default:
		runTUI(args, cfg)
	}
}

// runTUI starts the TUI interface. Without a terminal it falls back to
// line-mode chat.
func runTUI(args cli.Args, cfg *config.Config) {
	if err := cli.RequiresTTY("run the TUI"); err != nil || !cli.IsStdoutTTY() {
		if !args.Quiet {
			fmt.Fprintln(os.Stderr, "Warning: not a terminal, starting line-mode chat")
		}
		cli.HandleChat(args)
		return
	}

	sess, err := cli.OpenSession(context.Background(), cfg)
	cli.Exit(args, "tui", err)

	theme := styles.NewTheme(cfg.UI.Theme)
	m := chat.New(sess, theme, cfg.UI.TailSize)

	opts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	p := tea.NewProgram(m, opts...)

	_, runErr := p.Run()
	sess.Close()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running missionchat: %v\n", runErr)
		os.Exit(1)
	}
}
