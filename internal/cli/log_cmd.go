// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// log_cmd.go - "log" command: print the most recent log entries.
//
// Examples:
//
//	missionchat log
//	missionchat log --lines 25
//	missionchat log --follow
//	missionchat log --json
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/missionchat/internal/config"
	"github.com/jeranaias/missionchat/internal/model"
	"github.com/jeranaias/missionchat/internal/storage"
	"github.com/jeranaias/missionchat/internal/ui/components"
	"github.com/jeranaias/missionchat/internal/util"
)

// followInterval is the minimum time between reprints in --follow mode.
const followInterval = 250 * time.Millisecond

// HandleLogCommand handles the "log" command.
func HandleLogCommand(args Args) error {
	cfg := config.Global()
	if !args.Follow {
		// --follow waits for the file to appear.
		if err := requireLog(args, cfg); err != nil {
			return err
		}
	}
	n := args.Lines
	if n <= 0 {
		n = cfg.UI.TailSize
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	show := func() error {
		entries, err := loadEntries(ctx, cfg)
		if err != nil {
			return NewCommandError("log", "show", "could not read message log", err)
		}
		if args.JSON {
			return NewJSONResponse("log", newLogData(cfg.StoreLocation(), entries, n)).Print()
		}
		writeLogTable(os.Stdout, tail(entries, n), GetTerminalWidth())
		return nil
	}

	if err := show(); err != nil {
		return err
	}
	if !args.Follow {
		return nil
	}

	if !args.Quiet && !args.JSON {
		StderrPrint("%s\n", DimStyle.Render("Watching "+cfg.StoreLocation()+" (Ctrl+C to stop)"))
	}
	w := storage.NewWatcher(cfg.StoreLocation(), followInterval)
	return w.Run(ctx, func() {
		if !args.JSON {
			fmt.Fprintln(os.Stdout)
			fmt.Fprintln(os.Stdout, DimStyle.Render("updated "+time.Now().Format("15:04:05")))
		}
		if err := show(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	})
}

func newLogData(location string, entries []model.Entry, n int) LogData {
	return LogData{
		Store:   location,
		Total:   len(entries),
		Entries: tail(entries, n),
	}
}

// tail returns the last n entries, never nil.
func tail(entries []model.Entry, n int) []model.Entry {
	return model.NewLog(entries).Tail(n)
}

// writeLogTable prints entries as a plain text table that fits width
// display cells. Wide characters are measured, not counted as bytes.
func writeLogTable(w io.Writer, entries []model.Entry, width int) {
	if len(entries) == 0 {
		fmt.Fprintln(w, DimStyle.Render(components.LogEmptyText))
		return
	}

	cols := components.LogColumns(width)
	rows := components.LogRows(entries, cols)

	cells := make([]string, len(cols))
	for i, c := range cols {
		cells[i] = runewidth.FillRight(c.Title, c.Width)
	}
	fmt.Fprintln(w, TitleStyle.Render(strings.TrimRight(strings.Join(cells, "  "), " ")))

	rule := make([]string, len(cols))
	for i, c := range cols {
		rule[i] = strings.Repeat("-", c.Width)
	}
	fmt.Fprintln(w, SeparatorStyle.Render(strings.Join(rule, "  ")))

	for _, row := range rows {
		for i, v := range row {
			cells[i] = util.PadWidth(v, cols[i].Width)
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " "))
	}
}
