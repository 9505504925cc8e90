// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// export_cmd.go - "export" command: write the message log as a report.
//
// Examples:
//
//	missionchat export
//	missionchat export --format html --open
//	missionchat export --format json -o report.json
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jeranaias/missionchat/internal/config"
	"github.com/jeranaias/missionchat/internal/export"
	"github.com/jeranaias/missionchat/internal/model"
)

// HandleExportCommand handles the "export" command.
func HandleExportCommand(args Args) error {
	cfg := config.Global()
	if err := requireLog(args, cfg); err != nil {
		return err
	}

	entries, err := loadEntries(context.Background(), cfg)
	if err != nil {
		return NewCommandError("export", args.Format, "could not read message log", err)
	}
	return runExport(os.Stdout, args, cfg.StoreLocation(), entries, cfg.UI.Theme)
}

func runExport(out io.Writer, args Args, store string, entries []model.Entry, theme string) error {
	opts := export.DefaultOptions()
	opts.Output = args.Output
	opts.OpenAfterExport = args.Open
	if theme == "light" {
		opts.Theme = "light"
	}

	exp, err := export.ForFormat(args.Format, opts)
	if err != nil {
		return NewValidationErrorWithExample("format", args.Format, err.Error(), "missionchat export --format html")
	}

	if args.Output != "" && !args.Force {
		if _, err := os.Stat(args.Output); err == nil {
			return NewCommandError("export", args.Format, fmt.Sprintf("%s already exists (use --force to overwrite)", args.Output), nil)
		}
	}

	path, err := export.ExportToFile(export.NewDocument(store, entries), exp, opts)
	opened := args.Open
	switch {
	case errors.Is(err, export.ErrNoEntries):
		return NewCommandError("export", args.Format, "nothing to export", err)
	case export.IsOpenError(err):
		opened = false
		if !args.Quiet {
			StderrPrint("%s\n", WarningStyle.Render("Warning: could not open file: "+err.Error()))
		}
	case err != nil:
		return NewCommandError("export", args.Format, "could not write export", err)
	}

	if args.JSON {
		return NewJSONResponse("export", ExportData{
			Store:   store,
			Path:    path,
			Format:  strings.TrimPrefix(exp.FileExtension(), "."),
			Entries: len(entries),
			Opened:  opened,
		}).Write(out)
	}
	if args.Quiet {
		fmt.Fprintln(out, path)
		return nil
	}
	fmt.Fprintf(out, "Exported %d entries to %s\n", len(entries), path)
	return nil
}
