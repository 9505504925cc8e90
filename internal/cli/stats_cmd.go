// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// stats_cmd.go - "stats" command: label counts and percentages.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jeranaias/missionchat/internal/config"
	"github.com/jeranaias/missionchat/internal/model"
	"github.com/jeranaias/missionchat/internal/ui/components"
	"github.com/jeranaias/missionchat/internal/ui/styles"
)

// HandleStatsCommand handles the "stats" command.
func HandleStatsCommand(args Args) error {
	cfg := config.Global()
	if err := requireLog(args, cfg); err != nil {
		return err
	}

	entries, err := loadEntries(context.Background(), cfg)
	if err != nil {
		return NewCommandError("stats", "show", "could not read message log", err)
	}
	counts := model.CountEntries(entries)

	if args.JSON {
		return NewJSONResponse("stats", newStatsData(cfg.StoreLocation(), counts)).Print()
	}
	writeStats(os.Stdout, counts, GetTerminalWidth(), chartTheme())
	return nil
}

func newStatsData(location string, counts model.Counts) StatsData {
	return StatsData{
		Store:  location,
		Total:  counts.Total(),
		Labels: counts.Sorted(),
	}
}

// writeStats prints the label chart followed by the total.
// A nil theme prints without styles.
func writeStats(w io.Writer, counts model.Counts, width int, theme *styles.Theme) {
	chart := components.NewLabelChart(theme)
	chart.SetWidth(width)
	chart.SetCounts(counts)
	fmt.Fprintln(w, chart.View())

	if total := counts.Total(); total > 0 {
		fmt.Fprintf(w, "\n%s %d\n", RenderField("Total"), total)
	}
}
