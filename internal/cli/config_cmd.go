// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - "config" command.
//
// Subcommands:
//
//	show            Print the effective configuration as TOML (default)
//	path            Print the config file path
//	init [--force]  Write the default configuration file
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/jeranaias/missionchat/internal/config"
)

// HandleConfigCommand handles the "config" command.
func HandleConfigCommand(args Args) error {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return NewCommandError("config", args.Subcommand, "could not locate config file", err)
	}
	return runConfig(os.Stdout, args, config.Global(), path)
}

func runConfig(out io.Writer, args Args, cfg *config.Config, path string) error {
	_, statErr := os.Stat(path)
	exists := statErr == nil

	switch args.Subcommand {
	case "show", "":
		if args.JSON {
			return NewJSONResponse("config", ConfigData{Path: path, Exists: exists, Config: cfg}).Write(out)
		}
		if !args.Quiet {
			source := path
			if !exists {
				source = "built-in defaults"
			}
			fmt.Fprintf(out, "# source: %s\n\n", source)
		}
		fmt.Fprint(out, cfg.String())

	case "path":
		if args.JSON {
			return NewJSONResponse("config", ConfigData{Path: path, Exists: exists}).Write(out)
		}
		fmt.Fprintln(out, path)

	case "init":
		if exists && !args.Force {
			return NewCommandError("config", "init", "config file already exists (use --force to overwrite)", nil)
		}
		if err := config.SaveTOML(config.Default(), path); err != nil {
			return NewCommandError("config", "init", "could not write config file", err)
		}
		if args.JSON {
			return NewJSONResponse("config", ConfigData{Path: path, Exists: true}).Write(out)
		}
		fmt.Fprintf(out, "Wrote default config to %s\n", path)

	default:
		return NewValidationErrorWithExample("subcommand", args.Subcommand, "unknown config subcommand", "missionchat config [show|path|init]")
	}
	return nil
}
