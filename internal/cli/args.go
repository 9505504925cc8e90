// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// args.go - Shared argument parsing for subcommand flags.

package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// ARG PARSER
// =============================================================================

// ArgParser splits command arguments into flags and positionals.
// It handles:
//   - Long flags: --flag value or --flag=value
//   - Short flags: -f value
//   - Boolean flags: --flag (no value needed)
//   - Positional arguments: arguments without flags
//   - Subcommands: first positional argument
//
// A flag followed by a non-flag argument takes it as its value.
type ArgParser struct {
	subcommand string            // First positional arg (e.g., "show", "init")
	flags      map[string]string // String flags (--key=value)
	boolFlags  map[string]bool   // Boolean flags (--force)
	positional []string          // All positional arguments including subcommand
}

// NewArgParser parses raw arguments.
//
// Example:
//
//	args := NewArgParser([]string{"init", "--lines", "50", "--theme=dark", "--force"})
//	args.Subcommand()     // "init"
//	args.Flag("lines")    // "50"
//	args.Flag("theme")    // "dark"
//	args.BoolFlag("force") // true
func NewArgParser(raw []string) *ArgParser {
	parser := &ArgParser{
		flags:      make(map[string]string),
		boolFlags:  make(map[string]bool),
		positional: make([]string, 0),
	}

	i := 0
	for i < len(raw) {
		arg := raw[i]

		if !strings.HasPrefix(arg, "-") || arg == "-" {
			parser.positional = append(parser.positional, arg)
			i++
			continue
		}

		// --flag=value
		if strings.Contains(arg, "=") {
			parts := strings.SplitN(arg, "=", 2)
			flagName := strings.TrimLeft(parts[0], "-")
			flagValue := parts[1]

			// Boolean flags can be explicit: --json=true, --json=false
			if flagValue == "true" || flagValue == "false" {
				parser.boolFlags[flagName] = flagValue == "true"
			} else {
				parser.flags[flagName] = flagValue
			}
			i++
			continue
		}

		flagName := strings.TrimLeft(arg, "-")
		if i+1 < len(raw) && !strings.HasPrefix(raw[i+1], "-") {
			parser.flags[flagName] = raw[i+1]
			i += 2
		} else {
			parser.boolFlags[flagName] = true
			i++
		}
	}

	if len(parser.positional) > 0 {
		parser.subcommand = parser.positional[0]
	}

	return parser
}

// Subcommand returns the first positional argument, or "".
func (p *ArgParser) Subcommand() string {
	return p.subcommand
}

// Flag returns the value of a string flag, or "" if it was not given.
// The name may be written with or without leading dashes.
func (p *ArgParser) Flag(name string) string {
	return p.flags[strings.TrimLeft(name, "-")]
}

// FlagOrDefault returns the flag value or a default if not found.
func (p *ArgParser) FlagOrDefault(name, defaultValue string) string {
	if val := p.Flag(name); val != "" {
		return val
	}
	return defaultValue
}

// BoolFlag returns the value of a boolean flag, false if absent.
func (p *ArgParser) BoolFlag(name string) bool {
	return p.boolFlags[strings.TrimLeft(name, "-")]
}

// HasFlag reports whether the flag was given, with or without a value.
func (p *ArgParser) HasFlag(name string) bool {
	name = strings.TrimLeft(name, "-")
	_, hasString := p.flags[name]
	_, hasBool := p.boolFlags[name]
	return hasString || hasBool
}

// =============================================================================
// HELPER FUNCTIONS FOR COMMON ARG PATTERNS
// =============================================================================

// ParseIntWithValidation parses a positive integer.
func ParseIntWithValidation(s string, fieldName string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("%s is required", fieldName)
	}

	val, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", fieldName, err)
	}

	if val <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", fieldName, val)
	}

	return val, nil
}
