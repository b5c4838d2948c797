// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing for datafield.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
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
	CmdRun Command = iota
	CmdReset
	CmdConfig
	CmdVersion
	CmdHelp
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CmdRun:
		return "run"
	case CmdReset:
		return "reset"
	case CmdConfig:
		return "config"
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
	ConfigPath string // --config: load this file instead of ~/.datafield/config.*
	Line       bool   // --line: prompt line by line instead of the TUI
	Continuous bool   // --continuous: sinks report every valid keystroke
	Theme      string // --theme: auto, dark, light
	Store      string // --store: SQLite file for stored values
	Width      int    // --width: form width in columns
	LogPath    string // --log: write event lines to this file

	// Command-specific
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Raw remaining arguments
	Raw []string
}

// boolFlagNames never take a value.
var boolFlagNames = []string{"line", "l", "continuous", "help", "h", "version", "v"}

const usageText = `datafield - typed form fields in the terminal

Usage:
  datafield [flags]                 Edit the alarm settings (TUI)
  datafield --line                  Edit the settings one prompt at a time
  datafield reset                   Clear all stored values
  datafield config [show]           Show the current configuration
  datafield config get <key>        Show one configuration value
  datafield config set <key> <val>  Change a configuration value
  datafield config path             Show the configuration file path
  datafield version                 Show version information

Flags:
  -c, --config PATH   Configuration file (default ~/.datafield/config.toml)
  -l, --line          Line mode; forced when stdin is not a terminal
  --continuous        Sink fields report every valid keystroke
  --theme NAME        auto, dark or light
  --store PATH        SQLite file for stored values
  --width N           Form width in columns
  --log PATH          Write event lines to PATH

Keys (TUI):
  enter        edit the selected field / save it
  esc          stop editing
  tab, S-tab   next / previous field
  ?            toggle help
  q, C-c       quit

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "datafield version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
}

// Parse parses os.Args and returns the command and args.
func Parse() (Command, Args, error) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses command-line arguments.
func ParseArgs(argv []string) (Command, Args, error) {
	p := NewArgParser(argv, boolFlagNames...)

	args := Args{
		ConfigPath: firstNonEmpty(p.Flag("config"), p.Flag("c")),
		Line:       p.BoolFlag("line") || p.BoolFlag("l"),
		Continuous: p.BoolFlag("continuous"),
		Theme:      strings.ToLower(p.Flag("theme")),
		Store:      p.Flag("store"),
		LogPath:    p.Flag("log"),
		Raw:        p.PositionalFrom(1),
	}

	if p.HasFlag("width") {
		width, err := p.FlagInt("width")
		if err != nil || width <= 0 {
			return CmdHelp, args, fmt.Errorf("--width must be a positive integer, got %q", p.Flag("width"))
		}
		args.Width = width
	}
	if args.Theme != "" && args.Theme != "auto" && args.Theme != "dark" && args.Theme != "light" {
		return CmdHelp, args, fmt.Errorf("--theme must be auto, dark or light, got %q", args.Theme)
	}

	if p.BoolFlag("help") || p.BoolFlag("h") {
		return CmdHelp, args, nil
	}
	if p.BoolFlag("version") || p.BoolFlag("v") {
		return CmdVersion, args, nil
	}

	switch strings.ToLower(p.Subcommand()) {
	case "", "run", "tui":
		return CmdRun, args, nil

	case "reset", "clear":
		return CmdReset, args, nil

	case "config":
		args.Subcommand = strings.ToLower(p.Positional(1))
		if args.Subcommand == "" {
			args.Subcommand = "show"
		}
		args.ConfigKey = p.Positional(2)
		args.ConfigVal = strings.Join(p.PositionalFrom(3), " ")
		return CmdConfig, args, nil

	case "version":
		return CmdVersion, args, nil

	case "help":
		return CmdHelp, args, nil

	default:
		return CmdHelp, args, fmt.Errorf("unknown command %q", p.Subcommand())
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
