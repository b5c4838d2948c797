// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the non-TUI commands for
// datafield.
//
// # Key Types
//
//   - Command: the command to execute (run, reset, config, version, help)
//   - Args: parsed global flags and command arguments
//   - ArgParser: flag and positional parsing shared by all commands
//   - LineHost: prompts for fields one line at a time
//
// # Usage
//
//	cmd, args, err := cli.Parse()
//	if err != nil {
//		return err
//	}
//	switch cmd {
//	case cli.CmdConfig:
//		return cli.HandleConfig(args, cfg, path, os.Stdout)
//	case cli.CmdReset:
//		return cli.HandleReset(ctx, cfg.Store.Path, os.Stdout)
//	}
//
// # Line Mode
//
// Line mode is used when stdin is not a terminal or --line is given. Each
// field gets one editing session per prompt, prefilled with its editing
// text through github.com/peterh/liner.
package cli
