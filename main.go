// datafield - typed form fields in the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/datafield-tui/internal/cli"
	"github.com/jeranaias/datafield-tui/internal/config"
	"github.com/jeranaias/datafield-tui/internal/form"
	"github.com/jeranaias/datafield-tui/internal/settings"
	"github.com/jeranaias/datafield-tui/internal/store"
	"github.com/jeranaias/datafield-tui/internal/ui/styles"
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
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, cli.RenderError(err))
		os.Exit(1)
	}
}

func run() error {
	cmd, args, err := cli.Parse()
	if err != nil {
		cli.PrintUsage(os.Stderr)
		return err
	}

	switch cmd {
	case cli.CmdHelp:
		cli.PrintUsage(os.Stdout)
		return nil
	case cli.CmdVersion:
		cli.PrintVersion(os.Stdout)
		return nil
	}

	cfgPath, cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	// The config command shows and edits the file, so flags are not applied.
	if cmd == cli.CmdConfig {
		return cli.HandleConfig(args, cfg, cfgPath, os.Stdout)
	}

	applyFlags(cfg, args)
	if err := cfg.Validate(); err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := context.Background()
	if cmd == cli.CmdReset {
		return cli.HandleReset(ctx, cfg.Store.Path, os.Stdout)
	}
	return runForm(ctx, cfg, cfgPath, args)
}

// loadConfig loads --config when given, otherwise the default locations.
// It returns the path that config set writes and the watcher follows.
func loadConfig(args cli.Args) (string, *config.Config, error) {
	if args.ConfigPath != "" {
		cfg, err := config.LoadFromPath(args.ConfigPath)
		if err != nil {
			return "", nil, err
		}
		return args.ConfigPath, cfg, nil
	}

	path, err := config.ActivePath()
	if err != nil {
		return "", nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return "", nil, err
	}
	return path, cfg, nil
}

// applyFlags lets command-line flags override the configuration.
func applyFlags(cfg *config.Config, args cli.Args) {
	if args.Theme != "" {
		cfg.UI.Theme = args.Theme
	}
	if args.Width > 0 {
		cfg.UI.Width = args.Width
	}
	if args.Store != "" {
		cfg.Store.Path = args.Store
	}
	if args.Continuous {
		cfg.Fields.Continuous = true
	}
	if args.LogPath != "" {
		cfg.Log.Enabled = true
		cfg.Log.Path = args.LogPath
	}
}

// setupLogging sends event lines to the log file, or nowhere. The TUI owns
// the terminal, so they never go to stderr.
func setupLogging(cfg *config.Config) (func(), error) {
	if !cfg.Log.Enabled {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Log.Path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := tea.LogToFile(cfg.Log.Path, "datafield")
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return func() { f.Close() }, nil
}

func runForm(ctx context.Context, cfg *config.Config, cfgPath string, args cli.Args) error {
	st, err := store.Open(ctx, cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	lineMode := args.Line || !cli.IsTTY()
	width := cli.FitWidth(cfg.UI.Width)

	s, err := settings.Load(ctx, st, settings.Options{
		Locale:     cfg.LocaleTag(),
		Continuous: cfg.Fields.Continuous,
		Theme:      styles.NewThemeNamed(cfg.UI.Theme),
		Width:      width,
	})
	if err != nil {
		return err
	}

	if lineMode {
		if err := runLine(s, cfg); err != nil {
			return err
		}
	} else if err := runTUI(s, cfg, cfgPath, args, width); err != nil {
		return err
	}
	return s.Err()
}

func runLine(s *settings.Settings, cfg *config.Config) error {
	host := cli.NewLineHost(os.Stdout)
	defer host.Close()

	commits, err := host.Run(s.LineFields())
	if err != nil {
		return err
	}
	fmt.Printf("%s %d value(s) to %s\n", cli.SuccessStyle.Render("Saved"), commits, cfg.Store.Path)
	return nil
}

func runTUI(s *settings.Settings, cfg *config.Config, cfgPath string, args cli.Args, width int) error {
	m := form.New(settings.FormTitle, s.FormFields(), form.Options{
		Theme:    styles.NewThemeNamed(cfg.UI.Theme),
		Width:    width,
		ShowHelp: cfg.UI.ShowHelp,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())

	// Edits to the config file restyle the running form. Flags still win.
	if _, err := os.Stat(cfgPath); err == nil {
		w, err := config.NewWatcher(cfgPath, config.DefaultDebounce, func(c *config.Config) {
			applyFlags(c, args)
			c.UI.Width = cli.FitWidth(c.UI.Width)
			p.Send(form.ConfigMsg{Config: c})
		}, nil)
		if err != nil {
			log.Printf("CONFIG_WATCH_ERROR | path=%s error=%v", cfgPath, err)
		} else if err := w.Watch(); err != nil {
			log.Printf("CONFIG_WATCH_ERROR | path=%s error=%v", cfgPath, err)
			w.Close()
		} else {
			defer w.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running datafield: %w", err)
	}
	if m.Commits() > 0 {
		fmt.Printf("%s %d value(s) to %s\n", cli.SuccessStyle.Render("Saved"), m.Commits(), cfg.Store.Path)
	}
	return nil
}
