// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Config command implementation for datafield.
//
// Command: config [subcommand]
// Short:   View and modify configuration
//
// Subcommands:
//   show (default)      Display current configuration
//   get <key>           Display one value
//   set <key> <value>   Set a configuration value
//   path                Show configuration file path
//
// Examples:
//   datafield config set ui.theme light
//   datafield config set fields.continuous true
//   datafield config get store.path
package cli

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/jeranaias/datafield-tui/internal/config"
)

// HandleConfig handles the "config" command. effective is the loaded
// configuration (env overrides applied); path is the file that set writes.
func HandleConfig(args Args, effective *config.Config, path string, w io.Writer) error {
	switch args.Subcommand {
	case "show", "":
		return handleConfigShow(effective, path, w)
	case "get":
		return handleConfigGet(effective, args.ConfigKey, w)
	case "set":
		return handleConfigSet(path, args.ConfigKey, args.ConfigVal, w)
	case "path":
		fmt.Fprintln(w, path)
		return nil
	default:
		return fmt.Errorf("unknown config subcommand %q (want show, get, set or path)", args.Subcommand)
	}
}

func handleConfigShow(cfg *config.Config, path string, w io.Writer) error {
	fmt.Fprintln(w, TitleStyle.Render("datafield configuration"))
	for _, key := range config.GetAllKeys() {
		val, err := cfg.Get(key)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s %s\n", LabelStyle.Render(key), ValueStyle.Render(fmt.Sprint(val)))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, DimStyle.Render("File: "+path))
	return nil
}

func handleConfigGet(cfg *config.Config, key string, w io.Writer) error {
	if key == "" {
		return fmt.Errorf("usage: datafield config get <key>")
	}
	val, err := cfg.Get(key)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, val)
	return nil
}

func handleConfigSet(path, key, value string, w io.Writer) error {
	if key == "" {
		return fmt.Errorf("usage: datafield config set <key> <value>")
	}

	// Start from the file alone so env overrides are not written back.
	cfg := config.Default()
	if _, err := os.Stat(path); err == nil {
		var loadErr error
		if strings.HasSuffix(path, ".json") {
			loadErr = config.LoadJSON(cfg, path)
		} else {
			loadErr = config.LoadTOML(cfg, path)
		}
		if loadErr != nil {
			return loadErr
		}
	}

	current, err := cfg.Get(key)
	if err != nil {
		return err
	}
	var setErr error
	if reflect.TypeOf(current).Kind() == reflect.Bool {
		b, err := ParseBoolString(value)
		if err != nil {
			return err
		}
		setErr = cfg.Set(key, b)
	} else {
		setErr = cfg.Set(key, value)
	}
	if setErr != nil {
		return setErr
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if strings.HasSuffix(path, ".json") {
		err = config.SaveJSON(cfg, path)
	} else {
		err = config.SaveTOML(cfg, path)
	}
	if err != nil {
		return err
	}

	newVal, _ := cfg.Get(key)
	fmt.Fprintf(w, "%s %s = %v\n", SuccessStyle.Render("Set"), key, newVal)
	return nil
}
