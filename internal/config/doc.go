// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for datafield.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - UIConfig: Theme, width, locale and help footer
//   - FieldsConfig: Sink delivery mode
//   - Watcher: Reloads the config file when it changes on disk
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (DATAFIELD_*)
//   - ~/.datafield/config.toml
//   - ~/.datafield/config.json
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Watch for edits:
//
//	w, err := config.NewWatcher(path, func(cfg *config.Config) {
//	    program.Send(form.ConfigMsg{Config: cfg})
//	})
package config
