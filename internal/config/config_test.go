// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/language"
)

// clearEnv keeps DATAFIELD_* variables from the developer's shell out of a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"DATAFIELD_THEME", "DATAFIELD_LOCALE", "DATAFIELD_STORE",
		"DATAFIELD_LOG", "DATAFIELD_CONTINUOUS",
	} {
		t.Setenv(name, "")
	}
}

// TestConfig_Default tests that default configuration is valid.
func TestConfig_Default(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	if cfg.Version == "" {
		t.Error("Default config should have a version")
	}

	if cfg.UI.Theme != "auto" {
		t.Errorf("Expected default theme 'auto', got '%s'", cfg.UI.Theme)
	}

	if !cfg.UI.ShowHelp {
		t.Error("Help footer should be shown by default")
	}

	if !strings.HasSuffix(cfg.Store.Path, "values.db") {
		t.Errorf("Unexpected default store path %q", cfg.Store.Path)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate, got %v", err)
	}
}

// TestConfig_Validate tests configuration validation.
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		field   string
		wantErr bool
	}{
		{name: "valid default config", mutate: func(c *Config) {}},
		{name: "dark theme", mutate: func(c *Config) { c.UI.Theme = "dark" }},
		{name: "upper case theme", mutate: func(c *Config) { c.UI.Theme = "LIGHT" }},
		{name: "invalid theme", mutate: func(c *Config) { c.UI.Theme = "neon" }, field: "ui.theme", wantErr: true},
		{name: "width too small", mutate: func(c *Config) { c.UI.Width = 10 }, field: "ui.width", wantErr: true},
		{name: "width too large", mutate: func(c *Config) { c.UI.Width = 500 }, field: "ui.width", wantErr: true},
		{name: "german locale", mutate: func(c *Config) { c.UI.Locale = "de-DE" }},
		{name: "invalid locale", mutate: func(c *Config) { c.UI.Locale = "not a locale!" }, field: "ui.locale", wantErr: true},
		{name: "empty store path", mutate: func(c *Config) { c.Store.Path = " " }, field: "store.path", wantErr: true},
		{name: "log enabled without path", mutate: func(c *Config) { c.Log.Enabled = true; c.Log.Path = "" }, field: "log.path", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var verrs ValidateErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("Validate() error type = %T, want ValidateErrors", err)
			}
			if verrs[0].Field != tt.field {
				t.Errorf("Field = %q, want %q", verrs[0].Field, tt.field)
			}
		})
	}
}

// TestConfig_ValidateCollectsAllErrors tests that every problem is reported.
func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.UI.Theme = "neon"
	cfg.UI.Width = 1

	err := cfg.Validate()
	var verrs ValidateErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidateErrors, got %v", err)
	}
	if len(verrs) != 2 {
		t.Errorf("got %d errors, want 2: %v", len(verrs), err)
	}
	if !strings.Contains(err.Error(), "; ") {
		t.Errorf("errors should be joined, got %q", err.Error())
	}
}

// TestConfig_LoadFromPathTOML tests loading a partial TOML file.
func TestConfig_LoadFromPathTOML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[ui]
theme = "light"
locale = "de"

[fields]
continuous = true
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}

	if cfg.UI.Theme != "light" {
		t.Errorf("Theme = %q, want light", cfg.UI.Theme)
	}
	if !cfg.Fields.Continuous {
		t.Error("Continuous should be true")
	}
	if cfg.UI.Width != 48 {
		t.Errorf("Width = %d, want default 48", cfg.UI.Width)
	}
	if !cfg.UI.ShowHelp {
		t.Error("keys missing from the file should keep their defaults")
	}
	if cfg.LocaleTag() != language.German {
		t.Errorf("LocaleTag() = %v, want de", cfg.LocaleTag())
	}
}

// TestConfig_LoadFromPathJSON tests loading a JSON file.
func TestConfig_LoadFromPathJSON(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"ui": {"theme": "dark", "width": 60}}`), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.UI.Theme != "dark" || cfg.UI.Width != 60 {
		t.Errorf("got theme=%q width=%d", cfg.UI.Theme, cfg.UI.Width)
	}
}

// TestConfig_LoadFromPathInvalid tests that bad files are rejected.
func TestConfig_LoadFromPathInvalid(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	broken := filepath.Join(dir, "broken.toml")
	os.WriteFile(broken, []byte("[ui\ntheme ="), 0600)
	if _, err := LoadFromPath(broken); err == nil {
		t.Error("expected decode error")
	}

	invalid := filepath.Join(dir, "invalid.toml")
	os.WriteFile(invalid, []byte("[ui]\ntheme = \"neon\"\n"), 0600)
	_, err := LoadFromPath(invalid)
	var verrs ValidateErrors
	if !errors.As(err, &verrs) {
		t.Errorf("expected ValidateErrors, got %v", err)
	}
}

// TestConfig_LoadWithoutFile tests that Load falls back to defaults.
func TestConfig_LoadWithoutFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.UI.Theme != "auto" {
		t.Errorf("Theme = %q, want auto", cfg.UI.Theme)
	}
}

// TestConfig_LoadPrefersTOML tests the file precedence.
func TestConfig_LoadPrefersTOML(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".datafield")
	os.MkdirAll(dir, 0755)
	os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"ui": {"theme": "dark"}}`), 0600)

	path, err := ActivePath()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "config.json" {
		t.Errorf("ActivePath() = %q, want the JSON file", path)
	}

	os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[ui]\ntheme = \"light\"\n"), 0600)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("Theme = %q, want light from TOML", cfg.UI.Theme)
	}
}

// TestConfig_ApplyEnvOverrides tests DATAFIELD_* variables.
func TestConfig_ApplyEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATAFIELD_THEME", "light")
	t.Setenv("DATAFIELD_LOCALE", "fr")
	t.Setenv("DATAFIELD_STORE", "/tmp/x.db")
	t.Setenv("DATAFIELD_LOG", "/tmp/x.log")
	t.Setenv("DATAFIELD_CONTINUOUS", "true")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.UI.Theme != "light" {
		t.Errorf("Theme = %q", cfg.UI.Theme)
	}
	if cfg.UI.Locale != "fr" {
		t.Errorf("Locale = %q", cfg.UI.Locale)
	}
	if cfg.Store.Path != "/tmp/x.db" {
		t.Errorf("Store.Path = %q", cfg.Store.Path)
	}
	if !cfg.Log.Enabled || cfg.Log.Path != "/tmp/x.log" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if !cfg.Fields.Continuous {
		t.Error("Continuous should be true")
	}
}

// TestConfig_SaveRoundTrip tests that saved files load back.
func TestConfig_SaveRoundTrip(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg := Default()
	cfg.UI.Theme = "dark"
	cfg.UI.Width = 72
	cfg.Fields.Continuous = true

	for _, name := range []string{"config.toml", "config.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, "nested", name)
			var err error
			if strings.HasSuffix(name, ".json") {
				err = SaveJSON(cfg, path)
			} else {
				err = SaveTOML(cfg, path)
			}
			if err != nil {
				t.Fatalf("save error = %v", err)
			}

			loaded, err := LoadFromPath(path)
			if err != nil {
				t.Fatalf("LoadFromPath() error = %v", err)
			}
			if loaded.UI.Theme != "dark" || loaded.UI.Width != 72 || !loaded.Fields.Continuous {
				t.Errorf("round trip lost values: %+v", loaded)
			}
		})
	}
}

// TestConfig_GetSet tests Get and Set methods with dot notation.
func TestConfig_GetSet(t *testing.T) {
	cfg := Default()

	val, err := cfg.Get("ui.theme")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if val != "auto" {
		t.Errorf("Get('ui.theme') = %v, want 'auto'", val)
	}

	if err := cfg.Set("ui.width", "64"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if cfg.UI.Width != 64 {
		t.Errorf("Width after Set = %d, want 64", cfg.UI.Width)
	}

	if err := cfg.Set("fields.continuous", "yes"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if !cfg.Fields.Continuous {
		t.Error("Continuous should be true after Set")
	}

	if err := cfg.Set("ui.show_help", false); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if cfg.UI.ShowHelp {
		t.Error("ShowHelp should be false after Set")
	}

	if _, err := cfg.Get("invalid.key"); err == nil {
		t.Error("Get() with invalid key should return error")
	}
	if _, err := cfg.Get("ui"); err == nil {
		t.Error("Get() of a section should return error")
	}
	if err := cfg.Set("ui.width", "wide"); err == nil {
		t.Error("Set() with a non-integer width should return error")
	}
}

// TestGetAllKeys tests that every listed key resolves.
func TestGetAllKeys(t *testing.T) {
	cfg := Default()
	for _, key := range GetAllKeys() {
		if _, err := cfg.Get(key); err != nil {
			t.Errorf("Get(%q) error = %v", key, err)
		}
	}
}
