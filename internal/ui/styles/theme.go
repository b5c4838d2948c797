// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme names accepted by NewThemeNamed.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Theme holds the styles used by fields and forms.
type Theme struct {
	// Terminal capabilities
	Name         string
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// FORM STYLES
	// ==========================================================================

	FormTitle  lipgloss.Style
	FormStatus lipgloss.Style
	FormError  lipgloss.Style

	// ==========================================================================
	// FIELD STYLES
	// ==========================================================================

	FieldTitle        lipgloss.Style
	FieldTitleFocused lipgloss.Style
	FieldText         lipgloss.Style
	FieldPlaceholder  lipgloss.Style
	FieldInvalid      lipgloss.Style
	FieldHint         lipgloss.Style
	FieldBox          lipgloss.Style
	FieldBoxFocused   lipgloss.Style
	FieldBoxInvalid   lipgloss.Style

	// ==========================================================================
	// TEXT INPUT STYLES
	// ==========================================================================

	InputPrompt lipgloss.Style
	InputText   lipgloss.Style
	InputCursor lipgloss.Style

	// ==========================================================================
	// HELP STYLES
	// ==========================================================================

	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
}

// NewTheme creates a theme from the detected terminal background.
func NewTheme() *Theme {
	return NewThemeNamed(ThemeAuto)
}

// NewThemeNamed creates a theme. "dark" and "light" force the background
// that AdaptiveColor resolves against; anything else detects it.
func NewThemeNamed(name string) *Theme {
	colorProfile := termenv.ColorProfile()

	name = strings.ToLower(strings.TrimSpace(name))
	var isDark bool
	switch name {
	case ThemeDark:
		isDark = true
	case ThemeLight:
		isDark = false
	default:
		name = ThemeAuto
		isDark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		Name:         name,
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Form
	t.FormTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple).
		MarginBottom(1)

	t.FormStatus = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.FormError = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	// Fields
	t.FieldTitle = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.FieldTitleFocused = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)

	t.FieldText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.FieldPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.FieldInvalid = lipgloss.NewStyle().
		Foreground(Rose)

	t.FieldHint = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.FieldBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.FieldBoxFocused = t.FieldBox.
		BorderForeground(FocusRing)

	t.FieldBoxInvalid = t.FieldBox.
		BorderForeground(Rose)

	// Text input
	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.InputText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.InputCursor = lipgloss.NewStyle().
		Foreground(Cyan)

	// Help
	t.HelpKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.HelpDesc = lipgloss.NewStyle().
		Foreground(TextMuted)
}

// Indicator returns the accessible status marker for a field.
func (t *Theme) Indicator(editing, valid bool) string {
	switch {
	case !valid:
		return t.FieldInvalid.Render(StatusIndicators.Invalid)
	case editing:
		return t.InputPrompt.Render(StatusIndicators.Editing)
	default:
		return lipgloss.NewStyle().Foreground(Emerald).Render(StatusIndicators.Valid)
	}
}
