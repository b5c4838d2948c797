// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package datafield

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jeranaias/datafield-tui/internal/ui/styles"
)

// =============================================================================
// TEXT INPUT CAPABILITY
// =============================================================================

// TextInput is the editable text region a DataField drives. Focus and Blur
// are the edit-mode transitions; Value/SetValue are the text binding.
type TextInput interface {
	Value() string
	SetValue(text string)
	Focus() tea.Cmd
	Blur()
	Focused() bool
	Update(msg tea.Msg) tea.Cmd
	View() string
}

// InputOptions configures the bubbles text input.
type InputOptions struct {
	Placeholder string
	Prompt      string
	// CharLimit truncates the text; 0 means no limit.
	CharLimit int
	Width     int
}

// DefaultInputOptions returns the options used when none are given.
func DefaultInputOptions() InputOptions {
	return InputOptions{
		Prompt: "> ",
		Width:  32,
	}
}

// bubblesInput adapts textinput.Model, whose Update returns a copy, to the
// pointer-style TextInput.
type bubblesInput struct {
	model textinput.Model
}

// NewTextInput returns a TextInput backed by bubbles/textinput.
func NewTextInput(theme *styles.Theme, opts InputOptions) TextInput {
	ti := textinput.New()
	ti.Placeholder = opts.Placeholder
	ti.Prompt = opts.Prompt
	ti.CharLimit = opts.CharLimit
	if opts.Width > 0 {
		ti.Width = opts.Width
	}

	if theme != nil {
		ti.PromptStyle = theme.InputPrompt
		ti.TextStyle = theme.InputText
		ti.PlaceholderStyle = theme.FieldPlaceholder
		ti.Cursor.Style = theme.InputCursor
	}

	return &bubblesInput{model: ti}
}

func (b *bubblesInput) Value() string { return b.model.Value() }

func (b *bubblesInput) SetValue(text string) {
	b.model.SetValue(text)
	b.model.CursorEnd()
}

func (b *bubblesInput) Focus() tea.Cmd { return b.model.Focus() }

func (b *bubblesInput) Blur() { b.model.Blur() }

func (b *bubblesInput) Focused() bool { return b.model.Focused() }

func (b *bubblesInput) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	b.model, cmd = b.model.Update(msg)
	return cmd
}

func (b *bubblesInput) View() string { return b.model.View() }
