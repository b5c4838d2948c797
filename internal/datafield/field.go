// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package datafield

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/jeranaias/datafield-tui/internal/ui/styles"
	"github.com/jeranaias/datafield-tui/internal/util"
)

// =============================================================================
// DATA FIELD - Bound or Sink, chosen once at construction
// =============================================================================

// Mode tags which variant a DataField wraps.
type Mode int

const (
	// ModeBound writes through a Binding.
	ModeBound Mode = iota
	// ModeSink keeps its own latest value and reports commits to a callback.
	ModeSink
)

// String returns the display name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeBound:
		return "bound"
	case ModeSink:
		return "sink"
	default:
		return "unknown"
	}
}

// Options configures the presentation of a DataField.
type Options struct {
	// Theme defaults to styles.NewTheme().
	Theme *styles.Theme

	// Input overrides the bubbles text input, e.g. in tests.
	Input TextInput

	// InputOptions is used when Input is nil.
	InputOptions InputOptions

	// Hint is shown below the field while its text does not parse.
	Hint string

	// Width of the boxed view. Zero means 40.
	Width int
}

// DataField is a titled text field over a typed value. Exactly one of bound
// and sink is set, according to mode.
type DataField[T any] struct {
	id    string
	title string
	mode  Mode

	bound *BoundField[T]
	sink  *SinkField[T]

	input       TextInput
	theme       *styles.Theme
	placeholder string
	hint        string
	width       int
}

// NewBoundField creates a DataField that edits a caller-owned value. It
// fails when the current value does not round-trip through the conversion.
func NewBoundField[T any](title string, binding Binding[T], conv Conversion[T], opts Options) (*DataField[T], error) {
	b, err := NewBound(binding, conv)
	if err != nil {
		return nil, err
	}
	f := newDataField[T](title, ModeBound, opts)
	f.bound = b
	f.input.SetValue(f.Text())
	return f, nil
}

// NewSinkField creates a DataField that reports committed values to
// cfg.Sink.
func NewSinkField[T any](title string, cfg SinkConfig[T], opts Options) (*DataField[T], error) {
	s, err := NewSink(cfg)
	if err != nil {
		return nil, err
	}
	f := newDataField[T](title, ModeSink, opts)
	f.sink = s
	f.input.SetValue(f.Text())
	return f, nil
}

func newDataField[T any](title string, mode Mode, opts Options) *DataField[T] {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme()
	}
	inputOpts := opts.InputOptions
	if inputOpts == (InputOptions{}) {
		inputOpts = DefaultInputOptions()
	}
	input := opts.Input
	if input == nil {
		input = NewTextInput(theme, inputOpts)
	}
	width := opts.Width
	if width <= 0 {
		width = 40
	}
	return &DataField[T]{
		id:          uuid.NewString(),
		title:       title,
		mode:        mode,
		input:       input,
		theme:       theme,
		placeholder: inputOpts.Placeholder,
		hint:        opts.Hint,
		width:       width,
	}
}

// ID uniquely identifies the field.
func (f *DataField[T]) ID() string { return f.id }

// Title returns the label.
func (f *DataField[T]) Title() string { return f.title }

// Mode returns the variant tag.
func (f *DataField[T]) Mode() Mode { return f.mode }

// Bound returns the bound variant when Mode is ModeBound.
func (f *DataField[T]) Bound() (*BoundField[T], bool) {
	return f.bound, f.mode == ModeBound
}

// Sink returns the sink variant when Mode is ModeSink.
func (f *DataField[T]) Sink() (*SinkField[T], bool) {
	return f.sink, f.mode == ModeSink
}

// SetTheme swaps the theme used by View.
func (f *DataField[T]) SetTheme(theme *styles.Theme) {
	if theme != nil {
		f.theme = theme
	}
}

// Editing reports whether an editing session is in progress.
func (f *DataField[T]) Editing() bool {
	switch f.mode {
	case ModeBound:
		return f.bound.Editing()
	case ModeSink:
		return f.sink.Editing()
	}
	return false
}

// Focused is Editing; it lets DataField stand in for a focusable input.
func (f *DataField[T]) Focused() bool { return f.Editing() }

// Valid reports whether the text currently shown parses.
func (f *DataField[T]) Valid() bool {
	switch f.mode {
	case ModeBound:
		return f.bound.Valid()
	case ModeSink:
		return f.sink.Valid()
	}
	return false
}

// Text is what the field shows: the buffer while editing, the rendered
// value at rest.
func (f *DataField[T]) Text() string {
	switch f.mode {
	case ModeBound:
		return f.bound.Text()
	case ModeSink:
		return f.sink.Text()
	}
	return ""
}

// Focus starts an editing session.
func (f *DataField[T]) Focus() tea.Cmd {
	if f.Editing() {
		return nil
	}
	var text string
	switch f.mode {
	case ModeBound:
		text = f.bound.BeginEditing()
	case ModeSink:
		text = f.sink.BeginEditing()
	}
	f.input.SetValue(text)
	// A character limit may have cut the text; edit what the input holds.
	if v := f.input.Value(); v != text {
		f.textChanged(v)
	}
	return f.input.Focus()
}

// Blur ends the editing session. It reports whether a value was committed.
func (f *DataField[T]) Blur() bool {
	if !f.Editing() {
		return false
	}
	f.input.Blur()
	var committed bool
	switch f.mode {
	case ModeBound:
		committed = f.bound.EndEditing()
	case ModeSink:
		committed = f.sink.EndEditing()
	}
	f.input.SetValue(f.Text())
	return committed
}

// SetText writes the text binding as the host would. It is ignored at rest.
func (f *DataField[T]) SetText(text string) {
	if !f.Editing() {
		return
	}
	f.input.SetValue(text)
	f.textChanged(f.input.Value())
}

func (f *DataField[T]) textChanged(text string) {
	switch f.mode {
	case ModeBound:
		f.bound.TextChanged(text)
	case ModeSink:
		f.sink.TextChanged(text)
	}
}

// Init implements the Bubble Tea component contract.
func (f *DataField[T]) Init() tea.Cmd {
	return nil
}

// Update forwards input to the text region while editing.
func (f *DataField[T]) Update(msg tea.Msg) tea.Cmd {
	if !f.Editing() {
		return nil
	}
	cmd := f.input.Update(msg)
	f.textChanged(f.input.Value())
	return cmd
}

// View renders the field as a titled box.
func (f *DataField[T]) View() string {
	editing := f.Editing()
	valid := f.Valid()

	titleStyle := f.theme.FieldTitle
	if editing {
		titleStyle = f.theme.FieldTitleFocused
	}
	title := titleStyle.Render(f.title) + " " + f.theme.Indicator(editing, valid)

	box := f.theme.FieldBox
	switch {
	case !valid:
		box = f.theme.FieldBoxInvalid
	case editing:
		box = f.theme.FieldBoxFocused
	}
	body := box.Width(f.width - 2).Render(f.renderText(editing))

	lines := []string{title, body}
	if !valid && f.hint != "" {
		lines = append(lines, f.theme.FieldHint.Render(f.hint))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// ViewRow renders the field on one line with the title padded to
// titleWidth display columns.
func (f *DataField[T]) ViewRow(titleWidth int) string {
	editing := f.Editing()
	valid := f.Valid()

	titleStyle := f.theme.FieldTitle
	if editing {
		titleStyle = f.theme.FieldTitleFocused
	}
	title := titleStyle.Render(util.PadRightWidth(f.title, titleWidth))
	row := title + "  " + f.renderText(editing) + " " + f.theme.Indicator(editing, valid)
	if !valid && f.hint != "" {
		row += "  " + f.theme.FieldHint.Render(f.hint)
	}
	return row
}

func (f *DataField[T]) renderText(editing bool) string {
	if editing {
		return f.input.View()
	}
	text := f.Text()
	if text == "" {
		return f.theme.FieldPlaceholder.Render(f.placeholder)
	}
	return f.theme.FieldText.Render(util.TruncateWidth(text, f.width-4))
}
