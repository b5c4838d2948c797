// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package datafield

import "fmt"

// =============================================================================
// BOUND VARIANT
// =============================================================================

// Binding is read/write access to a value cell owned by the caller.
type Binding[T any] struct {
	Get func() T
	Set func(T)
}

// Bind returns a Binding over *p.
func Bind[T any](p *T) Binding[T] {
	return Binding[T]{
		Get: func() T { return *p },
		Set: func(v T) { *p = v },
	}
}

// BoundField edits a caller-owned value in place. The cell is written only
// when an editing session ends with text that parses.
type BoundField[T any] struct {
	binding Binding[T]
	conv    Conversion[T]
	session session[T]
}

// NewBound creates a BoundField. It fails with ErrRoundTrip when the
// current value of the cell does not survive Parse(Render(v)).
func NewBound[T any](binding Binding[T], conv Conversion[T]) (*BoundField[T], error) {
	if err := conv.validate(); err != nil {
		return nil, err
	}
	if binding.Get == nil || binding.Set == nil {
		return nil, ErrNoBinding
	}
	if !conv.RoundTrips(binding.Get()) {
		return nil, fmt.Errorf("%w: %q", ErrRoundTrip, conv.Render(binding.Get()))
	}
	return &BoundField[T]{
		binding: binding,
		conv:    conv,
		session: newSession(conv.Parse, conv.OnInvalidText),
	}, nil
}

// BeginEditing enters the Editing state and returns the text to edit.
func (f *BoundField[T]) BeginEditing() string {
	f.session.begin(f.conv.editText(f.binding.Get()))
	return f.session.buffer
}

// TextChanged records new text from the input. It reports whether the
// buffer changed.
func (f *BoundField[T]) TextChanged(text string) bool {
	return f.session.change(text)
}

// EndEditing leaves the Editing state, writing the parsed value into the
// cell when the text was valid. It reports whether the cell was written.
func (f *BoundField[T]) EndEditing() bool {
	v, ok, ended := f.session.end()
	if !ended || !ok {
		return false
	}
	f.binding.Set(v)
	return true
}

// Editing reports whether a session is in progress.
func (f *BoundField[T]) Editing() bool {
	return f.session.editing
}

// Valid reports the validity cache while editing; at rest it is true.
func (f *BoundField[T]) Valid() bool {
	return !f.session.editing || f.session.valid
}

// Text is the buffer while editing. At rest it renders the cell live, so a
// value written by the owner shows even if it would not parse.
func (f *BoundField[T]) Text() string {
	if f.session.editing {
		return f.session.buffer
	}
	return f.conv.Render(f.binding.Get())
}

// Value returns the current cell value.
func (f *BoundField[T]) Value() T {
	return f.binding.Get()
}
