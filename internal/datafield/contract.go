// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package datafield

import "errors"

// =============================================================================
// CONVERSION CONTRACT
// =============================================================================

// ParseFunc converts text into a value. ok is false when the text is not a
// valid T; that is the only way invalid input is reported.
type ParseFunc[T any] func(text string) (value T, ok bool)

// RenderFunc formats a value for display.
type RenderFunc[T any] func(value T) string

// OptionalRenderFunc formats a value that may be absent (ok == false).
// Sink fields use it because they can have nothing committed yet.
type OptionalRenderFunc[T any] func(value T, ok bool) string

// InvalidTextFunc observes the text a field is currently showing that does
// not parse. shown is false when no invalid text is on screen.
type InvalidTextFunc func(text string, shown bool)

// Conversion pairs the functions that translate between text and T.
type Conversion[T any] struct {
	// Parse is required.
	Parse ParseFunc[T]

	// Render is required. It is used at rest, and while editing when
	// EditableRender is nil.
	Render RenderFunc[T]

	// EditableRender optionally formats the value for an editing session,
	// e.g. without grouping separators or units.
	EditableRender RenderFunc[T]

	// OnInvalidText is optional.
	OnInvalidText InvalidTextFunc
}

// Construction errors. Invalid text never produces an error; only a field
// that cannot be built does.
var (
	// ErrNoConversion is returned when Parse or Render is missing.
	ErrNoConversion = errors.New("datafield: parse and render are required")

	// ErrNoBinding is returned when a Binding lacks its getter or setter.
	ErrNoBinding = errors.New("datafield: binding needs both get and set")

	// ErrNoSink is returned when a sink field has no sink callback.
	ErrNoSink = errors.New("datafield: sink callback is required")

	// ErrRoundTrip is returned when the rendered initial value does not parse.
	ErrRoundTrip = errors.New("datafield: rendered value does not parse back")
)

func (c Conversion[T]) validate() error {
	if c.Parse == nil || c.Render == nil {
		return ErrNoConversion
	}
	return nil
}

// editText is the text shown while editing.
func (c Conversion[T]) editText(v T) string {
	if c.EditableRender != nil {
		return c.EditableRender(v)
	}
	return c.Render(v)
}

// RoundTrips reports whether Parse accepts Render(v).
func (c Conversion[T]) RoundTrips(v T) bool {
	if c.Parse == nil || c.Render == nil {
		return false
	}
	_, ok := c.Parse(c.Render(v))
	return ok
}

// Optional lifts a RenderFunc into an OptionalRenderFunc that shows empty
// when there is no value.
func Optional[T any](render RenderFunc[T], empty string) OptionalRenderFunc[T] {
	if render == nil {
		return nil
	}
	return func(v T, ok bool) string {
		if !ok {
			return empty
		}
		return render(v)
	}
}

// SinkFrom builds a SinkConfig from a Conversion. Absent values render as
// the empty string.
func SinkFrom[T any](conv Conversion[T], sink func(T)) SinkConfig[T] {
	return SinkConfig[T]{
		Parse:          conv.Parse,
		Render:         Optional(conv.Render, ""),
		EditableRender: Optional(conv.EditableRender, ""),
		OnInvalidText:  conv.OnInvalidText,
		Sink:           sink,
	}
}
