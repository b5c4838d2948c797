// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package datafield

// =============================================================================
// SINK VARIANT
// =============================================================================

// SinkConfig configures a SinkField.
type SinkConfig[T any] struct {
	Parse          ParseFunc[T]
	Render         OptionalRenderFunc[T]
	EditableRender OptionalRenderFunc[T]
	OnInvalidText  InvalidTextFunc

	// Sink receives committed values.
	Sink func(T)

	// Continuous delivers every keystroke that parses instead of waiting
	// for the session to end.
	Continuous bool

	// Initial seeds the latest value. It is copied at construction and
	// dropped if it does not survive Parse(Render(v)).
	Initial *T
}

// SinkField keeps its own latest known good value and pushes commits out
// through a callback. Nothing outside the field can write to latest.
type SinkField[T any] struct {
	cfg     SinkConfig[T]
	session session[T]

	latest    T
	hasLatest bool

	// delivered is set when continuous mode already pushed the current
	// buffer, so the end of the session does not push it twice.
	delivered bool
}

// NewSink creates a SinkField.
func NewSink[T any](cfg SinkConfig[T]) (*SinkField[T], error) {
	if cfg.Parse == nil || cfg.Render == nil {
		return nil, ErrNoConversion
	}
	if cfg.Sink == nil {
		return nil, ErrNoSink
	}
	f := &SinkField[T]{cfg: cfg}
	f.session = newSession(cfg.Parse, cfg.OnInvalidText)
	if cfg.Initial != nil {
		if v, ok := cfg.Parse(cfg.Render(*cfg.Initial, true)); ok {
			f.latest, f.hasLatest = v, true
		}
	}
	f.cfg.Initial = nil
	return f, nil
}

func (f *SinkField[T]) editText() string {
	if f.cfg.EditableRender != nil {
		return f.cfg.EditableRender(f.latest, f.hasLatest)
	}
	return f.cfg.Render(f.latest, f.hasLatest)
}

// BeginEditing enters the Editing state and returns the text to edit.
func (f *SinkField[T]) BeginEditing() string {
	if f.session.begin(f.editText()) {
		f.delivered = false
	}
	return f.session.buffer
}

// TextChanged records new text from the input.
func (f *SinkField[T]) TextChanged(text string) bool {
	if !f.session.change(text) {
		return false
	}
	f.delivered = false
	if f.cfg.Continuous && f.session.valid {
		f.commit(f.session.cached)
		f.delivered = true
	}
	return true
}

// EndEditing leaves the Editing state. Valid text becomes the latest value
// and is passed to the sink. It reports whether the sink was called.
func (f *SinkField[T]) EndEditing() bool {
	delivered := f.delivered
	v, ok, ended := f.session.end()
	f.delivered = false
	if !ended || !ok || delivered {
		return false
	}
	f.commit(v)
	return true
}

func (f *SinkField[T]) commit(v T) {
	f.latest, f.hasLatest = v, true
	f.cfg.Sink(v)
}

// Editing reports whether a session is in progress.
func (f *SinkField[T]) Editing() bool {
	return f.session.editing
}

// Valid reports the validity cache while editing; at rest it is true.
func (f *SinkField[T]) Valid() bool {
	return !f.session.editing || f.session.valid
}

// Text is the buffer while editing and Render(latest) at rest.
func (f *SinkField[T]) Text() string {
	if f.session.editing {
		return f.session.buffer
	}
	return f.cfg.Render(f.latest, f.hasLatest)
}

// Latest returns the last committed value.
func (f *SinkField[T]) Latest() (T, bool) {
	return f.latest, f.hasLatest
}
