// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package datafield

// session is the AtRest/Editing state machine shared by both variants.
// It owns the text buffer and the validity cache; committing the cached
// value is left to the variant.
type session[T any] struct {
	parse    ParseFunc[T]
	observer InvalidTextFunc

	editing bool
	buffer  string
	cached  T
	valid   bool
}

func newSession[T any](parse ParseFunc[T], observer InvalidTextFunc) session[T] {
	return session[T]{parse: parse, observer: observer}
}

// begin enters Editing with the buffer reset to text. Calling begin while
// already editing is a no-op.
func (s *session[T]) begin(text string) bool {
	if s.editing {
		return false
	}
	s.editing = true
	s.mutate(text)
	return true
}

// change replaces the buffer. It reports false when nothing changed: the
// field is at rest or the text equals the buffer.
func (s *session[T]) change(text string) bool {
	if !s.editing || text == s.buffer {
		return false
	}
	s.mutate(text)
	return true
}

// end leaves Editing and returns the validity cache. The buffer is
// discarded.
func (s *session[T]) end() (T, bool, bool) {
	var zero T
	if !s.editing {
		return zero, false, false
	}
	v, ok := s.cached, s.valid
	s.editing = false
	s.buffer = ""
	s.cached = zero
	s.valid = false
	s.notify("", false)
	return v, ok, true
}

func (s *session[T]) mutate(text string) {
	s.buffer = text
	s.cached, s.valid = s.parse(text)
	if s.valid {
		s.notify("", false)
	} else {
		s.notify(text, true)
	}
}

func (s *session[T]) notify(text string, shown bool) {
	if s.observer != nil {
		s.observer(text, shown)
	}
}
