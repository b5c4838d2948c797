// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package datafield

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"
)

// =============================================================================
// CONVENIENCE CONVERSIONS
// =============================================================================

// StringConversion uses constraint as the parser for plain strings: text is
// its own value when the constraint holds. A nil constraint accepts all.
func StringConversion(constraint func(string) bool) Conversion[string] {
	return Conversion[string]{
		Parse: func(text string) (string, bool) {
			if constraint != nil && !constraint(text) {
				return "", false
			}
			return text, true
		},
		Render: func(v string) string { return v },
	}
}

// StringerConversion renders with the value's String method. Parsing still
// has to be supplied.
func StringerConversion[T fmt.Stringer](parse ParseFunc[T]) Conversion[T] {
	return Conversion[T]{
		Parse:  parse,
		Render: func(v T) string { return v.String() },
	}
}

// textUnmarshaler is satisfied by *T when T decodes itself from text.
type textUnmarshaler[T any] interface {
	*T
	encoding.TextUnmarshaler
}

// TextConversion derives both directions from encoding.TextMarshaler and
// encoding.TextUnmarshaler, e.g. netip.Addr or time.Time:
//
//	conv := datafield.TextConversion[netip.Addr]()
func TextConversion[T encoding.TextMarshaler, PT textUnmarshaler[T]]() Conversion[T] {
	return Conversion[T]{
		Parse: func(text string) (T, bool) {
			var v T
			if err := PT(&v).UnmarshalText([]byte(text)); err != nil {
				var zero T
				return zero, false
			}
			return v, true
		},
		Render: func(v T) string {
			b, err := v.MarshalText()
			if err != nil {
				return ""
			}
			return string(b)
		},
	}
}

// DurationConversion edits a time.Duration in Go syntax ("1m30s").
// Negative durations are rejected.
func DurationConversion() Conversion[time.Duration] {
	return StringerConversion(func(text string) (time.Duration, bool) {
		d, err := time.ParseDuration(text)
		if err != nil || d < 0 {
			return 0, false
		}
		return d, true
	})
}

// Integer is the set of integer kinds IntConversion accepts.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Float is the set of floating point kinds FloatConversion accepts.
type Float interface {
	~float32 | ~float64
}

// IntConversion parses base-10 integers within [min, max].
func IntConversion[T Integer](min, max T) Conversion[T] {
	return Conversion[T]{
		Parse: func(text string) (T, bool) {
			v, ok := parseInteger[T](text)
			if !ok || v < min || v > max {
				return 0, false
			}
			return v, true
		},
		Render: formatInteger[T],
	}
}

// FloatConversion parses decimals within [min, max], rendering prec
// fractional digits (-1 for the shortest exact form). Parsed values are
// rounded to prec so an unchanged editing session writes back what it read.
func FloatConversion[T Float](min, max T, prec int) Conversion[T] {
	return Conversion[T]{
		Parse: func(text string) (T, bool) {
			v, ok := parseFloat[T](text)
			if ok {
				v = roundFloat(v, prec)
			}
			if !ok || v < min || v > max {
				return 0, false
			}
			return v, true
		},
		Render: func(v T) string {
			return strconv.FormatFloat(float64(v), 'f', prec, bitSize[T]())
		},
	}
}

func parseInteger[T Integer](text string) (T, bool) {
	var zero T
	if isSigned[T]() {
		n, err := strconv.ParseInt(text, 10, bitSize[T]())
		if err != nil {
			return zero, false
		}
		return T(n), true
	}
	n, err := strconv.ParseUint(text, 10, bitSize[T]())
	if err != nil {
		return zero, false
	}
	return T(n), true
}

func formatInteger[T Integer](v T) string {
	if isSigned[T]() {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatUint(uint64(v), 10)
}

// parseFloat rejects NaN, which would pass any range check.
func parseFloat[T Float](text string) (T, bool) {
	f, err := strconv.ParseFloat(text, bitSize[T]())
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return T(f), true
}

// roundFloat rounds v to prec fractional digits the way FormatFloat
// prints it. A negative prec leaves v unchanged.
func roundFloat[T Float](v T, prec int) T {
	if prec < 0 {
		return v
	}
	bits := bitSize[T]()
	f, err := strconv.ParseFloat(strconv.FormatFloat(float64(v), 'f', prec, bits), bits)
	if err != nil {
		return v
	}
	return T(f)
}

func isSigned[T Integer]() bool {
	var zero T
	return zero-1 < zero
}

// bitSize reports the width of T in bits for strconv, so named types such
// as "type Percent int8" parse with their real range.
func bitSize[T Integer | Float]() int {
	var v T
	return reflect.TypeOf(v).Bits()
}

// =============================================================================
// CONVENIENCE CONSTRUCTORS
// =============================================================================

// NewStringBound creates a bound string field validated by constraint.
func NewStringBound(title string, binding Binding[string], constraint func(string) bool, onInvalid InvalidTextFunc, opts Options) (*DataField[string], error) {
	conv := StringConversion(constraint)
	conv.OnInvalidText = onInvalid
	return NewBoundField(title, binding, conv, opts)
}

// NewStringSink creates a sink string field validated by constraint.
func NewStringSink(title string, initial *string, constraint func(string) bool, sink func(string), onInvalid InvalidTextFunc, opts Options) (*DataField[string], error) {
	conv := StringConversion(constraint)
	conv.OnInvalidText = onInvalid
	cfg := SinkFrom(conv, sink)
	cfg.Initial = initial
	return NewSinkField(title, cfg, opts)
}

// NewTextBound creates a bound field for a type that marshals itself to
// and from text.
func NewTextBound[T encoding.TextMarshaler, PT textUnmarshaler[T]](title string, binding Binding[T], onInvalid InvalidTextFunc, opts Options) (*DataField[T], error) {
	conv := TextConversion[T, PT]()
	conv.OnInvalidText = onInvalid
	return NewBoundField(title, binding, conv, opts)
}

// NewTextSink creates a sink field for a type that marshals itself to and
// from text.
func NewTextSink[T encoding.TextMarshaler, PT textUnmarshaler[T]](title string, initial *T, sink func(T), onInvalid InvalidTextFunc, opts Options) (*DataField[T], error) {
	conv := TextConversion[T, PT]()
	conv.OnInvalidText = onInvalid
	cfg := SinkFrom(conv, sink)
	cfg.Initial = initial
	return NewSinkField(title, cfg, opts)
}

// NewStringerBound creates a bound field rendered by the value's String
// method.
func NewStringerBound[T fmt.Stringer](title string, binding Binding[T], parse ParseFunc[T], onInvalid InvalidTextFunc, opts Options) (*DataField[T], error) {
	conv := StringerConversion(parse)
	conv.OnInvalidText = onInvalid
	return NewBoundField(title, binding, conv, opts)
}
