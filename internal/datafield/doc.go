// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package datafield provides a text field bound to a typed value.

A DataField[T] shows a value of type T as text, lets the user edit that text
in a Bubble Tea text input, and turns the text back into a T when editing
ends. Text that does not parse is never an error: the field keeps showing it
while editing, reports it to an optional observer, and discards it when the
session ends.

# Editing Sessions

Every field cycles between two states:

	AtRest --Focus--> Editing --Blur--> AtRest

Focus resets the text buffer from the current value. Each change to the
buffer re-parses it (the validity cache). Blur commits the cached value if
the last text parsed.

# Variants

Bound fields write through a caller-owned cell:

	hour := 10
	field, err := datafield.NewBoundField("Hour",
		datafield.Bind(&hour),
		datafield.IntConversion(0, 23),
		datafield.Options{})

NewBoundField fails with ErrRoundTrip when the current value does not
survive Parse(Render(v)). At rest a bound field renders the cell live.

Sink fields keep their own latest value and report commits:

	field, err := datafield.NewStringSink("Name", nil,
		func(s string) bool { return s != "" },
		func(name string) { log.Printf("FIELD_COMMIT | name=%s", name) },
		nil, datafield.Options{})

Set SinkConfig.Continuous to report every keystroke that parses.

# Conversions

  - StringConversion: plain strings checked by a predicate
  - StringerConversion: render with String(), caller supplies parse
  - TextConversion: encoding.TextMarshaler / TextUnmarshaler types
  - IntConversion, FloatConversion: strconv with range checks
  - GroupedIntConversion, GroupedFloatConversion: locale grouping and
    units at rest, plain digits while editing
  - DurationConversion: time.Duration

# Invalid Text Observer

OnInvalidText is called once for every buffer change, including the reset
when a session starts: with (text, true) when the text does not parse and
("", false) when it does. It is called with ("", false) once more when the
session ends.
*/
package datafield
