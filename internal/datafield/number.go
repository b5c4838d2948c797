// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package datafield

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// =============================================================================
// LOCALE-AWARE NUMBERS
// =============================================================================

// NumberFormat describes how numbers are shown at rest. While editing the
// grouping separators and the suffix are dropped so the user edits plain
// digits.
type NumberFormat struct {
	// Locale selects grouping and decimal separators. The zero tag is
	// treated as English.
	Locale language.Tag

	// Suffix is appended at rest, e.g. " ms" or "%".
	Suffix string

	// Precision is the number of fractional digits for floats.
	Precision int
}

// numberSymbols are the separators a locale prints.
type numberSymbols struct {
	printer *message.Printer
	group   string
	decimal string
}

func newNumberSymbols(tag language.Tag) numberSymbols {
	if tag == language.Und {
		tag = language.English
	}
	p := message.NewPrinter(tag)
	group := strings.TrimSuffix(strings.TrimPrefix(p.Sprintf("%d", 1000), "1"), "000")
	decimal := strings.TrimSuffix(strings.TrimPrefix(p.Sprintf("%.1f", 1.5), "1"), "5")
	if decimal == "" {
		decimal = "."
	}
	return numberSymbols{printer: p, group: group, decimal: decimal}
}

// normalize turns locale text into something strconv accepts.
func (s numberSymbols) normalize(text, suffix string) string {
	text = strings.TrimSpace(text)
	if suffix != "" {
		text = strings.TrimSpace(strings.TrimSuffix(text, strings.TrimSpace(suffix)))
	}
	if s.group != "" {
		text = strings.ReplaceAll(text, s.group, "")
	}
	text = strings.ReplaceAll(text, "−", "-")
	if s.decimal != "." {
		text = strings.ReplaceAll(text, s.decimal, ".")
	}
	return text
}

// GroupedIntConversion renders integers with locale grouping and a suffix
// at rest ("1,250,000 ms") and as plain digits while editing ("1250000").
// Parse accepts both forms.
func GroupedIntConversion[T Integer](min, max T, nf NumberFormat) Conversion[T] {
	sym := newNumberSymbols(nf.Locale)
	return Conversion[T]{
		Parse: func(text string) (T, bool) {
			v, ok := parseInteger[T](sym.normalize(text, nf.Suffix))
			if !ok || v < min || v > max {
				return 0, false
			}
			return v, true
		},
		Render: func(v T) string {
			var s string
			if isSigned[T]() {
				s = sym.printer.Sprintf("%d", int64(v))
			} else {
				s = sym.printer.Sprintf("%d", uint64(v))
			}
			return s + nf.Suffix
		},
		EditableRender: formatInteger[T],
	}
}

// GroupedFloatConversion is GroupedIntConversion for decimals. The
// editable form uses the locale decimal separator without grouping. Parsed
// values are rounded to nf.Precision.
func GroupedFloatConversion[T Float](min, max T, nf NumberFormat) Conversion[T] {
	sym := newNumberSymbols(nf.Locale)
	format := "%." + strconv.Itoa(nf.Precision) + "f"
	return Conversion[T]{
		Parse: func(text string) (T, bool) {
			v, ok := parseFloat[T](sym.normalize(text, nf.Suffix))
			if ok {
				v = roundFloat(v, nf.Precision)
			}
			if !ok || v < min || v > max {
				return 0, false
			}
			return v, true
		},
		Render: func(v T) string {
			return sym.printer.Sprintf(format, float64(v)) + nf.Suffix
		},
		EditableRender: func(v T) string {
			s := strconv.FormatFloat(float64(v), 'f', nf.Precision, bitSize[T]())
			if sym.decimal != "." {
				s = strings.Replace(s, ".", sym.decimal, 1)
			}
			return s
		},
	}
}
