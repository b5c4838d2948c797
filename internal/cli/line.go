// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// line.go - Line-by-line host for data fields.
//
// Line mode runs every field through one editing session per prompt: the
// prompt is prefilled with the editing text, the answer is written to the
// field as a single text change, and the session ends when the line is
// accepted. It is used when stdin is not a terminal or --line is given.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jeranaias/datafield-tui/internal/util"
	"github.com/peterh/liner"
)

// LineField is what line mode needs from a field.
// *datafield.DataField[T] satisfies it.
type LineField interface {
	ID() string
	Title() string
	Text() string
	Valid() bool
	Editing() bool
	Focus() tea.Cmd
	Blur() bool
	SetText(text string)
}

// Prompter reads one line with editable prefilled text.
// *liner.State satisfies it.
type Prompter interface {
	PromptWithSuggestion(prompt, text string, pos int) (string, error)
}

// MaxAttempts bounds how often one field is re-prompted after invalid text.
const MaxAttempts = 3

// LineHost drives fields from a Prompter.
type LineHost struct {
	prompter Prompter
	out      io.Writer
	closer   func()
}

// NewLineHost creates a host reading from the terminal with liner.
func NewLineHost(out io.Writer) *LineHost {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &LineHost{prompter: line, out: out, closer: func() { line.Close() }}
}

// NewLineHostWith creates a host over any Prompter.
func NewLineHostWith(p Prompter, out io.Writer) *LineHost {
	return &LineHost{prompter: p, out: out}
}

// Close restores the terminal.
func (h *LineHost) Close() {
	if h.closer != nil {
		h.closer()
	}
}

// Run prompts for each field in order. Invalid text is re-prompted up to
// MaxAttempts times; accepting the prefilled text unchanged moves on. Run
// stops early, without error, when the user aborts with Ctrl+C or Ctrl+D;
// the open session is still ended. It returns the number of commits.
func (h *LineHost) Run(fields []LineField) (int, error) {
	titles := make([]string, len(fields))
	for i, f := range fields {
		titles[i] = f.Title()
	}
	width := util.MaxWidth(titles...)

	commits := 0
	for _, f := range fields {
		prompt := util.PadRightWidth(f.Title(), width) + " : "

		for attempt := 1; attempt <= MaxAttempts; attempt++ {
			f.Focus()
			text := f.Text()
			input, err := h.prompter.PromptWithSuggestion(prompt, text, -1)
			if err != nil {
				f.Blur()
				if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
					fmt.Fprintln(h.out, DimStyle.Render("aborted"))
					return commits, nil
				}
				return commits, err
			}

			input = strings.TrimRight(input, "\r\n")
			f.SetText(input)
			valid := f.Valid()
			shown := f.Text()
			if f.Blur() {
				commits++
				log.Printf("FIELD_COMMIT | id=%s title=%s text=%q", f.ID(), f.Title(), f.Text())
			}
			if valid || input == text {
				break
			}

			fmt.Fprintf(h.out, "%s %q is not a valid %s, keeping %q\n",
				WarningStyle.Render("!"), shown, f.Title(), f.Text())
		}
	}
	return commits, nil
}
