// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package form

import (
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jeranaias/datafield-tui/internal/config"
	"github.com/jeranaias/datafield-tui/internal/ui/styles"
	"github.com/jeranaias/datafield-tui/internal/util"
)

// =============================================================================
// FIELD CONTRACT
// =============================================================================

// Field is what the form needs from a field. *datafield.DataField[T]
// satisfies it for every T, so one form can hold fields of different types.
type Field interface {
	ID() string
	Title() string
	Text() string
	Editing() bool
	Valid() bool
	Focus() tea.Cmd
	Blur() bool
	Update(msg tea.Msg) tea.Cmd
	SetTheme(theme *styles.Theme)
	ViewRow(titleWidth int) string
}

// =============================================================================
// MESSAGES
// =============================================================================

// ConfigMsg carries a reloaded configuration into the program.
type ConfigMsg struct {
	Config *config.Config
}

// CommitMsg is emitted after a field committed a value.
type CommitMsg struct {
	ID    string
	Title string
	Text  string
}

// =============================================================================
// MODEL
// =============================================================================

// Options configures a form.
type Options struct {
	Theme    *styles.Theme
	Keys     *KeyMap
	Width    int
	ShowHelp bool
}

// Model hosts a list of fields. One field at a time has the cursor; enter
// starts an editing session on it and enter, esc, tab or quitting ends it.
type Model struct {
	title  string
	fields []Field
	cursor int

	keys     KeyMap
	help     help.Model
	showHelp bool
	theme    *styles.Theme
	width    int

	status   string
	commits  int
	quitting bool
}

// New creates a form over fields.
func New(title string, fields []Field, opts Options) *Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme()
	}
	keys := DefaultKeyMap()
	if opts.Keys != nil {
		keys = *opts.Keys
	}
	width := opts.Width
	if width <= 0 {
		width = 48
	}

	m := &Model{
		title:    title,
		fields:   fields,
		keys:     keys,
		help:     help.New(),
		showHelp: opts.ShowHelp,
		width:    width,
	}
	m.applyTheme(theme)
	return m
}

func (m *Model) applyTheme(theme *styles.Theme) {
	m.theme = theme
	m.help.Styles.ShortKey = theme.HelpKey
	m.help.Styles.ShortDesc = theme.HelpDesc
	m.help.Styles.FullKey = theme.HelpKey
	m.help.Styles.FullDesc = theme.HelpDesc
	for _, f := range m.fields {
		f.SetTheme(theme)
	}
}

// Fields returns the hosted fields.
func (m *Model) Fields() []Field { return m.fields }

// Cursor returns the index of the selected field.
func (m *Model) Cursor() int { return m.cursor }

// Commits returns how many values were committed since the form started.
func (m *Model) Commits() int { return m.commits }

// Status returns the last status line.
func (m *Model) Status() string { return m.status }

// Quitting reports whether the form asked the program to exit.
func (m *Model) Quitting() bool { return m.quitting }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.help.Width = msg.Width
		}
		return m, nil

	case ConfigMsg:
		m.applyConfig(msg.Config)
		return m, nil

	case CommitMsg:
		return m, nil
	}

	// Cursor blink and other component messages.
	if f := m.current(); f != nil && f.Editing() {
		return m, f.Update(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	f := m.current()
	editing := f != nil && f.Editing()

	switch {
	case msg.Type == tea.KeyCtrlC:
		return m.quit()

	case key.Matches(msg, m.keys.Next):
		return tea.Batch(m.end(), m.move(1))

	case key.Matches(msg, m.keys.Prev):
		return tea.Batch(m.end(), m.move(-1))

	case key.Matches(msg, m.keys.Edit):
		if editing {
			return tea.Batch(m.end(), m.move(1))
		}
		return m.begin()

	case editing && key.Matches(msg, m.keys.Done):
		return m.end()
	}

	if editing {
		return f.Update(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

func (m *Model) current() Field {
	if m.cursor < 0 || m.cursor >= len(m.fields) {
		return nil
	}
	return m.fields[m.cursor]
}

// begin starts a session on the selected field.
func (m *Model) begin() tea.Cmd {
	f := m.current()
	if f == nil {
		return nil
	}
	m.status = ""
	return f.Focus()
}

// end closes the session on the selected field, if any.
func (m *Model) end() tea.Cmd {
	f := m.current()
	if f == nil || !f.Editing() {
		return nil
	}
	valid := f.Valid()
	if !f.Blur() {
		if !valid {
			m.status = "Discarded invalid " + f.Title()
		}
		return nil
	}

	m.commits++
	m.status = "Saved " + f.Title()
	commit := CommitMsg{ID: f.ID(), Title: f.Title(), Text: f.Text()}
	log.Printf("FIELD_COMMIT | id=%s title=%s text=%q", commit.ID, commit.Title, commit.Text)
	return func() tea.Msg { return commit }
}

// move shifts the cursor, wrapping around.
func (m *Model) move(delta int) tea.Cmd {
	if len(m.fields) == 0 {
		return nil
	}
	m.cursor = (m.cursor + delta + len(m.fields)) % len(m.fields)
	return nil
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	if end := m.end(); end != nil {
		return tea.Sequence(end, tea.Quit)
	}
	return tea.Quit
}

func (m *Model) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	if cfg.UI.Theme != m.theme.Name {
		m.applyTheme(styles.NewThemeNamed(cfg.UI.Theme))
	}
	if cfg.UI.Width > 0 {
		m.width = cfg.UI.Width
	}
	m.showHelp = cfg.UI.ShowHelp
	m.status = "Configuration reloaded"
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	titles := make([]string, len(m.fields))
	for i, f := range m.fields {
		titles[i] = f.Title()
	}
	titleWidth := util.MaxWidth(titles...)

	var b strings.Builder
	b.WriteString(m.theme.FormTitle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.theme.FormStatus.Render(strings.Repeat("─", m.width)))
	b.WriteString("\n")

	invalid := 0
	for i, f := range m.fields {
		marker := "  "
		if i == m.cursor {
			marker = m.theme.InputPrompt.Render("> ")
		}
		if !f.Valid() {
			invalid++
		}
		b.WriteString(marker)
		b.WriteString(f.ViewRow(titleWidth))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case invalid > 0:
		b.WriteString(m.theme.FormError.Render(util.IntToString(invalid) + " field(s) need attention"))
	case m.status != "":
		b.WriteString(m.theme.FormStatus.Render(m.status))
	}

	if m.showHelp {
		b.WriteString("\n")
		b.WriteString(m.help.View(m.keys))
	}

	return b.String()
}
