// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package form

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jeranaias/datafield-tui/internal/config"
	"github.com/jeranaias/datafield-tui/internal/datafield"
	"github.com/jeranaias/datafield-tui/internal/ui/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ Field     = (*datafield.DataField[int])(nil)
	_ Field     = (*datafield.DataField[string])(nil)
	_ tea.Model = (*Model)(nil)
)

type fixture struct {
	form  *Model
	hour  int
	names []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	theme := styles.NewThemeNamed(styles.ThemeDark)
	fx := &fixture{hour: 10}

	hour, err := datafield.NewBoundField("Hour", datafield.Bind(&fx.hour),
		datafield.IntConversion(0, 23), datafield.Options{Theme: theme, Hint: "0 to 23"})
	require.NoError(t, err)

	name, err := datafield.NewStringSink("Name", nil,
		func(s string) bool { return s != "" },
		func(s string) { fx.names = append(fx.names, s) },
		nil, datafield.Options{Theme: theme})
	require.NoError(t, err)

	fx.form = New("Alarm", []Field{hour, name}, Options{Theme: theme, ShowHelp: true})
	return fx
}

func press(m *Model, msgs ...tea.KeyMsg) tea.Cmd {
	var last tea.Cmd
	for _, msg := range msgs {
		_, last = m.Update(msg)
	}
	return last
}

func runes(s string) []tea.KeyMsg {
	var out []tea.KeyMsg
	for _, r := range s {
		out = append(out, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return out
}

var (
	enter     = tea.KeyMsg{Type: tea.KeyEnter}
	esc       = tea.KeyMsg{Type: tea.KeyEsc}
	tab       = tea.KeyMsg{Type: tea.KeyTab}
	shiftTab  = tea.KeyMsg{Type: tea.KeyShiftTab}
	backspace = tea.KeyMsg{Type: tea.KeyBackspace}
	ctrlC     = tea.KeyMsg{Type: tea.KeyCtrlC}
)

// =============================================================================
// EDITING
// =============================================================================

func TestForm_EnterEditsAndCommits(t *testing.T) {
	fx := newFixture(t)
	m := fx.form

	press(m, enter)
	require.True(t, m.Fields()[0].Editing())

	press(m, backspace, backspace)
	press(m, runes("5")...)
	cmd := press(m, enter)

	assert.NotNil(t, cmd)
	assert.Equal(t, 5, fx.hour)
	assert.False(t, m.Fields()[0].Editing())
	assert.Equal(t, 1, m.Cursor(), "enter moves to the next field")
	assert.Equal(t, 1, m.Commits())
	assert.Equal(t, "Saved Hour", m.Status())
}

func TestForm_EscEndsSession(t *testing.T) {
	fx := newFixture(t)
	m := fx.form

	press(m, tab, enter)
	press(m, runes("marcus")...)
	press(m, esc)

	assert.False(t, m.Fields()[1].Editing())
	assert.Equal(t, 1, m.Cursor(), "esc keeps the cursor")
	assert.Equal(t, []string{"marcus"}, fx.names)
}

func TestForm_InvalidTextIsDiscarded(t *testing.T) {
	fx := newFixture(t)
	m := fx.form

	press(m, enter, backspace, backspace)
	press(m, runes("99")...)
	assert.Contains(t, m.View(), "need attention")
	assert.Contains(t, m.View(), "0 to 23")

	press(m, tab)
	assert.Equal(t, 10, fx.hour)
	assert.Equal(t, "10", m.Fields()[0].Text())
	assert.Equal(t, 0, m.Commits())
	assert.Equal(t, "Discarded invalid Hour", m.Status())
	assert.NotContains(t, m.View(), "need attention")
}

func TestForm_EmptySinkTextNeverDelivered(t *testing.T) {
	fx := newFixture(t)
	m := fx.form

	press(m, tab, enter, esc)
	assert.Empty(t, fx.names)
	assert.Equal(t, 0, m.Commits())
}

func TestForm_TypingQWhileEditing(t *testing.T) {
	fx := newFixture(t)
	m := fx.form

	press(m, tab, enter)
	press(m, runes("q")...)
	assert.False(t, m.Quitting())
	assert.Equal(t, "q", m.Fields()[1].Text())
}

// =============================================================================
// NAVIGATION
// =============================================================================

func TestForm_CursorWraps(t *testing.T) {
	fx := newFixture(t)
	m := fx.form

	press(m, tab)
	assert.Equal(t, 1, m.Cursor())
	press(m, tab)
	assert.Equal(t, 0, m.Cursor())
	press(m, shiftTab)
	assert.Equal(t, 1, m.Cursor())
}

func TestForm_QuitAtRest(t *testing.T) {
	fx := newFixture(t)
	m := fx.form

	cmd := press(m, runes("q")...)
	require.NotNil(t, cmd)
	assert.True(t, m.Quitting())
	assert.Equal(t, "", m.View())
}

func TestForm_CtrlCCommitsOpenSession(t *testing.T) {
	fx := newFixture(t)
	m := fx.form

	press(m, enter, backspace, backspace)
	press(m, runes("7")...)
	cmd := press(m, ctrlC)

	require.NotNil(t, cmd)
	assert.True(t, m.Quitting())
	assert.Equal(t, 7, fx.hour)
}

func TestForm_EmptyForm(t *testing.T) {
	m := New("Empty", nil, Options{Theme: styles.NewThemeNamed(styles.ThemeDark)})
	press(m, tab, enter, esc)
	assert.Equal(t, 0, m.Cursor())
	assert.Contains(t, m.View(), "Empty")
}

// =============================================================================
// VIEW AND CONFIG
// =============================================================================

func TestForm_View(t *testing.T) {
	fx := newFixture(t)
	view := fx.form.View()

	assert.Contains(t, view, "Alarm")
	assert.Contains(t, view, "Hour")
	assert.Contains(t, view, "Name")
	assert.Contains(t, view, "> ")
	assert.Contains(t, view, "quit")
}

func TestForm_HelpToggle(t *testing.T) {
	fx := newFixture(t)
	m := fx.form

	press(m, runes("?")...)
	assert.Contains(t, m.View(), "previous field")
	press(m, runes("?")...)
	assert.NotContains(t, m.View(), "previous field")
}

func TestForm_ConfigMsg(t *testing.T) {
	fx := newFixture(t)
	m := fx.form

	cfg := config.Default()
	cfg.UI.Theme = "light"
	cfg.UI.ShowHelp = false
	cfg.UI.Width = 60

	m.Update(ConfigMsg{Config: cfg})
	assert.Equal(t, "light", m.theme.Name)
	assert.Equal(t, 60, m.width)
	assert.Equal(t, "Configuration reloaded", m.Status())
	assert.NotContains(t, m.View(), "quit")

	m.Update(ConfigMsg{})
	assert.Equal(t, "light", m.theme.Name)
}
