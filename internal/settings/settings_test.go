// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package settings

import (
	"context"
	"net/netip"
	"path/filepath"
	"testing"
	"time"

	"github.com/jeranaias/datafield-tui/internal/store"
	"github.com/jeranaias/datafield-tui/internal/ui/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func openStore(t *testing.T, path string) *store.Store {
	t.Helper()
	st, err := store.Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func testOptions() Options {
	return Options{Locale: language.English, Theme: styles.NewThemeNamed(styles.ThemeDark)}
}

func load(t *testing.T, st *store.Store, opts Options) *Settings {
	t.Helper()
	s, err := Load(context.Background(), st, opts)
	require.NoError(t, err)
	return s
}

func stored(t *testing.T, st *store.Store, key string) string {
	t.Helper()
	text, err := st.Get(context.Background(), key)
	require.NoError(t, err, key)
	return text
}

func TestLoad_Defaults(t *testing.T) {
	st := openStore(t, filepath.Join(t.TempDir(), "values.db"))
	s := load(t, st, testOptions())

	assert.Equal(t, DefaultAlarm(), s.Alarm())
	_, ok := s.Name()
	assert.False(t, ok)
	_, ok = s.Snooze()
	assert.False(t, ok)

	var titles []string
	for _, f := range s.LineFields() {
		titles = append(titles, f.Title())
	}
	assert.Equal(t, []string{"Hour", "Name", "Snooze", "Server", "Budget", "Volume"}, titles)
	assert.Len(t, s.FormFields(), 6)

	assert.Equal(t, "7", s.hour.Text())
	assert.Equal(t, "1,250,000 credits", s.budget.Text())
	assert.Equal(t, "42.5%", s.volume.Text())
	assert.Equal(t, "", s.name.Text())
}

func TestLoad_RequiresStore(t *testing.T) {
	_, err := Load(context.Background(), nil, testOptions())
	assert.Error(t, err)
}

func TestCommitsArePersisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.db")
	st := openStore(t, path)
	s := load(t, st, testOptions())

	answers := map[string]string{
		"Hour":   "6",
		"Name":   "wake up",
		"Snooze": "1m30s",
		"Server": "10.0.0.1",
		"Budget": "2000",
		"Volume": "55.5",
	}
	for _, f := range s.LineFields() {
		f.Focus()
		f.SetText(answers[f.Title()])
		require.True(t, f.Blur(), f.Title())
	}

	assert.Equal(t, "6", stored(t, st, KeyHour))
	assert.Equal(t, "wake up", stored(t, st, KeyName))
	assert.Equal(t, "1m30s", stored(t, st, KeySnooze))
	assert.Equal(t, "10.0.0.1", stored(t, st, KeyServer))
	assert.Equal(t, "2000", stored(t, st, KeyBudget))
	assert.Equal(t, "55.5", stored(t, st, KeyVolume))
	assert.NoError(t, s.Err())

	assert.Equal(t, Alarm{Hour: 6, Budget: 2000, Volume: 55.5}, s.Alarm())
	assert.Equal(t, "2,000 credits", s.budget.Text())

	// A second load starts from what was stored.
	again := load(t, st, testOptions())
	assert.Equal(t, s.Alarm(), again.Alarm())
	name, ok := again.Name()
	require.True(t, ok)
	assert.Equal(t, "wake up", name)
	snooze, ok := again.Snooze()
	require.True(t, ok)
	assert.Equal(t, 90*time.Second, snooze)
	server, ok := again.Server()
	require.True(t, ok)
	assert.Equal(t, netip.MustParseAddr("10.0.0.1"), server)
}

func TestEditingStartsFromPlainText(t *testing.T) {
	st := openStore(t, filepath.Join(t.TempDir(), "values.db"))
	s := load(t, st, testOptions())

	s.budget.Focus()
	assert.Equal(t, "1250000", s.budget.Text())
	s.budget.Blur()

	s.volume.Focus()
	assert.Equal(t, "42.5", s.volume.Text())
	s.volume.Blur()
}

func TestInvalidTextIsNotPersisted(t *testing.T) {
	st := openStore(t, filepath.Join(t.TempDir(), "values.db"))
	s := load(t, st, testOptions())

	s.hour.Focus()
	s.hour.SetText("25")
	text, shown := s.InvalidText("Hour")
	assert.True(t, shown)
	assert.Equal(t, "25", text)

	assert.False(t, s.hour.Blur())
	_, shown = s.InvalidText("Hour")
	assert.False(t, shown)
	assert.Equal(t, 7, s.Alarm().Hour)

	_, err := st.Get(context.Background(), KeyHour)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStoredValuesThatDoNotParseAreIgnored(t *testing.T) {
	ctx := context.Background()
	st := openStore(t, filepath.Join(t.TempDir(), "values.db"))
	require.NoError(t, st.Put(ctx, KeyHour, "99"))
	require.NoError(t, st.Put(ctx, KeyVolume, "loud"))
	require.NoError(t, st.Put(ctx, KeyBudget, "-5"))
	require.NoError(t, st.Put(ctx, KeySnooze, "soon"))
	require.NoError(t, st.Put(ctx, KeyServer, "localhost"))
	require.NoError(t, st.Put(ctx, KeyName, "kept"))

	s := load(t, st, testOptions())

	assert.Equal(t, DefaultAlarm(), s.Alarm())
	_, ok := s.Snooze()
	assert.False(t, ok)
	_, ok = s.Server()
	assert.False(t, ok)
	name, ok := s.Name()
	assert.True(t, ok)
	assert.Equal(t, "kept", name)
}

func TestStoredVolumeIsRoundedAndNaNIgnored(t *testing.T) {
	ctx := context.Background()
	st := openStore(t, filepath.Join(t.TempDir(), "values.db"))

	require.NoError(t, st.Put(ctx, KeyVolume, "42.57"))
	s := load(t, st, testOptions())
	assert.Equal(t, 42.6, s.Alarm().Volume)

	// An unchanged session writes back the same value.
	s.volume.Focus()
	require.True(t, s.volume.Blur())
	assert.Equal(t, 42.6, s.Alarm().Volume)
	assert.Equal(t, "42.6", stored(t, st, KeyVolume))

	require.NoError(t, st.Put(ctx, KeyVolume, "NaN"))
	s = load(t, st, testOptions())
	assert.Equal(t, DefaultAlarm().Volume, s.Alarm().Volume)
}

func TestContinuousStoresEveryValidKeystroke(t *testing.T) {
	st := openStore(t, filepath.Join(t.TempDir(), "values.db"))
	opts := testOptions()
	opts.Continuous = true
	s := load(t, st, opts)

	s.snooze.Focus()
	s.snooze.SetText("1")
	_, err := st.Get(context.Background(), KeySnooze)
	assert.ErrorIs(t, err, store.ErrNotFound, "1 alone is not a duration")

	s.snooze.SetText("1m")
	assert.Equal(t, "1m0s", stored(t, st, KeySnooze))

	s.snooze.SetText("15m")
	assert.Equal(t, "15m0s", stored(t, st, KeySnooze))

	assert.False(t, s.snooze.Blur(), "already delivered")
}

func TestLocaleGrouping(t *testing.T) {
	st := openStore(t, filepath.Join(t.TempDir(), "values.db"))
	opts := testOptions()
	opts.Locale = language.German
	s := load(t, st, opts)

	assert.Equal(t, "1.250.000 credits", s.budget.Text())
	assert.Equal(t, "42,5%", s.volume.Text())

	s.volume.Focus()
	assert.Equal(t, "42,5", s.volume.Text())
	s.volume.SetText("60,5")
	require.True(t, s.volume.Blur())
	assert.Equal(t, "60.5", stored(t, st, KeyVolume))
}

func TestStoreWriteErrorIsReported(t *testing.T) {
	st := openStore(t, filepath.Join(t.TempDir(), "values.db"))
	s := load(t, st, testOptions())
	require.NoError(t, st.Close())

	s.hour.Focus()
	s.hour.SetText("9")
	assert.True(t, s.hour.Blur())

	assert.Equal(t, 9, s.Alarm().Hour, "the cell is written even if storing fails")
	assert.ErrorIs(t, s.Err(), store.ErrClosed)
}
