// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package settings

import (
	"context"
	"errors"
	"log"
	"net/netip"
	"strconv"
	"time"

	"github.com/jeranaias/datafield-tui/internal/cli"
	"github.com/jeranaias/datafield-tui/internal/datafield"
	"github.com/jeranaias/datafield-tui/internal/form"
	"github.com/jeranaias/datafield-tui/internal/store"
	"github.com/jeranaias/datafield-tui/internal/ui/styles"
	"github.com/jeranaias/datafield-tui/internal/util"
	"golang.org/x/text/language"
)

// Store keys.
const (
	KeyHour   = "alarm.hour"
	KeyName   = "alarm.name"
	KeySnooze = "alarm.snooze"
	KeyServer = "alarm.server"
	KeyBudget = "alarm.budget"
	KeyVolume = "alarm.volume"
)

// FormTitle is shown above the fields.
const FormTitle = "Alarm"

// writeTimeout bounds one store write made from a commit.
const writeTimeout = 5 * time.Second

// Alarm holds the values edited in place by the bound fields.
type Alarm struct {
	Hour   int
	Budget int64
	Volume float64
}

// DefaultAlarm is used for cells with no usable stored value.
func DefaultAlarm() Alarm {
	return Alarm{Hour: 7, Budget: 1250000, Volume: 42.5}
}

// Options configures Load.
type Options struct {
	// Locale drives grouping in Budget and Volume.
	Locale language.Tag

	// Continuous makes sink fields store every valid keystroke.
	Continuous bool

	Theme *styles.Theme
	Width int
}

// Settings owns the alarm fields and the cells they edit.
type Settings struct {
	store *store.Store
	alarm Alarm

	hour   *datafield.DataField[int]
	name   *datafield.DataField[string]
	snooze *datafield.DataField[time.Duration]
	server *datafield.DataField[netip.Addr]
	budget *datafield.DataField[int64]
	volume *datafield.DataField[float64]

	invalid map[string]string
	lastErr error
}

// Load reads stored values and builds the fields.
func Load(ctx context.Context, st *store.Store, opts Options) (*Settings, error) {
	if st == nil {
		return nil, errors.New("settings: store is required")
	}
	s := &Settings{store: st, alarm: DefaultAlarm(), invalid: make(map[string]string)}
	fieldOpts := func(hint string) datafield.Options {
		return datafield.Options{Theme: opts.Theme, Hint: hint, Width: opts.Width}
	}

	// Bound: hour of day.
	hourConv := datafield.IntConversion(0, 23)
	hourConv.OnInvalidText = s.observe("Hour")
	if v, ok := loadStored(ctx, s, KeyHour, hourConv.Parse); ok {
		s.alarm.Hour = v
	}
	var err error
	s.hour, err = datafield.NewBoundField("Hour",
		bindStored(s, KeyHour, &s.alarm.Hour, util.IntToString), hourConv, fieldOpts("0-23"))
	if err != nil {
		return nil, err
	}

	// Sink: alarm name, required.
	nameConv := datafield.StringConversion(func(text string) bool { return text != "" })
	nameConv.OnInvalidText = s.observe("Name")
	nameCfg := datafield.SinkFrom(nameConv, sinkStored(s, KeyName, func(v string) string { return v }))
	nameCfg.Continuous = opts.Continuous
	nameCfg.Initial = initialStored(ctx, s, KeyName, nameConv.Parse)
	if s.name, err = datafield.NewSinkField("Name", nameCfg, fieldOpts("required")); err != nil {
		return nil, err
	}

	// Sink: snooze length.
	snoozeConv := datafield.DurationConversion()
	snoozeConv.OnInvalidText = s.observe("Snooze")
	snoozeCfg := datafield.SinkFrom(snoozeConv, sinkStored(s, KeySnooze, time.Duration.String))
	snoozeCfg.Continuous = opts.Continuous
	snoozeCfg.Initial = initialStored(ctx, s, KeySnooze, snoozeConv.Parse)
	if s.snooze, err = datafield.NewSinkField("Snooze", snoozeCfg, fieldOpts("e.g. 5m or 1h30m")); err != nil {
		return nil, err
	}

	// Sink: time server address.
	serverConv := datafield.TextConversion[netip.Addr]()
	serverConv.OnInvalidText = s.observe("Server")
	serverCfg := datafield.SinkFrom(serverConv, sinkStored(s, KeyServer, netip.Addr.String))
	serverCfg.Continuous = opts.Continuous
	serverCfg.Initial = initialStored(ctx, s, KeyServer, serverConv.Parse)
	if s.server, err = datafield.NewSinkField("Server", serverCfg, fieldOpts("IPv4 or IPv6 address")); err != nil {
		return nil, err
	}

	// Bound: budget, grouped with a unit at rest.
	budgetConv := datafield.GroupedIntConversion[int64](0, 1_000_000_000_000,
		datafield.NumberFormat{Locale: opts.Locale, Suffix: " credits"})
	budgetConv.OnInvalidText = s.observe("Budget")
	if v, ok := loadStored(ctx, s, KeyBudget, parseInt64); ok && budgetConv.RoundTrips(v) {
		s.alarm.Budget = v
	}
	s.budget, err = datafield.NewBoundField("Budget",
		bindStored(s, KeyBudget, &s.alarm.Budget, util.Int64ToString), budgetConv, fieldOpts("whole credits"))
	if err != nil {
		return nil, err
	}

	// Bound: volume percentage.
	volumeConv := datafield.GroupedFloatConversion[float64](0, 100,
		datafield.NumberFormat{Locale: opts.Locale, Suffix: "%", Precision: 1})
	volumeConv.OnInvalidText = s.observe("Volume")
	if v, ok := loadStored(ctx, s, KeyVolume, parseFloat64); ok {
		if v, ok = normalizeStored(volumeConv, v); ok {
			s.alarm.Volume = v
		}
	}
	s.volume, err = datafield.NewBoundField("Volume",
		bindStored(s, KeyVolume, &s.alarm.Volume, formatFloat64), volumeConv, fieldOpts("0-100"))
	if err != nil {
		return nil, err
	}

	return s, nil
}

// observe records the invalid text a field shows.
func (s *Settings) observe(title string) datafield.InvalidTextFunc {
	return func(text string, shown bool) {
		if !shown {
			delete(s.invalid, title)
			return
		}
		s.invalid[title] = text
	}
}

func (s *Settings) put(key, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := s.store.Put(ctx, key, text); err != nil {
		log.Printf("STORE_WRITE_FAILED | key=%s error=%v", key, err)
		s.lastErr = err
	}
}

// bindStored binds cell and stores every value written to it.
func bindStored[T any](s *Settings, key string, cell *T, format func(T) string) datafield.Binding[T] {
	b := datafield.Bind(cell)
	set := b.Set
	b.Set = func(v T) {
		set(v)
		s.put(key, format(v))
	}
	return b
}

// sinkStored returns a sink that stores every value it receives.
func sinkStored[T any](s *Settings, key string, format func(T) string) func(T) {
	return func(v T) {
		s.put(key, format(v))
	}
}

// loadStored parses the text stored under key. Missing and unparsable
// values both report false; the latter is logged.
func loadStored[T any](ctx context.Context, s *Settings, key string, parse datafield.ParseFunc[T]) (T, bool) {
	var zero T
	text, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("STORE_READ_FAILED | key=%s error=%v", key, err)
		}
		return zero, false
	}
	v, ok := parse(text)
	if !ok {
		log.Printf("STORE_VALUE_IGNORED | key=%s text=%q", key, text)
		return zero, false
	}
	return v, true
}

// normalizeStored passes a stored value through conv so the cell holds
// exactly what the field would commit, e.g. rounded to its precision.
func normalizeStored[T any](conv datafield.Conversion[T], v T) (T, bool) {
	text := conv.Render(v)
	if conv.EditableRender != nil {
		text = conv.EditableRender(v)
	}
	return conv.Parse(text)
}

func initialStored[T any](ctx context.Context, s *Settings, key string, parse datafield.ParseFunc[T]) *T {
	if v, ok := loadStored(ctx, s, key, parse); ok {
		return &v
	}
	return nil
}

func parseInt64(text string) (int64, bool) {
	v, err := strconv.ParseInt(text, 10, 64)
	return v, err == nil
}

func parseFloat64(text string) (float64, bool) {
	v, err := strconv.ParseFloat(text, 64)
	return v, err == nil
}

func formatFloat64(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// =============================================================================
// ACCESSORS
// =============================================================================

// Alarm returns the current bound values.
func (s *Settings) Alarm() Alarm { return s.alarm }

// Name returns the last committed name.
func (s *Settings) Name() (string, bool) { return sinkLatest(s.name) }

// Snooze returns the last committed snooze length.
func (s *Settings) Snooze() (time.Duration, bool) { return sinkLatest(s.snooze) }

// Server returns the last committed server address.
func (s *Settings) Server() (netip.Addr, bool) { return sinkLatest(s.server) }

func sinkLatest[T any](f *datafield.DataField[T]) (T, bool) {
	sink, ok := f.Sink()
	if !ok {
		var zero T
		return zero, false
	}
	return sink.Latest()
}

// InvalidText returns the invalid text a field is showing, if any.
func (s *Settings) InvalidText(title string) (string, bool) {
	text, ok := s.invalid[title]
	return text, ok
}

// Err returns the last store write error.
func (s *Settings) Err() error { return s.lastErr }

// FormFields returns the fields in display order for the TUI.
func (s *Settings) FormFields() []form.Field {
	return []form.Field{s.hour, s.name, s.snooze, s.server, s.budget, s.volume}
}

// LineFields returns the fields in display order for line mode.
func (s *Settings) LineFields() []cli.LineField {
	return []cli.LineField{s.hour, s.name, s.snooze, s.server, s.budget, s.volume}
}
