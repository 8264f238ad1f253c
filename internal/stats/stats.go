// Package stats aggregates progress for the Settings screen and the stats
// command, and owns the sound and notification preferences.
package stats

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/ramanasai/soldier/internal/clock"
	"github.com/ramanasai/soldier/internal/store"
)

// SessionTarget is the monthly session goal.
const SessionTarget = 30

type DayCount struct {
	Date     string `json:"date" yaml:"date"`
	Label    string `json:"label" yaml:"label"`
	Sessions int    `json:"sessions" yaml:"sessions"`
}

type Summary struct {
	TotalDays     int        `json:"total_days" yaml:"total_days"`
	TotalSessions int        `json:"total_sessions" yaml:"total_sessions"`
	Weekly        []DayCount `json:"weekly" yaml:"weekly"`
	MonthSessions int        `json:"month_sessions" yaml:"month_sessions"`
	Target        int        `json:"target" yaml:"target"`
	TargetPercent float64    `json:"target_percent" yaml:"target_percent"`
	SoundEnabled  bool       `json:"sound_enabled" yaml:"sound_enabled"`
	Notifications bool       `json:"notifications" yaml:"notifications"`
}

// Aggregator reads the store on Load and writes preference changes through.
type Aggregator struct {
	mu      sync.Mutex
	kv      store.KV
	history store.History
	clock   clock.Clock
	loc     *time.Location
	log     hclog.Logger
	sound   bool
	notify  bool
	onPrefs func(sound, notifications bool)
}

func New(kv store.KV, history store.History, clk clock.Clock, loc *time.Location, log hclog.Logger) *Aggregator {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Aggregator{
		kv:      kv,
		history: history,
		clock:   clk,
		loc:     loc,
		log:     log,
		sound:   store.SoundEnabled.Default,
		notify:  store.Notifications.Default,
	}
}

// OnPrefsChange registers f to be told about every preference change,
// including the values read by Load.
func (a *Aggregator) OnPrefsChange(f func(sound, notifications bool)) {
	a.mu.Lock()
	a.onPrefs = f
	a.mu.Unlock()
}

// Load builds a fresh summary. Unreadable values fall back to defaults.
func (a *Aggregator) Load(ctx context.Context) Summary {
	days, err := store.CurrentDay.Load(ctx, a.kv)
	if err != nil {
		a.log.Warn("load current day", "error", err)
	}
	total, err := store.TotalSessions.Load(ctx, a.kv)
	if err != nil {
		a.log.Warn("load total sessions", "error", err)
	}
	sound, err := store.SoundEnabled.Load(ctx, a.kv)
	if err != nil {
		a.log.Warn("load sound preference", "error", err)
	}
	notify, err := store.Notifications.Load(ctx, a.kv)
	if err != nil {
		a.log.Warn("load notification preference", "error", err)
	}

	now := a.clock.Now().In(a.loc)
	var recs []store.SessionRecord
	if a.history != nil {
		since := startOfDay(now.AddDate(0, 0, -6))
		if m := startOfMonth(now); m.Before(since) {
			since = m
		}
		recs, err = a.history.SessionsSince(ctx, since)
		if err != nil {
			a.log.Warn("load session history", "error", err)
		}
	}

	a.mu.Lock()
	a.sound, a.notify = sound, notify
	hook := a.onPrefs
	a.mu.Unlock()
	if hook != nil {
		hook(sound, notify)
	}

	month := MonthCount(recs, now)
	return Summary{
		TotalDays:     days,
		TotalSessions: total,
		Weekly:        Weekly(recs, now),
		MonthSessions: month,
		Target:        SessionTarget,
		TargetPercent: TargetPercent(month),
		SoundEnabled:  sound,
		Notifications: notify,
	}
}

func (a *Aggregator) Prefs() (sound, notifications bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sound, a.notify
}

func (a *Aggregator) SetSound(ctx context.Context, on bool) {
	a.setPref(ctx, store.SoundEnabled, on, func() { a.sound = on })
}

func (a *Aggregator) SetNotifications(ctx context.Context, on bool) {
	a.setPref(ctx, store.Notifications, on, func() { a.notify = on })
}

func (a *Aggregator) setPref(ctx context.Context, f store.Field[bool], on bool, apply func()) {
	a.mu.Lock()
	apply()
	sound, notify, hook := a.sound, a.notify, a.onPrefs
	a.mu.Unlock()

	if err := f.Save(ctx, a.kv, on); err != nil {
		a.log.Warn("persist preference", "key", f.Key, "error", err)
	}
	if hook != nil {
		hook(sound, notify)
	}
}

// ResetProgress deletes the streak and session progress plus the session
// history. Preferences are kept.
func (a *Aggregator) ResetProgress(ctx context.Context) error {
	var errs []error
	if err := store.ResetProgress(ctx, a.kv); err != nil {
		errs = append(errs, fmt.Errorf("remove progress keys: %w", err))
	}
	if a.history != nil {
		if err := a.history.ClearSessions(ctx); err != nil {
			errs = append(errs, fmt.Errorf("clear session history: %w", err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		a.log.Error("reset progress", "error", err)
		return err
	}
	a.log.Info("progress reset")
	return nil
}

// Weekly counts sessions per day for the seven days ending on now's date,
// oldest first.
func Weekly(recs []store.SessionRecord, now time.Time) []DayCount {
	loc := now.Location()
	today := startOfDay(now)
	out := make([]DayCount, 7)
	index := make(map[string]int, 7)
	for i := range out {
		d := today.AddDate(0, 0, i-6)
		key := store.FormatDate(d)
		out[i] = DayCount{Date: key, Label: d.Format("Mon")}
		index[key] = i
	}
	for _, r := range recs {
		if i, ok := index[store.FormatDate(r.EndedAt.In(loc))]; ok {
			out[i].Sessions++
		}
	}
	return out
}

// MonthCount counts sessions that ended in now's calendar month.
func MonthCount(recs []store.SessionRecord, now time.Time) int {
	loc := now.Location()
	n := 0
	for _, r := range recs {
		end := r.EndedAt.In(loc)
		if end.Year() == now.Year() && end.Month() == now.Month() {
			n++
		}
	}
	return n
}

// TargetPercent is progress toward SessionTarget, capped at 100.
func TargetPercent(sessions int) float64 {
	if sessions <= 0 {
		return 0
	}
	p := float64(sessions) / SessionTarget * 100
	if p > 100 {
		return 100
	}
	return p
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
