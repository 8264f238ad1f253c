package schedule

import (
	"context"
	"time"

	"github.com/ramanasai/soldier/internal/config"
)

// NextAt computes the next reminder time strictly after now that falls on a
// configured day. An empty day list means every day.
func NextAt(now time.Time, cfg config.Config) time.Time {
	loc := cfg.Location()
	now = now.In(loc)

	// parse "HH:MM"
	hour, min := 20, 0
	if t, err := time.ParseInLocation("15:04", cfg.Reminder.Time, loc); err == nil {
		hour = t.Hour()
		min = t.Minute()
	}
	days := map[string]bool{}
	for _, d := range cfg.Reminder.Days {
		days[d] = true
	}
	allowed := func(t time.Time) bool {
		return len(days) == 0 || days[t.Weekday().String()[:3]]
	}

	cand := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, loc)
	if !now.Before(cand) {
		cand = cand.AddDate(0, 0, 1)
	}
	for i := 0; i < 7 && !allowed(cand); i++ {
		cand = cand.AddDate(0, 0, 1)
	}
	return cand
}

// RunConfigured calls f at every scheduled reminder until ctx is canceled.
func RunConfigured(ctx context.Context, cfg config.Config, f func()) {
	next := NextAt(time.Now(), cfg)
	t := time.NewTimer(time.Until(next))
	for {
		select {
		case <-ctx.Done():
			if !t.Stop() {
				select {
				case <-t.C:
				default:
				}
			}
			return
		case <-t.C:
			f()
			next = NextAt(time.Now(), cfg)
			t.Reset(time.Until(next))
		}
	}
}
