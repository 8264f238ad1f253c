package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/ramanasai/soldier/internal/config"
)

func TestNextAt(t *testing.T) {
	cfg := config.Default()
	cfg.Timezone = "UTC"
	cfg.Reminder.Time = "20:00"

	// Saturday 17 October 2026
	sat := func(h, m int) time.Time { return time.Date(2026, 10, 17, h, m, 0, 0, time.UTC) }

	tests := []struct {
		name string
		now  time.Time
		days []string
		want time.Time
	}{
		{"later today", sat(9, 0), nil, sat(20, 0)},
		{"exactly at reminder", sat(20, 0), nil, sat(20, 0).AddDate(0, 0, 1)},
		{"after reminder", sat(21, 30), []string{"Sat", "Sun"}, sat(20, 0).AddDate(0, 0, 1)},
		{"skips to weekday", sat(9, 0), []string{"Mon", "Wed"}, sat(20, 0).AddDate(0, 0, 2)},
		{"same weekday next week", sat(21, 0), []string{"Sat"}, sat(20, 0).AddDate(0, 0, 7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cfg
			c.Reminder.Days = tt.days
			if got := NextAt(tt.now, c); !got.Equal(tt.want) {
				t.Fatalf("NextAt = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNextAtBadTimeFallsBack(t *testing.T) {
	cfg := config.Default()
	cfg.Timezone = "UTC"
	cfg.Reminder.Time = "late"
	got := NextAt(time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC), cfg)
	if got.Hour() != 20 || got.Minute() != 0 {
		t.Fatalf("fallback reminder = %v", got)
	}
}

func TestRunConfiguredStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		RunConfigured(ctx, config.Default(), func() { t.Error("reminder fired") })
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("RunConfigured did not return")
	}
}
