package notify

import (
	"errors"
	"testing"
)

type calls struct {
	sent, alerts, beeps int
	fail                error
}

func fakeNotifier(c *calls) *Notifier {
	n := New(nil)
	n.send = func(string, string) error { c.sent++; return c.fail }
	n.alert = func(string, string) error { c.alerts++; return c.fail }
	n.beep = func() error { c.beeps++; return c.fail }
	return n
}

func TestPreferencesGateOutput(t *testing.T) {
	tests := []struct {
		name          string
		sound, notify bool
		want          calls
	}{
		{"all on", true, true, calls{sent: 1, alerts: 1, beeps: 1}},
		{"sound off", false, true, calls{sent: 2}},
		{"notifications off", true, false, calls{beeps: 1}},
		{"all off", false, false, calls{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c calls
			n := fakeNotifier(&c)
			n.SetPrefs(tt.sound, tt.notify)
			n.Info("t", "m")
			n.Done("m")
			n.Chime()
			if c != tt.want {
				t.Fatalf("calls = %+v, want %+v", c, tt.want)
			}
		})
	}
}

func TestFailuresAreReported(t *testing.T) {
	c := calls{fail: errors.New("no dbus")}
	n := fakeNotifier(&c)
	if n.Info("t", "m") || n.Done("m") || n.Chime() {
		t.Fatal("failed sends must report false")
	}
}

func TestFormatting(t *testing.T) {
	title, msg := FormatDailyPrompt(12)
	if title != "Soldier check-in" || msg != "Day 12 is waiting. Did you hold the line today?" {
		t.Fatalf("prompt = %q / %q", title, msg)
	}
	if got := FormatSessionComplete(1); got != "Breathing session complete. 1 session so far." {
		t.Fatalf("singular: %q", got)
	}
	if got := FormatSessionComplete(3); got != "Breathing session complete. 3 sessions so far." {
		t.Fatalf("plural: %q", got)
	}
}
