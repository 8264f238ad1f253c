package notify

import (
	"fmt"
	"sync"

	"github.com/gen2brain/beeep"
	"github.com/hashicorp/go-hclog"
)

const appName = "Soldier"

// Notifier sends desktop notifications and terminal beeps, gated by the
// user's sound and notification preferences.
type Notifier struct {
	mu      sync.Mutex
	sound   bool
	enabled bool
	log     hclog.Logger

	send  func(title, message string) error
	alert func(title, message string) error
	beep  func() error
}

func New(log hclog.Logger) *Notifier {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Notifier{
		sound:   true,
		enabled: true,
		log:     log,
		send:    func(t, m string) error { return beeep.Notify(t, m, "") },
		alert:   func(t, m string) error { return beeep.Alert(t, m, "") },
		beep:    func() error { return beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration) },
	}
}

// SetPrefs matches the signature of stats.Aggregator.OnPrefsChange.
func (n *Notifier) SetPrefs(sound, notifications bool) {
	n.mu.Lock()
	n.sound, n.enabled = sound, notifications
	n.mu.Unlock()
}

func (n *Notifier) prefs() (sound, enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.sound, n.enabled
}

// Info posts a notification if notifications are on. It reports whether
// one was sent.
func (n *Notifier) Info(title, message string) bool {
	if _, on := n.prefs(); !on {
		return false
	}
	if err := n.send(title, message); err != nil {
		n.log.Debug("notification failed", "title", title, "error", err)
		return false
	}
	return true
}

// Done posts a completion notification, with sound when sound is on.
func (n *Notifier) Done(message string) bool {
	sound, on := n.prefs()
	if !on {
		return false
	}
	send := n.send
	if sound {
		send = n.alert
	}
	if err := send(appName, message); err != nil {
		n.log.Debug("notification failed", "error", err)
		return false
	}
	return true
}

// Chime beeps if sound is on.
func (n *Notifier) Chime() bool {
	if sound, _ := n.prefs(); !sound {
		return false
	}
	if err := n.beep(); err != nil {
		n.log.Debug("beep failed", "error", err)
		return false
	}
	return true
}

func FormatDailyPrompt(day int) (string, string) {
	title := "Soldier check-in"
	msg := fmt.Sprintf("Day %d is waiting. Did you hold the line today?", day)
	return title, msg
}

func FormatSessionComplete(total int) string {
	if total == 1 {
		return "Breathing session complete. 1 session so far."
	}
	return fmt.Sprintf("Breathing session complete. %d sessions so far.", total)
}
