// Package streak tracks the daily commitment streak shown on the Home screen.
package streak

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/ramanasai/soldier/internal/clock"
	"github.com/ramanasai/soldier/internal/store"
)

var (
	ErrAlreadyCommitted     = errors.New("already decided today")
	ErrConfirmationRequired = errors.New("restart requires confirmation")
)

// State is a point-in-time view of the tracker.
type State struct {
	CurrentDay        int
	LastCommitDate    string
	HasCommittedToday bool
	Message           string
}

// Tracker owns the streak for one screen. In-memory state is authoritative;
// writes to the store are best effort.
type Tracker struct {
	mu       sync.Mutex
	kv       store.KV
	clock    clock.Clock
	loc      *time.Location
	log      hclog.Logger
	day      int
	lastDate string
}

func New(kv store.KV, clk clock.Clock, loc *time.Location, log hclog.Logger) *Tracker {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Tracker{kv: kv, clock: clk, loc: loc, log: log, day: store.CurrentDay.Default}
}

// Load reads the persisted streak. Read failures keep the defaults.
func (t *Tracker) Load(ctx context.Context) State {
	day, err := store.CurrentDay.Load(ctx, t.kv)
	if err != nil {
		t.log.Warn("load current day", "error", err)
	}
	date, err := store.LastCommitDate.Load(ctx, t.kv)
	if err != nil {
		t.log.Warn("load last commit date", "error", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.day = day
	t.lastDate = date
	return t.stateLocked()
}

func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stateLocked()
}

// HasCommittedToday is evaluated against the clock on every call, so the
// decision reopens once the date rolls over.
func (t *Tracker) HasCommittedToday() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastDate != "" && t.lastDate == t.today()
}

// Commit advances the streak by one day.
func (t *Tracker) Commit(ctx context.Context) (State, error) {
	return t.decide(ctx, func(day int) int { return day + 1 })
}

// Restart resets the streak to day 1 once the user has confirmed.
func (t *Tracker) Restart(ctx context.Context, confirmed bool) (State, error) {
	if !confirmed {
		return t.State(), ErrConfirmationRequired
	}
	return t.decide(ctx, func(int) int { return 1 })
}

func (t *Tracker) decide(ctx context.Context, next func(int) int) (State, error) {
	t.mu.Lock()
	today := t.today()
	if t.lastDate == today {
		st := t.stateLocked()
		t.mu.Unlock()
		return st, ErrAlreadyCommitted
	}
	t.day = next(t.day)
	t.lastDate = today
	day := t.day
	st := t.stateLocked()
	t.mu.Unlock()

	if err := store.CurrentDay.Save(ctx, t.kv, day); err != nil {
		t.log.Warn("persist current day", "day", day, "error", err)
	}
	if err := store.LastCommitDate.Save(ctx, t.kv, today); err != nil {
		t.log.Warn("persist last commit date", "date", today, "error", err)
	}
	t.log.Info("streak decided", "day", day, "date", today)
	return st, nil
}

func (t *Tracker) today() string {
	return store.FormatDate(t.clock.Now().In(t.loc))
}

func (t *Tracker) stateLocked() State {
	return State{
		CurrentDay:        t.day,
		LastCommitDate:    t.lastDate,
		HasCommittedToday: t.lastDate != "" && t.lastDate == t.today(),
		Message:           Message(t.day),
	}
}

// Message is the encouragement shown for a given streak day.
func Message(day int) string {
	switch {
	case day <= 1:
		return "Begin your journey as a soldier!"
	case day < 7:
		return "You are building momentum!"
	case day < 30:
		return "A true soldier is taking shape!"
	case day < 100:
		return "You have become a seasoned soldier!"
	default:
		return "Legendary soldier! Hold the line!"
	}
}
