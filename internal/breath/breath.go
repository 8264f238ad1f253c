// Package breath implements the guided breathing session behind the Focus screen.
package breath

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/ramanasai/soldier/internal/clock"
	"github.com/ramanasai/soldier/internal/store"
)

const (
	TickInterval  = time.Second
	PhaseInterval = 4 * time.Second
)

type Phase int

const (
	Inhale Phase = iota
	Hold
	Exhale
)

var phaseNames = [...]string{"inhale", "hold", "exhale"}

func (p Phase) String() string {
	if p < Inhale || p > Exhale {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Next returns the following phase in the inhale, hold, exhale cycle.
func (p Phase) Next() Phase { return (p + 1) % 3 }

func (p Phase) Instruction() string {
	switch p {
	case Hold:
		return "hold"
	case Exhale:
		return "release slowly"
	default:
		return "draw breath in"
	}
}

// Scale is the relative size of the breathing circle during the phase.
func (p Phase) Scale() float64 {
	if p == Exhale {
		return 0.8
	}
	return 1.2
}

// IdleInstruction is shown while no session is running.
const IdleInstruction = "ready to begin"

type Snapshot struct {
	Active         bool
	Phase          Phase
	ElapsedSeconds int
	PhaseChanges   int
	TotalSessions  int
}

// Instruction is the text for the breathing circle.
func (s Snapshot) Instruction() string {
	if !s.Active {
		return IdleInstruction
	}
	return s.Phase.Instruction()
}

// Scale is 1 while idle, the phase scale otherwise.
func (s Snapshot) Scale() float64 {
	if !s.Active {
		return 1
	}
	return s.Phase.Scale()
}

type Option func(*Session)

func WithHistory(h store.History) Option { return func(s *Session) { s.history = h } }

func WithLogger(l hclog.Logger) Option { return func(s *Session) { s.log = l } }

// OnPhase registers a hook called after every phase change, outside the lock.
func OnPhase(f func(Phase)) Option { return func(s *Session) { s.onPhase = f } }

// Session is the idle/active breathing state machine.
type Session struct {
	mu      sync.Mutex
	sched   clock.Scheduler
	kv      store.KV
	history store.History
	log     hclog.Logger
	onPhase func(Phase)

	timers    clock.Group
	epoch     uint64
	active    bool
	phase     Phase
	elapsed   int
	changes   int
	startedAt time.Time
	total     int
}

func New(sched clock.Scheduler, kv store.KV, opts ...Option) *Session {
	s := &Session{sched: sched, kv: kv, log: hclog.NewNullLogger()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load reads the persisted session counter and returns it.
func (s *Session) Load(ctx context.Context) int {
	n, err := store.TotalSessions.Load(ctx, s.kv)
	if err != nil {
		s.log.Warn("load total sessions", "error", err)
	}
	s.mu.Lock()
	s.total = n
	s.mu.Unlock()
	return n
}

// Start begins a fresh session: elapsed 0, phase inhale, both tickers running.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.timers.StopAll()
	s.epoch++
	epoch := s.epoch
	s.active = true
	s.elapsed = 0
	s.changes = 0
	s.phase = Inhale
	s.startedAt = s.sched.Now()

	s.timers.Add(s.sched.Every(TickInterval, func() { s.tick(epoch) }))
	s.timers.Add(s.sched.Every(PhaseInterval, func() { s.advance(epoch) }))
	s.log.Debug("session started")
}

// Pause stops both tickers and freezes elapsed time and phase.
func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timers.StopAll()
	s.epoch++
	s.active = false
}

// Reset returns to idle and counts one completed session, whether or not a
// session was running. Persistence failures are logged only.
func (s *Session) Reset(ctx context.Context) Snapshot {
	s.mu.Lock()
	s.timers.StopAll()
	s.epoch++

	now := s.sched.Now()
	started := s.startedAt
	if started.IsZero() {
		started = now
	}
	rec := store.SessionRecord{
		ID:             uuid.NewString(),
		StartedAt:      started,
		EndedAt:        now,
		ElapsedSeconds: s.elapsed,
		PhaseChanges:   s.changes,
	}

	s.active = false
	s.elapsed = 0
	s.changes = 0
	s.phase = Inhale
	s.startedAt = time.Time{}
	s.total++
	total := s.total
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if err := store.TotalSessions.Save(ctx, s.kv, total); err != nil {
		s.log.Warn("persist total sessions", "total", total, "error", err)
	}
	if s.history != nil {
		if err := s.history.RecordSession(ctx, rec); err != nil {
			s.log.Warn("record session", "id", rec.ID, "error", err)
		}
	}
	s.log.Info("session completed", "elapsed_seconds", rec.ElapsedSeconds, "total", total)
	return snap
}

// Close cancels any running tickers without counting a session.
func (s *Session) Close() {
	s.Pause()
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) tick(epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch || !s.active {
		return
	}
	s.elapsed++
}

func (s *Session) advance(epoch uint64) {
	s.mu.Lock()
	if epoch != s.epoch || !s.active {
		s.mu.Unlock()
		return
	}
	s.phase = s.phase.Next()
	s.changes++
	phase, hook := s.phase, s.onPhase
	s.mu.Unlock()

	if hook != nil {
		hook(phase)
	}
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		Active:         s.active,
		Phase:          s.phase,
		ElapsedSeconds: s.elapsed,
		PhaseChanges:   s.changes,
		TotalSessions:  s.total,
	}
}

// FormatClock renders seconds as mm:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
