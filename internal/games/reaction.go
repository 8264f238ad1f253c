package games

import (
	"fmt"
	"sync"
	"time"

	"github.com/ramanasai/soldier/internal/clock"
)

const (
	MinDelay       = 2000 * time.Millisecond
	MaxDelay       = 5000 * time.Millisecond
	ReactionWindow = 3500 * time.Millisecond
)

type RoundState int

const (
	Idle RoundState = iota
	WaitingDelay
	Ready
	Resolved
)

func (s RoundState) String() string {
	switch s {
	case Idle:
		return "idle"
	case WaitingDelay:
		return "waiting"
	case Ready:
		return "ready"
	case Resolved:
		return "resolved"
	}
	return fmt.Sprintf("RoundState(%d)", int(s))
}

type OutcomeKind int

const (
	Armed OutcomeKind = iota + 1
	TooEarly
	TooSlow
	Hit
)

func (k OutcomeKind) String() string {
	switch k {
	case Armed:
		return "armed"
	case TooEarly:
		return "too early"
	case TooSlow:
		return "too slow"
	case Hit:
		return "hit"
	}
	return fmt.Sprintf("OutcomeKind(%d)", int(k))
}

// Outcome describes one round event. Score is the running total after it.
type Outcome struct {
	Kind    OutcomeKind
	Latency time.Duration
	Points  int
	Score   int
}

// PointsFor scores a reaction latency. Anything past the window earns nothing.
func PointsFor(latency time.Duration) int {
	switch {
	case latency > ReactionWindow:
		return 0
	case latency < 200*time.Millisecond:
		return 5
	case latency < 400*time.Millisecond:
		return 4
	case latency < 600*time.Millisecond:
		return 3
	case latency < time.Second:
		return 2
	default:
		return 1
	}
}

type ReactionSnapshot struct {
	Active         bool
	State          RoundState
	Score          int
	ElapsedSeconds int
	EarlyPresses   int
}

// Reaction runs rounds of: wait a random delay, arm, then score the press.
// Every scheduled callback carries the round generation it was created for,
// so a timer that fires after its round resolved does nothing.
type Reaction struct {
	mu       sync.Mutex
	sched    clock.Scheduler
	rng      Rand
	listener func(Outcome)

	clock   gameClock
	round   clock.Group
	gen     uint64
	active  bool
	state   RoundState
	armedAt time.Time
	score   int
	early   int
}

// NewReaction builds an idle game. listener receives every round outcome,
// including timer driven ones, and is called without the game lock held.
func NewReaction(sched clock.Scheduler, rng Rand, listener func(Outcome)) *Reaction {
	if rng == nil {
		rng = DefaultRand()
	}
	return &Reaction{sched: sched, rng: rng, listener: listener}
}

// Start begins a new game from a zero score.
func (r *Reaction) Start() {
	r.mu.Lock()
	r.active = true
	r.score = 0
	r.early = 0
	r.clock.start(r.sched)
	r.nextRoundLocked()
	r.mu.Unlock()
}

// Press handles the player's tap for the current round.
func (r *Reaction) Press() (Outcome, error) {
	r.mu.Lock()
	if !r.active {
		r.mu.Unlock()
		return Outcome{}, ErrNotActive
	}

	var out Outcome
	switch r.state {
	case Ready:
		latency := r.sched.Now().Sub(r.armedAt)
		pts := PointsFor(latency)
		if pts == 0 {
			out = Outcome{Kind: TooSlow, Latency: latency}
		} else {
			r.score += pts
			out = Outcome{Kind: Hit, Latency: latency, Points: pts}
		}
	default:
		r.early++
		out = Outcome{Kind: TooEarly}
	}
	r.state = Resolved
	out.Score = r.score
	r.nextRoundLocked()
	r.mu.Unlock()

	r.emit(out)
	return out, nil
}

// End stops the game and reports the final result.
func (r *Reaction) End() (Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active {
		return Result{}, ErrNotActive
	}
	res := Result{Score: r.score, ElapsedSeconds: r.clock.stop(), EarlyPresses: r.early}
	r.round.StopAll()
	r.gen++
	r.active = false
	r.state = Idle
	r.score = 0
	r.early = 0
	return res, nil
}

// Close cancels every timer without reporting.
func (r *Reaction) Close() {
	_, _ = r.End()
}

func (r *Reaction) Snapshot() ReactionSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return ReactionSnapshot{
		Active:         r.active,
		State:          r.state,
		Score:          r.score,
		ElapsedSeconds: r.clock.seconds(),
		EarlyPresses:   r.early,
	}
}

func (r *Reaction) nextRoundLocked() {
	r.round.StopAll()
	r.gen++
	gen := r.gen
	r.state = WaitingDelay
	r.armedAt = time.Time{}

	span := int((MaxDelay - MinDelay) / time.Millisecond)
	delay := MinDelay + time.Duration(r.rng.IntN(span+1))*time.Millisecond
	r.round.Add(r.sched.AfterFunc(delay, func() { r.arm(gen) }))
}

func (r *Reaction) arm(gen uint64) {
	r.mu.Lock()
	if gen != r.gen || r.state != WaitingDelay {
		r.mu.Unlock()
		return
	}
	r.state = Ready
	r.armedAt = r.sched.Now()
	r.round.Add(r.sched.AfterFunc(ReactionWindow, func() { r.expire(gen) }))
	out := Outcome{Kind: Armed, Score: r.score}
	r.mu.Unlock()

	r.emit(out)
}

func (r *Reaction) expire(gen uint64) {
	r.mu.Lock()
	if gen != r.gen || r.state != Ready {
		r.mu.Unlock()
		return
	}
	r.state = Resolved
	out := Outcome{Kind: TooSlow, Latency: ReactionWindow, Score: r.score}
	r.nextRoundLocked()
	r.mu.Unlock()

	r.emit(out)
}

func (r *Reaction) emit(out Outcome) {
	if r.listener != nil {
		r.listener(out)
	}
}
