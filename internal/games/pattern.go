package games

import (
	"sync"

	"github.com/ramanasai/soldier/internal/clock"
)

// Cells is the size of the pattern grid.
const Cells = 4

type PatternSnapshot struct {
	Active         bool
	ActiveIndex    int
	Score          int
	ElapsedSeconds int
}

// PatternOutcome is the result of one press. Over is set when a miss ended
// the game, in which case Result holds the final tally.
type PatternOutcome struct {
	Hit    bool
	Score  int
	Over   bool
	Result Result
}

// Pattern lights one of four cells; pressing the lit cell scores a point and
// moves the light, any other cell ends the game.
type Pattern struct {
	mu     sync.Mutex
	sched  clock.Scheduler
	rng    Rand
	clock  gameClock
	active bool
	lit    int
	score  int
}

func NewPattern(sched clock.Scheduler, rng Rand) *Pattern {
	if rng == nil {
		rng = DefaultRand()
	}
	return &Pattern{sched: sched, rng: rng, lit: -1}
}

func (p *Pattern) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active = true
	p.score = 0
	p.lit = p.rng.IntN(Cells)
	p.clock.start(p.sched)
}

func (p *Pattern) Press(cell int) (PatternOutcome, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.active {
		return PatternOutcome{}, ErrNotActive
	}
	if cell < 0 || cell >= Cells {
		return PatternOutcome{}, ErrInvalidCell
	}

	if cell == p.lit {
		p.score++
		// one redraw on a repeat, then accept whatever comes
		next := p.rng.IntN(Cells)
		if next == p.lit {
			next = p.rng.IntN(Cells)
		}
		p.lit = next
		return PatternOutcome{Hit: true, Score: p.score}, nil
	}

	res := p.endLocked()
	return PatternOutcome{Over: true, Score: res.Score, Result: res}, nil
}

func (p *Pattern) End() (Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.active {
		return Result{}, ErrNotActive
	}
	return p.endLocked(), nil
}

// Close cancels the game clock without reporting.
func (p *Pattern) Close() {
	_, _ = p.End()
}

func (p *Pattern) Snapshot() PatternSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PatternSnapshot{
		Active:         p.active,
		ActiveIndex:    p.lit,
		Score:          p.score,
		ElapsedSeconds: p.clock.seconds(),
	}
}

func (p *Pattern) endLocked() Result {
	res := Result{Score: p.score, ElapsedSeconds: p.clock.stop()}
	p.active = false
	p.lit = -1
	p.score = 0
	return res
}
