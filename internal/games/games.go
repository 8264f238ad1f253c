// Package games holds the two mini games on the Games screen: a reaction
// timer and a four-cell pattern tapper. Scores live only for the lifetime of
// a game and are never persisted.
package games

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/ramanasai/soldier/internal/clock"
)

var (
	ErrNotActive   = errors.New("no game in progress")
	ErrInvalidCell = errors.New("cell out of range")
)

// Rand is the randomness a game needs. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.Intn(n) }

// DefaultRand draws from the process-wide generator.
func DefaultRand() Rand { return globalRand{} }

// Result is the final tally reported when a game ends.
type Result struct {
	Score          int
	ElapsedSeconds int
	EarlyPresses   int
}

// gameClock counts whole seconds since a game started.
type gameClock struct {
	mu      sync.Mutex
	timers  clock.Group
	gen     uint64
	elapsed int
}

func (g *gameClock) start(s clock.Scheduler) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.timers.StopAll()
	g.gen++
	g.elapsed = 0
	gen := g.gen
	g.timers.Add(s.Every(time.Second, func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if gen == g.gen {
			g.elapsed++
		}
	}))
}

// stop halts the clock and returns the seconds counted.
func (g *gameClock) stop() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.timers.StopAll()
	g.gen++
	return g.elapsed
}

func (g *gameClock) seconds() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.elapsed
}
