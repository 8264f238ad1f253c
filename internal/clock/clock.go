package clock

import (
	"sync"
	"time"
)

// Clock abstracts time so controllers stay deterministic in tests.
type Clock interface {
	Now() time.Time
}

// Timer is a cancellable handle returned by a Scheduler.
// Stop reports whether the call prevented future firings.
type Timer interface {
	Stop() bool
}

// Scheduler runs callbacks after a delay or on a fixed interval.
type Scheduler interface {
	Clock
	AfterFunc(d time.Duration, f func()) Timer
	Every(d time.Duration, f func()) Timer
}

// System is the wall-clock Scheduler. Callbacks run on their own goroutines.
type System struct{}

func (System) Now() time.Time { return time.Now() }

func (System) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

func (System) Every(d time.Duration, f func()) Timer {
	t := &ticker{t: time.NewTicker(d), done: make(chan struct{})}
	go t.run(f)
	return t
}

type ticker struct {
	t    *time.Ticker
	done chan struct{}
	once sync.Once
}

func (t *ticker) run(f func()) {
	for {
		select {
		case <-t.done:
			return
		case <-t.t.C:
			f()
		}
	}
}

func (t *ticker) Stop() bool {
	stopped := false
	t.once.Do(func() {
		t.t.Stop()
		close(t.done)
		stopped = true
	})
	return stopped
}

// Group collects live timer handles so they can be cancelled together on a
// terminal transition.
type Group struct {
	mu     sync.Mutex
	timers []Timer
}

// Add tracks t and returns it.
func (g *Group) Add(t Timer) Timer {
	g.mu.Lock()
	g.timers = append(g.timers, t)
	g.mu.Unlock()
	return t
}

// StopAll stops every tracked handle and forgets them. It returns how many
// handles were still pending.
func (g *Group) StopAll() int {
	g.mu.Lock()
	timers := g.timers
	g.timers = nil
	g.mu.Unlock()

	n := 0
	for _, t := range timers {
		if t.Stop() {
			n++
		}
	}
	return n
}

// Len is the number of tracked handles, fired or not.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.timers)
}
