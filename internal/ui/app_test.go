package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ramanasai/soldier/internal/breath"
	"github.com/ramanasai/soldier/internal/clock"
	"github.com/ramanasai/soldier/internal/config"
	"github.com/ramanasai/soldier/internal/games"
	"github.com/ramanasai/soldier/internal/notify"
	"github.com/ramanasai/soldier/internal/stats"
	"github.com/ramanasai/soldier/internal/store"
	"github.com/ramanasai/soldier/internal/streak"
)

// zeroRand always draws 0: cell 1 is lit and reaction delays are minimal.
type zeroRand struct{}

func (zeroRand) IntN(int) int { return 0 }

func newTestModel(t *testing.T, seed map[string]string) (Model, *clock.Manual, *store.Memory) {
	t.Helper()
	ctx := context.Background()
	clk := clock.NewManual(time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC))
	mem := store.NewMemory(seed)
	cfg := config.Default()
	cfg.Timezone = "UTC"

	n := notify.New(nil)
	n.SetPrefs(false, false)
	tr := streak.New(mem, clk, time.UTC, nil)
	tr.Load(ctx)
	b := breath.New(clk, mem, breath.WithHistory(mem))
	b.Load(ctx)

	m := newModel(ctx, Deps{
		Config:   cfg,
		Sched:    clk,
		Rand:     zeroRand{},
		Streak:   tr,
		Breath:   b,
		Stats:    stats.New(mem, mem, clk, time.UTC, nil),
		Notifier: n,
	})
	m.width, m.height = 120, 40
	t.Cleanup(m.close)
	return m, clk, mem
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		m = send(m, keyMsg(k))
	}
	return m
}

// drain feeds pending engine events into the model.
func drain(m Model) Model {
	for {
		select {
		case msg := <-m.events:
			m = send(m, msg)
		default:
			return m
		}
	}
}

func TestHomeCommit(t *testing.T) {
	m, _, mem := newTestModel(t, nil)
	if !strings.Contains(m.View(), "DAY 1") {
		t.Fatalf("home should show day 1:\n%s", m.View())
	}

	m = press(m, "c")
	if m.streak.CurrentDay != 2 || !m.streak.HasCommittedToday {
		t.Fatalf("commit not applied: %+v", m.streak)
	}
	if mem.Snapshot()[store.KeyCurrentDay] != "2" {
		t.Fatalf("commit not persisted")
	}

	m = press(m, "c", "r")
	if m.streak.CurrentDay != 2 || m.confirm != confirmNone {
		t.Fatalf("second decision should be refused: day %d confirm %v", m.streak.CurrentDay, m.confirm)
	}
	if !strings.Contains(m.status, "Already decided") {
		t.Fatalf("status = %q", m.status)
	}
}

func TestHomeRestartConfirm(t *testing.T) {
	m, _, _ := newTestModel(t, map[string]string{store.KeyCurrentDay: "9"})

	m = press(m, "r")
	if m.confirm != confirmRestart || !strings.Contains(m.View(), "Start over?") {
		t.Fatalf("expected restart confirmation")
	}
	m = press(m, "n")
	if m.confirm != confirmNone || m.streak.CurrentDay != 9 {
		t.Fatalf("cancel changed state: %+v", m.streak)
	}

	m = press(m, "r", "y")
	if m.streak.CurrentDay != 1 || !m.streak.HasCommittedToday {
		t.Fatalf("restart not applied: %+v", m.streak)
	}
}

func TestTabNavigation(t *testing.T) {
	m, _, _ := newTestModel(t, nil)
	m = press(m, "tab")
	if m.tab != tabFocus {
		t.Fatalf("tab = %v", m.tab)
	}
	m = press(m, "4")
	if m.tab != tabSettings {
		t.Fatalf("tab = %v", m.tab)
	}
	m = send(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.tab != tabGames {
		t.Fatalf("tab = %v", m.tab)
	}
	m = press(m, "tab")
	if m.tab != tabSettings {
		t.Fatalf("tab = %v", m.tab)
	}
	m = press(m, "tab")
	if m.tab != tabHome {
		t.Fatalf("tab should wrap to home, got %v", m.tab)
	}
}

func TestFocusSession(t *testing.T) {
	m, clk, mem := newTestModel(t, nil)
	m = press(m, "2", "space")
	if !m.focus.Active {
		t.Fatalf("session should be running")
	}

	clk.Advance(5 * time.Second)
	m = send(m, tickMsg{now: clk.Now()})
	if m.focus.ElapsedSeconds != 5 || m.focus.Phase != breath.Hold {
		t.Fatalf("snapshot after 5s: %+v", m.focus)
	}
	if !strings.Contains(m.View(), "00:05") {
		t.Fatalf("clock missing from view")
	}

	m = press(m, "space")
	if m.focus.Active {
		t.Fatalf("space should pause")
	}
	m = press(m, "d")
	if m.focus.TotalSessions != 1 || mem.Snapshot()[store.KeyTotalSessions] != "1" {
		t.Fatalf("finish not counted: %+v", m.focus)
	}
}

func TestPatternGame(t *testing.T) {
	m, _, _ := newTestModel(t, nil)
	m = press(m, "3", "p")
	if !m.pattern.Snapshot().Active {
		t.Fatalf("pattern should be running")
	}

	m = press(m, "1", "1")
	if m.tab != tabGames || m.pattern.Snapshot().Score != 2 {
		t.Fatalf("digits should press cells: tab %v score %d", m.tab, m.pattern.Snapshot().Score)
	}

	m = press(m, "4")
	if m.pattern.Snapshot().Active || m.result == nil || m.result.res.Score != 2 {
		t.Fatalf("miss should end the game: %+v", m.result)
	}

	m = press(m, "1")
	if m.tab != tabHome {
		t.Fatalf("digits switch tabs once the game is over")
	}
}

func TestReactionGame(t *testing.T) {
	m, clk, _ := newTestModel(t, nil)
	m = press(m, "3", "r")

	clk.Advance(games.MinDelay)
	m = drain(m)
	if m.lastTap.Kind != games.Armed || !strings.Contains(m.View(), "TAP NOW") {
		t.Fatalf("round should be armed, last outcome %v", m.lastTap.Kind)
	}

	clk.Advance(250 * time.Millisecond)
	m = drain(press(m, "space"))
	if m.lastTap.Kind != games.Hit || m.lastTap.Points != 4 {
		t.Fatalf("unexpected tap: %+v", m.lastTap)
	}

	m = press(m, "esc")
	if m.result == nil || m.result.game != "Reaction" || m.result.res.Score != 4 {
		t.Fatalf("unexpected result: %+v", m.result)
	}
	if m.reaction.Snapshot().Active {
		t.Fatalf("esc should end the game")
	}
}

func TestSettings(t *testing.T) {
	m, _, mem := newTestModel(t, nil)
	m = press(m, "c", "4")
	if m.summary.TotalDays != 2 {
		t.Fatalf("settings should reload the summary: %+v", m.summary)
	}

	m = press(m, "s")
	if m.summary.SoundEnabled || mem.Snapshot()[store.KeySoundEnabled] != "false" {
		t.Fatalf("sound toggle not applied")
	}

	m = press(m, "x")
	if m.confirm != confirmReset {
		t.Fatalf("reset needs confirmation")
	}
	m = press(m, "y")
	if m.summary.TotalDays != 1 || m.streak.CurrentDay != 1 || m.streak.HasCommittedToday {
		t.Fatalf("progress survived reset: %+v / %+v", m.summary, m.streak)
	}
	if m.summary.SoundEnabled {
		t.Fatalf("preferences must survive reset")
	}

	m = press(m, "a")
	if !m.showAbout || !strings.Contains(m.View(), "About") {
		t.Fatalf("about dialog not shown")
	}
	m = press(m, "z")
	if m.showAbout {
		t.Fatalf("any key should close about")
	}
}
