package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hashicorp/go-hclog"

	"github.com/ramanasai/soldier/internal/breath"
	"github.com/ramanasai/soldier/internal/clock"
	"github.com/ramanasai/soldier/internal/config"
	"github.com/ramanasai/soldier/internal/games"
	"github.com/ramanasai/soldier/internal/notify"
	"github.com/ramanasai/soldier/internal/stats"
	"github.com/ramanasai/soldier/internal/streak"
	"github.com/ramanasai/soldier/internal/version"
)

type tab int

const (
	tabHome tab = iota
	tabFocus
	tabGames
	tabSettings
)

var tabNames = []string{"Home", "Focus", "Games", "Settings"}

type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmRestart
	confirmReset
)

const uiTick = 200 * time.Millisecond

// Deps are the controllers the TUI drives. All of them must be loaded.
type Deps struct {
	Config   config.Config
	Log      hclog.Logger
	Sched    clock.Scheduler
	Rand     games.Rand
	Streak   *streak.Tracker
	Breath   *breath.Session
	Stats    *stats.Aggregator
	Notifier *notify.Notifier
}

type gameResult struct {
	game string
	res  games.Result
}

type Model struct {
	ctx  context.Context
	deps Deps
	log  hclog.Logger

	keys keyMap
	help help.Model
	bar  progress.Model
	st   Theme

	width, height int
	tab           tab
	confirm       confirmKind
	showAbout     bool
	status        string
	now           time.Time

	streak   streak.State
	focus    breath.Snapshot
	summary  stats.Summary
	reaction *games.Reaction
	pattern  *games.Pattern
	lastTap  games.Outcome
	result   *gameResult

	events chan tea.Msg
}

// ---------- messages & commands ----------

type tickMsg struct{ now time.Time }

type reactionMsg struct{ out games.Outcome }

func tickNow() tea.Cmd {
	return tea.Tick(uiTick, func(t time.Time) tea.Msg { return tickMsg{now: t} })
}

// waitForEvent blocks on the engine event channel so timer driven outcomes
// reach Update as messages.
func waitForEvent(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg { return <-ch }
}

func newModel(ctx context.Context, deps Deps) Model {
	log := deps.Log
	if log == nil {
		log = hclog.NewNullLogger()
	}
	m := Model{
		ctx:    ctx,
		deps:   deps,
		log:    log.Named("ui"),
		keys:   defaultKeys(),
		help:   help.New(),
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		st:     themeFor(deps.Config.Theme),
		now:    deps.Sched.Now(),
		events: make(chan tea.Msg, 16),
	}
	events := m.events
	m.reaction = games.NewReaction(deps.Sched, deps.Rand, func(o games.Outcome) {
		select {
		case events <- reactionMsg{out: o}:
		default:
			// the next tick re-renders from the snapshot anyway
		}
	})
	m.pattern = games.NewPattern(deps.Sched, deps.Rand)
	m.streak = deps.Streak.State()
	m.focus = deps.Breath.Snapshot()
	m.summary = deps.Stats.Load(ctx)
	return m
}

// Run starts the TUI and blocks until the user quits.
func Run(ctx context.Context, deps Deps) error {
	m := newModel(ctx, deps)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	m.close()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) close() {
	m.reaction.Close()
	m.pattern.Close()
	m.deps.Breath.Close()
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickNow(), waitForEvent(m.events))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.now = msg.now
		m.focus = m.deps.Breath.Snapshot()
		// the date may have rolled over since the last decision
		m.streak = m.deps.Streak.State()
		return m, tickNow()

	case reactionMsg:
		m.lastTap = msg.out
		return m, waitForEvent(m.events)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.bar.Width = min(40, max(10, msg.Width-20))
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirm != confirmNone {
		return m.updateConfirm(msg)
	}
	if m.showAbout {
		m.showAbout = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.NextTab):
		m.tab = (m.tab + 1) % tab(len(tabNames))
		return m.enterTab(), nil
	case key.Matches(msg, m.keys.PrevTab):
		m.tab = (m.tab + tab(len(tabNames)) - 1) % tab(len(tabNames))
		return m.enterTab(), nil
	}

	// digits pick a tab unless the pattern game wants them
	if key.Matches(msg, m.keys.Cell) && !(m.tab == tabGames && m.pattern.Snapshot().Active) {
		m.tab = tab(msg.String()[0] - '1')
		return m.enterTab(), nil
	}

	switch m.tab {
	case tabHome:
		return m.updateHome(msg)
	case tabFocus:
		return m.updateFocus(msg)
	case tabGames:
		return m.updateGames(msg)
	case tabSettings:
		return m.updateSettings(msg)
	}
	return m, nil
}

// enterTab refreshes the read model the tab shows.
func (m Model) enterTab() Model {
	m.status = ""
	if m.tab == tabSettings {
		m.summary = m.deps.Stats.Load(m.ctx)
	}
	return m
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kind := m.confirm
	switch {
	case key.Matches(msg, m.keys.Yes):
		m.confirm = confirmNone
	case key.Matches(msg, m.keys.No):
		m.confirm = confirmNone
		m.status = "Cancelled"
		return m, nil
	default:
		return m, nil
	}

	switch kind {
	case confirmRestart:
		return m.restartStreak()
	case confirmReset:
		return m.resetProgress()
	}
	return m, nil
}

func (m *Model) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
}

// ---------- view ----------

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var body string
	switch m.tab {
	case tabHome:
		body = m.viewHome()
	case tabFocus:
		body = m.viewFocus()
	case tabGames:
		body = m.viewGames()
	case tabSettings:
		body = m.viewSettings()
	}

	switch {
	case m.confirm != confirmNone:
		body = m.viewConfirm()
	case m.showAbout:
		body = m.modal("About", m.aboutText())
	}

	ui := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabs(),
		"",
		body,
		"",
		m.statusBar(),
		m.renderHelp(),
	)
	return lipgloss.NewStyle().Padding(1, 2).Render(ui)
}

func (m Model) renderTabs() string {
	parts := make([]string, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if tab(i) == m.tab {
			parts[i] = m.st.TabActive.Render(label)
		} else {
			parts[i] = m.st.TabIdle.Render(label)
		}
	}
	right := m.st.Hint.Render(m.now.In(m.deps.Config.Location()).Format("Mon Jan 02 15:04"))
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(parts, " "), "   ", right)
}

func (m Model) statusBar() string {
	if m.status == "" {
		return m.st.StatusBar.Render(version.GetShortVersion())
	}
	return m.st.StatusBar.Render(m.status)
}

func (m Model) renderHelp() string {
	if m.help.ShowAll {
		return m.help.FullHelpView(m.keys.FullHelp())
	}
	return m.help.ShortHelpView(m.keys.bindingsFor(m.tab))
}

func (m Model) modal(title, content string) string {
	box := lipgloss.JoinVertical(lipgloss.Left, m.st.Title.Render(title), "", content)
	return lipgloss.PlaceHorizontal(max(m.width-4, 0), lipgloss.Center, m.st.Modal.Render(box))
}

func (m Model) viewConfirm() string {
	var title, text string
	switch m.confirm {
	case confirmRestart:
		title = "Start over?"
		text = "Your streak returns to day 1.\nThis counts as today's decision."
	case confirmReset:
		title = "Reset all progress?"
		text = "Streak, session count and history are deleted.\nPreferences are kept."
	}
	return m.modal(title, text+"\n\n"+m.st.Hint.Render("y confirm • n cancel"))
}

func (m Model) aboutText() string {
	lines := []string{
		version.GetVersionInfo(),
		"",
		"One decision a day. Breathe, react, hold the line.",
		"",
		m.st.Label.Render("data  ") + m.deps.Config.DBPath(),
		m.st.Label.Render("log   ") + m.deps.Config.LogPath(),
		"",
		m.st.Hint.Render("any key to close"),
	}
	return strings.Join(lines, "\n")
}
