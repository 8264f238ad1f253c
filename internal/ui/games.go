package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ramanasai/soldier/internal/breath"
	"github.com/ramanasai/soldier/internal/games"
)

func (m Model) updateGames(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.StartPattern):
		m.reaction.Close()
		m.pattern.Start()
		m.result = nil
		m.status = "Press the lit cell"
	case key.Matches(msg, m.keys.StartReaction):
		m.pattern.Close()
		m.reaction.Start()
		m.result = nil
		m.lastTap = games.Outcome{}
		m.status = "Wait for green, then tap"
	case key.Matches(msg, m.keys.Cell):
		out, err := m.pattern.Press(int(msg.String()[0] - '1'))
		if err != nil {
			return m, nil
		}
		if out.Over {
			m.result = &gameResult{game: "Pattern", res: out.Result}
			m.setStatus("Missed. Final score %d", out.Result.Score)
		}
	case key.Matches(msg, m.keys.Tap):
		// the listener delivers the outcome
		_, _ = m.reaction.Press()
	case key.Matches(msg, m.keys.EndGame):
		if res, err := m.reaction.End(); err == nil {
			m.result = &gameResult{game: "Reaction", res: res}
		} else if res, err := m.pattern.End(); err == nil {
			m.result = &gameResult{game: "Pattern", res: res}
		}
		if m.result != nil {
			m.setStatus("%s over. Final score %d", m.result.game, m.result.res.Score)
		}
	}
	return m, nil
}

func (m Model) viewGames() string {
	left := lipgloss.JoinVertical(lipgloss.Left, m.viewPattern(), "", m.viewReaction())
	right := lipgloss.JoinVertical(lipgloss.Left, m.viewResult(), "", m.viewMeditation())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

func (m Model) viewPattern() string {
	s := m.pattern.Snapshot()
	cells := make([]string, games.Cells)
	for i := range cells {
		label := fmt.Sprintf("%d", i+1)
		if s.Active && i == s.ActiveIndex {
			cells[i] = m.st.CellLit.Render(label)
		} else {
			cells[i] = m.st.Cell.Render(label)
		}
	}
	grid := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, cells[0], cells[1]),
		lipgloss.JoinHorizontal(lipgloss.Top, cells[2], cells[3]),
	)

	info := m.st.Hint.Render("p  start")
	if s.Active {
		info = fmt.Sprintf("%s %d   %s %s",
			m.st.Label.Render("score"), s.Score,
			m.st.Label.Render("time"), breath.FormatClock(s.ElapsedSeconds))
	}
	return m.st.Border.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.st.Title.Render("Pattern"), "", grid, "", info))
}

func (m Model) viewReaction() string {
	s := m.reaction.Snapshot()

	pad := lipgloss.NewStyle().Width(30).Height(3).Align(lipgloss.Center, lipgloss.Center)
	var target string
	switch s.State {
	case games.Ready:
		target = pad.Background(lipgloss.Color("#A6E3A1")).Foreground(lipgloss.Color("#1E1E2E")).Bold(true).Render("TAP NOW")
	case games.WaitingDelay:
		target = pad.Background(lipgloss.Color("#45475A")).Render("wait for it...")
	default:
		target = pad.Render(m.st.Hint.Render("r  start"))
	}

	var last string
	switch m.lastTap.Kind {
	case games.Hit:
		last = m.st.Success.Render(fmt.Sprintf("%dms  +%d", m.lastTap.Latency.Milliseconds(), m.lastTap.Points))
	case games.TooEarly:
		last = m.st.Error.Render("too early")
	case games.TooSlow:
		last = m.st.Error.Render("too slow")
	}

	info := ""
	if s.Active {
		info = fmt.Sprintf("%s %d   %s %s",
			m.st.Label.Render("score"), s.Score,
			m.st.Label.Render("time"), breath.FormatClock(s.ElapsedSeconds))
	}
	return m.st.Border.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.st.Title.Render("Reaction"), "", target, "", last, info))
}

func (m Model) viewResult() string {
	if m.result == nil {
		return ""
	}
	r := m.result.res
	lines := []string{
		m.st.Title.Render(m.result.game + " result"),
		"",
		m.st.Label.Render("score  ") + m.st.Value.Render(fmt.Sprintf("%d", r.Score)),
		m.st.Label.Render("time   ") + m.st.Value.Render(breath.FormatClock(r.ElapsedSeconds)),
	}
	if m.result.game == "Reaction" {
		lines = append(lines, m.st.Label.Render("early  ")+m.st.Value.Render(fmt.Sprintf("%d", r.EarlyPresses)))
	}
	return m.st.Border.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) viewMeditation() string {
	return m.st.Border.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.st.Title.Render("Meditation"),
		"",
		m.st.Hint.Render("coming soon"),
	))
}
