package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ramanasai/soldier/internal/breath"
	"github.com/ramanasai/soldier/internal/notify"
)

func (m Model) updateFocus(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Toggle):
		if m.deps.Breath.Snapshot().Active {
			m.deps.Breath.Pause()
			m.status = "Paused"
		} else {
			m.deps.Breath.Start()
			m.status = "Breathe with the circle"
		}
	case key.Matches(msg, m.keys.Done):
		snap := m.deps.Breath.Reset(m.ctx)
		m.deps.Notifier.Done(notify.FormatSessionComplete(snap.TotalSessions))
		m.status = notify.FormatSessionComplete(snap.TotalSessions)
	}
	m.focus = m.deps.Breath.Snapshot()
	return m, nil
}

func (m Model) viewFocus() string {
	s := m.focus
	scale := s.Scale()
	w, h := int(22*scale), int(7*scale)

	color := lipgloss.Color("#89B4FA")
	if s.Active {
		switch s.Phase {
		case breath.Hold:
			color = lipgloss.Color("#F9E2AF")
		case breath.Exhale:
			color = lipgloss.Color("#94E2D5")
		}
	}
	circle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Width(w).Height(h).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.ToUpper(s.Instruction()))

	// keep the layout steady while the circle grows and shrinks
	maxScale := 1.2
	circle = lipgloss.Place(int(22*maxScale)+2, int(7*maxScale)+2, lipgloss.Center, lipgloss.Center, circle)

	action := "space  begin"
	if s.Active {
		action = "space  pause"
	}
	content := lipgloss.JoinVertical(lipgloss.Center,
		m.st.Title.Render("Focus"),
		"",
		circle,
		"",
		m.st.Value.Render(breath.FormatClock(s.ElapsedSeconds)),
		m.st.Label.Render("sessions completed ")+m.st.Value.Render(strconv.Itoa(s.TotalSessions)),
		"",
		m.st.Hint.Render(action+"     d  finish session"),
	)
	return m.st.Border.Render(content)
}
