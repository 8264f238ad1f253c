package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Sound):
		on := !m.summary.SoundEnabled
		m.deps.Stats.SetSound(m.ctx, on)
		m.summary.SoundEnabled = on
		m.setStatus("Sound %s", onOff(on))
	case key.Matches(msg, m.keys.Notifications):
		on := !m.summary.Notifications
		m.deps.Stats.SetNotifications(m.ctx, on)
		m.summary.Notifications = on
		m.setStatus("Notifications %s", onOff(on))
	case key.Matches(msg, m.keys.Reset):
		m.confirm = confirmReset
	case key.Matches(msg, m.keys.About):
		m.showAbout = true
	}
	return m, nil
}

func (m Model) resetProgress() (tea.Model, tea.Cmd) {
	if err := m.deps.Stats.ResetProgress(m.ctx); err != nil {
		m.status = "Could not reset progress: " + err.Error()
		return m, nil
	}
	// the controllers cache what they loaded, so reload them
	m.streak = m.deps.Streak.Load(m.ctx)
	m.deps.Breath.Load(m.ctx)
	m.focus = m.deps.Breath.Snapshot()
	m.summary = m.deps.Stats.Load(m.ctx)
	m.status = "Progress reset"
	return m, nil
}

func (m Model) viewSettings() string {
	s := m.summary

	overview := lipgloss.JoinVertical(lipgloss.Left,
		m.st.Title.Render("Progress"),
		"",
		m.st.Label.Render("days      ")+m.st.Value.Render(fmt.Sprintf("%d", s.TotalDays)),
		m.st.Label.Render("sessions  ")+m.st.Value.Render(fmt.Sprintf("%d", s.TotalSessions)),
		"",
		m.st.Label.Render(fmt.Sprintf("this month %d / %d", s.MonthSessions, s.Target)),
		m.bar.ViewAs(s.TargetPercent/100),
	)

	maxCount := 1
	for _, d := range s.Weekly {
		maxCount = max(maxCount, d.Sessions)
	}
	week := []string{m.st.Title.Render("This week"), ""}
	for _, d := range s.Weekly {
		n := d.Sessions * 20 / maxCount
		if d.Sessions > 0 && n == 0 {
			n = 1
		}
		week = append(week, fmt.Sprintf("%s %s %d",
			m.st.Label.Render(d.Label),
			m.st.Success.Render(strings.Repeat("█", n)),
			d.Sessions))
	}

	prefs := lipgloss.JoinVertical(lipgloss.Left,
		m.st.Title.Render("Preferences"),
		"",
		fmt.Sprintf("%s  sound          %s", m.st.Hint.Render("s"), toggle(m.st, s.SoundEnabled)),
		fmt.Sprintf("%s  notifications  %s", m.st.Hint.Render("n"), toggle(m.st, s.Notifications)),
		"",
		m.st.Hint.Render("x")+"  reset progress",
		m.st.Hint.Render("a")+"  about",
	)

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		m.st.Border.Render(overview), "  ", m.st.Border.Render(lipgloss.JoinVertical(lipgloss.Left, week...)))
	return lipgloss.JoinVertical(lipgloss.Left, top, m.st.Border.Render(prefs))
}

func toggle(st Theme, on bool) string {
	if on {
		return st.Success.Render("[on]")
	}
	return st.Error.Render("[off]")
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
