package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ramanasai/soldier/internal/streak"
)

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Commit):
		st, err := m.deps.Streak.Commit(m.ctx)
		m.streak = st
		if errors.Is(err, streak.ErrAlreadyCommitted) {
			m.status = "Already decided today. Come back tomorrow."
			return m, nil
		}
		m.setStatus("Day %d. %s", st.CurrentDay, st.Message)
	case key.Matches(msg, m.keys.Restart):
		if m.deps.Streak.HasCommittedToday() {
			m.status = "Already decided today. Come back tomorrow."
			return m, nil
		}
		m.confirm = confirmRestart
	}
	return m, nil
}

func (m Model) restartStreak() (tea.Model, tea.Cmd) {
	st, err := m.deps.Streak.Restart(m.ctx, true)
	m.streak = st
	if err != nil {
		m.status = "Already decided today. Come back tomorrow."
		return m, nil
	}
	m.status = "Back to day 1. " + st.Message
	return m, nil
}

func (m Model) viewHome() string {
	st := m.streak
	day := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F9E2AF")).Render(fmt.Sprintf("DAY %d", st.CurrentDay))

	var decision string
	if st.HasCommittedToday {
		decision = m.st.Success.Render("Today's decision is made.")
	} else {
		decision = m.st.Value.Render("Did you hold the line today?") + "\n\n" +
			m.st.Hint.Render("c  yes, I held the line     r  no, start over")
	}

	last := "never"
	if st.LastCommitDate != "" {
		last = st.LastCommitDate
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.st.Title.Render("Soldier Mentality"),
		"",
		day,
		m.st.Value.Render(st.Message),
		"",
		decision,
		"",
		m.st.Label.Render("last decision  ")+last,
	)
	return m.st.Border.Render(content)
}
