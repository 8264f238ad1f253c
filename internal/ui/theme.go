package ui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title     lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Border    lipgloss.Style
	Hint      lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	TabActive lipgloss.Style
	TabIdle   lipgloss.Style
	Cell      lipgloss.Style
	CellLit   lipgloss.Style
	Modal     lipgloss.Style
	StatusBar lipgloss.Style
}

var DefaultTheme = Theme{
	Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
	Label:     lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#89B4FA")),
	Value:     lipgloss.NewStyle().Foreground(lipgloss.Color("#F2CDCD")),
	Border:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1),
	Hint:      lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#CBA6F7")),
	Error:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8")),
	Success:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
	TabActive: lipgloss.NewStyle().Bold(true).Padding(0, 2).Foreground(lipgloss.Color("#1E1E2E")).Background(lipgloss.Color("#A6E3A1")),
	TabIdle:   lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("#BAC2DE")),
	Cell:      lipgloss.NewStyle().Width(9).Height(3).Align(lipgloss.Center, lipgloss.Center).Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("#585B70")),
	CellLit:   lipgloss.NewStyle().Width(9).Height(3).Align(lipgloss.Center, lipgloss.Center).Border(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color("#A6E3A1")).Background(lipgloss.Color("#A6E3A1")).Foreground(lipgloss.Color("#1E1E2E")),
	Modal:     lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("#F9E2AF")).Padding(1, 3),
	StatusBar: lipgloss.NewStyle().Foreground(lipgloss.Color("#A6ADC8")),
}

// HighContrastTheme is selected with theme: high-contrast in the config.
var HighContrastTheme = Theme{
	Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
	Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	Value:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
	Border:    lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Padding(1),
	Hint:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	Error:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	Success:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
	TabActive: lipgloss.NewStyle().Bold(true).Padding(0, 2).Reverse(true),
	TabIdle:   lipgloss.NewStyle().Padding(0, 2),
	Cell:      lipgloss.NewStyle().Width(9).Height(3).Align(lipgloss.Center, lipgloss.Center).Border(lipgloss.NormalBorder()),
	CellLit:   lipgloss.NewStyle().Width(9).Height(3).Align(lipgloss.Center, lipgloss.Center).Border(lipgloss.ThickBorder()).Reverse(true),
	Modal:     lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Padding(1, 3),
	StatusBar: lipgloss.NewStyle().Bold(true),
}

func themeFor(name string) Theme {
	if name == "high-contrast" {
		return HighContrastTheme
	}
	return DefaultTheme
}
