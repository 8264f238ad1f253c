package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Help    key.Binding
	Yes     key.Binding
	No      key.Binding

	// home
	Commit  key.Binding
	Restart key.Binding

	// focus
	Toggle key.Binding
	Done   key.Binding

	// games
	StartPattern  key.Binding
	StartReaction key.Binding
	Tap           key.Binding
	Cell          key.Binding
	EndGame       key.Binding

	// settings
	Sound         key.Binding
	Notifications key.Binding
	Reset         key.Binding
	About         key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		NextTab: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next tab")),
		PrevTab: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Yes:     key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "confirm")),
		No:      key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "cancel")),

		Commit:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "held the line")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "start over")),

		Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause")),
		Done:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "finish session")),

		StartPattern:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pattern game")),
		StartReaction: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reaction game")),
		Tap:           key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "tap")),
		Cell:          key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "press cell")),
		EndGame:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "end game")),

		Sound:         key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sound")),
		Notifications: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "notifications")),
		Reset:         key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "reset progress")),
		About:         key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "about")),
	}
}

// bindingsFor lists the keys shown in the help bar for a tab.
func (k keyMap) bindingsFor(t tab) []key.Binding {
	var b []key.Binding
	switch t {
	case tabHome:
		b = []key.Binding{k.Commit, k.Restart}
	case tabFocus:
		b = []key.Binding{k.Toggle, k.Done}
	case tabGames:
		b = []key.Binding{k.StartPattern, k.Cell, k.StartReaction, k.Tap, k.EndGame}
	case tabSettings:
		b = []key.Binding{k.Sound, k.Notifications, k.Reset, k.About}
	}
	return append(b, k.NextTab, k.Quit)
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Help, k.Quit},
		{k.Commit, k.Restart, k.Toggle, k.Done},
		{k.StartPattern, k.Cell, k.StartReaction, k.Tap, k.EndGame},
		{k.Sound, k.Notifications, k.Reset, k.About},
	}
}
