package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Pause    key.Binding
	Clear    key.Binding
	Reset    key.Binding
	Panel    key.Binding
	Next     key.Binding
	Prev     key.Binding
	Less     key.Binding
	More     key.Binding
	Edit     key.Binding
	Snapshot key.Binding
	Theme    key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Pause:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause")),
		Clear:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Panel:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "panel")),
		Next:     key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev")),
		Less:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "less")),
		More:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "more")),
		Edit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		Snapshot: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "svg")),
		Theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Clear, k.Reset, k.Panel, k.Next, k.More, k.Edit, k.Snapshot, k.Theme, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Clear, k.Reset, k.Quit},
		{k.Panel, k.Next, k.Prev, k.Less, k.More, k.Edit},
		{k.Snapshot, k.Theme},
	}
}
