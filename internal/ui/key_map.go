package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up    key.Binding
	down  key.Binding
	left  key.Binding
	right key.Binding
	login key.Binding
	fetch key.Binding
	open  key.Binding
	quit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		login: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "log in")),
		fetch: key.NewBinding(key.WithKeys("enter", "f"), key.WithHelp("enter", "get top tracks")),
		open:  key.NewBinding(key.WithKeys("enter", "o"), key.WithHelp("enter", "open in browser")),
		quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.left, k.right},
		{k.login, k.fetch, k.open},
		{k.quit},
	}
}
