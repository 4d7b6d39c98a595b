package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	back    key.Binding
	space   key.Binding
	search  key.Binding
	albums  key.Binding
	dupes   key.Binding
	singles key.Binding
	open    key.Binding
	remove  key.Binding
	refresh key.Binding
	yes     key.Binding
	no      key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		space:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "mark")),
		search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		albums:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "album view")),
		dupes:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "duplicates")),
		singles: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "hide singles")),
		open:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
		remove:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove marked")),
		refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		yes:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.space, k.search, k.albums, k.dupes},
		{k.singles, k.open, k.remove, k.refresh},
		{k.yes, k.no, k.quit},
	}
}
