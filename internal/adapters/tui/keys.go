package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines key bindings for the check view
type KeyMap struct {
	CopyMissing  key.Binding
	CopyMatching key.Binding
	Quit         key.Binding
}

var Keys = KeyMap{
	CopyMissing: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy missing"),
	),
	CopyMatching: key.NewBinding(
		key.WithKeys("Y"),
		key.WithHelp("Y", "copy matching"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
