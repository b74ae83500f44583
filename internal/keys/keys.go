// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the application keybindings. Bindings only apply when
// the code field is blurred; a focused field owns the keyboard.
type KeyMap struct {
	Focus        key.Binding
	Escape       key.Binding
	ToggleStatus key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Focus: key.NewBinding(
			key.WithKeys("enter", "i"),
			key.WithHelp("enter/i", "edit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "stop editing"),
		),
		ToggleStatus: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "toggle status bar"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings for the single-line help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Escape, k.Help, k.Quit}
}

// FullHelp returns the bindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Focus, k.Escape},
		{k.ToggleStatus, k.Help, k.Quit},
	}
}
