package pager

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines keybindings for the guide pager. Line and page scrolling
// is handled by the viewport's own bindings.
type KeyMap struct {
	Quit       key.Binding
	NextWeek   key.Binding
	PrevWeek   key.Binding
	GoToTop    key.Binding
	GoToBottom key.Binding
}

// DefaultKeyMap returns the default keybindings for the pager
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
		NextWeek: key.NewBinding(
			key.WithKeys("n", "tab"),
			key.WithHelp("n", "next week"),
		),
		PrevWeek: key.NewBinding(
			key.WithKeys("p", "shift+tab"),
			key.WithHelp("p", "prev week"),
		),
		GoToTop: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		GoToBottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
	}
}

// ShortHelp returns keybindings for the short help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.NextWeek, k.PrevWeek, k.GoToTop, k.GoToBottom}
}

// FullHelp returns keybindings for the full help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextWeek, k.PrevWeek},
		{k.GoToTop, k.GoToBottom},
		{k.Quit},
	}
}
