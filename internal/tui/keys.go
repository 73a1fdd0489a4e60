package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the application-wide key bindings
type KeyMap struct {
	// Navigation
	Home      key.Binding
	Favorites key.Binding
	Back      key.Binding

	// Actions
	Search   key.Binding
	Theme    key.Binding
	Play     key.Binding
	Homepage key.Binding
	Favorite key.Binding
	Refresh  key.Binding
	Help     key.Binding
	Escape   key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Home: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "home"),
		),
		Favorites: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "go to favorites"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace", "b"),
			key.WithHelp("b/⌫", "back"),
		),
		Search: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "search movies"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle theme"),
		),
		Play: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "play trailer"),
		),
		Homepage: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open homepage"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "toggle favorite"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload trending"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close/back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Keys is the global key map instance
var Keys = DefaultKeyMap()
