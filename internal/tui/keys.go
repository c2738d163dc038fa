package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/pders01/reel/internal/config"
)

// keyMap holds the app-level bindings. Navigation inside lists and the
// viewport is left to the bubbles components.
type keyMap struct {
	Quit       key.Binding
	ForceQuit  key.Binding
	Back       key.Binding
	Focus      key.Binding
	Select     key.Binding
	Trending   key.Binding
	OpenPoster key.Binding
	OpenPage   key.Binding
	Help       key.Binding
}

func newKeyMap(cfg config.KeyConfig) keyMap {
	mod := cfg.Modifier + "+"
	b := cfg.Bindings

	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys(b.Quit),
			key.WithHelp(b.Quit, "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys(b.Back),
			key.WithHelp(b.Back, "back"),
		),
		Focus: key.NewBinding(
			key.WithKeys(b.Focus),
			key.WithHelp(b.Focus, "suggestion/results"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Trending: key.NewBinding(
			key.WithKeys(mod+b.Trending),
			key.WithHelp(mod+b.Trending, "trending"),
		),
		OpenPoster: key.NewBinding(
			key.WithKeys(mod+b.OpenPoster),
			key.WithHelp(mod+b.OpenPoster, "poster"),
		),
		OpenPage: key.NewBinding(
			key.WithKeys(mod+b.OpenPage),
			key.WithHelp(mod+b.OpenPage, "web page"),
		),
		Help: key.NewBinding(
			key.WithKeys(b.Help),
			key.WithHelp(b.Help, "more"),
		),
	}
}

// viewKeys adapts keyMap to help.KeyMap for the active view.
type viewKeys struct {
	keys keyMap
	view View
}

func (v viewKeys) ShortHelp() []key.Binding {
	k := v.keys
	switch v.view {
	case ViewDetail:
		return []key.Binding{k.OpenPoster, k.OpenPage, k.Back}
	case ViewTrending:
		return []key.Binding{k.Select, k.OpenPoster, k.Back}
	default:
		return []key.Binding{k.Focus, k.Trending, k.OpenPoster, k.Help}
	}
}

func (v viewKeys) FullHelp() [][]key.Binding {
	k := v.keys
	return [][]key.Binding{
		{k.Focus, k.Select, k.Back},
		{k.Trending, k.OpenPoster, k.OpenPage},
		{k.Help, k.Quit, k.ForceQuit},
	}
}
