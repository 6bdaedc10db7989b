// Package keys decodes raw keyboard input into key events without ever
// blocking the caller.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap binds keys to view actions.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Filter   key.Binding
	Sort     key.Binding
	Quit     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑/↓", "Scroll")),
		Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "Scroll down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("PgUp/PgDn", "Page")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("PgDn", "Page down")),
		Filter:   key.NewBinding(key.WithKeys("f", "F"), key.WithHelp("f", "Filter")),
		Sort:     key.NewBinding(key.WithKeys("s", "S"), key.WithHelp("s", "Sort")),
		Quit:     key.NewBinding(key.WithKeys("q", "Q", "ctrl+c"), key.WithHelp("q", "Quit")),
	}
}

// ShortHelp returns the bindings shown in the controls legend. Up and
// PageUp carry the help text for their pairs.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Filter, k.Sort, k.Up, k.PageUp, k.Quit}
}

// FullHelp satisfies help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Filter, k.Sort, k.Quit},
	}
}
