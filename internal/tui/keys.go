package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings of the search view. Bindings that include a
// bare letter only match that letter while the results pane has focus;
// in the input the letter is text.
type keyMap struct {
	Quit    key.Binding
	Focus   key.Binding
	Switch  key.Binding
	Hide    key.Binding
	Submit  key.Binding
	Up      key.Binding
	Down    key.Binding
	Remove  key.Binding
	Similar key.Binding
	Back    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Focus: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "search"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Hide: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "hide history"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Remove: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "forget"),
		),
		Similar: key.NewBinding(
			key.WithKeys("ctrl+s", "s"),
			key.WithHelp("s", "similar"),
		),
		Back: key.NewBinding(
			key.WithKeys("ctrl+b", "b"),
			key.WithHelp("b", "back"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Switch, k.Submit, k.Similar, k.Back, k.Focus, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Submit, k.Switch},
		{k.Similar, k.Back, k.Remove, k.Hide},
		{k.Focus, k.Quit},
	}
}
