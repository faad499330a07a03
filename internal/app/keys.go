package app

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left  key.Binding
	Right key.Binding
	Home  key.Binding
	End   key.Binding
	Table key.Binding
	Quit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev point")),
		Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next point")),
		Home:  key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
		End:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
		Table: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "table")),
		Quit:  key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Table, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Left, k.Right, k.Home, k.End}, {k.Table, k.Quit}}
}
