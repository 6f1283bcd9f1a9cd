package planner

import "github.com/charmbracelet/bubbles/v2/key"

type keyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Activate  key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	PrevWeek  key.Binding
	NextWeek  key.Binding
	Today     key.Binding
	Clear     key.Binding
	Zone      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Activate:  key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("enter", "select")),
		PrevMonth: key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "prev month")),
		NextMonth: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "next month")),
		PrevWeek:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "prev week")),
		NextWeek:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next week")),
		Today:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Clear:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Zone:      key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch pane")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Activate, k.NextWeek, k.PrevWeek, k.Today, k.Zone, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Activate, k.Clear, k.PrevMonth, k.NextMonth},
		{k.PrevWeek, k.NextWeek, k.Today},
		{k.Zone, k.Help, k.Quit},
	}
}
