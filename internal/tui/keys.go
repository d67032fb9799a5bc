package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Spin       key.Binding
	Dismiss    key.Binding
	Good       key.Binding
	Bad        key.Binding
	Listen     key.Binding
	Share      key.Binding
	Reset      key.Binding
	Difficulty key.Binding
	NextMode   key.Binding
	Challenge  key.Binding
	Stop       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Spin:       key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "spin")),
		Dismiss:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
		Good:       key.NewBinding(key.WithKeys("g", "+"), key.WithHelp("g", "said it right")),
		Bad:        key.NewBinding(key.WithKeys("b", "-"), key.WithHelp("b", "needs work")),
		Listen:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "listen")),
		Share:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "share")),
		Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset stats")),
		Difficulty: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "difficulty")),
		NextMode:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next challenge")),
		Challenge:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "start challenge")),
		Stop:       key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop/close challenge")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Spin, k.Good, k.Bad, k.Challenge, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Spin, k.Dismiss, k.Good, k.Bad, k.Listen},
		{k.Share, k.Reset, k.Difficulty},
		{k.NextMode, k.Challenge, k.Stop},
		{k.Help, k.Quit},
	}
}
