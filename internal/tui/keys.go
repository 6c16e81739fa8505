package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap implements help.KeyMap for the game screen.
type keyMap struct {
	Scissors key.Binding
	Rock     key.Binding
	Paper    key.Binding
	Reset    key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Scissors: key.NewBinding(key.WithKeys("s", "1"), key.WithHelp("s/1", "scissors")),
		Rock:     key.NewBinding(key.WithKeys("r", "2"), key.WithHelp("r/2", "rock")),
		Paper:    key.NewBinding(key.WithKeys("p", "3"), key.WithHelp("p/3", "paper")),
		Reset:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "reset")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Scissors, k.Rock, k.Paper, k.Reset, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Scissors, k.Rock, k.Paper}, {k.Reset, k.Quit}}
}
