package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Pick      key.Binding
	PlayAgain key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Pick: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "pick number"),
		),
		PlayAgain: key.NewBinding(
			key.WithKeys("enter", "n"),
			key.WithHelp("enter", "play again"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pick, k.PlayAgain, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pick},
		{k.PlayAgain},
		{k.Help, k.Quit},
	}
}
