package player

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	next    key.Binding
	back    key.Binding
	confirm key.Binding
	retry   key.Binding
	replay  key.Binding
	submit  key.Binding
	quit    key.Binding
}

var defaultKeymap = keymap{
	next: key.NewBinding(
		key.WithKeys("enter", "right", " "),
		key.WithHelp("enter", "continue"),
	),
	back: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "back"),
	),
	confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "begin"),
	),
	retry: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "retry practice"),
	),
	replay: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "play again"),
	),
	submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	quit: key.NewBinding(
		key.WithKeys("ctrl+c", "q"),
		key.WithHelp("q", "quit"),
	),
}
