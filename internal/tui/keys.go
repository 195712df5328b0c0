package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the console key bindings with built-in help text.
type KeyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
	Escape    key.Binding

	NextPage key.Binding
	PrevPage key.Binding
	GoTo     key.Binding

	Retry   key.Binding
	Dismiss key.Binding
	Export  key.Binding
	Inspect key.Binding

	NextUser       key.Binding
	PrevUser       key.Binding
	Strategy       key.Binding
	Period         key.Binding
	Query          key.Binding
	AddProduct     key.Binding
	RecordBehavior key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),

		NextPage: key.NewBinding(
			key.WithKeys("tab", "down", "j"),
			key.WithHelp("tab/↓", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("shift+tab", "up", "k"),
			key.WithHelp("shift+tab/↑", "prev page"),
		),
		GoTo: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7"),
			key.WithHelp("1-7", "go to page"),
		),

		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry/refresh"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "dismiss error"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
		),
		Inspect: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "raw data"),
		),

		NextUser: key.NewBinding(
			key.WithKeys("."),
			key.WithHelp(".", "next user"),
		),
		PrevUser: key.NewBinding(
			key.WithKeys(","),
			key.WithHelp(",", "prev user"),
		),
		Strategy: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "strategy"),
		),
		Period: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "period"),
		),
		Query: key.NewBinding(
			key.WithKeys("/", "enter"),
			key.WithHelp("/", "describe intent"),
		),
		AddProduct: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "add product"),
		),
		RecordBehavior: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "record behavior"),
		),
	}
}
