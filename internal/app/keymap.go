package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the application level bindings. Tree navigation keys live in
// the tree view; letters there are type-ahead, so global keys avoid them.
type KeyMap struct {
	Quit        key.Binding
	Help        key.Binding
	Filter      key.Binding
	SwitchPanel key.Binding
	Dismiss     key.Binding
	CopyLink    key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Focus filter"),
		),
		SwitchPanel: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "Switch panel"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "Close help or error"),
		),
		CopyLink: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy link (content panel)"),
		),
	}
}

// Bindings returns the bindings in help order
func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{k.Filter, k.SwitchPanel, k.CopyLink, k.Help, k.Dismiss, k.Quit}
}
