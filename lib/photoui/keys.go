// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

package photoui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the browser's key bindings. Bindings other than Quit
// apply only while the list has focus; in the search field every
// printable key is text.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Search moves focus to the search field. Leave moves it back.
	Search key.Binding
	Leave  key.Binding

	Open  key.Binding // Show the detail box for the selected photo.
	Close key.Binding
	Retry key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown", " "),
		key.WithHelp("C-d", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	Search: key.NewBinding(
		key.WithKeys("/", "tab"),
		key.WithHelp("/", "search"),
	),
	Leave: key.NewBinding(
		key.WithKeys("esc", "tab", "enter", "down"),
		key.WithHelp("esc", "results"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "details"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc", "enter", "q"),
		key.WithHelp("esc", "close"),
	),
	Retry: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "retry"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
