package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the viewer. Scrolling keys
// (arrows, j/k, pgup/pgdown, ctrl+u/d) come from the viewport itself.
type keyMap struct {
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding

	// Filters
	CycleLevel    key.Binding
	ToggleStack   key.Binding
	ToggleInvalid key.Binding

	// Navigation
	Top          key.Binding
	Bottom       key.Binding
	ToggleFollow key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),

		CycleLevel: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Raise minimum level (wraps to TRACE)"),
		),
		ToggleStack: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Show/hide stack traces"),
		),
		ToggleInvalid: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Show/drop non-record lines"),
		),

		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom and follow"),
		),
		ToggleFollow: key.NewBinding(
			key.WithKeys(" ", "f"),
			key.WithHelp("space/f", "Toggle follow"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.CycleLevel, k.ToggleStack, k.ToggleInvalid, k.ToggleFollow, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Top, k.Bottom, k.ToggleFollow},
		{k.CycleLevel, k.ToggleStack, k.ToggleInvalid},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
