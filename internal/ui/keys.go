package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	ForceQuit  key.Binding
	Quit       key.Binding
	Help       key.Binding
	MiniMode   key.Binding
	CycleTheme key.Binding
	Logs       key.Binding

	// Playback
	PlayPause   key.Binding
	Next        key.Binding
	Previous    key.Binding
	Stop        key.Binding
	SeekForward key.Binding
	SeekBack    key.Binding
	VolumeUp    key.Binding
	VolumeDown  key.Binding
	Mute        key.Binding
	Love        key.Binding
	Shuffle     key.Binding
	Repeat      key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Confirm  key.Binding
	Back     key.Binding

	// Browsing
	Filter        key.Binding
	LibrarySearch key.Binding
	Artists       key.Binding
	Recent        key.Binding
	PlayAll       key.Binding
	Refresh       key.Binding
	AirPlay       key.Binding
	AddToPlaylist key.Binding
	ToggleDevice  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "Q"),
			key.WithHelp("q", "Back / Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle this help"),
		),
		MiniMode: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("F2", "Mini player"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("t", "T"),
			key.WithHelp("t", "Cycle theme"),
		),
		Logs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Application log"),
		),

		// Playback
		PlayPause: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("Space", "Play / Pause"),
		),
		Next: key.NewBinding(
			key.WithKeys("n", "N"),
			key.WithHelp("n", "Next track"),
		),
		Previous: key.NewBinding(
			key.WithKeys("p", "P"),
			key.WithHelp("p", "Previous track"),
		),
		Stop: key.NewBinding(
			key.WithKeys("s", "S"),
			key.WithHelp("s", "Stop"),
		),
		SeekForward: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "Seek forward 10s"),
		),
		SeekBack: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "Seek back 10s"),
		),
		VolumeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Volume up 5%"),
		),
		VolumeDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Volume down 5%"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m", "M"),
			key.WithHelp("m", "Mute / Unmute"),
		),
		Love: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Love / Unlove track"),
		),
		Shuffle: key.NewBinding(
			key.WithKeys("x", "X"),
			key.WithHelp("x", "Shuffle"),
		),
		Repeat: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Repeat (off → all → one)"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "Page down"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open / Play selected"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back"),
		),

		// Browsing
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Filter list"),
		),
		LibrarySearch: key.NewBinding(
			key.WithKeys("f1", "ctrl+_"),
			key.WithHelp("F1", "Library search"),
		),
		Artists: key.NewBinding(
			key.WithKeys("f3"),
			key.WithHelp("F3", "Browse artists"),
		),
		Recent: key.NewBinding(
			key.WithKeys("h", "H"),
			key.WithHelp("h", "Recently played"),
		),
		PlayAll: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Play whole playlist"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r", "R"),
			key.WithHelp("r", "Refresh playlists"),
		),
		AirPlay: key.NewBinding(
			key.WithKeys("a", "A"),
			key.WithHelp("a", "AirPlay devices"),
		),
		AddToPlaylist: key.NewBinding(
			key.WithKeys("o", "O"),
			key.WithHelp("o", "Add to playlist"),
		),
		ToggleDevice: key.NewBinding(
			key.WithKeys("enter", " ", "space"),
			key.WithHelp("enter", "Toggle device"),
		),
	}
}

// ShortHelp returns key bindings for the right panel hints.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.PlayPause, k.Next, k.VolumeUp, k.SeekForward, k.Love, k.Shuffle,
		k.Repeat, k.Filter, k.Confirm, k.Mute, k.CycleTheme, k.Help, k.Quit,
	}
}

// FullHelp returns key bindings for the help overlay, one group per section.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Playback
		{k.PlayPause, k.Next, k.Previous, k.Stop, k.Love, k.Shuffle, k.Repeat},
		// Audio
		{k.VolumeUp, k.VolumeDown, k.Mute, k.SeekBack, k.SeekForward},
		// Navigation
		{k.Up, k.Down, k.Confirm, k.Back, k.PlayAll, k.Top, k.Bottom, k.PageUp, k.PageDown, k.Filter, k.LibrarySearch, k.Artists},
		// Other
		{k.AddToPlaylist, k.Recent, k.AirPlay, k.CycleTheme, k.Refresh, k.Logs, k.MiniMode, k.Help, k.Quit},
	}
}
