package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/cadence/internal/music"
	"github.com/five82/cadence/internal/prefs"
)

// Theme defines colors and styles for the UI.
type Theme struct {
	Name string

	// Background is left empty to draw on the terminal's own background.
	Background string

	// List colors
	SelectionBg   string // Selected row background
	SelectionText string // Selected row text

	// Border colors
	Border      string // Default border
	BorderFocus string // Active list, filter input and overlays

	// Text colors
	Text    string
	Muted   string // Secondary text: artists, albums, times
	Faint   string // Separators, empty states, unknown values
	Accent  string
	Success string // Playing, shuffle on, current playlist
	Warning string // Paused, repeat one
	Danger  string // Loved, muted
}

// StateColor returns the color used for a player state.
func (t Theme) StateColor(s music.PlayerState) string {
	switch s {
	case music.Playing:
		return t.Success
	case music.Paused:
		return t.Warning
	default:
		return t.Faint
	}
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)),

		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)).
			Bold(true),

		Heading: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)).
			Bold(true),

		Key: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)).
			Bold(true),

		stateColors: map[music.PlayerState]string{
			music.Playing:    t.StateColor(music.Playing),
			music.Paused:     t.StateColor(music.Paused),
			music.Stopped:    t.StateColor(music.Stopped),
			music.NotRunning: t.StateColor(music.NotRunning),
		},
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	Title    lipgloss.Style
	Heading  lipgloss.Style
	Key      lipgloss.Style
	Selected lipgloss.Style

	stateColors map[music.PlayerState]string
}

// StateStyle returns a bold style in the color of the given player state.
func (s Styles) StateStyle(state music.PlayerState) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.stateColors[state])).
		Bold(true)
}

// WithBackground returns a copy of Styles with all text styles having the specified background.
// The selected style keeps its own background.
func (s Styles) WithBackground(bgColor string) Styles {
	if bgColor == "" {
		return s
	}
	bg := lipgloss.Color(bgColor)

	return Styles{
		Text:        s.Text.Background(bg),
		MutedText:   s.MutedText.Background(bg),
		FaintText:   s.FaintText.Background(bg),
		AccentText:  s.AccentText.Background(bg),
		SuccessText: s.SuccessText.Background(bg),
		WarningText: s.WarningText.Background(bg),
		DangerText:  s.DangerText.Background(bg),

		Title:    s.Title.Background(bg),
		Heading:  s.Heading.Background(bg),
		Key:      s.Key.Background(bg),
		Selected: s.Selected,

		stateColors: s.stateColors,
	}
}

// Theme definitions

const defaultThemeName = prefs.DefaultTheme

var themes = map[string]Theme{
	"Default":    defaultTheme(),
	"Dracula":    draculaTheme(),
	"Catppuccin": catppuccinTheme(),
	"Nord":       nordTheme(),
	"Gruvbox":    gruvboxTheme(),
}

var themeOrder = []string{"Default", "Dracula", "Catppuccin", "Nord", "Gruvbox"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return defaultTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	out := make([]string, len(themeOrder))
	copy(out, themeOrder)
	return out
}

func defaultTheme() Theme {
	return Theme{
		Name: defaultThemeName,

		SelectionBg:   "#3c3c50",
		SelectionText: "#64b4ff",

		Border:      "#373746",
		BorderFocus: "#64b4ff",

		Text:    "#dcdce6",
		Muted:   "#8c8c9b",
		Faint:   "#646473",
		Accent:  "#64b4ff",
		Success: "#50dc82",
		Warning: "#f0c850",
		Danger:  "#f05a5a",
	}
}

func draculaTheme() Theme {
	// Dracula palette: https://draculatheme.com/contribute
	return Theme{
		Name: "Dracula",

		SelectionBg:   "#44475a", // current line
		SelectionText: "#bd93f9", // purple

		Border:      "#44475a", // current line
		BorderFocus: "#bd93f9", // purple

		Text:    "#f8f8f2", // foreground
		Muted:   "#6272a4", // comment
		Faint:   "#6272a4", // comment
		Accent:  "#bd93f9", // purple
		Success: "#50fa7b", // green
		Warning: "#f1fa8c", // yellow
		Danger:  "#ff5555", // red
	}
}

func catppuccinTheme() Theme {
	// Catppuccin Mocha: https://github.com/catppuccin/catppuccin
	return Theme{
		Name: "Catppuccin",

		SelectionBg:   "#313244", // surface0
		SelectionText: "#89b4fa", // blue

		Border:      "#45475a", // surface1
		BorderFocus: "#89b4fa", // blue

		Text:    "#cdd6f4", // text
		Muted:   "#9399b2", // overlay2
		Faint:   "#6c7086", // overlay0
		Accent:  "#89b4fa", // blue
		Success: "#a6e3a1", // green
		Warning: "#f9e2af", // yellow
		Danger:  "#f38ba8", // red
	}
}

func nordTheme() Theme {
	// Nord palette: https://www.nordtheme.com/docs/colors-and-palettes
	return Theme{
		Name: "Nord",

		SelectionBg:   "#434c5e", // nord2
		SelectionText: "#88c0d0", // nord8

		Border:      "#434c5e", // nord2
		BorderFocus: "#88c0d0", // nord8

		Text:    "#eceff4", // nord6
		Muted:   "#81a1c1", // nord9
		Faint:   "#4c566a", // nord3
		Accent:  "#88c0d0", // nord8
		Success: "#a3be8c", // nord14
		Warning: "#ebcb8b", // nord13
		Danger:  "#bf616a", // nord11
	}
}

func gruvboxTheme() Theme {
	// Gruvbox dark: https://github.com/morhetz/gruvbox
	return Theme{
		Name: "Gruvbox",

		SelectionBg:   "#504945", // bg2
		SelectionText: "#83a598", // blue

		Border:      "#504945", // bg2
		BorderFocus: "#83a598", // blue

		Text:    "#ebdbb2", // fg
		Muted:   "#a89984", // fg4
		Faint:   "#928374", // gray
		Accent:  "#83a598", // blue
		Success: "#b8bb26", // green
		Warning: "#fabd2f", // yellow
		Danger:  "#fb4934", // red
	}
}
