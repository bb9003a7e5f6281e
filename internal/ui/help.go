package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

var helpSectionTitles = []string{"PLAYBACK", "AUDIO", "NAVIGATION", "OTHER"}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	var lines []string
	for i, group := range m.keys.FullHelp() {
		if i > 0 {
			lines = append(lines, "")
		}
		title := ""
		if i < len(helpSectionTitles) {
			title = helpSectionTitles[i]
		}
		lines = append(lines, styles.AccentText.Bold(true).Render(title))
		for _, b := range group {
			lines = append(lines, renderHelpItem(styles, b, 14))
		}
	}

	// Leave room for the border, the title and a margin.
	if limit := m.height - 6; limit > 0 && len(lines) > limit {
		lines = lines[:limit]
	}

	return placeOverlay(m.theme, "Keyboard Shortcuts", strings.Join(lines, "\n"), HelpWidth, m.width, m.height)
}

func renderHelpItem(styles Styles, b key.Binding, keyWidth int) string {
	h := b.Help()
	return styles.Title.Render("  "+padRight(h.Key, keyWidth)) + styles.MutedText.Render(h.Desc)
}

// renderShortcuts renders the hint block at the bottom of the right panel.
func (m Model) renderShortcuts(width int) []string {
	styles := m.theme.Styles()
	lines := []string{styles.Heading.Render("SHORTCUTS")}
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		line := styles.Key.Render(padRight(h.Key, 8)) + styles.MutedText.Render(truncate(h.Desc, width-8))
		lines = append(lines, line)
	}
	return lines
}

// placeOverlay centers a rounded, titled box of boxWidth columns on an
// otherwise empty width x height screen.
func placeOverlay(theme Theme, title, content string, boxWidth, width, height int) string {
	boxWidth = min(boxWidth, max(width-4, 10))

	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Accent)).
		Bold(true).
		Render(title)

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.BorderFocus)).
		Padding(0, 1).
		Width(boxWidth)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(header+"\n\n"+content),
		lipgloss.WithWhitespaceChars(" "),
	)
}
