package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/cadence/internal/music"
)

// renderRight renders the side panel: source playlist, the play queue and,
// when there is room, the shortcut hints.
func (m Model) renderRight(width, height int) string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Background)
	border := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Border))
	inner := max(width-2, 1)

	lines := []string{styles.Heading.Render("FROM")}
	if from := m.snap.CurrentPlaylist; from != "" {
		lines = append(lines, styles.SuccessText.Render(truncate("♫ "+from, inner)))
	} else {
		lines = append(lines, styles.FaintText.Render("─"))
	}
	lines = append(lines, "")

	shortcuts := m.renderShortcuts(inner)
	queueRoom := height - len(lines) - 1
	if queueRoom >= len(shortcuts)+4 {
		queueRoom -= len(shortcuts) + 1
	} else {
		shortcuts = nil
	}
	lines = append(lines, m.renderQueue(inner, queueRoom)...)

	if shortcuts != nil {
		for len(lines) < height-len(shortcuts) {
			lines = append(lines, "")
		}
		lines = append(lines, shortcuts...)
	}

	out := make([]string, height)
	for i := range out {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		out[i] = bg.Render("│", border) + bg.Space() + bg.FillLine(line, inner)
	}
	return strings.Join(out, "\n")
}

// renderQueue lists the upcoming tracks, two lines each, within rows.
func (m Model) renderQueue(width, rows int) []string {
	styles := m.theme.Styles()
	queue := m.snap.Queue
	heading := "QUEUE"
	if len(queue) == 0 && m.snap.UpNext.Name != "" {
		heading = "UP NEXT"
		queue = []music.QueueEntry{m.snap.UpNext}
	}

	lines := []string{styles.Heading.Render(heading)}
	if len(queue) == 0 {
		return append(lines, styles.FaintText.Render("  ─"))
	}

	for i, e := range queue {
		if len(lines)+2 > rows {
			break
		}
		num := fmt.Sprintf("%2d. ", i+1)
		lines = append(lines,
			styles.FaintText.Render(num)+styles.Text.Render(truncate(e.Name, width-cellWidth(num))),
			strings.Repeat(" ", cellWidth(num))+styles.MutedText.Render(truncate(e.Artist, width-cellWidth(num))),
		)
	}
	return lines
}
