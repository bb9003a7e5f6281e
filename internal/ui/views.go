package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/cadence/internal/dispatch"
	"github.com/five82/cadence/internal/music"
	"github.com/five82/cadence/internal/selection"
)

// renderBrowser renders the active list inside a titled box.
func (m Model) renderBrowser(width, height int) string {
	inner := max(width-2, 1)
	rows := max(height-2, 1)
	focused := m.mode != modeNormal || m.view != ViewPlaylists

	var lines []string
	switch m.view {
	case ViewPlaylists:
		current := m.snap.CurrentPlaylist
		lines = renderRows(m.playlists, rows, func(name string, selected bool) string {
			return m.playlistRow(name, name == current, inner, selected)
		})
	case ViewTracks:
		lines = renderRows(m.tracks, rows, func(e music.TrackEntry, selected bool) string {
			return m.trackRow(e, inner, selected)
		})
	case ViewArtists:
		lines = renderRows(m.artists, rows, func(name string, selected bool) string {
			return m.playlistRow(name, false, inner, selected)
		})
	case ViewArtistTracks:
		lines = renderRows(m.artistTracks, rows, func(e music.TrackEntry, selected bool) string {
			return m.trackRow(e, inner, selected)
		})
	case ViewRecent:
		n := 0
		start, _ := m.recent.Window(rows)
		lines = renderRows(m.recent, rows, func(e music.QueueEntry, selected bool) string {
			n++
			return m.recentRow(start+n, e, inner, selected)
		})
	case ViewSearch:
		lines = renderRows(m.results, rows, func(e music.TrackEntry, selected bool) string {
			return m.trackRow(e, inner, selected)
		})
	}

	if len(lines) == 0 {
		lines = []string{"  " + m.emptyMessage()}
	}
	return m.renderTitledBox(m.browserTitle(), strings.Join(lines, "\n"), width, height, focused)
}

// renderRows renders the visible window of list, keeping the cursor in view.
func renderRows[T any](list *selection.List[T], height int, row func(T, bool) string) []string {
	items := list.Visible()
	start, end := list.Window(height)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, row(items[i], i == list.Selected()))
	}
	return lines
}

// browserTitle returns the box title for the active view, or the input line
// while typing.
func (m Model) browserTitle() string {
	styles := m.theme.Styles()
	switch m.mode {
	case modeFilter:
		return styles.AccentText.Render(" Search: ") + m.input.View() + " "
	case modeQuery:
		return styles.AccentText.Render(" Library Search: ") + m.input.View() + " "
	}

	back := styles.FaintText.Render("◂ Esc ")
	switch m.view {
	case ViewTracks:
		return fmt.Sprintf(" %s (%s) ", m.openPlaylist, countLabel(m.tracks.Len(), m.tracks.Total())) + back
	case ViewArtists:
		return fmt.Sprintf(" Artists (%s) ", countLabel(m.artists.Len(), m.artists.Total())) + back
	case ViewArtistTracks:
		return fmt.Sprintf(" %s (%s) ", m.openArtist, countLabel(m.artistTracks.Len(), m.artistTracks.Total())) + back
	case ViewRecent:
		return fmt.Sprintf(" Recently Played (%d) ", m.recent.Total()) + back
	case ViewSearch:
		return fmt.Sprintf(" Library Search: %s (%d) ", m.snap.SearchQuery, m.results.Total()) + back
	default:
		return fmt.Sprintf(" Library (%s) ", countLabel(m.playlists.Len(), m.playlists.Total()))
	}
}

// countLabel renders "12" or, while filtered, "3/12".
func countLabel(visible, total int) string {
	if visible == total {
		return fmt.Sprint(total)
	}
	return fmt.Sprintf("%d/%d", visible, total)
}

// emptyMessage explains an empty list.
func (m Model) emptyMessage() string {
	styles := m.theme.Styles()
	list := m.activeList()
	if list.Total() > 0 {
		return styles.FaintText.Render("No matches")
	}

	loading := func(msg string) string {
		return m.spinner.View() + " " + styles.FaintText.Render(msg)
	}
	switch m.view {
	case ViewTracks:
		if m.snap.PlaylistTracksFor != m.openPlaylist {
			return loading("Loading tracks...")
		}
		return styles.FaintText.Render("Empty playlist")
	case ViewArtists:
		return loading("Loading artists...")
	case ViewArtistTracks:
		if m.snap.ArtistTracksFor != m.openArtist {
			return loading("Loading tracks...")
		}
		return styles.FaintText.Render("No tracks")
	case ViewRecent:
		return styles.FaintText.Render("No recently played tracks yet")
	case ViewSearch:
		if m.mode == modeQuery || m.snap.SearchQuery == "" {
			return styles.FaintText.Render("Type a query and press Enter")
		}
		return styles.FaintText.Render("No results")
	default:
		if m.snap.PollCount == 0 {
			return loading("Loading...")
		}
		return styles.FaintText.Render("No playlists")
	}
}

// playlistRow renders a name row. The playing playlist is marked.
func (m Model) playlistRow(name string, current bool, width int, selected bool) string {
	styles := m.theme.Styles()
	if selected {
		return styles.Selected.Width(width).Render(truncate("▸ "+ternary(current, "♫ ", "")+name, width))
	}
	if current {
		return "  " + styles.SuccessText.Render(truncate("♫ "+name, width-2))
	}
	return "  " + styles.Text.Render(truncate(name, width-2))
}

// trackRow renders "  Name            Artist     3:45". The playing track
// is marked.
func (m Model) trackRow(e music.TrackEntry, width int, selected bool) string {
	styles := m.theme.Styles()
	playing := m.isPlaying(e.Name, e.Artist)

	avail := width - 2
	dur := ""
	if e.Duration > 0 {
		dur = dispatch.FormatClock(e.Duration)
	}
	durCol := padLeft(dur, 6)

	artistWidth := min(avail/3, 24)
	nameWidth := avail - artistWidth - cellWidth(durCol) - 1
	if nameWidth < 8 {
		artistWidth = 0
		nameWidth = avail - cellWidth(durCol)
	}

	prefix := ternary(playing, "▶ ", "")
	name := padRight(truncate(prefix+e.Name, nameWidth), nameWidth)
	artist := ""
	if artistWidth > 0 {
		artist = " " + padRight(truncate(e.Artist, artistWidth), artistWidth)
	}

	if selected {
		return styles.Selected.Width(width).Render("▸ " + name + artist + durCol)
	}

	nameStyle := styles.Text
	if playing {
		nameStyle = styles.SuccessText.Bold(true)
	}
	return "  " + nameStyle.Render(name) + styles.MutedText.Render(artist) + styles.FaintText.Render(durCol)
}

// recentRow renders " 1. Name · Artist".
func (m Model) recentRow(n int, e music.QueueEntry, width int, selected bool) string {
	styles := m.theme.Styles()
	num := fmt.Sprintf("%2d. ", n)
	text := e.Name
	if e.Artist != "" {
		text += " · " + e.Artist
	}
	if selected {
		return styles.Selected.Width(width).Render(truncate("▸ "+num+text, width))
	}
	text = truncate(text, width-2-cellWidth(num))
	return "  " + styles.FaintText.Render(num) + styles.Text.Render(text)
}

// isPlaying reports whether a row is the loaded track.
func (m Model) isPlaying(name, artist string) bool {
	t := m.snap.Track
	return t.Name != "" && t.Name == name && t.Artist == artist
}

// renderTitledBox renders content in a rounded box with the title embedded
// in the top border: ╭─ Title ─────╮
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColor := m.theme.Border
	if focused {
		borderColor = m.theme.BorderFocus
	}
	bg := NewBgStyle(m.theme.Background)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 1)
	title = lipgloss.NewStyle().MaxWidth(max(innerWidth-2, 0)).Render(title)
	rest := max(innerWidth-1-lipgloss.Width(title), 0)

	topBorder := bg.Render("╭─", borderStyle) +
		titleStyle.Render(title) +
		bg.Render(strings.Repeat("─", rest), borderStyle) +
		bg.Render("╮", borderStyle)

	bottomBorder := bg.Render("╰", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("╯", borderStyle)

	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)

	lines := make([]string, 0, height)
	lines = append(lines, topBorder)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines, bg.Render("│", borderStyle)+bg.FillLine(line, innerWidth)+bg.Render("│", borderStyle))
	}
	lines = append(lines, bottomBorder)
	return strings.Join(lines, "\n")
}
