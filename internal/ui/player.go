package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/cadence/internal/dispatch"
	"github.com/five82/cadence/internal/music"
)

const volumeBarCells = 10

// renderHeader renders the title bar with the player state on the right.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Background)

	left := bg.Render(" ♫ Apple Music ", styles.AccentText.Bold(true))
	state := m.snap.State
	right := bg.Render(state.Icon()+" "+state.Label()+" ", styles.StateStyle(state))

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return bg.FillLine(left, m.width)
	}
	return bg.FillLine(left+bg.Spaces(gap)+right, m.width)
}

// renderBody lays out the player column and, on wide terminals, the right
// panel.
func (m Model) renderBody(height int) string {
	height = max(height, 1)
	leftWidth := m.leftWidth()
	left := m.renderLeft(leftWidth, height)
	if leftWidth == m.width {
		return left
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, m.renderRight(m.width-leftWidth, height))
}

// leftWidth returns the width of the player column.
func (m Model) leftWidth() int {
	if m.width >= LayoutSidebarWidth {
		return m.width - RightPanelWidth
	}
	return m.width
}

// renderLeft stacks the now playing box, progress, controls and the browser.
func (m Model) renderLeft(width, height int) string {
	bg := NewBgStyle(m.theme.Background)
	lineWidth := max(width-2, 1)

	var lines []string
	lines = append(lines, strings.Split(m.renderNowPlaying(lineWidth), "\n")...)
	lines = append(lines, m.renderProgress(lineWidth))
	lines = append(lines, m.renderControls(lineWidth), "")

	listHeight := height - len(lines)
	if listHeight >= 3 {
		lines = append(lines, strings.Split(m.renderBrowser(lineWidth, listHeight), "\n")...)
	}

	out := make([]string, height)
	for i := range out {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		out[i] = bg.FillLine(bg.Space()+line, width)
	}
	return strings.Join(out, "\n")
}

// renderNowPlaying renders the rounded box with the current track.
func (m Model) renderNowPlaying(width int) string {
	styles := m.theme.Styles()
	inner := max(width-4, 1)
	snap := m.snap

	var rows [3]string
	switch {
	case snap.State == music.NotRunning:
		rows[0] = styles.FaintText.Render("Music app is not running")
		rows[2] = styles.StateStyle(snap.State).Render(snap.State.Icon() + " " + snap.State.Label())
	case snap.Track.Name == "":
		rows[0] = styles.FaintText.Render("Nothing playing")
		rows[2] = styles.StateStyle(snap.State).Render(snap.State.Icon() + " " + snap.State.Label())
	default:
		heart := ""
		if snap.Track.Loved == music.On {
			heart = "  ♥"
		}
		name := truncate(snap.Track.Name, inner-cellWidth(heart))
		rows[0] = styles.Title.Render(name) + styles.DangerText.Render(heart)

		detail := snap.Track.Artist
		if snap.Track.Album != "" {
			detail += " · " + snap.Track.Album
		}
		rows[1] = styles.MutedText.Render(truncate(detail, inner))

		status := snap.State.Icon() + " " + snap.State.Label()
		rows[2] = styles.StateStyle(snap.State).Render(status)
		if snap.CurrentPlaylist != "" {
			from := truncate("  from "+snap.CurrentPlaylist, inner-cellWidth(status))
			rows[2] += styles.FaintText.Render(from)
		}
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Padding(0, 1).
		Width(max(width-2, 1)).
		Height(NowPlayingHeight - 2)
	return box.Render(strings.Join(rows[:], "\n"))
}

// barLayout locates the clickable progress bar on screen.
type barLayout struct {
	row   int
	start int
	width int
}

// progressBar returns where the bar is drawn. ok is false when nothing
// seekable is loaded.
func (m Model) progressBar() (barLayout, bool) {
	duration := m.snap.Track.Duration
	if duration <= 0 || m.snap.Track.Name == "" {
		return barLayout{}, false
	}

	if m.mini {
		// Inside the box border and padding, below the title line.
		return barLayout{row: 2, start: 2, width: max(m.width-4, 1)}, true
	}

	pos := dispatch.FormatClock(m.snap.Track.Position)
	dur := dispatch.FormatClock(duration)
	lineWidth := max(m.leftWidth()-2, 1)
	width := lineWidth - cellWidth(pos) - cellWidth(dur) - 5
	if width < 1 {
		return barLayout{}, false
	}
	// Header row, then the now playing box. The left margin is one column.
	return barLayout{
		row:   1 + NowPlayingHeight,
		start: 1 + 2 + cellWidth(pos) + 1,
		width: width,
	}, true
}

// renderProgress renders "  1:23 ━━━━●╌╌╌╌ 4:56 ".
func (m Model) renderProgress(width int) string {
	styles := m.theme.Styles()
	bar, ok := m.progressBar()
	if !ok {
		return styles.FaintText.Render(truncate("  ╌╌╌ no track ╌╌╌", width))
	}
	pos := dispatch.FormatClock(m.snap.Track.Position)
	dur := dispatch.FormatClock(m.snap.Track.Duration)
	return "  " + styles.MutedText.Render(pos) + " " +
		m.renderBar(bar.width, m.snap.Progress(), true) + " " +
		styles.MutedText.Render(dur) + " "
}

// renderBar draws a bar of width cells filled to ratio, optionally with a
// knob at the play head.
func (m Model) renderBar(width int, ratio float64, knob bool) string {
	if width <= 0 {
		return ""
	}
	styles := m.theme.Styles()
	filled := int(math.Round(ratio * float64(width)))
	filled = max(0, min(filled, width))

	if !knob {
		return styles.AccentText.Render(strings.Repeat("━", filled)) +
			styles.FaintText.Render(strings.Repeat("╌", width-filled))
	}
	head := min(filled, width-1)
	return styles.AccentText.Render(strings.Repeat("━", head)) +
		styles.Title.Render("●") +
		styles.FaintText.Render(strings.Repeat("╌", width-head-1))
}

// renderControls renders shuffle, repeat and volume.
func (m Model) renderControls(width int) string {
	styles := m.theme.Styles()
	snap := m.snap

	var shuffle string
	switch snap.Shuffle {
	case music.On:
		shuffle = styles.SuccessText.Render("⇆ On")
	case music.Off:
		shuffle = styles.FaintText.Render("⇆ Off")
	default:
		shuffle = styles.FaintText.Render("⇆ ─")
	}

	var repeat string
	switch snap.Repeat {
	case music.RepeatAll:
		repeat = styles.AccentText.Render("↻ All")
	case music.RepeatOne:
		repeat = styles.WarningText.Render("↻ One")
	case music.RepeatOff:
		repeat = styles.FaintText.Render("↻ Off")
	default:
		repeat = styles.FaintText.Render("↻ ─")
	}

	line := "  " + shuffle + "   " + repeat + "   " + m.renderVolume()
	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}

func (m Model) renderVolume() string {
	styles := m.theme.Styles()
	vol := m.snap.Volume
	if vol < 0 {
		return styles.FaintText.Render("🔈 ─")
	}

	icon, style := "🔊", styles.Text
	switch {
	case vol == 0:
		icon, style = "🔇", styles.DangerText
	case vol < 34:
		icon = "🔈"
	case vol < 67:
		icon = "🔉"
	}

	filled := (vol*volumeBarCells + 50) / 100
	filled = max(0, min(filled, volumeBarCells))
	bar := styles.AccentText.Render(strings.Repeat("█", filled)) +
		styles.FaintText.Render(strings.Repeat("░", volumeBarCells-filled))
	return style.Render(icon) + " " + bar + styles.MutedText.Render(fmt.Sprintf(" %d%%", vol))
}

// renderStatusBar renders the status message and a short key hint.
func (m Model) renderStatusBar() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Background)

	hint := m.help.ShortHelpView([]key.Binding{m.keys.Help, m.keys.Quit})
	status := " " + m.snap.State.Icon() + "  " + m.snap.Status
	room := m.width - lipgloss.Width(hint) - 1
	if room < 10 {
		return bg.FillLine(styles.MutedText.Render(truncate(status, m.width)), m.width)
	}

	left := styles.MutedText.Render(truncate(status, room))
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(hint) - 1
	return bg.FillLine(left+bg.Spaces(gap)+hint+bg.Space(), m.width)
}

// renderMini renders the compact player: one box with the track line and
// the progress bar, then the status line.
func (m Model) renderMini() string {
	styles := m.theme.Styles()
	snap := m.snap
	inner := max(m.width-4, 1)

	var title string
	switch {
	case snap.State == music.NotRunning:
		title = styles.FaintText.Render(truncate("○ Music app is not running", inner))
	case snap.Track.Name == "":
		title = styles.FaintText.Render(truncate(snap.State.Icon()+" No track", inner))
	default:
		clock := fmt.Sprintf("  %s/%s", dispatch.FormatClock(snap.Track.Position), dispatch.FormatClock(snap.Track.Duration))
		heart := ""
		if snap.Track.Loved == music.On {
			heart = " ♥"
		}
		icon := snap.State.Icon() + " "
		text := snap.Track.Name
		if snap.Track.Artist != "" {
			text += " · " + snap.Track.Artist
		}
		text = truncate(text, inner-cellWidth(icon)-cellWidth(clock)-cellWidth(heart))
		title = styles.StateStyle(snap.State).Render(icon) +
			styles.Title.Render(text) +
			styles.MutedText.Render(clock) +
			styles.DangerText.Render(heart)
	}

	var bar string
	if layout, ok := m.progressBar(); ok {
		bar = m.renderBar(layout.width, snap.Progress(), false)
	} else {
		bar = styles.FaintText.Render(strings.Repeat("╌", inner))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(0, 1).
		Width(max(m.width-2, 1))
	return box.Render(title+"\n"+bar) + "\n" + m.renderStatusBar()
}
