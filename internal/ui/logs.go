package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/cadence/internal/logtail"
)

// logsLoadedMsg carries the tail of the application log.
type logsLoadedMsg struct {
	records []logtail.Record
	err     error
}

func loadLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		records, err := logtail.Tail(path, LogOverlayLines)
		return logsLoadedMsg{records: records, err: err}
	}
}

// logModal shows the newest application log records in a scrollable
// viewport. It opens scrolled to the bottom.
type logModal struct {
	path     string
	theme    Theme
	viewport viewport.Model
	records  []logtail.Record
	err      error
	loaded   bool
}

func newLogModal(path string, theme Theme, width, height int) (*logModal, tea.Cmd) {
	l := &logModal{path: path, theme: theme}
	l.viewport = viewport.New(1, 1)
	l.resize(width, height)
	l.viewport.SetContent(theme.Styles().FaintText.Render("Loading..."))
	return l, loadLogsCmd(path)
}

func (l *logModal) resize(width, height int) {
	// The overlay frame and padding take four columns and the border,
	// title and margins six rows.
	l.viewport.Width = max(l.boxWidth(width)-2, 10)
	l.viewport.Height = max(height-8, 3)
}

func (l *logModal) boxWidth(width int) int {
	return max(width-8, 20)
}

func (l *logModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case logsLoadedMsg:
		l.records, l.err, l.loaded = msg.records, msg.err, true
		l.render()
		l.viewport.GotoBottom()
		return l, nil, false

	case tea.WindowSizeMsg:
		l.resize(msg.Width, msg.Height)
		l.render()
		return l, nil, false

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Back), key.Matches(msg, keys.Logs), key.Matches(msg, keys.Quit):
			return l, nil, true
		case key.Matches(msg, keys.Refresh):
			return l, loadLogsCmd(l.path), false
		case key.Matches(msg, keys.Top):
			l.viewport.GotoTop()
			return l, nil, false
		case key.Matches(msg, keys.Bottom):
			l.viewport.GotoBottom()
			return l, nil, false
		}
	}

	var cmd tea.Cmd
	l.viewport, cmd = l.viewport.Update(msg)
	return l, cmd, false
}

func (l *logModal) render() {
	if !l.loaded {
		return
	}
	styles := l.theme.Styles()
	switch {
	case l.err != nil:
		l.viewport.SetContent(styles.DangerText.Render("Cannot read log: " + l.err.Error()))
		return
	case len(l.records) == 0:
		l.viewport.SetContent(styles.FaintText.Render("Log is empty"))
		return
	}

	lines := make([]string, 0, len(l.records))
	for _, rec := range l.records {
		lines = append(lines, formatLogRecord(styles, rec, l.viewport.Width))
	}
	l.viewport.SetContent(strings.Join(lines, "\n"))
}

func (l *logModal) View(theme Theme, width, height int) string {
	title := "Application Log"
	if l.loaded && l.err == nil {
		title = fmt.Sprintf("Application Log (%d)", len(l.records))
	}
	footer := theme.Styles().FaintText.Render(truncate(l.path, l.viewport.Width))
	return placeOverlay(theme, title, l.viewport.View()+"\n"+footer, l.boxWidth(width), width, height)
}

// formatLogRecord renders one record as
// "15:04:05 INFO  poller  poll complete track=Run".
func formatLogRecord(styles Styles, rec logtail.Record, width int) string {
	if rec.Raw {
		return styles.MutedText.Render(truncate(rec.Msg, width))
	}

	var parts []string
	if !rec.Time.IsZero() {
		parts = append(parts, styles.FaintText.Render(rec.Time.Local().Format("15:04:05")))
	}
	parts = append(parts, levelStyle(styles, rec.Level).Render(padRight(strings.ToUpper(rec.Level), 5)))
	if rec.Component != "" {
		parts = append(parts, styles.AccentText.Render(rec.Component))
	}
	parts = append(parts, styles.Text.Render(rec.Msg))
	if fields := rec.FieldString(); fields != "" {
		parts = append(parts, styles.FaintText.Render(fields))
	}
	line := strings.Join(parts, " ")
	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}

func levelStyle(styles Styles, level string) lipgloss.Style {
	switch level {
	case "error", "fatal":
		return styles.DangerText.Bold(true)
	case "warn", "warning":
		return styles.WarningText
	case "debug":
		return styles.FaintText
	default:
		return styles.AccentText
	}
}
