package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BgStyle renders text segments that share one background color.
// lipgloss resets the background between separately styled segments, so
// every segment, including the spaces between words, is painted explicitly.
// See: https://github.com/charmbracelet/lipgloss/discussions/78
type BgStyle struct {
	bg    lipgloss.TerminalColor
	space string
}

// NewBgStyle creates a background helper for the given color. An empty color
// keeps the terminal's own background.
func NewBgStyle(bgColor string) BgStyle {
	var bg lipgloss.TerminalColor = lipgloss.NoColor{}
	if bgColor != "" {
		bg = lipgloss.Color(bgColor)
	}
	return BgStyle{
		bg:    bg,
		space: lipgloss.NewStyle().Background(bg).Render(" "),
	}
}

// Render renders text with style, painting the background under every cell.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	wordStyle := style.Background(b.bg)
	if !strings.Contains(text, " ") {
		return wordStyle.Render(text)
	}

	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = wordStyle.Render(w)
		}
	}
	return strings.Join(words, b.space)
}

// Space returns a single styled space.
func (b BgStyle) Space() string {
	return b.space
}

// Spaces returns n styled spaces.
func (b BgStyle) Spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Background(b.bg).Render(strings.Repeat(" ", n))
}

// Repeat renders s repeated n times in style.
func (b BgStyle) Repeat(s string, n int, style lipgloss.Style) string {
	if n <= 0 {
		return ""
	}
	return style.Background(b.bg).Render(strings.Repeat(s, n))
}

// Color returns the background color.
func (b BgStyle) Color() lipgloss.TerminalColor {
	return b.bg
}

// FillLine pads one rendered line to width with the background color and
// cuts anything wider.
func (b BgStyle) FillLine(content string, width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Background(b.bg).
		Width(width).
		MaxWidth(width).
		MaxHeight(1).
		Render(content)
}

// Segment is one styled run of text inside a line.
type Segment struct {
	Text  string
	Style lipgloss.Style
}

// Line renders segments left to right and fills the result to width.
func (b BgStyle) Line(width int, segs ...Segment) string {
	var sb strings.Builder
	for _, s := range segs {
		sb.WriteString(b.Render(s.Text, s.Style))
	}
	return b.FillLine(sb.String(), width)
}
