package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// truncate shortens a string to fit limit terminal cells, adding an ellipsis
// if needed. Wide runes (CJK, emoji) count as two cells.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return ""
	}
	if runewidth.StringWidth(value) <= limit {
		return value
	}
	return runewidth.Truncate(value, limit, ellipsis)
}

// padRight pads a string with spaces to the given cell width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.FillRight(s, width)
}

// padLeft right-aligns a string inside the given cell width.
func padLeft(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.FillLeft(s, width)
}

// cellWidth returns the number of terminal cells s occupies.
func cellWidth(s string) int {
	return runewidth.StringWidth(s)
}

// ternary returns a if cond is true, otherwise b.
func ternary(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}
