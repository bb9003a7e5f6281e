package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/cadence/internal/music"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"fits", "Run", 10, "Run"},
		{"trims", "  Run  ", 3, "Run"},
		{"cut", "Running Man", 5, "Runn…"},
		{"zero", "Run", 0, ""},
		{"wide", "東京事変", 5, "東京…"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := truncate(tc.in, tc.limit); got != tc.want {
				t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
			}
		})
	}
}

func TestPadding(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Fatalf("padRight = %q", got)
	}
	if got := padLeft("3:45", 6); got != "  3:45" {
		t.Fatalf("padLeft = %q", got)
	}
	if got := padRight("東京", 5); cellWidth(got) != 5 {
		t.Fatalf("padRight wide = %q (%d cells)", got, cellWidth(got))
	}
}

func TestCountLabel(t *testing.T) {
	if got := countLabel(12, 12); got != "12" {
		t.Fatalf("countLabel(12, 12) = %q", got)
	}
	if got := countLabel(3, 12); got != "3/12" {
		t.Fatalf("countLabel(3, 12) = %q", got)
	}
}

func TestRenderTitledBoxKeepsWidth(t *testing.T) {
	m, _ := newHarness(t)
	box := m.renderTitledBox(" Library (3) ", "  Chill\n  Focus with a name far longer than the box is wide", 30, 6, true)
	lines := strings.Split(box, "\n")
	if len(lines) != 6 {
		t.Fatalf("box has %d lines, want 6", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 30 {
			t.Fatalf("line %d is %d cells wide, want 30: %q", i, w, line)
		}
	}
	if !strings.HasPrefix(lines[0], "╭─ Library (3) ") {
		t.Fatalf("top border = %q", lines[0])
	}
}

func TestTrackRowFitsWidth(t *testing.T) {
	m, _ := newHarness(t)
	for _, width := range []int{20, 40, 80} {
		for _, selected := range []bool{false, true} {
			row := m.trackRow(music.TrackEntry{Name: "A rather long track title", Artist: "Some Artist", Duration: 245}, width, selected)
			if w := lipgloss.Width(row); w != width {
				t.Fatalf("width %d selected=%v: row is %d cells: %q", width, selected, w, row)
			}
		}
	}
}
