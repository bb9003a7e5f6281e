package fuzzy

import (
	"strings"
	"testing"
	"unicode"

	"pgregory.net/rapid"
)

func TestScore_EmptyQueryMatchesWithZero(t *testing.T) {
	for _, target := range []string{"", "Run", "Man in the Mirror"} {
		got, ok := Score("", target)
		if !ok || got != 0 {
			t.Fatalf("Score(\"\", %q) = (%d, %v), want (0, true)", target, got, ok)
		}
	}
}

func TestScore_WeightsAndBonuses(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		target string
		want   int
	}{
		{"short exact word", "run", "Run", 18 + 97},
		{"prefix of longer title", "run", "Running Man", 18 + 89},
		{"case exact first rune", "R", "Run", 1 + 3 + 1 + 97},
		{"case differs first rune", "r", "Run", 1 + 3 + 97},
		{"boundary after space", "m", "Running Man", 1 + 3 + 89},
		{"mid word no boundary", "n", "Run", 1 + 1 + 97},
		{"length bonus floors at zero", "a", "a" + strings.Repeat("x", 120), 1 + 3 + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Score(tt.query, tt.target)
			if !ok {
				t.Fatalf("Score(%q, %q) rejected, want %d", tt.query, tt.target, tt.want)
			}
			if got != tt.want {
				t.Fatalf("Score(%q, %q) = %d, want %d", tt.query, tt.target, got, tt.want)
			}
		})
	}
}

func TestScore_RejectsMissingSubsequence(t *testing.T) {
	if _, ok := Score("run", "Man in the Mirror"); ok {
		t.Fatalf("Score(run, Man in the Mirror) matched, want rejection")
	}
	if _, ok := Score("nur", "Run"); ok {
		t.Fatalf("Score(nur, Run) matched, want rejection (order matters)")
	}
}

func TestScore_GreedyTakesFirstOpportunity(t *testing.T) {
	// The best alignment would use the second "a" for an adjacency bonus,
	// but the scanner commits to the first one.
	got, ok := Score("ab", "a_ab")
	if !ok {
		t.Fatalf("Score(ab, a_ab) rejected")
	}
	if want := 5 + 2 + 96; got != want {
		t.Fatalf("Score(ab, a_ab) = %d, want %d", got, want)
	}
}

func TestScore_NormalizesComposedAndDecomposed(t *testing.T) {
	decomposed := "Beyonce\u0301"
	if _, ok := Score("beyonc\u00e9", decomposed); !ok {
		t.Fatalf("Score did not match composed query against decomposed target")
	}
}

func TestRank_RunScenario(t *testing.T) {
	items := []string{"Running Man", "Man in the Mirror", "Run"}
	got := Rank("run", items, func(s string) []string { return []string{s} })
	want := []int{2, 0}
	if len(got) != len(want) {
		t.Fatalf("Rank = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Rank = %v, want %v", got, want)
		}
	}
}

func TestRank_EmptyQueryIsIdentity(t *testing.T) {
	items := []string{"c", "b", "a"}
	got := Rank("", items, func(s string) []string { return []string{s} })
	for i, idx := range got {
		if idx != i {
			t.Fatalf("Rank(\"\") = %v, want identity", got)
		}
	}
	if len(got) != len(items) {
		t.Fatalf("Rank(\"\") len = %d, want %d", len(got), len(items))
	}
}

func TestRank_TiesKeepOriginalOrder(t *testing.T) {
	items := []string{"abc x", "abc y", "abc z"}
	got := Rank("abc", items, func(s string) []string { return []string{s} })
	want := []int{0, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Rank = %v, want %v", got, want)
		}
	}
}

func TestRank_UsesBestKey(t *testing.T) {
	type track struct{ name, artist string }
	items := []track{
		{name: "Billie Jean", artist: "Michael Jackson"},
		{name: "Thriller", artist: "Michael Jackson"},
		{name: "Jackson", artist: "Johnny Cash"},
	}
	got := Rank("jackson", items, func(tr track) []string { return []string{tr.name, tr.artist} })
	if len(got) != 3 {
		t.Fatalf("Rank len = %d, want 3 (artist key should match)", len(got))
	}
	if got[0] != 2 {
		t.Fatalf("Rank[0] = %d, want 2 (short exact name wins)", got[0])
	}
}

func TestScore_MatchesIffSubsequence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		query := rapid.StringMatching(`[abcAB ]{0,4}`).Draw(t, "query")
		target := rapid.StringMatching(`[abcdAB _-]{0,12}`).Draw(t, "target")

		score, ok := Score(query, target)
		if want := isSubsequence(query, target); ok != want {
			t.Fatalf("Score(%q, %q) ok = %v, want %v", query, target, ok, want)
		}
		if ok && score < 0 {
			t.Fatalf("Score(%q, %q) = %d, want non-negative", query, target, score)
		}
	})
}

func TestRank_SortedDescendingAndStable(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		items := rapid.SliceOfN(rapid.StringMatching(`[abc ]{0,8}`), 0, 12).Draw(t, "items")
		query := rapid.StringMatching(`[abc]{1,3}`).Draw(t, "query")

		order := Rank(query, items, func(s string) []string { return []string{s} })
		for i := 1; i < len(order); i++ {
			prev, _ := Score(query, items[order[i-1]])
			cur, _ := Score(query, items[order[i]])
			if prev < cur {
				t.Fatalf("order %v not descending at %d", order, i)
			}
			if prev == cur && order[i-1] > order[i] {
				t.Fatalf("order %v not stable at %d", order, i)
			}
		}
	})
}

func isSubsequence(query, target string) bool {
	q := []rune(query)
	qi := 0
	for _, r := range target {
		if qi < len(q) && unicode.ToLower(r) == unicode.ToLower(q[qi]) {
			qi++
		}
	}
	return qi == len(q)
}
