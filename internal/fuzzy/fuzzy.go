// Package fuzzy scores and ranks short candidate strings against a typed query.
//
// The scorer is greedy: each query rune is matched at its first opportunity
// in the target, scanning left to right, and earlier matches are never
// revisited. Pathological inputs with repeated characters can therefore
// score lower than their best possible alignment. Results are deterministic
// and cheap to compute for the few thousand names a music library holds.
package fuzzy

import (
	"slices"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Scoring weights.
const (
	matchPoint     = 1
	adjacentBonus  = 5
	boundaryBonus  = 3
	exactCaseBonus = 1
	lengthBudget   = 100
)

// Score reports how well query matches target. The boolean is false when the
// query runes do not appear in target as an in-order, case-insensitive
// subsequence. An empty query matches everything with a score of zero.
func Score(query, target string) (int, bool) {
	if query == "" {
		return 0, true
	}

	q := []rune(norm.NFC.String(query))
	t := []rune(norm.NFC.String(target))

	score := 0
	qi := 0
	prev := -1
	for ti, r := range t {
		if qi == len(q) {
			break
		}
		want := q[qi]
		if unicode.ToLower(r) != unicode.ToLower(want) {
			continue
		}
		score += matchPoint
		if prev >= 0 && ti == prev+1 {
			score += adjacentBonus
		}
		if ti == 0 || !isWordRune(t[ti-1]) {
			score += boundaryBonus
		}
		if r == want {
			score += exactCaseBonus
		}
		prev = ti
		qi++
	}
	if qi < len(q) {
		return 0, false
	}

	if bonus := lengthBudget - len(t); bonus > 0 {
		score += bonus
	}
	return score, true
}

// Rank filters items by query and returns the indices of the survivors,
// best score first. Each item is scored against every string keys returns
// and keeps its best score. Equal scores keep their original relative order.
// An empty query returns the identity order.
func Rank[T any](query string, items []T, keys func(T) []string) []int {
	order := make([]int, 0, len(items))
	if query == "" {
		for i := range items {
			order = append(order, i)
		}
		return order
	}

	type scored struct {
		index int
		score int
	}
	hits := make([]scored, 0, len(items))
	for i, item := range items {
		best, ok := bestScore(query, keys(item))
		if !ok {
			continue
		}
		hits = append(hits, scored{index: i, score: best})
	}

	slices.SortStableFunc(hits, func(a, b scored) int {
		return b.score - a.score
	})
	for _, h := range hits {
		order = append(order, h.index)
	}
	return order
}

func bestScore(query string, candidates []string) (int, bool) {
	best := 0
	found := false
	for _, c := range candidates {
		s, ok := Score(query, c)
		if !ok {
			continue
		}
		if !found || s > best {
			best = s
			found = true
		}
	}
	return best, found
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}
