package state

import "github.com/five82/cadence/internal/music"

// HistoryLimit bounds the recently played list.
const HistoryLimit = 50

// History is a most-recent-first list of played tracks with no two equal
// neighbours.
type History struct {
	entries []music.QueueEntry
}

// Push records e as the most recent entry. Blank entries and repeats of the
// current head are ignored. The oldest entry falls off past HistoryLimit.
func (h *History) Push(e music.QueueEntry) bool {
	if e.Name == "" {
		return false
	}
	if len(h.entries) > 0 && h.entries[0] == e {
		return false
	}
	h.entries = append(h.entries, music.QueueEntry{})
	copy(h.entries[1:], h.entries)
	h.entries[0] = e
	if len(h.entries) > HistoryLimit {
		h.entries = h.entries[:HistoryLimit]
	}
	return true
}

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }

// Entries returns a copy of the entries, most recent first.
func (h *History) Entries() []music.QueueEntry {
	return cloneSlice(h.entries)
}
