package music

import "strings"

// PlayerState is the run-state reported by the player.
type PlayerState int

const (
	Stopped PlayerState = iota
	Playing
	Paused
	NotRunning
)

// ParsePlayerState maps the player's own state names onto PlayerState.
// Anything unrecognised is treated as stopped.
func ParsePlayerState(s string) PlayerState {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PLAYING":
		return Playing
	case "PAUSED":
		return Paused
	case notRunningMarker:
		return NotRunning
	default:
		return Stopped
	}
}

// Label returns a human-readable state name.
func (s PlayerState) Label() string {
	switch s {
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	case NotRunning:
		return "Not Running"
	default:
		return "Stopped"
	}
}

// Icon returns a single glyph for the state.
func (s PlayerState) Icon() string {
	switch s {
	case Playing:
		return "▶"
	case Paused:
		return "⏸"
	case NotRunning:
		return "○"
	default:
		return "⏹"
	}
}

// Active reports whether a track is loaded and seekable.
func (s PlayerState) Active() bool {
	return s == Playing || s == Paused
}

// Toggle is a tri-state flag: the player may not report a value.
type Toggle int

const (
	Unknown Toggle = iota
	Off
	On
)

// ToggleOf converts a known boolean.
func ToggleOf(b bool) Toggle {
	if b {
		return On
	}
	return Off
}

// ParseToggle maps "true" and "false" onto On and Off.
func ParseToggle(s string) Toggle {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return On
	case "false":
		return Off
	default:
		return Unknown
	}
}

// Flip inverts a known value. Unknown stays unknown.
func (t Toggle) Flip() Toggle {
	switch t {
	case On:
		return Off
	case Off:
		return On
	default:
		return Unknown
	}
}

func (t Toggle) String() string {
	switch t {
	case On:
		return "on"
	case Off:
		return "off"
	default:
		return "unknown"
	}
}

// RepeatMode is the player's song repeat setting.
type RepeatMode int

const (
	RepeatUnknown RepeatMode = iota
	RepeatOff
	RepeatAll
	RepeatOne
)

// ParseRepeat maps the player's repeat names onto RepeatMode.
func ParseRepeat(s string) RepeatMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "none":
		return RepeatOff
	case "all":
		return RepeatAll
	case "one":
		return RepeatOne
	default:
		return RepeatUnknown
	}
}

// Next returns the mode after m in the off, all, one cycle. An unknown mode
// is treated as off.
func (m RepeatMode) Next() RepeatMode {
	switch m {
	case RepeatAll:
		return RepeatOne
	case RepeatOne:
		return RepeatOff
	default:
		return RepeatAll
	}
}

func (m RepeatMode) String() string {
	switch m {
	case RepeatOff:
		return "off"
	case RepeatAll:
		return "all"
	case RepeatOne:
		return "one"
	default:
		return "unknown"
	}
}

// Track describes the currently loaded track.
type Track struct {
	Name     string
	Artist   string
	Album    string
	Duration float64 // seconds
	Position float64 // seconds
	Loved    Toggle
}

// TrackEntry is a row in a playlist, artist or search listing. Index is the
// 1-based position inside its parent collection, which is how the player
// addresses it.
type TrackEntry struct {
	Name     string
	Artist   string
	Duration float64
	Index    int
}

// QueueEntry is a (name, artist) pair used for up next, the play queue and
// the recently played history.
type QueueEntry struct {
	Name   string
	Artist string
}

// IsZero reports whether the entry carries no track.
func (e QueueEntry) IsZero() bool {
	return e.Name == "" && e.Artist == ""
}

// AirPlayDevice is an output the player can route audio to.
type AirPlayDevice struct {
	Name     string
	Selected bool
}

// Snapshot is one full read of the player.
type Snapshot struct {
	Track           Track
	State           PlayerState
	Shuffle         Toggle
	Repeat          RepeatMode
	Volume          int // -1 when unknown
	CurrentPlaylist string
	UpNext          QueueEntry
	Queue           []QueueEntry
}
