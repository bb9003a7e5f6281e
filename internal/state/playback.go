package state

import (
	"time"

	"github.com/five82/cadence/internal/music"
)

// Playback is the player's state as last known, plus the instant at which
// Track.Position was accurate.
type Playback struct {
	Track           music.Track
	State           music.PlayerState
	Shuffle         music.Toggle
	Repeat          music.RepeatMode
	Volume          int // -1 when unknown
	CurrentPlaylist string
	UpNext          music.QueueEntry
	Queue           []music.QueueEntry
	Anchor          time.Time
}

// Advance extrapolates Position to now while playing and moves the anchor.
// Position never leaves [0, Duration].
func (p *Playback) Advance(now time.Time) {
	if p.State == music.Playing && p.Track.Duration > 0 {
		if elapsed := now.Sub(p.Anchor).Seconds(); elapsed > 0 {
			p.Track.Position = clampPosition(p.Track.Position+elapsed, p.Track.Duration)
		}
	}
	p.Anchor = now
}

// SetPosition records an exact position, as after a seek.
func (p *Playback) SetPosition(pos float64, now time.Time) {
	p.Track.Position = clampPosition(pos, p.Track.Duration)
	p.Anchor = now
}

// Progress returns Position/Duration in [0, 1].
func (p Playback) Progress() float64 {
	if p.Track.Duration <= 0 {
		return 0
	}
	return clampPosition(p.Track.Position, p.Track.Duration) / p.Track.Duration
}

func clampPosition(pos, duration float64) float64 {
	if pos < 0 {
		return 0
	}
	if duration > 0 && pos > duration {
		return duration
	}
	return pos
}
