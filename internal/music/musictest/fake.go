// Package musictest provides an in-memory player for tests.
package musictest

import (
	"context"
	"sync"

	"github.com/five82/cadence/internal/music"
)

// Player implements music.Fetcher and music.Commander over fixed data.
// Commands are recorded, not applied.
type Player struct {
	mu sync.Mutex

	Snapshot       music.Snapshot
	Playlists      []string
	PlaylistTracks map[string][]music.TrackEntry
	Artists        []string
	ArtistTracks   map[string][]music.TrackEntry
	Search         []music.TrackEntry
	Devices        []music.AirPlayDevice
	Volume         int
	Shuffle        music.Toggle

	// SendErr is returned by Send when set.
	SendErr error

	sent  []music.Command
	calls map[string]int
	done  chan music.Command
}

// NewPlayer returns a stopped player with unknown volume.
func NewPlayer() *Player {
	return &Player{
		Snapshot: music.Snapshot{Volume: -1},
		Volume:   -1,
		calls:    make(map[string]int),
		done:     make(chan music.Command, 64),
	}
}

func (p *Player) count(op string) {
	p.mu.Lock()
	p.calls[op]++
	p.mu.Unlock()
}

// Calls returns how many times op was invoked.
func (p *Player) Calls(op string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[op]
}

// Sent returns the commands received so far.
func (p *Player) Sent() []music.Command {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]music.Command, len(p.sent))
	copy(out, p.sent)
	return out
}

// Done receives each command after Send returns.
func (p *Player) Done() <-chan music.Command { return p.done }

// SetSnapshot replaces the snapshot returned by later polls.
func (p *Player) SetSnapshot(snap music.Snapshot) {
	p.mu.Lock()
	p.Snapshot = snap
	p.mu.Unlock()
}

func (p *Player) FetchSnapshot(context.Context) music.Snapshot {
	p.count("snapshot")
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Snapshot
}

func (p *Player) FetchNowPlaying(context.Context) (music.Track, music.PlayerState) {
	p.count("now_playing")
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Snapshot.Track, p.Snapshot.State
}

func (p *Player) FetchPlaylists(context.Context) []string {
	p.count("playlists")
	return p.Playlists
}

func (p *Player) FetchPlaylistTracks(_ context.Context, playlist string) []music.TrackEntry {
	p.count("playlist_tracks")
	return p.PlaylistTracks[playlist]
}

func (p *Player) FetchArtists(context.Context) []string {
	p.count("artists")
	return p.Artists
}

func (p *Player) FetchArtistTracks(_ context.Context, artist string) []music.TrackEntry {
	p.count("artist_tracks")
	return p.ArtistTracks[artist]
}

func (p *Player) SearchLibrary(context.Context, string) []music.TrackEntry {
	p.count("search")
	return p.Search
}

func (p *Player) FetchShuffle(context.Context) music.Toggle {
	p.count("shuffle")
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Shuffle
}

func (p *Player) FetchVolume(context.Context) int {
	p.count("volume")
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Volume
}

func (p *Player) FetchAirPlayDevices(context.Context) []music.AirPlayDevice {
	p.count("airplay")
	return p.Devices
}

// Send records cmd and returns SendErr.
func (p *Player) Send(_ context.Context, cmd music.Command) error {
	p.mu.Lock()
	p.sent = append(p.sent, cmd)
	err := p.SendErr
	p.mu.Unlock()
	select {
	case p.done <- cmd:
	default:
	}
	return err
}

var (
	_ music.Fetcher   = (*Player)(nil)
	_ music.Commander = (*Player)(nil)
)
