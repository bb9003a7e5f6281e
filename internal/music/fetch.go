package music

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Fetcher reads player state. Implementations degrade to empty or unknown
// values instead of returning errors.
type Fetcher interface {
	FetchSnapshot(ctx context.Context) Snapshot
	FetchNowPlaying(ctx context.Context) (Track, PlayerState)
	FetchPlaylists(ctx context.Context) []string
	FetchPlaylistTracks(ctx context.Context, playlist string) []TrackEntry
	FetchArtists(ctx context.Context) []string
	FetchArtistTracks(ctx context.Context, artist string) []TrackEntry
	SearchLibrary(ctx context.Context, query string) []TrackEntry
	FetchShuffle(ctx context.Context) Toggle
	FetchVolume(ctx context.Context) int
	FetchAirPlayDevices(ctx context.Context) []AirPlayDevice
}

// snapshotFetchLimit caps concurrent osascript processes per snapshot.
const snapshotFetchLimit = 4

// FetchSnapshot reads every polled field. The individual scripts run
// concurrently and are assembled into one value.
func (c *Client) FetchSnapshot(ctx context.Context) Snapshot {
	snap := Snapshot{Volume: -1}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(snapshotFetchLimit)
	g.Go(func() error {
		snap.Track, snap.State = c.FetchNowPlaying(gctx)
		return nil
	})
	g.Go(func() error {
		snap.Volume = c.FetchVolume(gctx)
		return nil
	})
	g.Go(func() error {
		snap.Shuffle = c.FetchShuffle(gctx)
		return nil
	})
	g.Go(func() error {
		snap.Repeat = c.FetchRepeat(gctx)
		return nil
	})
	g.Go(func() error {
		snap.CurrentPlaylist = c.FetchCurrentPlaylist(gctx)
		return nil
	})
	g.Go(func() error {
		snap.UpNext = c.FetchUpNext(gctx)
		return nil
	})
	g.Go(func() error {
		snap.Queue = c.FetchQueue(gctx)
		return nil
	})
	_ = g.Wait()

	return snap
}

// FetchNowPlaying reads the current track and player state.
func (c *Client) FetchNowPlaying(ctx context.Context) (Track, PlayerState) {
	out, ok := c.run(ctx, "now_playing", fmt.Sprintf(nowPlayingScript, c.app))
	if !ok {
		return Track{}, Stopped
	}
	return parseNowPlaying(out)
}

func parseNowPlaying(out string) (Track, PlayerState) {
	switch out {
	case "", stoppedMarker:
		return Track{}, Stopped
	case notRunningMarker:
		return Track{}, NotRunning
	}
	parts := strings.Split(out, "\n")
	if len(parts) < 6 {
		return Track{}, Stopped
	}
	track := Track{
		Name:     parts[0],
		Artist:   parts[1],
		Album:    parts[2],
		Duration: ParseNumber(parts[4]),
		Position: ParseNumber(parts[5]),
	}
	if len(parts) > 6 {
		track.Loved = ParseToggle(parts[6])
	}
	return track, ParsePlayerState(parts[3])
}

// FetchPlaylists lists playlist names in the player's order.
func (c *Client) FetchPlaylists(ctx context.Context) []string {
	out, ok := c.run(ctx, "playlists", fmt.Sprintf(playlistsScript, c.app))
	if !ok || out == notRunningMarker {
		return nil
	}
	return splitLines(out)
}

// FetchPlaylistTracks lists the tracks of one playlist.
func (c *Client) FetchPlaylistTracks(ctx context.Context, playlist string) []TrackEntry {
	out, ok := c.run(ctx, "playlist_tracks", fmt.Sprintf(playlistTracksScript, c.app, Escape(playlist)))
	if !ok || out == noneMarker {
		return nil
	}
	return parseTrackRows(out)
}

// FetchArtists lists distinct library artists sorted case-insensitively.
func (c *Client) FetchArtists(ctx context.Context) []string {
	out, ok := c.run(ctx, "artists", fmt.Sprintf(artistsScript, c.app))
	if !ok || out == noneMarker {
		return nil
	}
	artists := splitLines(out)
	sort.SliceStable(artists, func(i, j int) bool {
		return strings.ToLower(artists[i]) < strings.ToLower(artists[j])
	})
	return artists
}

// FetchArtistTracks lists library tracks by one artist.
func (c *Client) FetchArtistTracks(ctx context.Context, artist string) []TrackEntry {
	out, ok := c.run(ctx, "artist_tracks", fmt.Sprintf(artistTracksScript, c.app, Escape(artist)))
	if !ok || out == noneMarker {
		return nil
	}
	return parseTrackRows(out)
}

// SearchLibrary runs the player's own library search for songs.
func (c *Client) SearchLibrary(ctx context.Context, query string) []TrackEntry {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	out, ok := c.run(ctx, "search", fmt.Sprintf(searchScript, c.app, Escape(query), c.searchLimit))
	if !ok || out == noneMarker {
		return nil
	}
	return parseTrackRows(out)
}

// FetchShuffle reads the shuffle flag of the current playlist.
func (c *Client) FetchShuffle(ctx context.Context) Toggle {
	out, ok := c.run(ctx, "shuffle", fmt.Sprintf(shuffleScript, c.app))
	if !ok {
		return Unknown
	}
	return ParseToggle(out)
}

// FetchRepeat reads the song repeat mode.
func (c *Client) FetchRepeat(ctx context.Context) RepeatMode {
	out, ok := c.run(ctx, "repeat", fmt.Sprintf(repeatScript, c.app))
	if !ok {
		return RepeatUnknown
	}
	return ParseRepeat(out)
}

// FetchVolume reads the system output volume, or -1 when unknown.
func (c *Client) FetchVolume(ctx context.Context) int {
	out, ok := c.run(ctx, "volume", volumeScript)
	if !ok {
		return -1
	}
	return int(ParseNumber(out))
}

// FetchCurrentPlaylist names the playlist the current track plays from.
func (c *Client) FetchCurrentPlaylist(ctx context.Context) string {
	out, ok := c.run(ctx, "current_playlist", fmt.Sprintf(currentPlaylistScript, c.app))
	if !ok {
		return ""
	}
	return out
}

// FetchUpNext reads the next track, first from the player window and then
// from the current playlist order.
func (c *Client) FetchUpNext(ctx context.Context) QueueEntry {
	if out, ok := c.run(ctx, "up_next_ui", fmt.Sprintf(upNextUIScript, c.app)); ok && out != noMarker && out != "" {
		return parseEntry(out)
	}
	out, ok := c.run(ctx, "up_next_playlist", fmt.Sprintf(upNextPlaylistScript, c.app))
	if !ok || out == noMarker || out == "" {
		return QueueEntry{}
	}
	return parseEntry(out)
}

func parseEntry(out string) QueueEntry {
	name, artist, _ := strings.Cut(out, "\n")
	return QueueEntry{Name: strings.TrimSpace(name), Artist: strings.TrimSpace(artist)}
}

// FetchQueue reads the upcoming tracks from the player's Playing Next panel.
func (c *Client) FetchQueue(ctx context.Context) []QueueEntry {
	out, ok := c.run(ctx, "queue", fmt.Sprintf(queueScript, c.app, c.queueSize))
	if !ok || out == "" {
		return nil
	}
	pairs := parsePairs(out)
	entries := make([]QueueEntry, 0, len(pairs))
	for _, p := range pairs {
		entries = append(entries, QueueEntry{Name: p[0], Artist: p[1]})
	}
	return entries
}

// FetchAirPlayDevices lists AirPlay outputs and whether each is selected.
func (c *Client) FetchAirPlayDevices(ctx context.Context) []AirPlayDevice {
	out, ok := c.run(ctx, "airplay", fmt.Sprintf(airPlayScript, c.app))
	if !ok || out == noneMarker {
		return nil
	}
	pairs := parsePairs(out)
	devices := make([]AirPlayDevice, 0, len(pairs))
	for _, p := range pairs {
		devices = append(devices, AirPlayDevice{Name: p[0], Selected: strings.TrimSpace(p[1]) == "true"})
	}
	return devices
}
