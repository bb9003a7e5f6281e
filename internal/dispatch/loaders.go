package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// Loaders fetch candidate lists in the background. Results land in the
// store, which marks the matching list dirty for the UI to pick up.

// RefreshPlaylists reloads playlist names.
func (d *Dispatcher) RefreshPlaylists() {
	d.store.SetStatus("Refreshing...")
	d.spawn("refresh_playlists", func(ctx context.Context, logger *log.Logger) {
		names := d.fetcher.FetchPlaylists(ctx)
		if names == nil {
			logger.Debug("playlists unavailable, keeping current list")
			return
		}
		d.store.SetPlaylists(names)
		d.store.SetStatus(fmt.Sprintf("Loaded %d playlists", len(names)))
		logger.Debug("playlists loaded", "count", len(names))
	})
}

// LoadPlaylistTracks loads the tracks of playlist.
func (d *Dispatcher) LoadPlaylistTracks(playlist string) {
	d.store.SetStatus("Loading tracks: " + playlist)
	d.spawn("load_playlist_tracks", func(ctx context.Context, logger *log.Logger) {
		tracks := d.fetcher.FetchPlaylistTracks(ctx, playlist)
		d.store.SetPlaylistTracks(playlist, tracks)
		logger.Debug("tracks loaded", "playlist", playlist, "count", len(tracks))
	})
}

// LoadArtists loads every library artist.
func (d *Dispatcher) LoadArtists() {
	d.store.SetStatus("Loading artists...")
	d.spawn("load_artists", func(ctx context.Context, logger *log.Logger) {
		artists := d.fetcher.FetchArtists(ctx)
		d.store.SetArtists(artists)
		d.store.SetStatus(fmt.Sprintf("Loaded %d artists", len(artists)))
		logger.Debug("artists loaded", "count", len(artists))
	})
}

// LoadArtistTracks loads the library tracks of artist.
func (d *Dispatcher) LoadArtistTracks(artist string) {
	d.store.SetStatus("Loading: " + artist)
	d.spawn("load_artist_tracks", func(ctx context.Context, logger *log.Logger) {
		tracks := d.fetcher.FetchArtistTracks(ctx, artist)
		d.store.SetArtistTracks(artist, tracks)
		logger.Debug("artist tracks loaded", "artist", artist, "count", len(tracks))
	})
}

// SearchLibrary runs query against the whole library. Blank queries are
// ignored.
func (d *Dispatcher) SearchLibrary(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}
	d.store.SetStatus("Searching: " + query)
	d.spawn("search_library", func(ctx context.Context, logger *log.Logger) {
		results := d.fetcher.SearchLibrary(ctx, query)
		d.store.SetSearchResults(query, results)
		d.store.SetStatus(fmt.Sprintf("Found %d results", len(results)))
		logger.Debug("search done", "query", query, "count", len(results))
	})
}

// LoadAirPlayDevices reloads the AirPlay device list.
func (d *Dispatcher) LoadAirPlayDevices() {
	d.spawn("load_airplay", func(ctx context.Context, logger *log.Logger) {
		devices := d.fetcher.FetchAirPlayDevices(ctx)
		d.store.SetAirPlayDevices(devices)
		logger.Debug("airplay devices loaded", "count", len(devices))
	})
}
