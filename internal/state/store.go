package state

import (
	"sync"
	"time"

	"github.com/five82/cadence/internal/music"
)

// Status messages.
const (
	StatusIdle    = "Ready"
	StatusLoading = "Loading..."
)

// StatusTTL is how long a status message stays before decaying to idle.
const StatusTTL = 5 * time.Second

// defaultPreMuteVolume is restored by unmute when no earlier level is known.
const defaultPreMuteVolume = 50

// Dirty marks candidate lists that changed since a consumer last looked.
type Dirty uint8

const (
	DirtyPlaylists Dirty = 1 << iota
	DirtyPlaylistTracks
	DirtyArtists
	DirtyArtistTracks
	DirtySearch
	DirtyAirPlay
	DirtyHistory
)

// Has reports whether any bit of flag is set.
func (d Dirty) Has(flag Dirty) bool { return d&flag != 0 }

// Snapshot is a copy of everything the UI renders.
type Snapshot struct {
	Playback

	PreMuteVolume int

	Playlists []string

	PlaylistTracks    []music.TrackEntry
	PlaylistTracksFor string

	Artists []string

	ArtistTracks    []music.TrackEntry
	ArtistTracksFor string

	SearchResults []music.TrackEntry
	SearchQuery   string

	AirPlay []music.AirPlayDevice

	History []music.QueueEntry

	Status   string
	StatusAt time.Time

	LastPoll  time.Time
	PollCount int
}

// Store guards the shared snapshot. Callers read copies and write through
// patch functions; nothing outside the store holds the lock.
type Store struct {
	mu        sync.Mutex
	snapshot  Snapshot
	history   History
	lastTrack music.QueueEntry
	dirty     Dirty
	now       func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns a store holding placeholder values.
func New(opts ...Option) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	now := s.now()
	s.snapshot = Snapshot{
		Playback:      Playback{Volume: -1, Anchor: now},
		PreMuteVolume: defaultPreMuteVolume,
		Status:        StatusLoading,
		StatusAt:      now,
	}
	return s
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

// Update applies patch under the lock.
func (s *Store) Update(patch func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	patch(&s.snapshot)
}

// Tick advances the interpolated position, decays a stale status message,
// and returns the result. It is called once per render frame.
func (s *Store) Tick() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.snapshot.Advance(now)
	if s.snapshot.Status != StatusIdle && now.Sub(s.snapshot.StatusAt) > StatusTTL {
		s.snapshot.Status = StatusIdle
	}
	return s.copyLocked()
}

// SetStatus replaces the status message.
func (s *Store) SetStatus(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setStatusLocked(msg)
}

// Patch applies patch and sets the status message in one critical section.
func (s *Store) Patch(status string, patch func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if patch != nil {
		patch(&s.snapshot)
	}
	if status != "" {
		s.setStatusLocked(status)
	}
}

// Now returns the store's clock reading.
func (s *Store) Now() time.Time {
	return s.now()
}

// ApplyPoll commits a full player read. When the previous poll and this one
// both name a track and the names differ, the previous track is pushed onto
// the history. A poll with no track forgets the previous one, so a stop
// between two songs records nothing.
func (s *Store) ApplyPoll(snap music.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := snap.Track.Name
	if name != "" && s.lastTrack.Name != "" && s.lastTrack.Name != name {
		if s.history.Push(s.lastTrack) {
			s.snapshot.History = s.history.Entries()
			s.dirty |= DirtyHistory
		}
	}
	s.lastTrack = music.QueueEntry{Name: name, Artist: snap.Track.Artist}

	now := s.now()
	p := &s.snapshot.Playback
	p.Track = snap.Track
	p.State = snap.State
	p.Shuffle = snap.Shuffle
	p.Repeat = snap.Repeat
	p.Volume = snap.Volume
	p.CurrentPlaylist = snap.CurrentPlaylist
	p.UpNext = snap.UpNext
	p.Queue = cloneSlice(snap.Queue)
	p.Anchor = now
	s.snapshot.LastPoll = now
	s.snapshot.PollCount++
}

// SetPlaylists replaces the playlist names.
func (s *Store) SetPlaylists(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Playlists = cloneSlice(names)
	s.dirty |= DirtyPlaylists
}

// SetPlaylistTracks replaces the track listing of playlist.
func (s *Store) SetPlaylistTracks(playlist string, tracks []music.TrackEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.PlaylistTracks = cloneSlice(tracks)
	s.snapshot.PlaylistTracksFor = playlist
	s.dirty |= DirtyPlaylistTracks
}

// SetArtists replaces the artist names.
func (s *Store) SetArtists(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Artists = cloneSlice(names)
	s.dirty |= DirtyArtists
}

// SetArtistTracks replaces the track listing of artist.
func (s *Store) SetArtistTracks(artist string, tracks []music.TrackEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.ArtistTracks = cloneSlice(tracks)
	s.snapshot.ArtistTracksFor = artist
	s.dirty |= DirtyArtistTracks
}

// SetSearchResults replaces the library search results for query.
func (s *Store) SetSearchResults(query string, tracks []music.TrackEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.SearchResults = cloneSlice(tracks)
	s.snapshot.SearchQuery = query
	s.dirty |= DirtySearch
}

// SetAirPlayDevices replaces the AirPlay device list.
func (s *Store) SetAirPlayDevices(devices []music.AirPlayDevice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.AirPlay = cloneSlice(devices)
	s.dirty |= DirtyAirPlay
}

// ToggleAirPlayDevice flips the selection of the named device, sets the
// status message and marks the device list dirty, all under one lock. It
// reports whether the device is known.
func (s *Store) ToggleAirPlayDevice(name, status string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	found := false
	for i := range s.snapshot.AirPlay {
		if s.snapshot.AirPlay[i].Name == name {
			s.snapshot.AirPlay[i].Selected = !s.snapshot.AirPlay[i].Selected
			found = true
		}
	}
	if status != "" {
		s.setStatusLocked(status)
	}
	if found {
		s.dirty |= DirtyAirPlay
	}
	return found
}

// TakeDirty returns the pending dirty flags and clears them.
func (s *Store) TakeDirty() Dirty {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.dirty
	s.dirty = 0
	return d
}

func (s *Store) setStatusLocked(msg string) {
	s.snapshot.Status = msg
	s.snapshot.StatusAt = s.now()
}

func (s *Store) copyLocked() Snapshot {
	snap := s.snapshot
	snap.Queue = cloneSlice(s.snapshot.Queue)
	snap.Playlists = cloneSlice(s.snapshot.Playlists)
	snap.PlaylistTracks = cloneSlice(s.snapshot.PlaylistTracks)
	snap.Artists = cloneSlice(s.snapshot.Artists)
	snap.ArtistTracks = cloneSlice(s.snapshot.ArtistTracks)
	snap.SearchResults = cloneSlice(s.snapshot.SearchResults)
	snap.AirPlay = cloneSlice(s.snapshot.AirPlay)
	snap.History = cloneSlice(s.snapshot.History)
	return snap
}

func cloneSlice[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}
