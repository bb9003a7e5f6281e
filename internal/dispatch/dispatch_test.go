package dispatch

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/five82/cadence/internal/music"
	"github.com/five82/cadence/internal/music/musictest"
	"github.com/five82/cadence/internal/state"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *state.Store, *musictest.Player) {
	t.Helper()
	player := musictest.NewPlayer()
	store := state.New()
	d := New(store, player, player, Options{Rate: 1000, Burst: 100})
	t.Cleanup(d.Wait)
	return d, store, player
}

func seed(store *state.Store, patch func(*state.Snapshot)) {
	store.Update(patch)
}

func lastSent(t *testing.T, p *musictest.Player) music.Command {
	t.Helper()
	sent := p.Sent()
	if len(sent) == 0 {
		t.Fatal("no command sent")
	}
	return sent[len(sent)-1]
}

func TestPlayPause_FlipsStateOptimistically(t *testing.T) {
	d, store, player := newTestDispatcher(t)
	seed(store, func(s *state.Snapshot) { s.State = music.Playing })

	d.PlayPause()
	if got := store.Snapshot().State; got != music.Paused {
		t.Fatalf("State = %v, want Paused before send completes", got)
	}
	d.Wait()
	if got := lastSent(t, player).Kind; got != music.CmdPlayPause {
		t.Fatalf("sent %v, want play_pause", got)
	}
}

func TestSeekBy_ClampsAndSends(t *testing.T) {
	d, store, player := newTestDispatcher(t)
	seed(store, func(s *state.Snapshot) {
		s.State = music.Paused
		s.Track = music.Track{Name: "Run", Duration: 200, Position: 195}
	})

	d.SeekForward()
	if got := store.Snapshot().Track.Position; got != 200 {
		t.Fatalf("Position = %v, want 200", got)
	}
	d.Wait()
	cmd := lastSent(t, player)
	if cmd.Kind != music.CmdSeek || cmd.Position != 200 {
		t.Fatalf("sent %+v, want seek to 200", cmd)
	}

	d.SeekBy(-500)
	if got := store.Snapshot().Track.Position; got != 0 {
		t.Fatalf("Position = %v, want 0", got)
	}
}

func TestSeek_IgnoredWhenStopped(t *testing.T) {
	d, store, player := newTestDispatcher(t)
	seed(store, func(s *state.Snapshot) {
		s.State = music.Stopped
		s.Track = music.Track{Duration: 200, Position: 10}
	})

	d.SeekTo(100)
	d.Wait()
	if got := store.Snapshot().Track.Position; got != 10 {
		t.Fatalf("Position = %v, want 10", got)
	}
	if len(player.Sent()) != 0 {
		t.Fatalf("sent %v, want nothing", player.Sent())
	}
}

func TestAdjustVolume_KnownLevel(t *testing.T) {
	d, store, player := newTestDispatcher(t)
	seed(store, func(s *state.Snapshot) { s.Volume = 98 })

	d.VolumeUp()
	snap := store.Snapshot()
	if snap.Volume != 100 || snap.Status != "Volume: 100%" {
		t.Fatalf("volume/status = %d/%q, want 100/Volume: 100%%", snap.Volume, snap.Status)
	}
	d.Wait()
	if cmd := lastSent(t, player); cmd.Kind != music.CmdSetVolume || cmd.Volume != 100 {
		t.Fatalf("sent %+v, want set_volume 100", cmd)
	}
}

func TestAdjustVolume_UnknownLevelReadsFirst(t *testing.T) {
	d, store, player := newTestDispatcher(t)
	player.Volume = 30

	d.VolumeDown()
	d.Wait()

	if got := store.Snapshot().Volume; got != 25 {
		t.Fatalf("Volume = %d, want 25", got)
	}
	if player.Calls("volume") != 1 {
		t.Fatalf("volume reads = %d, want 1", player.Calls("volume"))
	}
	if cmd := lastSent(t, player); cmd.Volume != 25 {
		t.Fatalf("sent %+v, want volume 25", cmd)
	}
}

func TestToggleMute_RoundTrip(t *testing.T) {
	d, store, player := newTestDispatcher(t)
	seed(store, func(s *state.Snapshot) { s.Volume = 40 })

	d.ToggleMute()
	snap := store.Snapshot()
	if snap.Volume != 0 || snap.PreMuteVolume != 40 || snap.Status != "Muted" {
		t.Fatalf("after mute = %d/%d/%q, want 0/40/Muted", snap.Volume, snap.PreMuteVolume, snap.Status)
	}

	d.ToggleMute()
	snap = store.Snapshot()
	if snap.Volume != 40 || snap.Status != "Unmuted (40%)" {
		t.Fatalf("after unmute = %d/%q, want 40/Unmuted (40%%)", snap.Volume, snap.Status)
	}
	d.Wait()
	if got := len(player.Sent()); got != 2 {
		t.Fatalf("sent %d commands, want 2", got)
	}
}

func TestToggleLove_CorrectsFromReadBack(t *testing.T) {
	d, store, player := newTestDispatcher(t)
	seed(store, func(s *state.Snapshot) {
		s.Track = music.Track{Name: "Run", Loved: music.Off}
	})
	// The player reports the track still unloved after the toggle.
	player.SetSnapshot(music.Snapshot{Track: music.Track{Name: "Run", Loved: music.Off}})

	d.ToggleLove()
	if got := store.Snapshot().Track.Loved; got != music.On {
		t.Fatalf("optimistic Loved = %v, want on", got)
	}
	d.Wait()
	snap := store.Snapshot()
	if snap.Track.Loved != music.Off || snap.Status != "♡ Unloved" {
		t.Fatalf("Loved/status = %v/%q, want off/♡ Unloved", snap.Track.Loved, snap.Status)
	}
}

func TestToggleShuffle_ReadsBack(t *testing.T) {
	d, store, player := newTestDispatcher(t)
	seed(store, func(s *state.Snapshot) { s.Shuffle = music.Off })
	player.Shuffle = music.On

	d.ToggleShuffle()
	d.Wait()
	snap := store.Snapshot()
	if snap.Shuffle != music.On || snap.Status != "Shuffle on" {
		t.Fatalf("shuffle/status = %v/%q, want on/Shuffle on", snap.Shuffle, snap.Status)
	}
}

func TestCycleRepeat(t *testing.T) {
	d, store, player := newTestDispatcher(t)
	seed(store, func(s *state.Snapshot) { s.Repeat = music.RepeatAll })

	d.CycleRepeat()
	snap := store.Snapshot()
	if snap.Repeat != music.RepeatOne || snap.Status != "Repeat: one" {
		t.Fatalf("repeat/status = %v/%q, want one/Repeat: one", snap.Repeat, snap.Status)
	}
	d.Wait()
	if cmd := lastSent(t, player); cmd.Repeat != music.RepeatOne {
		t.Fatalf("sent %+v, want repeat one", cmd)
	}
}

func TestPlayTrack_PatchesAndRefreshes(t *testing.T) {
	d, store, player := newTestDispatcher(t)
	player.SetSnapshot(music.Snapshot{
		Track: music.Track{Name: "Chocolate", Artist: "Snow Patrol", Duration: 190, Position: 1},
		State: music.Playing,
	})

	d.PlayTrack("Mix", music.TrackEntry{Name: "Chocolate", Artist: "Snow Patrol", Duration: 190, Index: 4})
	snap := store.Snapshot()
	if snap.Track.Name != "Chocolate" || snap.State != music.Playing || snap.CurrentPlaylist != "Mix" {
		t.Fatalf("optimistic snapshot = %+v", snap.Playback)
	}
	d.Wait()
	cmd := lastSent(t, player)
	if cmd.Kind != music.CmdPlayTrack || cmd.Index != 4 || cmd.Playlist != "Mix" {
		t.Fatalf("sent %+v, want play_track 4 of Mix", cmd)
	}
	if player.Calls("now_playing") != 1 {
		t.Fatalf("now playing reads = %d, want 1", player.Calls("now_playing"))
	}
	if got := store.Snapshot().Track.Position; got < 1 {
		t.Fatalf("Position = %v, want refreshed value", got)
	}
}

func TestSend_PermissionDeniedSetsHint(t *testing.T) {
	d, store, player := newTestDispatcher(t)
	player.SendErr = errors.Join(music.ErrAutomationDenied, errors.New("-1743"))

	d.Next()
	d.Wait()
	if got := store.Snapshot().Status; got != PermissionHint {
		t.Fatalf("Status = %q, want permission hint", got)
	}
	if player.Calls("now_playing") != 0 {
		t.Fatalf("now playing read after failed send")
	}
}

func TestSend_OtherErrorsSwallowed(t *testing.T) {
	d, store, player := newTestDispatcher(t)
	player.SendErr = errors.New("timeout")

	d.Stop()
	d.Wait()
	if got := store.Snapshot().Status; got != "Stopped" {
		t.Fatalf("Status = %q, want Stopped", got)
	}
}

func TestToggleAirPlay(t *testing.T) {
	d, store, player := newTestDispatcher(t)
	store.SetAirPlayDevices([]music.AirPlayDevice{{Name: "Kitchen"}})
	player.Devices = []music.AirPlayDevice{{Name: "Kitchen", Selected: true}}

	d.ToggleAirPlay("Kitchen")
	if devs := store.Snapshot().AirPlay; !devs[0].Selected {
		t.Fatalf("optimistic devices = %+v, want Kitchen selected", devs)
	}
	d.Wait()
	if cmd := lastSent(t, player); cmd.Kind != music.CmdToggleAirPlay || cmd.Name != "Kitchen" {
		t.Fatalf("sent %+v", cmd)
	}
	if player.Calls("airplay") != 1 {
		t.Fatalf("airplay reads = %d, want 1", player.Calls("airplay"))
	}
}

func TestToggleAirPlay_KeepsLatestDeviceList(t *testing.T) {
	d, store, player := newTestDispatcher(t)
	store.SetAirPlayDevices([]music.AirPlayDevice{{Name: "Kitchen"}})
	// A newer load lands before the toggle reads the list.
	store.SetAirPlayDevices([]music.AirPlayDevice{{Name: "Kitchen"}, {Name: "Office", Selected: true}})
	store.TakeDirty()

	d.ToggleAirPlay("Kitchen")
	devs := store.Snapshot().AirPlay
	if len(devs) != 2 || !devs[0].Selected || !devs[1].Selected {
		t.Fatalf("devices = %+v, want both with Kitchen flipped on", devs)
	}
	if !store.TakeDirty().Has(state.DirtyAirPlay) {
		t.Fatal("toggle did not mark devices dirty")
	}

	// The read-back fails: the optimistic list stays.
	d.Wait()
	if devs := store.Snapshot().AirPlay; len(devs) != 2 || !devs[0].Selected {
		t.Fatalf("devices after failed read-back = %+v", devs)
	}
	if player.Calls("airplay") != 1 {
		t.Fatalf("airplay reads = %d, want 1", player.Calls("airplay"))
	}
}

func TestRefreshPlaylists_FailedFetchKeepsList(t *testing.T) {
	d, store, player := newTestDispatcher(t)
	store.SetPlaylists([]string{"Mix", "Road Trip"})
	store.TakeDirty()

	d.RefreshPlaylists()
	d.Wait()
	if got := store.Snapshot().Playlists; len(got) != 2 {
		t.Fatalf("playlists = %v after failed refresh, want kept", got)
	}
	if store.TakeDirty().Has(state.DirtyPlaylists) {
		t.Fatal("failed refresh marked playlists dirty")
	}
	if got := store.Snapshot().Status; strings.HasPrefix(got, "Loaded") {
		t.Fatalf("Status = %q after failed refresh", got)
	}

	player.Playlists = []string{}
	d.RefreshPlaylists()
	d.Wait()
	if got := store.Snapshot(); len(got.Playlists) != 0 || got.Status != "Loaded 0 playlists" {
		t.Fatalf("empty library = %v %q, want cleared list", got.Playlists, got.Status)
	}
}

func TestAddToPlaylist_RequiresTrack(t *testing.T) {
	d, store, player := newTestDispatcher(t)
	d.AddToPlaylist("Mix")
	d.Wait()
	if len(player.Sent()) != 0 || store.Snapshot().Status != "Nothing playing" {
		t.Fatalf("add without track sent %v status %q", player.Sent(), store.Snapshot().Status)
	}

	seed(store, func(s *state.Snapshot) { s.Track.Name = "Run" })
	d.AddToPlaylist("Mix")
	d.Wait()
	if got := store.Snapshot().Status; got != `Added "Run" to Mix` {
		t.Fatalf("Status = %q", got)
	}
}

func TestLoaders_FillStoreAndMarkDirty(t *testing.T) {
	d, store, player := newTestDispatcher(t)
	player.Playlists = []string{"Mix", "Road Trip"}
	player.PlaylistTracks = map[string][]music.TrackEntry{"Mix": {{Name: "Run", Index: 1}}}
	player.Artists = []string{"Adele"}
	player.ArtistTracks = map[string][]music.TrackEntry{"Adele": {{Name: "Hello"}}}
	player.Search = []music.TrackEntry{{Name: "Run"}, {Name: "Running Man"}}

	d.RefreshPlaylists()
	d.LoadPlaylistTracks("Mix")
	d.LoadArtists()
	d.LoadArtistTracks("Adele")
	d.SearchLibrary("  run ")
	d.LoadAirPlayDevices()
	d.Wait()

	dirty := store.TakeDirty()
	for _, flag := range []state.Dirty{
		state.DirtyPlaylists, state.DirtyPlaylistTracks, state.DirtyArtists,
		state.DirtyArtistTracks, state.DirtySearch, state.DirtyAirPlay,
	} {
		if !dirty.Has(flag) {
			t.Fatalf("dirty = %b, missing %b", dirty, flag)
		}
	}
	snap := store.Snapshot()
	if snap.PlaylistTracksFor != "Mix" || len(snap.PlaylistTracks) != 1 {
		t.Fatalf("playlist tracks = %q %v", snap.PlaylistTracksFor, snap.PlaylistTracks)
	}
	if snap.SearchQuery != "run" || len(snap.SearchResults) != 2 {
		t.Fatalf("search = %q %v", snap.SearchQuery, snap.SearchResults)
	}
}

func TestSearchLibrary_BlankIgnored(t *testing.T) {
	d, _, player := newTestDispatcher(t)
	d.SearchLibrary("   ")
	d.Wait()
	if player.Calls("search") != 0 {
		t.Fatalf("blank query searched")
	}
}

func TestDispatch_DoesNotBlockCaller(t *testing.T) {
	player := musictest.NewPlayer()
	store := state.New()
	// One token per hour: the second command's send waits on the limiter.
	d := New(store, player, player, Options{Rate: 1.0 / 3600, Burst: 1})

	done := make(chan struct{})
	go func() {
		d.PlayPause()
		d.PlayPause()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatch blocked the caller")
	}
}

func TestFormatClock(t *testing.T) {
	tests := map[float64]string{0: "0:00", 59.9: "0:59", 61: "1:01", 3600: "60:00", -5: "0:00"}
	for in, want := range tests {
		if got := FormatClock(in); got != want {
			t.Fatalf("FormatClock(%v) = %q, want %q", in, got, want)
		}
	}
}
