package app

import (
	"context"
	"testing"
	"time"

	"github.com/five82/cadence/internal/music"
	"github.com/five82/cadence/internal/music/musictest"
	"github.com/five82/cadence/internal/state"
)

func TestNewPoller_Defaults(t *testing.T) {
	p := NewPoller(musictest.NewPlayer(), state.New(), PollerOptions{})
	if p.Interval() != defaultPollInterval {
		t.Fatalf("Interval = %v, want %v", p.Interval(), defaultPollInterval)
	}
	if p.libraryEvery != defaultLibraryEvery {
		t.Fatalf("libraryEvery = %d, want %d", p.libraryEvery, defaultLibraryEvery)
	}
	if p.State() != PollIdle {
		t.Fatalf("State = %v, want idle", p.State())
	}
}

func TestRefresh_AppliesSnapshot(t *testing.T) {
	player := musictest.NewPlayer()
	player.SetSnapshot(music.Snapshot{
		Track:  music.Track{Name: "Run", Artist: "Snow Patrol", Duration: 355},
		State:  music.Playing,
		Volume: 60,
	})
	store := state.New()
	p := NewPoller(player, store, PollerOptions{})

	p.Refresh(context.Background())

	snap := store.Snapshot()
	if snap.Track.Name != "Run" || snap.State != music.Playing || snap.Volume != 60 {
		t.Fatalf("snapshot = %+v, want Run playing at 60", snap.Playback)
	}
	if snap.PollCount != 1 {
		t.Fatalf("PollCount = %d, want 1", snap.PollCount)
	}
	if p.State() != PollIdle {
		t.Fatalf("State after refresh = %v, want idle", p.State())
	}
}

func TestRefresh_LibraryEveryNthTick(t *testing.T) {
	player := musictest.NewPlayer()
	player.Playlists = []string{"Mix"}
	store := state.New()
	p := NewPoller(player, store, PollerOptions{LibraryEvery: 3})
	ctx := context.Background()

	p.Refresh(ctx)
	if d := store.TakeDirty(); !d.Has(state.DirtyPlaylists) {
		t.Fatalf("first tick dirty = %b, want playlists", d)
	}
	p.Refresh(ctx)
	p.Refresh(ctx)
	if d := store.TakeDirty(); d != 0 {
		t.Fatalf("ticks 2-3 dirty = %b, want 0", d)
	}
	p.Refresh(ctx)
	if d := store.TakeDirty(); !d.Has(state.DirtyPlaylists) {
		t.Fatalf("fourth tick dirty = %b, want playlists", d)
	}
	if got := player.Calls("playlists"); got != 2 {
		t.Fatalf("playlist fetches = %d, want 2", got)
	}
	if got := player.Calls("snapshot"); got != 4 {
		t.Fatalf("snapshot fetches = %d, want 4", got)
	}
}

func TestRefresh_TrackChangeRecordsHistory(t *testing.T) {
	player := musictest.NewPlayer()
	store := state.New()
	p := NewPoller(player, store, PollerOptions{})
	ctx := context.Background()

	for _, name := range []string{"A", "A", "B", "B", "A"} {
		player.SetSnapshot(music.Snapshot{Track: music.Track{Name: name}, State: music.Playing})
		p.Refresh(ctx)
	}

	hist := store.Snapshot().History
	if len(hist) != 2 || hist[0].Name != "B" || hist[1].Name != "A" {
		t.Fatalf("History = %+v, want B then A", hist)
	}
}

func TestRefresh_CancelledContextSkipsCommit(t *testing.T) {
	player := musictest.NewPlayer()
	player.SetSnapshot(music.Snapshot{Track: music.Track{Name: "Run"}, State: music.Playing})
	store := state.New()
	p := NewPoller(player, store, PollerOptions{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p.Refresh(ctx)

	if snap := store.Snapshot(); snap.PollCount != 0 {
		t.Fatalf("PollCount = %d, want 0 after cancelled refresh", snap.PollCount)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	player := musictest.NewPlayer()
	store := state.New()
	p := NewPoller(player, store, PollerOptions{Interval: 5 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for player.Calls("snapshot") < 2 {
		if time.Now().After(deadline) {
			t.Fatal("poller did not tick")
		}
		time.Sleep(time.Millisecond)
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
