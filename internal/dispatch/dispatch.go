package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/five82/cadence/internal/music"
	"github.com/five82/cadence/internal/state"
)

// PermissionHint is shown when macOS blocks scripting the player.
const PermissionHint = "Permission denied. Enable Automation for your terminal in System Settings > Privacy & Security > Automation."

const (
	seekStep   = 10.0
	volumeStep = 5

	defaultCommandRate  = rate.Limit(20)
	defaultCommandBurst = 5
)

// Options configure a Dispatcher.
type Options struct {
	Logger *log.Logger
	// Rate and Burst throttle outgoing commands. Zero uses defaults.
	Rate  rate.Limit
	Burst int
}

// Dispatcher turns user intents into an optimistic store patch followed by
// a background call to the player. It never blocks the caller on I/O.
type Dispatcher struct {
	store   *state.Store
	fetcher music.Fetcher
	cmd     music.Commander
	logger  *log.Logger
	limiter *rate.Limiter
	wg      sync.WaitGroup
}

// New returns a dispatcher writing to store.
func New(store *state.Store, fetcher music.Fetcher, cmd music.Commander, opts Options) *Dispatcher {
	if opts.Rate <= 0 {
		opts.Rate = defaultCommandRate
	}
	if opts.Burst <= 0 {
		opts.Burst = defaultCommandBurst
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Dispatcher{
		store:   store,
		fetcher: fetcher,
		cmd:     cmd,
		logger:  logger,
		limiter: rate.NewLimiter(opts.Rate, opts.Burst),
	}
}

// Wait blocks until every spawned unit of work has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// spawn runs fn on its own goroutine. Units are not cancelled; the script
// timeout bounds each one.
func (d *Dispatcher) spawn(op string, fn func(ctx context.Context, logger *log.Logger)) {
	id := uuid.NewString()
	logger := d.logger.With("op", op, "id", id[:8])
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		start := time.Now()
		fn(context.Background(), logger)
		logger.Debug("unit done", "elapsed", time.Since(start).Round(time.Millisecond))
	}()
}

// send throttles and executes one command. Failures are logged and dropped;
// the next poll restores the true state.
func (d *Dispatcher) send(ctx context.Context, logger *log.Logger, cmd music.Command) bool {
	if err := d.limiter.Wait(ctx); err != nil {
		logger.Debug("rate wait aborted", "err", err)
		return false
	}
	if err := d.cmd.Send(ctx, cmd); err != nil {
		if errors.Is(err, music.ErrAutomationDenied) {
			logger.Warn("command denied", "err", err)
			d.store.SetStatus(PermissionHint)
		} else {
			logger.Debug("command failed", "err", err)
		}
		return false
	}
	return true
}

// fire sends cmd in the background without a follow-up.
func (d *Dispatcher) fire(cmd music.Command) {
	d.spawn(cmd.Kind.String(), func(ctx context.Context, logger *log.Logger) {
		d.send(ctx, logger, cmd)
	})
}

// refreshNowPlaying re-reads the track after a command that changes it.
func (d *Dispatcher) refreshNowPlaying(ctx context.Context) {
	track, st := d.fetcher.FetchNowPlaying(ctx)
	now := d.store.Now()
	d.store.Update(func(s *state.Snapshot) {
		s.Track = track
		s.State = st
		s.Anchor = now
	})
}

// PlayPause toggles playback.
func (d *Dispatcher) PlayPause() {
	d.store.Patch("Toggled play/pause", func(s *state.Snapshot) {
		switch s.State {
		case music.Playing:
			s.State = music.Paused
		case music.Paused:
			s.State = music.Playing
		}
	})
	d.fire(music.Command{Kind: music.CmdPlayPause})
}

// Next skips to the next track.
func (d *Dispatcher) Next() {
	d.store.SetStatus("Next track")
	d.spawn(music.CmdNext.String(), func(ctx context.Context, logger *log.Logger) {
		if d.send(ctx, logger, music.Command{Kind: music.CmdNext}) {
			d.refreshNowPlaying(ctx)
		}
	})
}

// Previous returns to the previous track.
func (d *Dispatcher) Previous() {
	d.store.SetStatus("Previous track")
	d.spawn(music.CmdPrevious.String(), func(ctx context.Context, logger *log.Logger) {
		if d.send(ctx, logger, music.Command{Kind: music.CmdPrevious}) {
			d.refreshNowPlaying(ctx)
		}
	})
}

// Stop stops playback.
func (d *Dispatcher) Stop() {
	d.store.Patch("Stopped", func(s *state.Snapshot) {
		s.State = music.Stopped
	})
	d.fire(music.Command{Kind: music.CmdStop})
}

// SeekBy moves the playhead by delta seconds. Ignored unless a track is
// playing or paused.
func (d *Dispatcher) SeekBy(delta float64) {
	snap := d.store.Snapshot()
	msg := fmt.Sprintf("Seek forward %ds", int(delta))
	if delta < 0 {
		msg = fmt.Sprintf("Seek back %ds", int(-delta))
	}
	d.seek(snap.Track.Position+delta, msg)
}

// SeekForward and SeekBack move by the standard step.
func (d *Dispatcher) SeekForward() { d.SeekBy(seekStep) }
func (d *Dispatcher) SeekBack()    { d.SeekBy(-seekStep) }

// SeekTo moves the playhead to pos seconds.
func (d *Dispatcher) SeekTo(pos float64) {
	d.seek(pos, fmt.Sprintf("Seek to %s", FormatClock(pos)))
}

func (d *Dispatcher) seek(pos float64, msg string) {
	now := d.store.Now()
	var target float64
	ok := false
	d.store.Update(func(s *state.Snapshot) {
		if s.State != music.Playing && s.State != music.Paused {
			return
		}
		s.SetPosition(pos, now)
		target = s.Track.Position
		ok = true
	})
	if !ok {
		return
	}
	d.store.SetStatus(msg)
	d.fire(music.Command{Kind: music.CmdSeek, Position: target})
}

// AdjustVolume changes the volume by delta, clamped to 0..100. When the
// level is unknown it is read first.
func (d *Dispatcher) AdjustVolume(delta int) {
	d.withVolume("set_volume", func(s *state.Snapshot) (int, string) {
		v := clampVolume(s.Volume + delta)
		return v, fmt.Sprintf("Volume: %d%%", v)
	})
}

// VolumeUp and VolumeDown move by the standard step.
func (d *Dispatcher) VolumeUp()   { d.AdjustVolume(volumeStep) }
func (d *Dispatcher) VolumeDown() { d.AdjustVolume(-volumeStep) }

// ToggleMute sets the volume to zero, remembering the previous level, or
// restores that level.
func (d *Dispatcher) ToggleMute() {
	d.withVolume("toggle_mute", func(s *state.Snapshot) (int, string) {
		if s.Volume > 0 {
			s.PreMuteVolume = s.Volume
			return 0, "Muted"
		}
		v := s.PreMuteVolume
		if v <= 0 {
			v = 50
		}
		return v, fmt.Sprintf("Unmuted (%d%%)", v)
	})
}

// withVolume applies next to a known volume and sends the result. With an
// unknown volume the read, patch and send all happen in the background.
func (d *Dispatcher) withVolume(op string, next func(*state.Snapshot) (int, string)) {
	apply := func() (int, bool) {
		var vol int
		known := false
		var msg string
		d.store.Update(func(s *state.Snapshot) {
			if s.Volume < 0 {
				return
			}
			vol, msg = next(s)
			s.Volume = vol
			known = true
		})
		if known {
			d.store.SetStatus(msg)
		}
		return vol, known
	}

	if vol, ok := apply(); ok {
		d.fire(music.Command{Kind: music.CmdSetVolume, Volume: vol})
		return
	}
	d.spawn(op, func(ctx context.Context, logger *log.Logger) {
		current := d.fetcher.FetchVolume(ctx)
		if current < 0 {
			logger.Debug("volume unknown")
			return
		}
		d.store.Update(func(s *state.Snapshot) {
			if s.Volume < 0 {
				s.Volume = current
			}
		})
		if vol, ok := apply(); ok {
			d.send(ctx, logger, music.Command{Kind: music.CmdSetVolume, Volume: vol})
		}
	})
}

// ToggleLove flips the loved flag, then reads it back to correct the guess.
func (d *Dispatcher) ToggleLove() {
	d.store.Update(func(s *state.Snapshot) {
		s.Track.Loved = s.Track.Loved.Flip()
	})
	d.spawn(music.CmdToggleLove.String(), func(ctx context.Context, logger *log.Logger) {
		if !d.send(ctx, logger, music.Command{Kind: music.CmdToggleLove}) {
			return
		}
		track, _ := d.fetcher.FetchNowPlaying(ctx)
		msg := "Love toggled"
		switch track.Loved {
		case music.On:
			msg = "♥ Loved"
		case music.Off:
			msg = "♡ Unloved"
		}
		d.store.Patch(msg, func(s *state.Snapshot) {
			if s.Track.Name == track.Name {
				s.Track.Loved = track.Loved
			}
		})
	})
}

// ToggleShuffle flips shuffle, then reads it back.
func (d *Dispatcher) ToggleShuffle() {
	d.store.Update(func(s *state.Snapshot) {
		s.Shuffle = s.Shuffle.Flip()
	})
	d.spawn(music.CmdToggleShuffle.String(), func(ctx context.Context, logger *log.Logger) {
		if !d.send(ctx, logger, music.Command{Kind: music.CmdToggleShuffle}) {
			return
		}
		shuffle := d.fetcher.FetchShuffle(ctx)
		msg := "Shuffle toggled"
		switch shuffle {
		case music.On:
			msg = "Shuffle on"
		case music.Off:
			msg = "Shuffle off"
		}
		d.store.Patch(msg, func(s *state.Snapshot) {
			s.Shuffle = shuffle
		})
	})
}

// CycleRepeat advances repeat off → all → one → off.
func (d *Dispatcher) CycleRepeat() {
	var next music.RepeatMode
	d.store.Update(func(s *state.Snapshot) {
		next = s.Repeat.Next()
		s.Repeat = next
	})
	d.store.SetStatus("Repeat: " + next.String())
	d.fire(music.Command{Kind: music.CmdSetRepeat, Repeat: next})
}

// PlayPlaylist starts playlist from its beginning.
func (d *Dispatcher) PlayPlaylist(playlist string) {
	d.store.Patch("Playing: "+playlist, func(s *state.Snapshot) {
		s.CurrentPlaylist = playlist
	})
	d.spawn(music.CmdPlayPlaylist.String(), func(ctx context.Context, logger *log.Logger) {
		if d.send(ctx, logger, music.Command{Kind: music.CmdPlayPlaylist, Playlist: playlist}) {
			d.refreshNowPlaying(ctx)
		}
	})
}

// PlayTrack plays entry within playlist.
func (d *Dispatcher) PlayTrack(playlist string, entry music.TrackEntry) {
	d.playOptimistic(entry, playlist)
	d.spawn(music.CmdPlayTrack.String(), func(ctx context.Context, logger *log.Logger) {
		cmd := music.Command{Kind: music.CmdPlayTrack, Playlist: playlist, Index: entry.Index}
		if d.send(ctx, logger, cmd) {
			d.refreshNowPlaying(ctx)
		}
	})
}

// PlayLibraryTrack finds entry in the library by name and artist and plays
// it. Used for search results, artist tracks and history.
func (d *Dispatcher) PlayLibraryTrack(entry music.TrackEntry) {
	d.playOptimistic(entry, "")
	d.spawn(music.CmdPlayLibraryTrack.String(), func(ctx context.Context, logger *log.Logger) {
		cmd := music.Command{Kind: music.CmdPlayLibraryTrack, Name: entry.Name, Artist: entry.Artist}
		if d.send(ctx, logger, cmd) {
			d.refreshNowPlaying(ctx)
		}
	})
}

func (d *Dispatcher) playOptimistic(entry music.TrackEntry, playlist string) {
	now := d.store.Now()
	d.store.Patch("Playing: "+entry.Name, func(s *state.Snapshot) {
		s.Track = music.Track{Name: entry.Name, Artist: entry.Artist, Duration: entry.Duration}
		s.State = music.Playing
		s.Anchor = now
		if playlist != "" {
			s.CurrentPlaylist = playlist
		}
	})
}

// ToggleAirPlay flips device's selection, then reloads the device list.
func (d *Dispatcher) ToggleAirPlay(device string) {
	d.store.ToggleAirPlayDevice(device, "Toggling: "+device)
	d.spawn(music.CmdToggleAirPlay.String(), func(ctx context.Context, logger *log.Logger) {
		if !d.send(ctx, logger, music.Command{Kind: music.CmdToggleAirPlay, Name: device}) {
			return
		}
		if devices := d.fetcher.FetchAirPlayDevices(ctx); devices != nil {
			d.store.SetAirPlayDevices(devices)
		}
	})
}

// AddToPlaylist copies the current track into playlist.
func (d *Dispatcher) AddToPlaylist(playlist string) {
	name := d.store.Snapshot().Track.Name
	if name == "" {
		d.store.SetStatus("Nothing playing")
		return
	}
	d.spawn(music.CmdAddToPlaylist.String(), func(ctx context.Context, logger *log.Logger) {
		if d.send(ctx, logger, music.Command{Kind: music.CmdAddToPlaylist, Playlist: playlist}) {
			d.store.SetStatus(fmt.Sprintf("Added %q to %s", name, playlist))
		}
	})
}

func clampVolume(v int) int {
	return max(0, min(100, v))
}

// FormatClock renders seconds as m:ss.
func FormatClock(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	total := int(sec)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
