// Package state holds the playback state shared by the poller, the command
// dispatcher and the UI.
//
// # Overview
//
// A single Store sits between three independent actors:
//
//	Poller (background):           Dispatcher (per command):
//	┌──────────────────┐           ┌──────────────────┐
//	│ FetchSnapshot()  │           │ optimistic patch │
//	│ store.ApplyPoll()│           │ store.Patch()    │
//	└────────┬─────────┘           └────────┬─────────┘
//	         │        (sync.Mutex)          │
//	         └───────────→ Store ←──────────┘
//	                        │
//	                 store.Tick() / Snapshot()
//	                        │
//	                   UI (render)
//
// Every accessor copies under the lock and returns. The lock is never held
// across an osascript call or while rendering.
//
// # Core Types
//
// Playback:
//   - The player fields read by a poll: track, state, shuffle, repeat,
//     volume, current playlist, up-next and queue
//   - Anchor records when Track.Position was last known exactly
//
// Snapshot:
//   - Playback plus the candidate lists (playlists, tracks, artists,
//     search results, AirPlay devices), history and status line
//   - Returned by value; slices are cloned
//
// History:
//   - Most recent first, at most HistoryLimit entries
//   - Adjacent duplicates and blank names are never stored
//
// # Position Interpolation
//
// Music.app is only asked for the playhead every poll interval. Between
// polls the UI calls Tick on every frame, which advances Position by the
// wall-clock time since Anchor while the player is Playing, clamped to
// [0, Duration]. Anchor moves on every Tick whatever the player state, so
// resuming from pause never produces a jump.
//
//	t=0    poll: Position=10, Anchor=t0
//	t=0.5  Tick: Position=10.5
//	t=2.0  poll: Position=12.1, Anchor=t2  (authoritative value replaces)
//
// # Status Messages
//
// SetStatus and Patch stamp StatusAt. Tick replaces any message older than
// StatusTTL with StatusIdle. A fresh store reads StatusLoading until the
// first decay or message.
//
// # Dirty Flags
//
// Loaders that replace a candidate list set the matching Dirty bit. The UI
// calls TakeDirty once per frame and rebuilds only the selection lists that
// changed, preserving the cursor where it can.
//
// # Track Changes
//
// ApplyPoll compares the incoming track name with the last non-empty one it
// saw. A change pushes the previous track onto History. Empty names (player
// stopped) are skipped without forgetting the last track, so A, stop, B
// still records A.
//
// # Testing Considerations
//
// Construct with New(WithClock(fn)) to drive interpolation and status decay
// from a fake clock.
package state
