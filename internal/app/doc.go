// Package app wires configuration, logging, the player client, the shared
// store, the poller, the dispatcher and the UI together.
//
// # Overview
//
// Run is the composition root:
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()      Read ~/.config/cadence/config.toml
//	       ├─────> logging.Open()     Append logfmt to the log file
//	       ├─────> prefs.Load()       Saved theme
//	       ├─────> music.NewClient()  osascript-backed Fetcher and Commander
//	       ├─────> state.New()        Shared store
//	       ├─────> StartPoller()      Background refresh
//	       └─────> ui.Run()           Bubble Tea program (blocks)
//
// # Polling Behavior
//
// The poller reads the whole player state on a fixed interval (default 2
// seconds) and commits it to the store in one ApplyPoll. Every
// library_every-th cycle it also reloads the playlist names. Fetch failures
// degrade to unknown values and the next cycle corrects them.
//
// The UI redraws every 100ms from the store and extrapolates the playback
// position between polls, so the progress bar moves smoothly even though the
// player is only asked every few seconds.
//
// # Error Handling
//
// Bad config files and an unwritable log file are returned from Run. A
// missing or not running Music app is a normal state and shows in the UI.
package app
