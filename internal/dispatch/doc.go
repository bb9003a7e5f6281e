// Package dispatch executes user commands against the player.
//
// Every entry point follows the same shape:
//
//  1. Patch the shared store synchronously so the next frame shows the
//     intended result (new volume, flipped shuffle, moved playhead).
//  2. Spawn one goroutine that waits on a rate limiter, sends the command
//     through music.Commander and, for commands whose outcome the store
//     cannot predict (next track, love, shuffle), reads the field back.
//
// Nothing is returned to the caller. A failed command is logged and the
// next poll overwrites the optimistic value. The single exception is a
// macOS automation refusal, which becomes PermissionHint in the status
// line.
//
// Each goroutine carries a short uuid in its log lines so the send and its
// follow-up read can be correlated in the log file. Wait blocks until all
// outstanding work is done; tests use it in place of sleeps.
package dispatch
