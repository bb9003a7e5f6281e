// Package ui provides the terminal interface for cadence.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. It never talks to the Music app directly:
// it reads state.Store on a 100ms frame tick and turns key presses into
// dispatch.Dispatcher calls, which update the store optimistically and send
// the command in the background.
//
// # Package Structure
//
//   - app.go: Model, Options, Update/View and the Run function
//   - input.go: key and mouse handling, view navigation
//   - player.go: header, now playing box, progress bar, controls, mini mode
//   - views.go: the browser list box and its rows
//   - panel.go: the right panel (source playlist, queue, shortcuts)
//   - modal.go, logs.go, help.go: overlays
//   - theme.go, style_helpers.go, strings.go, layout.go, keys.go: shared pieces
//
// # Views
//
// The browser shows one list at a time:
//
//   - Playlists: the library's playlists; Enter opens one
//   - Tracks: the tracks of the open playlist; Enter plays, Tab plays all
//   - Artists (F3) and an artist's tracks
//   - Recently Played (h): the session's play history
//   - Library Search (F1): Enter runs the query, results are playable
//
// Every list is a selection.List, so "/" filters any of them with the fuzzy
// ranker and the cursor survives reloads.
//
// # Event Flow
//
//  1. Run() builds the Model and starts the program
//  2. frameMsg calls store.Tick(), which advances the interpolated position
//  3. Dirty flags from the store decide which lists are reloaded
//  4. Keys call the dispatcher; the next frame shows the optimistic state
//  5. Context cancellation shuts the program down
package ui
