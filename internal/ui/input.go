package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/cadence/internal/music"
)

// cursor is the part of selection.List the key handlers need, whatever the
// item type.
type cursor interface {
	Move(delta int)
	Select(pos int)
	Top()
	Bottom()
	Len() int
	Total() int
	Selected() int
	Current() (int, bool)
	Query() string
	SetQuery(query string)
	Window(height int) (start, end int)
}

// activeList returns the list shown for the current view.
func (m Model) activeList() cursor {
	switch m.view {
	case ViewTracks:
		return m.tracks
	case ViewArtists:
		return m.artists
	case ViewArtistTracks:
		return m.artistTracks
	case ViewRecent:
		return m.recent
	case ViewSearch:
		return m.results
	default:
		return m.playlists
	}
}

// handleKey processes keyboard input. Overlays and input modes see keys
// before the normal bindings.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, m.keys.MiniMode) {
		m.mini = !m.mini
		m.setStatus(ternary(m.mini, "Mini mode", "Full mode"))
		return m, nil
	}

	if m.modal != nil {
		modal, cmd, closed := m.modal.Update(msg, m.keys)
		m.modal = modal
		if closed {
			m.modal = nil
		}
		return m, cmd
	}

	switch m.mode {
	case modeFilter:
		return m.handleFilterKey(msg)
	case modeQuery:
		return m.handleQueryKey(msg)
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	return m.handleNormalKey(msg)
}

// handleFilterKey edits the fuzzy filter of the active list.
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.activeList()
	switch msg.Type {
	case tea.KeyEsc:
		m.endFilter()
		return m, nil
	case tea.KeyEnter:
		view := m.view
		m.activate()
		if m.view == view {
			m.endFilter()
		} else {
			m.mode = modeNormal
			m.input.Blur()
			m.input.Reset()
		}
		return m, nil
	case tea.KeyUp:
		list.Move(-1)
		return m, nil
	case tea.KeyDown:
		list.Move(1)
		return m, nil
	case tea.KeyPgUp:
		list.Move(-PageStep)
		return m, nil
	case tea.KeyPgDown:
		list.Move(PageStep)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	list.SetQuery(m.input.Value())
	return m, cmd
}

// handleQueryKey edits the library search query.
func (m Model) handleQueryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeNormal
		m.input.Blur()
		if m.results.Total() == 0 {
			m.setView(ViewPlaylists)
		}
		return m, nil
	case tea.KeyEnter:
		m.mode = modeNormal
		m.input.Blur()
		if query := strings.TrimSpace(m.input.Value()); query != "" && m.actions != nil {
			m.actions.SearchLibrary(query)
		}
		return m, nil
	case tea.KeyUp:
		m.results.Move(-1)
		return m, nil
	case tea.KeyDown:
		m.results.Move(1)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleNormalKey handles keys when no overlay or input mode is active.
func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.activeList()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.goBack(true)
	case key.Matches(msg, m.keys.Back):
		return m, m.goBack(false)
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	// Navigation
	case key.Matches(msg, m.keys.Down):
		list.Move(1)
	case key.Matches(msg, m.keys.Up):
		list.Move(-1)
	case key.Matches(msg, m.keys.Top):
		list.Top()
	case key.Matches(msg, m.keys.Bottom):
		list.Bottom()
	case key.Matches(msg, m.keys.PageDown):
		list.Move(PageStep)
	case key.Matches(msg, m.keys.PageUp):
		list.Move(-PageStep)
	case key.Matches(msg, m.keys.Confirm):
		m.activate()

	// Browsing
	case key.Matches(msg, m.keys.Filter):
		if m.view == ViewSearch {
			return m, m.startQuery()
		}
		m.mode = modeFilter
		m.input.Reset()
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.LibrarySearch):
		return m, m.startQuery()
	case key.Matches(msg, m.keys.Artists):
		m.setView(ViewArtists)
		if m.artists.Total() == 0 && m.actions != nil {
			m.actions.LoadArtists()
		}
	case key.Matches(msg, m.keys.Recent):
		m.setView(ViewRecent)
		m.recent.Top()
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
	case key.Matches(msg, m.keys.Logs):
		modal, cmd := newLogModal(m.logPath, m.theme, m.width, m.height)
		m.modal = modal
		return m, cmd
	}

	if m.actions == nil {
		return m, nil
	}

	switch {
	// Playback
	case key.Matches(msg, m.keys.PlayPause):
		m.actions.PlayPause()
	case key.Matches(msg, m.keys.Next):
		m.actions.Next()
	case key.Matches(msg, m.keys.Previous):
		m.actions.Previous()
	case key.Matches(msg, m.keys.Stop):
		m.actions.Stop()
	case key.Matches(msg, m.keys.SeekForward):
		m.actions.SeekForward()
	case key.Matches(msg, m.keys.SeekBack):
		m.actions.SeekBack()
	case key.Matches(msg, m.keys.VolumeUp):
		m.actions.VolumeUp()
	case key.Matches(msg, m.keys.VolumeDown):
		m.actions.VolumeDown()
	case key.Matches(msg, m.keys.Mute):
		m.actions.ToggleMute()
	case key.Matches(msg, m.keys.Love):
		m.actions.ToggleLove()
	case key.Matches(msg, m.keys.Shuffle):
		m.actions.ToggleShuffle()
	case key.Matches(msg, m.keys.Repeat):
		m.actions.CycleRepeat()

	// Library
	case key.Matches(msg, m.keys.PlayAll):
		if m.view == ViewTracks {
			m.actions.PlayPlaylist(m.openPlaylist)
		}
	case key.Matches(msg, m.keys.Refresh):
		m.actions.RefreshPlaylists()
	case key.Matches(msg, m.keys.AirPlay):
		m.modal = newAirPlayModal(m.actions, m.snap)
		m.actions.LoadAirPlayDevices()
	case key.Matches(msg, m.keys.AddToPlaylist):
		m.modal = newPlaylistPicker(m.actions, m.snap)
	}

	return m, nil
}

// activate opens or plays the selected row of the active list.
func (m *Model) activate() {
	switch m.view {
	case ViewPlaylists:
		if name, ok := m.playlists.CurrentItem(); ok {
			m.openPlaylistTracks(name)
		}
	case ViewArtists:
		if name, ok := m.artists.CurrentItem(); ok {
			m.openArtistTracks(name)
		}
	}

	if m.actions == nil {
		return
	}

	switch m.view {
	case ViewTracks:
		if entry, ok := m.tracks.CurrentItem(); ok {
			m.actions.PlayTrack(m.openPlaylist, entry)
		}
	case ViewArtistTracks:
		if entry, ok := m.artistTracks.CurrentItem(); ok {
			m.actions.PlayLibraryTrack(entry)
		}
	case ViewSearch:
		if entry, ok := m.results.CurrentItem(); ok {
			m.actions.PlayLibraryTrack(entry)
		}
	case ViewRecent:
		if e, ok := m.recent.CurrentItem(); ok {
			m.actions.PlayLibraryTrack(music.TrackEntry{Name: e.Name, Artist: e.Artist})
		}
	}
}

func (m *Model) openPlaylistTracks(name string) {
	m.openPlaylist = name
	m.setView(ViewTracks)
	if m.snap.PlaylistTracksFor == name {
		m.tracks.SetItems(m.snap.PlaylistTracks)
	} else {
		m.tracks.SetItems(nil)
	}
	m.tracks.Top()
	m.focusPlaying = true
	if m.actions != nil {
		m.actions.LoadPlaylistTracks(name)
	}
}

func (m *Model) openArtistTracks(name string) {
	m.openArtist = name
	m.setView(ViewArtistTracks)
	if m.snap.ArtistTracksFor == name {
		m.artistTracks.SetItems(m.snap.ArtistTracks)
	} else {
		m.artistTracks.SetItems(nil)
	}
	m.artistTracks.Top()
	if m.actions != nil {
		m.actions.LoadArtistTracks(name)
	}
}

// startQuery switches to library search and starts a new query.
func (m *Model) startQuery() tea.Cmd {
	m.setView(ViewSearch)
	m.mode = modeQuery
	m.results.SetItems(nil)
	m.input.Reset()
	return m.input.Focus()
}

// setView shows v with its filter cleared.
func (m *Model) setView(v View) {
	m.view = v
	clearQuery(m.activeList())
}

// goBack leaves a sub-view. On the playlists view it quits when quit is set.
func (m *Model) goBack(quit bool) tea.Cmd {
	switch m.view {
	case ViewArtistTracks:
		m.setView(ViewArtists)
	case ViewTracks, ViewArtists, ViewRecent, ViewSearch:
		m.setView(ViewPlaylists)
	case ViewPlaylists:
		if quit {
			return tea.Quit
		}
		clearQuery(m.playlists)
	}
	return nil
}

// endFilter leaves filter mode and clears the active list's query.
func (m *Model) endFilter() {
	m.mode = modeNormal
	m.input.Blur()
	m.input.Reset()
	clearQuery(m.activeList())
}

// clearQuery drops the filter and keeps the cursor on the same item. With an
// empty query the visible order is the candidate order.
func clearQuery(list cursor) {
	if list.Query() == "" {
		return
	}
	idx, ok := list.Current()
	list.SetQuery("")
	if ok {
		list.Select(idx)
	}
}

// handleMouse scrolls the active list with the wheel and seeks when the
// progress bar is clicked.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.modal != nil || m.showHelp || msg.Action != tea.MouseActionPress {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if !m.mini {
			m.activeList().Move(-WheelStep)
		}
	case tea.MouseButtonWheelDown:
		if !m.mini {
			m.activeList().Move(WheelStep)
		}
	case tea.MouseButtonLeft:
		bar, ok := m.progressBar()
		if !ok || m.actions == nil || msg.Y != bar.row {
			return m, nil
		}
		if msg.X < bar.start || msg.X >= bar.start+bar.width {
			return m, nil
		}
		ratio := float64(msg.X-bar.start) / float64(bar.width)
		m.actions.SeekTo(ratio * m.snap.Track.Duration)
	}
	return m, nil
}
